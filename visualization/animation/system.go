// Package animation models keyframe animations for generated scenes and
// renders them as GSAP timeline code. Sequences play a list of clips in
// order; chains stitch sequences into multi-stage behaviors.
package animation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/jmanhype/RealmForge/types"
)

// Keyframe is one step in a clip. Only the set fields animate; Time is
// the offset in seconds from the start of the clip.
type Keyframe struct {
	Time     float64        `json:"time"`
	Position *types.Vector3 `json:"position,omitempty"`
	Rotation *types.Vector3 `json:"rotation,omitempty"`
	Scale    *types.Vector3 `json:"scale,omitempty"`
	Opacity  *float64       `json:"opacity,omitempty"`
	Easing   string         `json:"easing,omitempty"`
}

// Clip is a named keyframe track applied to a single object.
type Clip struct {
	Name      string     `json:"name"`
	Duration  float64    `json:"duration"`
	Keyframes []Keyframe `json:"keyframes"`
}

// Sequence plays clips back to back on one target object.
type Sequence struct {
	Name           string  `json:"name"`
	Clips          []Clip  `json:"clips"`
	Loop           bool    `json:"loop"`
	TransitionTime float64 `json:"transition_time"`
}

// Chain runs sequences as stages, either one after another or all at
// once when Parallel is set.
type Chain struct {
	Name     string     `json:"name"`
	Stages   []Sequence `json:"stages"`
	Parallel bool       `json:"parallel"`
}

// System is a registry of reusable sequences and chains. Safe for
// concurrent use.
type System struct {
	mu        sync.RWMutex
	sequences map[string]Sequence
	chains    map[string]Chain
}

func NewSystem() *System {
	return &System{
		sequences: make(map[string]Sequence),
		chains:    make(map[string]Chain),
	}
}

// RegisterSequence stores or replaces a sequence under its name.
func (s *System) RegisterSequence(seq Sequence) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequences[seq.Name] = seq
}

func (s *System) RegisterChain(chain Chain) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chains[chain.Name] = chain
}

// Sequence returns the named sequence, reporting whether it exists.
func (s *System) Sequence(name string) (Sequence, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seq, ok := s.sequences[name]
	return seq, ok
}

func (s *System) Chain(name string) (Chain, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chain, ok := s.chains[name]
	return chain, ok
}

// SequenceNames lists registered sequences in sorted order.
func (s *System) SequenceNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.sequences))
	for name := range s.sequences {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GenerateSequenceCode renders a GSAP timeline driving targetVar. The
// timeline variable is named after the sequence.
func (s *System) GenerateSequenceCode(targetVar string, seq Sequence) string {
	var b strings.Builder
	tl := jsIdent(seq.Name) + "Timeline"

	repeat := ""
	if seq.Loop {
		repeat = "{ repeat: -1 }"
	}
	fmt.Fprintf(&b, "const %s = gsap.timeline(%s);\n", tl, repeat)

	offset := 0.0
	for _, clip := range seq.Clips {
		for _, kf := range clip.Keyframes {
			props := keyframeProps(kf)
			if len(props) == 0 {
				continue
			}
			fmt.Fprintf(&b, "%s.to(%s, {\n", tl, targetVar)
			fmt.Fprintf(&b, "    duration: %s,\n", jsNum(kf.Time))
			for _, p := range props {
				fmt.Fprintf(&b, "    %s,\n", p)
			}
			fmt.Fprintf(&b, "    ease: %q,\n", easing(kf.Easing))
			fmt.Fprintf(&b, "}, %s);\n", jsNum(offset))
		}
		offset += clip.Duration + seq.TransitionTime
	}
	return b.String()
}

// GenerateChainCode renders the stage timelines plus a small controller
// that advances through them. Sequential chains start paused except the
// first stage; parallel chains start everything at once.
func (s *System) GenerateChainCode(targetVar string, chain Chain) string {
	var b strings.Builder
	name := jsIdent(chain.Name)

	for _, stage := range chain.Stages {
		b.WriteString(s.GenerateSequenceCode(targetVar, stage))
		if !chain.Parallel {
			fmt.Fprintf(&b, "%sTimeline.pause();\n", jsIdent(stage.Name))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "const %sChain = {\n", name)
	b.WriteString("    stages: [")
	for i, stage := range chain.Stages {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%sTimeline", jsIdent(stage.Name))
	}
	b.WriteString("],\n")
	b.WriteString("    currentStage: 0,\n")
	fmt.Fprintf(&b, "    parallel: %t,\n", chain.Parallel)
	b.WriteString("};\n\n")

	if chain.Parallel {
		fmt.Fprintf(&b, "%sChain.stages.forEach((tl) => tl.play());\n", name)
		return b.String()
	}

	fmt.Fprintf(&b, "%sChain.stages[0].play();\n", name)
	fmt.Fprintf(&b, "function update%sChain() {\n", exportName(name))
	fmt.Fprintf(&b, "    const chain = %sChain;\n", name)
	b.WriteString("    const active = chain.stages[chain.currentStage];\n")
	b.WriteString("    if (active.progress() === 1 && chain.currentStage < chain.stages.length - 1) {\n")
	b.WriteString("        chain.currentStage += 1;\n")
	b.WriteString("        chain.stages[chain.currentStage].play();\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String()
}

// keyframeProps flattens a keyframe into GSAP property assignments.
func keyframeProps(kf Keyframe) []string {
	var props []string
	if p := kf.Position; p != nil {
		props = append(props,
			"x: "+jsNum(p.X),
			"y: "+jsNum(p.Y),
			"z: "+jsNum(p.Z),
		)
	}
	if r := kf.Rotation; r != nil {
		props = append(props,
			"rotationX: "+jsNum(r.X),
			"rotationY: "+jsNum(r.Y),
			"rotationZ: "+jsNum(r.Z),
		)
	}
	if sc := kf.Scale; sc != nil {
		props = append(props,
			"scaleX: "+jsNum(sc.X),
			"scaleY: "+jsNum(sc.Y),
			"scaleZ: "+jsNum(sc.Z),
		)
	}
	if kf.Opacity != nil {
		props = append(props, "opacity: "+jsNum(*kf.Opacity))
	}
	return props
}

func easing(e string) string {
	if e == "" {
		return "linear"
	}
	return e
}

// StandardCharacterSequences returns the idle, walk and run loops used
// for generated character models.
func StandardCharacterSequences() []Sequence {
	return []Sequence{
		{
			Name: "idle",
			Loop: true,
			Clips: []Clip{{
				Name:     "breathe",
				Duration: 2,
				Keyframes: []Keyframe{
					{Time: 1, Scale: &types.Vector3{X: 1, Y: 1.02, Z: 1}, Easing: "sine.inOut"},
					{Time: 1, Scale: &types.Vector3{X: 1, Y: 1, Z: 1}, Easing: "sine.inOut"},
				},
			}},
		},
		{
			Name: "walk",
			Loop: true,
			Clips: []Clip{{
				Name:     "step",
				Duration: 1,
				Keyframes: []Keyframe{
					{Time: 0.5, Position: &types.Vector3{Y: 0.05}, Easing: "sine.inOut"},
					{Time: 0.5, Position: &types.Vector3{}, Easing: "sine.inOut"},
				},
			}},
		},
		{
			Name: "run",
			Loop: true,
			Clips: []Clip{{
				Name:     "stride",
				Duration: 0.6,
				Keyframes: []Keyframe{
					{Time: 0.3, Position: &types.Vector3{Y: 0.1}, Easing: "power1.inOut"},
					{Time: 0.3, Position: &types.Vector3{}, Easing: "power1.inOut"},
				},
			}},
		},
	}
}

func jsNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func jsIdent(id string) string {
	if id == "" {
		return "anim"
	}
	var b strings.Builder
	for i, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func exportName(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
