// Package codegen renders ready-to-run Three.js bootstrap code for
// generated scene definitions. The output is a self-contained ES module
// snippet: imports, renderer and camera setup, lights, objects, optional
// post-processing and a requestAnimationFrame loop.
package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmanhype/RealmForge/internal/pool"
	"github.com/jmanhype/RealmForge/types"
)

// Generator turns scene definitions into Three.js JavaScript. The zero
// value is not usable; construct with NewGenerator.
type Generator struct {
	modulePrefix string
}

// NewGenerator returns a generator emitting imports from the standard
// "three" module layout.
func NewGenerator() *Generator {
	return &Generator{modulePrefix: "three"}
}

// GenerateSceneCode renders the full bootstrap script for a scene. The
// scene is read-only during generation.
func (g *Generator) GenerateSceneCode(scene *types.SceneDefinition) string {
	if scene == nil {
		return ""
	}

	b := pool.BuilderPool.Get()
	defer pool.BuilderPool.Put(b)
	g.writeImports(b, scene)
	g.writeSceneSetup(b, scene)
	g.writeEnvironment(b, scene)
	g.writeCamera(b, scene)
	g.writeRenderer(b, scene)
	g.writeLights(b, scene.Lights)
	g.writeObjects(b, scene.Objects)
	g.writeModels(b, scene.Models)
	g.writePostProcessing(b, scene)
	g.writeAnimationLoop(b, scene)
	return b.String()
}

// GenerateCharacterCode renders a loader script for a character model.
// Primitive parts are emitted inline; the model URL, when present, is
// loaded via GLTFLoader.
func (g *Generator) GenerateCharacterCode(model *types.CharacterModelDefinition) string {
	if model == nil {
		return ""
	}

	b := pool.BuilderPool.Get()
	defer pool.BuilderPool.Put(b)
	fmt.Fprintf(b, "import * as THREE from '%s';\n", g.modulePrefix)
	if model.Model.URL != "" {
		fmt.Fprintf(b, "import { GLTFLoader } from '%s/addons/loaders/GLTFLoader.js';\n", g.modulePrefix)
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "const %s = new THREE.Group();\n", jsIdent(model.ID))
	fmt.Fprintf(b, "%s.name = '%s';\n\n", jsIdent(model.ID), model.Name)

	for i := range model.Parts {
		part := &model.Parts[i]
		name := jsIdent(part.ID)
		g.writeInlineObject(b, name, part)
		fmt.Fprintf(b, "%s.add(%s);\n\n", jsIdent(model.ID), name)
	}

	if model.Model.URL != "" {
		b.WriteString("const loader = new GLTFLoader();\n")
		fmt.Fprintf(b, "loader.load('%s', (gltf) => {\n", model.Model.URL)
		fmt.Fprintf(b, "    %s.add(gltf.scene);\n", jsIdent(model.ID))
		b.WriteString("});\n\n")
	}

	fmt.Fprintf(b, "export { %s };\n", jsIdent(model.ID))
	return b.String()
}

func (g *Generator) writeImports(b *strings.Builder, scene *types.SceneDefinition) {
	fmt.Fprintf(b, "import * as THREE from '%s';\n", g.modulePrefix)
	fmt.Fprintf(b, "import { OrbitControls } from '%s/addons/controls/OrbitControls.js';\n", g.modulePrefix)
	if len(scene.Models) > 0 || hasModelObjects(scene.Objects) {
		fmt.Fprintf(b, "import { GLTFLoader } from '%s/addons/loaders/GLTFLoader.js';\n", g.modulePrefix)
	}
	if effects := enabledEffects(scene); len(effects) > 0 {
		fmt.Fprintf(b, "import { EffectComposer } from '%s/addons/postprocessing/EffectComposer.js';\n", g.modulePrefix)
		fmt.Fprintf(b, "import { RenderPass } from '%s/addons/postprocessing/RenderPass.js';\n", g.modulePrefix)
		for _, effect := range effects {
			switch strings.ToLower(effect.Type) {
			case "bloom":
				fmt.Fprintf(b, "import { UnrealBloomPass } from '%s/addons/postprocessing/UnrealBloomPass.js';\n", g.modulePrefix)
			case "ssao", "ambient_occlusion":
				fmt.Fprintf(b, "import { SSAOPass } from '%s/addons/postprocessing/SSAOPass.js';\n", g.modulePrefix)
			}
		}
	}
	b.WriteString("\n")
}

func (g *Generator) writeSceneSetup(b *strings.Builder, scene *types.SceneDefinition) {
	b.WriteString("const scene = new THREE.Scene();\n")
	if scene.Environment != nil && scene.Environment.BackgroundColor != "" {
		fmt.Fprintf(b, "scene.background = new THREE.Color(%s);\n", jsColor(scene.Environment.BackgroundColor))
	}
	b.WriteString("\n")
}

func (g *Generator) writeEnvironment(b *strings.Builder, scene *types.SceneDefinition) {
	env := scene.Environment
	if env == nil {
		return
	}
	if fog := env.Fog; fog != nil {
		switch fog.Type {
		case "exponential", "exp2":
			fmt.Fprintf(b, "scene.fog = new THREE.FogExp2(%s, %s);\n\n", jsColor(fog.Color), jsNum(fog.Density))
		default:
			fmt.Fprintf(b, "scene.fog = new THREE.Fog(%s, %s, %s);\n\n", jsColor(fog.Color), jsNum(fog.Near), jsNum(fog.Far))
		}
	}
	if len(env.Skybox) > 0 {
		if base, ok := env.Skybox["base_url"].(string); ok && base != "" {
			b.WriteString("const cubeLoader = new THREE.CubeTextureLoader();\n")
			fmt.Fprintf(b, "cubeLoader.setPath('%s');\n", base)
			b.WriteString("scene.background = cubeLoader.load([\n")
			b.WriteString("    'px.jpg', 'nx.jpg',\n")
			b.WriteString("    'py.jpg', 'ny.jpg',\n")
			b.WriteString("    'pz.jpg', 'nz.jpg',\n")
			b.WriteString("]);\n\n")
		}
	}
}

func (g *Generator) writeCamera(b *strings.Builder, scene *types.SceneDefinition) {
	cam := scene.ActiveCamera()
	if cam == nil {
		return
	}
	fmt.Fprintf(b, "const camera = new THREE.PerspectiveCamera(%s, window.innerWidth / window.innerHeight, %s, %s);\n",
		jsNum(cam.FOV), jsNum(cam.Near), jsNum(cam.Far))
	fmt.Fprintf(b, "camera.position.set(%s, %s, %s);\n", jsNum(cam.Position.X), jsNum(cam.Position.Y), jsNum(cam.Position.Z))
	fmt.Fprintf(b, "camera.lookAt(%s, %s, %s);\n\n", jsNum(cam.LookAt.X), jsNum(cam.LookAt.Y), jsNum(cam.LookAt.Z))
}

func (g *Generator) writeRenderer(b *strings.Builder, scene *types.SceneDefinition) {
	b.WriteString("const renderer = new THREE.WebGLRenderer({ antialias: true });\n")
	b.WriteString("renderer.setSize(window.innerWidth, window.innerHeight);\n")
	b.WriteString("renderer.setPixelRatio(window.devicePixelRatio);\n")
	if shadowsEnabled(scene) {
		b.WriteString("renderer.shadowMap.enabled = true;\n")
		b.WriteString("renderer.shadowMap.type = THREE.PCFSoftShadowMap;\n")
	}
	b.WriteString("renderer.toneMapping = THREE.ACESFilmicToneMapping;\n")
	b.WriteString("document.body.appendChild(renderer.domElement);\n\n")
	b.WriteString("const controls = new OrbitControls(camera, renderer.domElement);\n")
	b.WriteString("controls.enableDamping = true;\n\n")
}

func (g *Generator) writeLights(b *strings.Builder, lights []types.LightDefinition) {
	for i := range lights {
		light := &lights[i]
		name := jsIdent(light.ID)
		switch lightClass(light.Type) {
		case "AmbientLight":
			fmt.Fprintf(b, "const %s = new THREE.AmbientLight(%s, %s);\n", name, jsColor(light.Color), jsNum(light.Intensity))
		case "DirectionalLight":
			fmt.Fprintf(b, "const %s = new THREE.DirectionalLight(%s, %s);\n", name, jsColor(light.Color), jsNum(light.Intensity))
			if light.Position != nil {
				fmt.Fprintf(b, "%s.position.set(%s, %s, %s);\n", name, jsNum(light.Position.X), jsNum(light.Position.Y), jsNum(light.Position.Z))
			}
			if light.CastShadow {
				fmt.Fprintf(b, "%s.castShadow = true;\n", name)
				fmt.Fprintf(b, "%s.shadow.mapSize.width = 2048;\n", name)
				fmt.Fprintf(b, "%s.shadow.mapSize.height = 2048;\n", name)
				fmt.Fprintf(b, "%s.shadow.camera.near = 0.5;\n", name)
				fmt.Fprintf(b, "%s.shadow.camera.far = 500;\n", name)
			}
		case "PointLight":
			fmt.Fprintf(b, "const %s = new THREE.PointLight(%s, %s);\n", name, jsColor(light.Color), jsNum(light.Intensity))
			if light.Position != nil {
				fmt.Fprintf(b, "%s.position.set(%s, %s, %s);\n", name, jsNum(light.Position.X), jsNum(light.Position.Y), jsNum(light.Position.Z))
			}
		case "SpotLight":
			fmt.Fprintf(b, "const %s = new THREE.SpotLight(%s, %s);\n", name, jsColor(light.Color), jsNum(light.Intensity))
			if light.Position != nil {
				fmt.Fprintf(b, "%s.position.set(%s, %s, %s);\n", name, jsNum(light.Position.X), jsNum(light.Position.Y), jsNum(light.Position.Z))
			}
			if light.CastShadow {
				fmt.Fprintf(b, "%s.castShadow = true;\n", name)
			}
		default:
			// Unknown light types are left out of the generated script
			// rather than rendered as something they are not.
			continue
		}
		fmt.Fprintf(b, "scene.add(%s);\n\n", name)
	}
}

// lightClass maps a light type tag to its Three.js class name. Class
// names are the canonical wire form; bare lowercase tags are accepted
// for older scene definitions.
func lightClass(t string) string {
	switch t {
	case "AmbientLight", "DirectionalLight", "PointLight", "SpotLight":
		return t
	case "ambient":
		return "AmbientLight"
	case "directional":
		return "DirectionalLight"
	case "point":
		return "PointLight"
	case "spot":
		return "SpotLight"
	}
	return ""
}

func (g *Generator) writeObjects(b *strings.Builder, objects []types.ObjectDefinition) {
	for i := range objects {
		obj := &objects[i]
		name := jsIdent(obj.ID)
		if obj.Type == "model" {
			url, _ := obj.UserData["url"].(string)
			fmt.Fprintf(b, "const loader_%s = new GLTFLoader();\n", name)
			fmt.Fprintf(b, "loader_%s.load('%s', (gltf) => {\n", name, url)
			fmt.Fprintf(b, "    const %s = gltf.scene;\n", name)
			g.writeObjectProperties(b, "    ", name, obj)
			fmt.Fprintf(b, "    scene.add(%s);\n", name)
			b.WriteString("});\n\n")
			continue
		}
		g.writeInlineObject(b, name, obj)
		fmt.Fprintf(b, "scene.add(%s);\n\n", name)
	}
}

// writeInlineObject emits a mesh built from an inline geometry and
// material definition.
func (g *Generator) writeInlineObject(b *strings.Builder, name string, obj *types.ObjectDefinition) {
	geomType, params := "BoxGeometry", []float64{1, 1, 1}
	if obj.Geometry != nil {
		geomType = geometryClass(obj.Geometry.Type)
		params = obj.Geometry.Parameters
	}
	fmt.Fprintf(b, "const %s_geometry = new THREE.%s(%s);\n", name, geomType, jsNumList(params))

	matColor, metalness, roughness := "0xffffff", 0.0, 1.0
	if obj.Material != nil {
		if obj.Material.Color != "" {
			matColor = jsColor(obj.Material.Color)
		}
		metalness = obj.Material.Metalness
		roughness = obj.Material.Roughness
	}
	fmt.Fprintf(b, "const %s_material = new THREE.MeshStandardMaterial({\n", name)
	fmt.Fprintf(b, "    color: %s,\n", matColor)
	fmt.Fprintf(b, "    metalness: %s,\n", jsNum(metalness))
	fmt.Fprintf(b, "    roughness: %s,\n", jsNum(roughness))
	b.WriteString("});\n")
	fmt.Fprintf(b, "const %s = new THREE.Mesh(%s_geometry, %s_material);\n", name, name, name)
	g.writeObjectProperties(b, "", name, obj)
}

func (g *Generator) writeObjectProperties(b *strings.Builder, indent, name string, obj *types.ObjectDefinition) {
	if p := obj.Position; p != nil {
		fmt.Fprintf(b, "%s%s.position.set(%s, %s, %s);\n", indent, name, jsNum(p.X), jsNum(p.Y), jsNum(p.Z))
	}
	if r := obj.Rotation; r != nil {
		fmt.Fprintf(b, "%s%s.rotation.set(%s, %s, %s);\n", indent, name, jsNum(r.X), jsNum(r.Y), jsNum(r.Z))
	}
	if s := obj.Scale; s != nil {
		fmt.Fprintf(b, "%s%s.scale.set(%s, %s, %s);\n", indent, name, jsNum(s.X), jsNum(s.Y), jsNum(s.Z))
	}
	if obj.CastShadow {
		fmt.Fprintf(b, "%s%s.castShadow = true;\n", indent, name)
	}
	if obj.ReceiveShadow {
		fmt.Fprintf(b, "%s%s.receiveShadow = true;\n", indent, name)
	}
}

func (g *Generator) writeModels(b *strings.Builder, models []types.ModelDefinition) {
	for i := range models {
		model := &models[i]
		if model.URL == "" {
			continue
		}
		name := jsIdent(model.ID)
		fmt.Fprintf(b, "const loader_%s = new GLTFLoader();\n", name)
		fmt.Fprintf(b, "loader_%s.load('%s', (gltf) => {\n", name, model.URL)
		fmt.Fprintf(b, "    gltf.scene.name = '%s';\n", model.Name)
		b.WriteString("    scene.add(gltf.scene);\n")
		b.WriteString("});\n\n")
	}
}

func (g *Generator) writePostProcessing(b *strings.Builder, scene *types.SceneDefinition) {
	effects := enabledEffects(scene)
	if len(effects) == 0 {
		return
	}
	b.WriteString("const composer = new EffectComposer(renderer);\n")
	b.WriteString("composer.addPass(new RenderPass(scene, camera));\n")
	for _, effect := range effects {
		switch strings.ToLower(effect.Type) {
		case "bloom":
			intensity := paramFloat(effect.Parameters, "intensity", 1)
			b.WriteString("const bloomPass = new UnrealBloomPass(\n")
			b.WriteString("    new THREE.Vector2(window.innerWidth, window.innerHeight),\n")
			fmt.Fprintf(b, "    %s, 0.85, 0.4\n", jsNum(intensity))
			b.WriteString(");\n")
			b.WriteString("composer.addPass(bloomPass);\n")
		case "ssao", "ambient_occlusion":
			b.WriteString("const ssaoPass = new SSAOPass(scene, camera, window.innerWidth, window.innerHeight);\n")
			b.WriteString("ssaoPass.kernelRadius = 16;\n")
			b.WriteString("ssaoPass.minDistance = 0.001;\n")
			b.WriteString("ssaoPass.maxDistance = 0.1;\n")
			b.WriteString("composer.addPass(ssaoPass);\n")
		}
	}
	b.WriteString("\n")
}

func (g *Generator) writeAnimationLoop(b *strings.Builder, scene *types.SceneDefinition) {
	render := "renderer.render(scene, camera);"
	if len(enabledEffects(scene)) > 0 {
		render = "composer.render();"
	}
	b.WriteString("function animate() {\n")
	b.WriteString("    requestAnimationFrame(animate);\n")
	b.WriteString("    controls.update();\n")
	fmt.Fprintf(b, "    %s\n", render)
	b.WriteString("}\n")
	b.WriteString("animate();\n\n")
	b.WriteString("window.addEventListener('resize', () => {\n")
	b.WriteString("    camera.aspect = window.innerWidth / window.innerHeight;\n")
	b.WriteString("    camera.updateProjectionMatrix();\n")
	b.WriteString("    renderer.setSize(window.innerWidth, window.innerHeight);\n")
	b.WriteString("});\n")
}

func enabledEffects(scene *types.SceneDefinition) []types.PostProcessingEffect {
	var out []types.PostProcessingEffect
	for _, effect := range scene.PostProcessing {
		if effect.Enabled {
			out = append(out, effect)
		}
	}
	return out
}

func paramFloat(params map[string]any, key string, fallback float64) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return fallback
}

func hasModelObjects(objects []types.ObjectDefinition) bool {
	for i := range objects {
		if objects[i].Type == "model" {
			return true
		}
	}
	return false
}

func shadowsEnabled(scene *types.SceneDefinition) bool {
	if v, ok := scene.RendererSettings["shadows"].(bool); ok {
		return v
	}
	for i := range scene.Lights {
		if scene.Lights[i].CastShadow {
			return true
		}
	}
	return false
}

// geometryClass maps a geometry type to its Three.js constructor name.
// Types already spelled as constructors pass through unchanged.
func geometryClass(t string) string {
	switch t {
	case "box", "cube":
		return "BoxGeometry"
	case "sphere":
		return "SphereGeometry"
	case "cylinder":
		return "CylinderGeometry"
	case "plane":
		return "PlaneGeometry"
	case "cone":
		return "ConeGeometry"
	case "torus":
		return "TorusGeometry"
	case "":
		return "BoxGeometry"
	}
	if strings.HasSuffix(t, "Geometry") {
		return t
	}
	return strings.ToUpper(t[:1]) + t[1:] + "Geometry"
}

// jsColor converts a "#rrggbb" hex string to a 0xrrggbb JS literal.
func jsColor(hex string) string {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return "0xffffff"
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return "0xffffff"
	}
	return fmt.Sprintf("0x%06x", n)
}

func jsNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func jsNumList(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = jsNum(v)
	}
	return strings.Join(parts, ", ")
}

// Ident sanitizes an ID into the JavaScript identifier the generated
// code declares for it.
func Ident(id string) string {
	return jsIdent(id)
}

// jsIdent sanitizes an ID into a valid JavaScript identifier.
func jsIdent(id string) string {
	if id == "" {
		return "obj"
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
