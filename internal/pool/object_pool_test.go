package pool

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool_ReusesObjects(t *testing.T) {
	p := NewPool(
		func() *strings.Builder { return &strings.Builder{} },
		func(b **strings.Builder) { (*b).Reset() },
	)

	b := p.Get()
	b.WriteString("scene code")
	p.Put(b)

	got := p.Get()
	assert.Equal(t, 0, got.Len(), "pooled builder must come back reset")

	stats := p.Stats()
	assert.Equal(t, int64(2), stats.Gets)
	assert.Equal(t, int64(1), stats.Puts)
	assert.Equal(t, int64(1), stats.Resets)
}

func TestPool_StatsHitRate(t *testing.T) {
	p := NewPool(func() int { return 0 }, nil)

	v := p.Get()
	p.Put(v)
	p.Get()

	stats := p.Stats()
	assert.Equal(t, int64(2), stats.Gets)
	assert.GreaterOrEqual(t, stats.Gets, stats.News)
}

func TestBuilderPool_Reset(t *testing.T) {
	b := BuilderPool.Get()
	b.WriteString("import * as THREE from 'three';")
	BuilderPool.Put(b)

	got := BuilderPool.Get()
	defer BuilderPool.Put(got)
	assert.Equal(t, 0, got.Len())
}
