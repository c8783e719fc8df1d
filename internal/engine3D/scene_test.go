package engine3D

import (
	"testing"

	"fireball/internal/engine3D/gpu/gputest"

	"github.com/stretchr/testify/assert"
)

func TestSceneRefresh(t *testing.T) {
	rec := gputest.NewRecorder(8, 8)
	s := NewScene(rec, 5)
	assert.Equal(t, 5, s.Built())
	assert.Equal(t, 1, s.Rebuilds())
	assert.Equal(t, 9, rec.LiveBuffers())

	assert.False(t, s.Refresh(5))
	assert.Equal(t, 1, s.Rebuilds())

	old := s.Icosphere
	assert.True(t, s.Refresh(3))
	assert.Equal(t, 3, s.Built())
	assert.Equal(t, 2, s.Rebuilds())
	assert.False(t, old.Created())
	assert.Equal(t, 9, rec.LiveBuffers())

	assert.Len(t, s.Meshes(), 1)
	assert.Same(t, s.Square, s.Quad())

	s.Delete()
	assert.Zero(t, rec.LiveBuffers())
}
