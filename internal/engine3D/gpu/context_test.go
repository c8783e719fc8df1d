package gpu_test

import (
	"testing"

	"fireball/internal/engine3D/gpu"
	"fireball/internal/engine3D/gpu/gputest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextElidesRedundantBinds(t *testing.T) {
	rec := gputest.NewRecorder(64, 64)
	ctx := gpu.NewContext(rec)

	ctx.UseProgram(7)
	ctx.UseProgram(7)
	ctx.UseProgram(7)

	assert.Equal(t, 1, rec.Count("UseProgram"))
	assert.Equal(t, 1, ctx.ProgramBinds())

	ctx.UseProgram(8)
	ctx.UseProgram(7)
	assert.Equal(t, 3, rec.Count("UseProgram"))

	id, ok := ctx.ActiveProgram()
	require.True(t, ok)
	assert.Equal(t, gpu.ProgramID(7), id)
}

func TestContextResetRebindsAfterForeignCalls(t *testing.T) {
	rec := gputest.NewRecorder(64, 64)
	ctx := gpu.NewContext(rec)
	vao := rec.VertexArray()
	require.NotZero(t, vao)

	ctx.UseProgram(3)

	// Something outside the context binds its own program and vertex array.
	rec.UseProgram(99)
	rec.BindVertexArray(0)

	ctx.Reset()
	assert.Equal(t, vao, rec.VertexArray())

	_, ok := ctx.ActiveProgram()
	assert.False(t, ok)

	ctx.UseProgram(3)
	assert.Equal(t, gpu.ProgramID(3), rec.CurrentProgram())
}

func TestContextForget(t *testing.T) {
	rec := gputest.NewRecorder(64, 64)
	ctx := gpu.NewContext(rec)

	ctx.UseProgram(4)
	ctx.Forget(5)
	_, ok := ctx.ActiveProgram()
	assert.True(t, ok, "forgetting another program keeps the cache")

	ctx.Forget(4)
	_, ok = ctx.ActiveProgram()
	assert.False(t, ok)

	ctx.Close()
	assert.Equal(t, 1, rec.Count("DeleteVertexArray"))
}

func TestLocation(t *testing.T) {
	tests := []struct {
		raw   int32
		valid bool
	}{
		{raw: -1, valid: false},
		{raw: -5, valid: false},
		{raw: 0, valid: true},
		{raw: 12, valid: true},
	}

	for _, tt := range tests {
		loc := gpu.LocationOf(tt.raw)
		idx, ok := loc.Get()
		assert.Equal(t, tt.valid, ok, "raw %d", tt.raw)
		assert.Equal(t, tt.valid, loc.Valid())
		if ok {
			assert.Equal(t, tt.raw, idx)
			a, _ := loc.Attrib()
			assert.Equal(t, uint32(tt.raw), a)
		}
	}

	var zero gpu.Location
	assert.False(t, zero.Valid())
}
