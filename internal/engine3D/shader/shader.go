package shader

import (
	"errors"
	"fmt"

	"fireball/internal/engine3D/gpu"
)

var (
	ErrCompile  = errors.New("shader: compile failed")
	ErrLink     = errors.New("shader: link failed")
	ErrNoStages = errors.New("shader: program needs at least one stage")
)

// Shader is one compiled stage. It can be attached to any number of programs.
type Shader struct {
	ID    gpu.ShaderID
	Stage gpu.Stage

	ctx *gpu.Context
}

// NewShader compiles source for the given stage. On failure the returned
// error wraps ErrCompile and carries the compiler log.
func NewShader(ctx *gpu.Context, stage gpu.Stage, source string) (*Shader, error) {
	id := ctx.CreateShader(stage, source)
	if ok, log := ctx.ShaderStatus(id); !ok {
		ctx.DeleteShader(id)
		return nil, fmt.Errorf("%w (%s stage): %s", ErrCompile, stage, log)
	}
	return &Shader{ID: id, Stage: stage, ctx: ctx}, nil
}

// Delete releases the stage. Programs already linked against it keep working.
func (s *Shader) Delete() {
	if s == nil || s.ctx == nil {
		return
	}
	s.ctx.DeleteShader(s.ID)
	s.ctx = nil
}
