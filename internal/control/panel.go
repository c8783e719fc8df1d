package control

import (
	"sync"

	"fireball/internal/utils"
)

// Panel is the control surface state shared between the render thread and
// background writers such as the config watcher.
type Panel struct {
	mu            sync.RWMutex
	params        Params
	loadRequested bool
	revision      uint64
}

func NewPanel(initial Params) *Panel {
	return &Panel{params: initial.Normalize()}
}

// Snapshot returns a copy of the current parameters.
func (p *Panel) Snapshot() Params {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.params
}

// Revision increases on every change.
func (p *Panel) Revision() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.revision
}

// Update applies fn to the parameters under the write lock and clamps the result.
func (p *Panel) Update(fn func(*Params)) Params {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := p.params
	fn(&next)
	next = next.Normalize()
	if next != p.params {
		p.params = next
		p.revision++
	}
	return next
}

// Set replaces every parameter.
func (p *Panel) Set(params Params) Params {
	return p.Update(func(cur *Params) { *cur = params })
}

// Reset restores the defaults.
func (p *Panel) Reset() Params {
	utils.Info("Controls: restoring defaults")
	return p.Set(Defaults())
}

// RequestLoad asks the frame driver to rebuild the scene geometry.
func (p *Panel) RequestLoad() {
	p.mu.Lock()
	p.loadRequested = true
	p.mu.Unlock()
}

// TakeLoadRequest reports and clears a pending load request.
func (p *Panel) TakeLoadRequest() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	requested := p.loadRequested
	p.loadRequested = false
	return requested
}
