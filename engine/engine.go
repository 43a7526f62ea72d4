// Package engine owns the lifetime of arena-backed shapes: it creates
// them, keeps the active and undone histories, and decides when a shape
// is destroyed.
//
// An Engine is not safe for concurrent use.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/pavanmanishd/polygeo/arena"
	"github.com/pavanmanishd/polygeo/shape"
)

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
	ErrStaleHandle   = errors.New("stale shape handle")
	ErrTornDown      = errors.New("engine torn down")
)

// Releaser is implemented by allocators that can give back all of their
// memory at once.
type Releaser interface {
	Release()
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for lifecycle events. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithDestroyHook registers fn to be called exactly once for every shape
// the engine destroys, after its handle has been invalidated.
func WithDestroyHook(fn func(Handle, shape.Shape)) Option {
	return func(e *Engine) {
		e.onDestroy = fn
	}
}

// Engine creates shapes in an arena and tracks them in two sequences:
// active (rendered, undo source) and undone (redo source). A handle is
// in at most one of them. Shapes are destroyed only when they can no
// longer be reached: when a commit clears the undone sequence, or at
// Teardown.
type Engine struct {
	alloc  arena.Allocator
	store  *store
	active []Handle
	undone []Handle

	created   int
	destroyed int
	tornDown  bool

	log       *slog.Logger
	onDestroy func(Handle, shape.Shape)
}

// New returns an Engine placing shapes in alloc. If alloc implements
// Releaser, Teardown releases it.
func New(alloc arena.Allocator, opts ...Option) *Engine {
	e := &Engine{
		alloc: alloc,
		store: newStore(),
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Create constructs a shape of the given kind from p and commits it.
// Failures (shape.ErrUnknownKind, arena.ErrExhausted, shape.ErrMissingParam)
// leave both sequences unchanged.
func (e *Engine) Create(kind shape.Kind, p shape.Params) (Handle, error) {
	h, err := e.Construct(kind, p)
	if err != nil {
		return Handle{}, err
	}
	e.Commit(h)
	return h, nil
}

// Construct places a shape in the arena without entering it into the
// history. The handle must later be passed to Commit; until then only
// Teardown destroys it.
func (e *Engine) Construct(kind shape.Kind, p shape.Params) (Handle, error) {
	if e.tornDown {
		return Handle{}, ErrTornDown
	}
	sh, err := shape.New(e.alloc, kind, p)
	if err != nil {
		if errors.Is(err, arena.ErrExhausted) {
			e.log.Debug("engine: arena exhausted", "kind", kind, "bytes", kind.Footprint())
		}
		return Handle{}, fmt.Errorf("create %s: %w", kind, err)
	}
	h := e.store.insert(sh)
	e.created++
	e.log.Debug("engine: shape created", "handle", h, "shape", sh)
	return h, nil
}

// Commit appends h to the active sequence. Everything still in the
// undone sequence is destroyed first.
// Commit panics if h is stale or was committed before.
func (e *Engine) Commit(h Handle) {
	if err := e.store.commit(h); err != nil {
		panic("engine: commit: " + err.Error())
	}
	for _, u := range e.undone {
		e.destroy(u)
	}
	clear(e.undone)
	e.undone = e.undone[:0]
	e.active = append(e.active, h)
}

// Undo moves the last active shape to the undone sequence. The shape is
// not destroyed.
func (e *Engine) Undo() error {
	n := len(e.active)
	if n == 0 {
		return ErrNothingToUndo
	}
	h := e.active[n-1]
	e.active = e.active[:n-1]
	e.undone = append(e.undone, h)
	e.log.Debug("engine: undo", "handle", h)
	return nil
}

// Redo moves the last undone shape back to the active sequence.
func (e *Engine) Redo() error {
	n := len(e.undone)
	if n == 0 {
		return ErrNothingToRedo
	}
	h := e.undone[n-1]
	e.undone = e.undone[:n-1]
	e.active = append(e.active, h)
	e.log.Debug("engine: redo", "handle", h)
	return nil
}

// Snapshot returns the active handles in insertion order.
func (e *Engine) Snapshot() []Handle {
	return slices.Clone(e.active)
}

// Undone returns the undone handles, most recently undone last.
func (e *Engine) Undone() []Handle {
	return slices.Clone(e.undone)
}

// Shape resolves h. It fails with ErrStaleHandle once the shape has been
// destroyed.
func (e *Engine) Shape(h Handle) (shape.Shape, error) {
	return e.store.get(h)
}

// Active returns the active shapes in insertion order.
func (e *Engine) Active() []shape.Shape {
	shapes := make([]shape.Shape, 0, len(e.active))
	for _, h := range e.active {
		sh, err := e.store.get(h)
		if err != nil {
			panic("engine: active " + err.Error())
		}
		shapes = append(shapes, sh)
	}
	return shapes
}

// Teardown destroys every remaining shape, active first, then undone,
// then any constructed but never committed, and releases the allocator if
// it supports it. Calling it again does nothing.
func (e *Engine) Teardown() {
	if e.tornDown {
		return
	}
	for _, h := range e.active {
		e.destroy(h)
	}
	for _, h := range e.undone {
		e.destroy(h)
	}
	for _, h := range e.store.handles() {
		e.destroy(h)
	}
	e.active, e.undone = nil, nil
	e.tornDown = true

	if r, ok := e.alloc.(Releaser); ok {
		r.Release()
	}
	e.log.Debug("engine: torn down", "created", e.created, "destroyed", e.destroyed)
}

func (e *Engine) destroy(h Handle) {
	sh, err := e.store.retire(h)
	if err != nil {
		panic("engine: destroy of " + err.Error())
	}
	e.destroyed++
	e.log.Debug("engine: shape destroyed", "handle", h, "shape", sh)
	if e.onDestroy != nil {
		e.onDestroy(h, sh)
	}
}
