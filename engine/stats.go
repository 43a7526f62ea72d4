package engine

// Stats is a snapshot of the engine's bookkeeping.
type Stats struct {
	Active    int // shapes in the active sequence
	Undone    int // shapes in the undone sequence
	Live      int // constructed and not yet destroyed
	Created   int
	Destroyed int
}

// Stats returns a snapshot of the engine's counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Active:    len(e.active),
		Undone:    len(e.undone),
		Live:      e.store.live,
		Created:   e.created,
		Destroyed: e.destroyed,
	}
}
