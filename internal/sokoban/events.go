package sokoban

// Event is emitted synchronously by a Level or Pack while it mutates.
type Event interface {
	sokobanEvent()
}

// MoveStartEvent is emitted when a move is committed.
type MoveStartEvent struct {
	MovesCount  int
	PushesCount int
}

func (MoveStartEvent) sokobanEvent() {}

// MoveEndEvent is emitted when the animation of a move finishes.
type MoveEndEvent struct {
	BoxesCount          int
	BoxesOverGoalsCount int
}

func (MoveEndEvent) sokobanEvent() {}

// CompletedEvent is emitted once when every box stands on a goal.
type CompletedEvent struct{}

func (CompletedEvent) sokobanEvent() {}

// UndoEvent is emitted after a move has been taken back.
type UndoEvent struct {
	MovesCount  int
	PushesCount int
}

func (UndoEvent) sokobanEvent() {}

// LevelChangedEvent is emitted by a Pack when the current level changes
// or is restarted. Number is 1-based.
type LevelChangedEvent struct {
	Number int
}

func (LevelChangedEvent) sokobanEvent() {}

// Listener receives events. Listeners must not call back into Move.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Emitter delivers events to its listeners in registration order.
// The zero value is ready to use.
type Emitter struct {
	subs   []subscription
	nextID int
}

// Subscribe registers a listener and returns a function that removes it.
func (e *Emitter) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	id := e.nextID
	e.nextID++
	e.subs = append(e.subs, subscription{id: id, fn: fn})

	return func() {
		for i, s := range e.subs {
			if s.id == id {
				// Copy so an Emit already ranging over the old slice is unaffected.
				subs := make([]subscription, 0, len(e.subs)-1)
				subs = append(subs, e.subs[:i]...)
				e.subs = append(subs, e.subs[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers ev to every listener before returning.
func (e *Emitter) Emit(ev Event) {
	for _, s := range e.subs {
		s.fn(ev)
	}
}

// Len returns the number of registered listeners.
func (e *Emitter) Len() int {
	return len(e.subs)
}
