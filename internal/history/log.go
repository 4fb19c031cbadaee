// Package history is the session-local undo/redo log: two bounded stacks of
// typed, invertible action records. Applying an action is the caller's job.
package history

// DefaultCapacity bounds each stack.
const DefaultCapacity = 50

// Log is a linear undo history. Pushing a new action discards all redo
// history; there is no branching.
type Log struct {
	undo     []Action
	redo     []Action
	capacity int
}

// NewLog creates a Log. A non-positive capacity uses DefaultCapacity.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{capacity: capacity}
}

// Push records a new action and clears the redo stack.
func (l *Log) Push(a Action) {
	l.undo = pushBounded(l.undo, a, l.capacity)
	l.redo = nil
}

// Undo moves the most recent action to the redo stack and returns it so the
// caller can apply its Before snapshot.
func (l *Log) Undo() (Action, bool) {
	a, ok := pop(&l.undo)
	if !ok {
		return Action{}, false
	}
	l.redo = pushBounded(l.redo, a, l.capacity)
	return a, true
}

// Redo moves the most recently undone action back to the undo stack and
// returns it so the caller can apply its After snapshot.
func (l *Log) Redo() (Action, bool) {
	a, ok := pop(&l.redo)
	if !ok {
		return Action{}, false
	}
	l.undo = pushBounded(l.undo, a, l.capacity)
	return a, true
}

func (l *Log) CanUndo() bool { return len(l.undo) > 0 }
func (l *Log) CanRedo() bool { return len(l.redo) > 0 }

// UndoDepth and RedoDepth report the stack sizes.
func (l *Log) UndoDepth() int { return len(l.undo) }
func (l *Log) RedoDepth() int { return len(l.redo) }

func (l *Log) Capacity() int { return l.capacity }

// Clear drops all history, e.g. when switching boards.
func (l *Log) Clear() {
	l.undo = nil
	l.redo = nil
}

// Peek returns the action Undo would return, without moving it.
func (l *Log) Peek() (Action, bool) {
	if len(l.undo) == 0 {
		return Action{}, false
	}
	return l.undo[len(l.undo)-1], true
}

// RemapCardID rewrites every reference to oldID in both stacks. Used when a
// replayed create comes back under a different identity.
func (l *Log) RemapCardID(oldID, newID string) {
	if oldID == newID {
		return
	}
	l.each(func(a *Action) {
		a.Before.remapCard(oldID, newID)
		a.After.remapCard(oldID, newID)
	})
}

// RemapConnectionID rewrites every reference to connection oldID.
func (l *Log) RemapConnectionID(oldID, newID string) {
	if oldID == newID {
		return
	}
	l.each(func(a *Action) {
		a.Before.remapConnection(oldID, newID)
		a.After.remapConnection(oldID, newID)
	})
}

func (l *Log) each(fn func(*Action)) {
	for i := range l.undo {
		fn(&l.undo[i])
	}
	for i := range l.redo {
		fn(&l.redo[i])
	}
}

func pushBounded(stack []Action, a Action, capacity int) []Action {
	stack = append(stack, a)
	if over := len(stack) - capacity; over > 0 {
		stack = append(stack[:0:0], stack[over:]...)
	}
	return stack
}

func pop(stack *[]Action) (Action, bool) {
	s := *stack
	if len(s) == 0 {
		return Action{}, false
	}
	a := s[len(s)-1]
	*stack = s[:len(s)-1]
	return a, true
}
