package steering

import "time"

// KeyState is the steering key currently held.
type KeyState int

const (
	Idle KeyState = iota
	HoldLeft
	HoldRight
)

func (s KeyState) String() string {
	switch s {
	case Idle:
		return "idle"
	case HoldLeft:
		return "hold-left"
	case HoldRight:
		return "hold-right"
	default:
		return "unknown"
	}
}

// Side returns the logical side the state belongs to.
func (s KeyState) Side() Side {
	switch s {
	case HoldLeft:
		return Left
	case HoldRight:
		return Right
	default:
		return Neutral
	}
}

// Side is the coarse steering direction of a band.
type Side int

const (
	Neutral Side = iota
	Left
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "neutral"
	}
}

// State returns the key state a side settles into.
func (s Side) State() KeyState {
	switch s {
	case Left:
		return HoldLeft
	case Right:
		return HoldRight
	default:
		return Idle
	}
}

// Key is a logical steering key. The injector layer maps it to a real key.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
)

func (k Key) String() string {
	if k == KeyLeft {
		return "left"
	}
	return "right"
}

func (s Side) key() Key {
	if s == Left {
		return KeyLeft
	}
	return KeyRight
}

// ActionKind enumerates key-injector primitives.
type ActionKind int

const (
	ActionKeyDown ActionKind = iota
	ActionKeyUp
	ActionPause
)

func (k ActionKind) String() string {
	switch k {
	case ActionKeyDown:
		return "down"
	case ActionKeyUp:
		return "up"
	case ActionPause:
		return "pause"
	default:
		return "unknown"
	}
}

// Action is one step of a key burst.
type Action struct {
	Kind  ActionKind
	Key   Key
	Delay time.Duration // ActionPause only
}

func down(k Key) Action            { return Action{Kind: ActionKeyDown, Key: k} }
func up(k Key) Action              { return Action{Kind: ActionKeyUp, Key: k} }
func pause(d time.Duration) Action { return Action{Kind: ActionPause, Delay: d} }

// StateListener is called on each state change.
type StateListener func(prev, next KeyState)
