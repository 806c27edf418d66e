package transfer

type State int

const (
	StateIdle State = iota
	StatePerformDropRequested
	StatePerformingDrop
	StateConfirmingItem
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePerformDropRequested:
		return "perform-drop-requested"
	case StatePerformingDrop:
		return "performing-drop"
	case StateConfirmingItem:
		return "confirming-item"
	default:
		return "unknown"
	}
}

// Operation is what a target proposes to do with the dragged items.
type Operation int

const (
	OpForbidden Operation = iota
	OpCopy
	OpMove
)

func (o Operation) String() string {
	switch o {
	case OpCopy:
		return "copy"
	case OpMove:
		return "move"
	default:
		return "forbidden"
	}
}
