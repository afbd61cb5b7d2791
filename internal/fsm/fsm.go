package fsm

import "fmt"

type State string

type Event string

const (
	StateIdle        State = "idle"
	StateReading     State = "reading"
	StateDecoding    State = "decoding"
	StateDispatching State = "dispatching"
	StateRetrying    State = "retrying"
)

const (
	EventRead       Event = "read"
	EventMessage    Event = "message"
	EventInterrupt  Event = "interrupt"
	EventDecoded    Event = "decoded"
	EventDiscard    Event = "discard"
	EventDispatched Event = "dispatched"
	EventShutdown   Event = "shutdown"
)

func Transition(current State, event Event) (State, error) {
	switch current {
	case StateIdle:
		switch event {
		case EventRead:
			return StateReading, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateReading:
		switch event {
		case EventMessage:
			return StateDecoding, nil
		case EventInterrupt:
			return StateRetrying, nil
		case EventShutdown:
			return StateIdle, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateRetrying:
		switch event {
		case EventRead:
			return StateReading, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateDecoding:
		switch event {
		case EventDecoded:
			return StateDispatching, nil
		case EventDiscard:
			return StateIdle, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateDispatching:
		switch event {
		case EventDispatched:
			return StateIdle, nil
		default:
			return current, invalidTransition(current, event)
		}
	default:
		return current, fmt.Errorf("unknown state %q", current)
	}
}

func invalidTransition(state State, event Event) error {
	return fmt.Errorf("invalid transition: %s --(%s)--> ?", state, event)
}
