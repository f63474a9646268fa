package match

import "fmt"

// ErrInvalidAction is returned when an operation is invoked while turn_state
// is not the one it requires.
type ErrInvalidAction struct {
	Operation string
	Expected  TurnKind
	Actual    TurnKind
}

func (e *ErrInvalidAction) Error() string {
	return fmt.Sprintf("%s requires turn_state %s, but match is in %s", e.Operation, e.Expected, e.Actual)
}

// ErrInsufficientTiles reports a draw attempted with too few tiles left in
// the wall. DrawForPlayer does not return it: on an empty wall it sets
// MatchEnded, the normal terminal condition, and reports ok == false.
type ErrInsufficientTiles struct {
	Remaining int
}

func (e *ErrInsufficientTiles) Error() string {
	return fmt.Sprintf("not enough tiles in wall for draw: %d remaining", e.Remaining)
}

// ErrSeatNotWaiting is returned by RequestCall when the seat is not present
// in the current AwaitingCalls.Waiting map.
type ErrSeatNotWaiting struct {
	Seat string
}

func (e *ErrSeatNotWaiting) Error() string {
	return fmt.Sprintf("seat %s is not awaiting a call decision", e.Seat)
}

// ErrCallNotOffered is returned by RequestCall when the submitted call is
// not one of the options previously computed for that seat.
var ErrCallNotOffered = fmt.Errorf("submitted call was not among the seat's offered calls")
