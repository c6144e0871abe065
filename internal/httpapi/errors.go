package httpapi

import "fmt"

// ErrCoordinateOutOfRange is returned when a request's chunk coordinate
// falls outside the HTTP layer's configured bound. The generator itself
// accepts any int (§4.3 "Failure semantics"); this is purely a guard the
// HTTP surface imposes on what it is willing to generate on a client's
// behalf, carried over from the original service.
type ErrCoordinateOutOfRange struct {
	CX, CY int
	Max    int64
}

func (e *ErrCoordinateOutOfRange) Error() string {
	return fmt.Sprintf("httpapi: coordinate (%d,%d) exceeds maximum magnitude %d", e.CX, e.CY, e.Max)
}
