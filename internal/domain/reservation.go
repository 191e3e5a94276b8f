package domain

import "time"

// Reservation is an in-memory claim of a launch by an operator for the span
// of one operation. Reservations are owned by the reservation manager and are
// never persisted.
type Reservation struct {
	OperatorCode string
	LaunchCode   string
	OperationID  string
	ReservedAt   time.Time
}
