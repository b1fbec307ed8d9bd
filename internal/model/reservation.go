package model

import "time"

// Reservation is a confirmed, permanent sale of the seats of a promoted
// hold.  Reservations never expire and live for the lifetime of the
// process.
//
// Fields:
//  ConfirmationID – string form of the originating hold's ID.
//  Seats          – the reserved seats, in the order they were held.
//  CustomerEmail  – email of the customer who confirmed the hold.
//  ReservedAt     – instant the hold was promoted.
type Reservation struct {
	ConfirmationID string    `json:"confirmation_id"`
	Seats          []Seat    `json:"seats"`
	CustomerEmail  string    `json:"customer_email"`
	ReservedAt     time.Time `json:"reserved_at"`
}
