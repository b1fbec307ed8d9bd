// Package queue carries reservation events over RabbitMQ: a publisher used
// by the HTTP layer and a consumer that appends confirmations to a log file.
package queue

// ReservationQueueName is the durable queue reservation events go to.
const ReservationQueueName = "reservation.confirmed"

// EventSeat is a seat coordinate inside an event payload.
type EventSeat struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// ReservationConfirmedEvent is published once a hold has been promoted.  It
// carries enough for downstream consumers to log or notify without asking
// the service again.
type ReservationConfirmedEvent struct {
	ConfirmationID string      `json:"confirmation_id"`
	CustomerEmail  string      `json:"customer_email"`
	Seats          []EventSeat `json:"seats"`
	ConfirmedAt    string      `json:"confirmed_at"`
}
