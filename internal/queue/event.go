// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketConfirmedEvent is published once a ticket's payment completes. It
// carries enough context for downstream consumers to log or notify without
// querying the primary database.
type TicketConfirmedEvent struct {
	TicketID        uint64 `json:"ticket_id"`
	UserID          uint64 `json:"user_id"`
	MatchID         uint64 `json:"match_id"`
	Team1Name       string `json:"team1_name"`
	Team2Name       string `json:"team2_name"`
	StadiumName     string `json:"stadium_name"`
	StadiumLocation string `json:"stadium_location"`
	StartsAt        string `json:"starts_at"`
	SeatLabel       string `json:"seat_label"`
	Amount          uint32 `json:"amount"`
	ConfirmedAt     string `json:"confirmed_at"`
}
