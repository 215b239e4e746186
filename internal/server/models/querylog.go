package models

import "time"

// QueryLog is one completed lookup attempt: the request inputs plus the
// provider response serialized into an opaque string. Rows are immutable
// once written.
type QueryLog struct {
	ID                     string    `db:"id" json:"id"`
	CadastralNumber        string    `db:"cadastral_number" json:"cadastral_number"`
	Latitude               float64   `db:"latitude" json:"latitude"`
	Longitude              float64   `db:"longitude" json:"longitude"`
	ExternalServerResponse string    `db:"external_server_response" json:"external_server_response"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
}
