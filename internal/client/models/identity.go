// Package models holds the client-side data types exchanged with the notes
// service.
package models

// Identity describes the authenticated account as reported by the server.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
