package models

import "time"

// Note is one stored note. Content may be empty; Title never is once the
// note has been accepted by the server.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Draft holds in-progress edits of a note that have not been saved yet.
type Draft struct {
	Title   string
	Content string
}
