package models

import "time"

// Note is one user-owned note. OwnerID is set at creation and never changes;
// UpdatedAt is maintained by the store on every write.
type Note struct {
	ID        string
	OwnerID   string
	Title     string
	Content   string
	UpdatedAt time.Time
}
