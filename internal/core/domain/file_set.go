package domain

import "time"

// FileSetStatus represents the lifecycle status of a file set
type FileSetStatus string

const (
	FileSetStatusActive FileSetStatus = "ACTIVE"
	FileSetStatusSent   FileSetStatus = "SENT"
)

// FileSet represents a named group of files owned by a user
type FileSet struct {
	ID             int64
	Name           string
	Description    string
	RecipientEmail string
	Status         FileSetStatus
	UserID         int64
	CreatedAt      time.Time
	Files          []FileEntry
}

// FileEntry represents a previously discovered file referenced by a file set
type FileEntry struct {
	ID        int64
	Name      string
	Path      string
	Size      int64
	Extension string
}
