package domain

import (
	"fmt"
	"time"
)

// ArchiveStatus represents the delivery lifecycle of an archive
type ArchiveStatus string

const (
	ArchiveStatusPending ArchiveStatus = "PENDING"
	ArchiveStatusSuccess ArchiveStatus = "SUCCESS"
	ArchiveStatusFailed  ArchiveStatus = "FAILED"
)

// Archive represents one compressed bundle built from a file set
type Archive struct {
	ID             int64
	Name           string
	Path           string
	Size           int64
	CreatedAt      time.Time
	Status         ArchiveStatus
	RecipientEmail string
	FileSetID      int64
	UserID         int64
	SendNumber     int
	Attempts       []DeliveryAttempt
}

// ArchiveStats holds per user delivery counters
type ArchiveStats struct {
	Success int64
	Failed  int64
	Pending int64
}

// ArchiveName builds the bookkeeping name of the n-th archive of a file set
func ArchiveName(fileSetID int64, sendNumber int) string {
	return fmt.Sprintf("%s%d-%d%s", ArchivePrefix, fileSetID, sendNumber, ArchiveSuffix)
}
