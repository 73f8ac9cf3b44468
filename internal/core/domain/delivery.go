package domain

import "time"

// AttemptOutcome represents the result of one delivery attempt
type AttemptOutcome string

const (
	AttemptOutcomeSuccess AttemptOutcome = "SUCCESS"
	AttemptOutcomeFailure AttemptOutcome = "FAILURE"
)

// DeliveryAttempt is an append-only record of one email transport attempt
type DeliveryAttempt struct {
	ID             int64
	ArchiveID      int64
	AttemptedAt    time.Time
	Outcome        AttemptOutcome
	ErrorMessage   *string
	RecipientEmail string
}

// Email is a message with a single file attachment
type Email struct {
	To             string
	Subject        string
	Body           string
	AttachmentPath string
}

// DeliveryOutcome is the classified result of a transport call that did not fail
type DeliveryOutcome string

const (
	DeliveryOutcomeDelivered            DeliveryOutcome = "delivered"
	DeliveryOutcomeDeliveredWithWarning DeliveryOutcome = "delivered_with_warning"
)

// DeliveryResult is returned by the mail transport when the message was accepted
type DeliveryResult struct {
	Outcome DeliveryOutcome
	Warning string
}
