package archive

import (
	"file-researcher/internal/core/domain"
	"time"
)

// V1TaskResponse is returned when a background task was accepted
type V1TaskResponse struct {
	TaskID string `json:"task_id"`
}

// V1ArchiveResponse describes one archive
type V1ArchiveResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Size           int64     `json:"size"`
	CreatedAt      time.Time `json:"created_at"`
	Status         string    `json:"status"`
	RecipientEmail string    `json:"recipient_email"`
	FileSetID      int64     `json:"file_set_id"`
	SendNumber     int       `json:"send_number"`
}

// V1DeliveryAttemptResponse describes one delivery attempt
type V1DeliveryAttemptResponse struct {
	ID             int64     `json:"id"`
	ArchiveID      int64     `json:"archive_id"`
	AttemptedAt    time.Time `json:"attempted_at"`
	Outcome        string    `json:"outcome"`
	ErrorMessage   *string   `json:"error_message,omitempty"`
	RecipientEmail string    `json:"recipient_email"`
}

type V1LastRecipientResponse struct {
	RecipientEmail string `json:"recipient_email"`
}

type V1StatsResponse struct {
	Success int64 `json:"success"`
	Failed  int64 `json:"failed"`
	Pending int64 `json:"pending"`
}

func toArchiveResponses(archives []domain.Archive) []V1ArchiveResponse {
	resp := make([]V1ArchiveResponse, 0, len(archives))
	for _, a := range archives {
		resp = append(resp, V1ArchiveResponse{
			ID:             a.ID,
			Name:           a.Name,
			Size:           a.Size,
			CreatedAt:      a.CreatedAt,
			Status:         string(a.Status),
			RecipientEmail: a.RecipientEmail,
			FileSetID:      a.FileSetID,
			SendNumber:     a.SendNumber,
		})
	}
	return resp
}

func toAttemptResponses(attempts []domain.DeliveryAttempt) []V1DeliveryAttemptResponse {
	resp := make([]V1DeliveryAttemptResponse, 0, len(attempts))
	for _, a := range attempts {
		resp = append(resp, V1DeliveryAttemptResponse{
			ID:             a.ID,
			ArchiveID:      a.ArchiveID,
			AttemptedAt:    a.AttemptedAt,
			Outcome:        string(a.Outcome),
			ErrorMessage:   a.ErrorMessage,
			RecipientEmail: a.RecipientEmail,
		})
	}
	return resp
}
