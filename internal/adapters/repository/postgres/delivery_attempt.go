package postgres

import (
	"context"
	"database/sql"
	"errors"
	"file-researcher/internal/core/domain"
	"file-researcher/internal/core/port"
	"fmt"
	"time"

	"github.com/lib/pq"
)

type sqlDeliveryAttemptRepository struct {
	db SQLQuerier
}

// NewSqlDeliveryAttemptRepository creates sqlDeliveryAttemptRepository that implements port.DeliveryAttemptRepository
func NewSqlDeliveryAttemptRepository(db SQLQuerier) port.DeliveryAttemptRepository {
	return &sqlDeliveryAttemptRepository{db: db}
}

// Create appends a delivery attempt and sets its generated ID
func (s *sqlDeliveryAttemptRepository) Create(ctx context.Context, attempt *domain.DeliveryAttempt) error {
	query := `
		INSERT INTO delivery_attempt (archive_id, attempted_at, outcome, error_message, recipient_email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		attempt.ArchiveID,
		attempt.AttemptedAt,
		attempt.Outcome,
		attempt.ErrorMessage,
		attempt.RecipientEmail,
	).Scan(&attempt.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqForeignKeyViolation {
			return fmt.Errorf("archive %d : %w", attempt.ArchiveID, domain.ErrArchiveNotFound)
		}
		return err
	}
	return nil
}

// FindAllByArchiveID returns the attempts of an archive, most recent first
func (s *sqlDeliveryAttemptRepository) FindAllByArchiveID(ctx context.Context, archiveID int64) ([]domain.DeliveryAttempt, error) {
	query := `
		SELECT id, archive_id, attempted_at, outcome, error_message, recipient_email
		FROM delivery_attempt
		WHERE archive_id = $1
		ORDER BY attempted_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, archiveID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attempts := []domain.DeliveryAttempt{}
	for rows.Next() {
		var row dbDeliveryAttempt
		if err := rows.Scan(
			&row.ID,
			&row.ArchiveID,
			&row.AttemptedAt,
			&row.Outcome,
			&row.ErrorMessage,
			&row.RecipientEmail,
		); err != nil {
			return nil, err
		}
		attempts = append(attempts, row.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return attempts, nil
}

// FindMostRecentRecipient returns the recipient of the latest attempt of an archive
func (s *sqlDeliveryAttemptRepository) FindMostRecentRecipient(ctx context.Context, archiveID int64) (string, error) {
	query := `
		SELECT recipient_email
		FROM delivery_attempt
		WHERE archive_id = $1
		ORDER BY attempted_at DESC, id DESC
		LIMIT 1`

	var recipient string
	if err := s.db.QueryRowContext(ctx, query, archiveID).Scan(&recipient); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNoRecipient
		}
		return "", err
	}
	return recipient, nil
}

type dbDeliveryAttempt struct {
	ID             int64          `db:"id"`
	ArchiveID      int64          `db:"archive_id"`
	AttemptedAt    time.Time      `db:"attempted_at"`
	Outcome        string         `db:"outcome"`
	ErrorMessage   sql.NullString `db:"error_message"`
	RecipientEmail string         `db:"recipient_email"`
}

// ToDomain converts to domain.DeliveryAttempt
func (d *dbDeliveryAttempt) ToDomain() domain.DeliveryAttempt {
	attempt := domain.DeliveryAttempt{
		ID:             d.ID,
		ArchiveID:      d.ArchiveID,
		AttemptedAt:    d.AttemptedAt,
		Outcome:        domain.AttemptOutcome(d.Outcome),
		RecipientEmail: d.RecipientEmail,
	}
	if d.ErrorMessage.Valid {
		msg := d.ErrorMessage.String
		attempt.ErrorMessage = &msg
	}
	return attempt
}
