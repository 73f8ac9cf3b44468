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

type sqlArchiveRepository struct {
	db SQLQuerier
}

// NewSqlArchiveRepository creates sqlArchiveRepository that implements port.ArchiveRepository
func NewSqlArchiveRepository(db SQLQuerier) port.ArchiveRepository {
	return &sqlArchiveRepository{db: db}
}

const archiveColumns = `id, archive_name, archive_path, size, created_at, status, recipient_email, file_set_id, user_id, send_number`

// Create inserts a new archive and sets its generated ID
func (s *sqlArchiveRepository) Create(ctx context.Context, archive *domain.Archive) error {
	query := `
		INSERT INTO archive (
			archive_name, archive_path, size, created_at, status, recipient_email, file_set_id, user_id, send_number
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		archive.Name,
		archive.Path,
		archive.Size,
		archive.CreatedAt,
		archive.Status,
		archive.RecipientEmail,
		archive.FileSetID,
		archive.UserID,
		archive.SendNumber,
	).Scan(&archive.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case pqUniqueViolation:
				return fmt.Errorf("archive %s : %w", archive.Name, domain.ErrSendNumberConflict)
			case pqForeignKeyViolation:
				return fmt.Errorf("file set %d : %w", archive.FileSetID, domain.ErrFileSetNotFound)
			}
		}
		return err
	}
	return nil
}

// Save updates the mutable columns of an archive
func (s *sqlArchiveRepository) Save(ctx context.Context, archive domain.Archive) error {
	query := `
		UPDATE archive
		SET archive_path = $1, size = $2, status = $3, recipient_email = $4
		WHERE id = $5`

	result, err := s.db.ExecContext(ctx, query,
		archive.Path,
		archive.Size,
		archive.Status,
		archive.RecipientEmail,
		archive.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domain.ErrArchiveNotFound
	}

	return nil
}

// FindByID finds an archive by its ID
func (s *sqlArchiveRepository) FindByID(ctx context.Context, id int64) (*domain.Archive, error) {
	query := `SELECT ` + archiveColumns + ` FROM archive WHERE id = $1`

	var row dbArchive
	err := scanArchive(s.db.QueryRowContext(ctx, query, id), &row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrArchiveNotFound
		}
		return nil, err
	}

	return row.ToDomain(), nil
}

// FindMaxSendNumberByFileSetID returns the highest send number of a file set, 0 when none
func (s *sqlArchiveRepository) FindMaxSendNumberByFileSetID(ctx context.Context, fileSetID int64) (int, error) {
	query := `SELECT COALESCE(MAX(send_number), 0) FROM archive WHERE file_set_id = $1`

	var maxSendNumber int
	if err := s.db.QueryRowContext(ctx, query, fileSetID).Scan(&maxSendNumber); err != nil {
		return 0, err
	}
	return maxSendNumber, nil
}

// NextSendNumber atomically allocates the next send number of a file set.
// The counter row is seeded from the existing archives on first use.
func (s *sqlArchiveRepository) NextSendNumber(ctx context.Context, fileSetID int64) (int, error) {
	query := `
		INSERT INTO file_set_send_counter (file_set_id, last_send_number)
		VALUES ($1, COALESCE((SELECT MAX(send_number) FROM archive WHERE file_set_id = $1), 0) + 1)
		ON CONFLICT (file_set_id)
		DO UPDATE SET last_send_number = file_set_send_counter.last_send_number + 1
		RETURNING last_send_number`

	var next int
	if err := s.db.QueryRowContext(ctx, query, fileSetID).Scan(&next); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqForeignKeyViolation {
			return 0, fmt.Errorf("file set %d : %w", fileSetID, domain.ErrFileSetNotFound)
		}
		return 0, err
	}
	return next, nil
}

// FindAllByFileSetID returns the archives of a file set ordered by send number
func (s *sqlArchiveRepository) FindAllByFileSetID(ctx context.Context, fileSetID int64) ([]domain.Archive, error) {
	query := `SELECT ` + archiveColumns + ` FROM archive WHERE file_set_id = $1 ORDER BY send_number`
	return s.findAll(ctx, query, fileSetID)
}

// FindAllByUserID returns the archives of a user, newest first
func (s *sqlArchiveRepository) FindAllByUserID(ctx context.Context, userID int64) ([]domain.Archive, error) {
	query := `SELECT ` + archiveColumns + ` FROM archive WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	return s.findAll(ctx, query, userID)
}

// FindLarge returns the archives of a user bigger than minSize, biggest first
func (s *sqlArchiveRepository) FindLarge(ctx context.Context, userID int64, minSize int64) ([]domain.Archive, error) {
	query := `SELECT ` + archiveColumns + ` FROM archive WHERE user_id = $1 AND size > $2 ORDER BY size DESC, id`
	return s.findAll(ctx, query, userID, minSize)
}

// CountByStatusForUser counts the archives of a user per status
func (s *sqlArchiveRepository) CountByStatusForUser(ctx context.Context, userID int64) (*domain.ArchiveStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'SUCCESS'),
			COUNT(*) FILTER (WHERE status = 'FAILED'),
			COUNT(*) FILTER (WHERE status = 'PENDING')
		FROM archive
		WHERE user_id = $1`

	var stats domain.ArchiveStats
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&stats.Success, &stats.Failed, &stats.Pending); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *sqlArchiveRepository) findAll(ctx context.Context, query string, args ...any) ([]domain.Archive, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	archives := []domain.Archive{}
	for rows.Next() {
		var row dbArchive
		if err := scanArchive(rows, &row); err != nil {
			return nil, err
		}
		archives = append(archives, *row.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return archives, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArchive(r rowScanner, row *dbArchive) error {
	return r.Scan(
		&row.ID,
		&row.Name,
		&row.Path,
		&row.Size,
		&row.CreatedAt,
		&row.Status,
		&row.RecipientEmail,
		&row.FileSetID,
		&row.UserID,
		&row.SendNumber,
	)
}

type dbArchive struct {
	ID             int64     `db:"id"`
	Name           string    `db:"archive_name"`
	Path           string    `db:"archive_path"`
	Size           int64     `db:"size"`
	CreatedAt      time.Time `db:"created_at"`
	Status         string    `db:"status"`
	RecipientEmail string    `db:"recipient_email"`
	FileSetID      int64     `db:"file_set_id"`
	UserID         int64     `db:"user_id"`
	SendNumber     int       `db:"send_number"`
}

// ToDomain converts to domain.Archive
func (a *dbArchive) ToDomain() *domain.Archive {
	return &domain.Archive{
		ID:             a.ID,
		Name:           a.Name,
		Path:           a.Path,
		Size:           a.Size,
		CreatedAt:      a.CreatedAt,
		Status:         domain.ArchiveStatus(a.Status),
		RecipientEmail: a.RecipientEmail,
		FileSetID:      a.FileSetID,
		UserID:         a.UserID,
		SendNumber:     a.SendNumber,
	}
}
