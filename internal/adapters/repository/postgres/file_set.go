package postgres

import (
	"context"
	"database/sql"
	"errors"
	"file-researcher/internal/core/domain"
	"file-researcher/internal/core/port"
	"time"
)

type sqlFileSetRepository struct {
	db SQLQuerier
}

// NewSqlFileSetRepository creates sqlFileSetRepository that implements port.FileSetRepository
func NewSqlFileSetRepository(db SQLQuerier) port.FileSetRepository {
	return &sqlFileSetRepository{db: db}
}

// FindByID finds a file set, with its entries in selection order when withFiles is set
func (s *sqlFileSetRepository) FindByID(ctx context.Context, id int64, withFiles bool) (*domain.FileSet, error) {
	query := `
		SELECT id, name, description, recipient_email, status, user_id, created_at
		FROM file_set
		WHERE id = $1`

	var row dbFileSet
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&row.ID,
		&row.Name,
		&row.Description,
		&row.RecipientEmail,
		&row.Status,
		&row.UserID,
		&row.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFileSetNotFound
		}
		return nil, err
	}

	fileSet := row.ToDomain()
	if !withFiles {
		return fileSet, nil
	}

	files, err := s.findEntries(ctx, id)
	if err != nil {
		return nil, err
	}
	fileSet.Files = files
	return fileSet, nil
}

func (s *sqlFileSetRepository) findEntries(ctx context.Context, fileSetID int64) ([]domain.FileEntry, error) {
	query := `
		SELECT id, name, path, size, extension
		FROM file_entry
		WHERE file_set_id = $1
		ORDER BY position, id`

	rows, err := s.db.QueryContext(ctx, query, fileSetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.FileEntry
	for rows.Next() {
		var row dbFileEntry
		if err := rows.Scan(&row.ID, &row.Name, &row.Path, &row.Size, &row.Extension); err != nil {
			return nil, err
		}
		entries = append(entries, row.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// Save updates the mutable columns of a file set
func (s *sqlFileSetRepository) Save(ctx context.Context, fileSet domain.FileSet) error {
	query := `
		UPDATE file_set
		SET name = $1, description = $2, recipient_email = $3, status = $4
		WHERE id = $5`

	result, err := s.db.ExecContext(ctx, query,
		fileSet.Name,
		fileSet.Description,
		fileSet.RecipientEmail,
		fileSet.Status,
		fileSet.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domain.ErrFileSetNotFound
	}

	return nil
}

type dbFileSet struct {
	ID             int64     `db:"id"`
	Name           string    `db:"name"`
	Description    string    `db:"description"`
	RecipientEmail string    `db:"recipient_email"`
	Status         string    `db:"status"`
	UserID         int64     `db:"user_id"`
	CreatedAt      time.Time `db:"created_at"`
}

// ToDomain converts to domain.FileSet
func (f *dbFileSet) ToDomain() *domain.FileSet {
	return &domain.FileSet{
		ID:             f.ID,
		Name:           f.Name,
		Description:    f.Description,
		RecipientEmail: f.RecipientEmail,
		Status:         domain.FileSetStatus(f.Status),
		UserID:         f.UserID,
		CreatedAt:      f.CreatedAt,
	}
}

type dbFileEntry struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	Path      string `db:"path"`
	Size      int64  `db:"size"`
	Extension string `db:"extension"`
}

// ToDomain converts to domain.FileEntry
func (f *dbFileEntry) ToDomain() domain.FileEntry {
	return domain.FileEntry{
		ID:        f.ID,
		Name:      f.Name,
		Path:      f.Path,
		Size:      f.Size,
		Extension: f.Extension,
	}
}
