package postgres

import (
	"context"
	"database/sql"
	"errors"
	"file-researcher/internal/core/domain"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// getProjectRoot finds the project root by searching upwards for the go.mod file.
func getProjectRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		_, err := os.Stat(filepath.Join(wd, "go.mod"))
		if err == nil {
			return wd, nil
		}
		if wd == filepath.Dir(wd) {
			return "", errors.New("go.mod not found in any parent directory")
		}
		wd = filepath.Dir(wd)
	}
}

// NewTestDB creates a new db in a container
func NewTestDB(t *testing.T) (*sql.DB, func(), func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "researcher",
			"POSTGRES_PASSWORD": "researcher",
			"POSTGRES_DB":       "file_researcher",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(30 * time.Second),
	}

	postgresContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Could not start postgres container: %v", err)
	}

	host, _ := postgresContainer.Host(ctx)
	p, _ := postgresContainer.MappedPort(ctx, "5432")
	dbURL := fmt.Sprintf("postgres://researcher:researcher@%s:%s/file_researcher?sslmode=disable", host, p.Port())

	projectRoot, err := getProjectRoot()
	if err != nil {
		t.Fatalf("Could not find project root: %v", err)
	}
	migrationsPath := filepath.Join(projectRoot, "db", "migrations")

	u := &url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(migrationsPath),
	}

	m, err := migrate.New(u.String(), dbURL)
	if err != nil {
		t.Fatalf("failed to init migrate with URL %s: %v", u.String(), err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("failed to run up migrations: %v", err)
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("failed to connect to postgres: %v", err)
	}

	cleanup := func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate postgres container: %v", err)
		}
		db.Close()
	}

	truncateAll := func() {
		query := `
           DO $$ 
           DECLARE 
               r RECORD;
           BEGIN
               FOR r IN (SELECT tablename FROM pg_tables WHERE schemaname = 'public') 
               LOOP
                   EXECUTE 'TRUNCATE TABLE ' || quote_ident(r.tablename) || ' RESTART IDENTITY CASCADE';
               END LOOP;
           END $$;
       `
		_, err := db.Exec(query)
		if err != nil {
			t.Fatalf("failed to truncate tables: %v", err)
		}
	}
	return db, cleanup, truncateAll
}

// SeedFileSet inserts a file set and its entries, setting the generated IDs
func SeedFileSet(t *testing.T, db *sql.DB, fileSet *domain.FileSet) {
	t.Helper()
	ctx := context.Background()

	if fileSet.Status == "" {
		fileSet.Status = domain.FileSetStatusActive
	}

	err := db.QueryRowContext(ctx, `
		INSERT INTO file_set (name, description, recipient_email, status, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		fileSet.Name, fileSet.Description, fileSet.RecipientEmail, fileSet.Status, fileSet.UserID,
	).Scan(&fileSet.ID, &fileSet.CreatedAt)
	if err != nil {
		t.Fatalf("failed to seed file set: %v", err)
	}

	for i := range fileSet.Files {
		entry := &fileSet.Files[i]
		err := db.QueryRowContext(ctx, `
			INSERT INTO file_entry (file_set_id, position, name, path, size, extension)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			fileSet.ID, i, entry.Name, entry.Path, entry.Size, entry.Extension,
		).Scan(&entry.ID)
		if err != nil {
			t.Fatalf("failed to seed file entry: %v", err)
		}
	}
}
