package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env      Env
	Server   ServerConfig
	Database DatabaseConfig
	NATS     NATSConfig
	Minio    MinioConfig
	SMTP     SMTPConfig
	Archive  ArchiveConfig
	Cleanup  CleanupConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host           string `envconfig:"SERVER_HOST" default:"localhost"`
	Port           string `envconfig:"SERVER_PORT" default:"8080"`
	MaxUploadBytes int64  `envconfig:"SERVER_MAX_UPLOAD_BYTES" default:"104857600"` // 100MB
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

type NATSConfig struct {
	URL                   string `envconfig:"NATS_URL" required:"true"`
	ClientName            string `envconfig:"NATS_CLIENT_NAME" default:"file-researcher"`
	ProgressSubjectPrefix string `envconfig:"NATS_PROGRESS_SUBJECT_PREFIX" default:"progress"`
}

// MinioConfig configures archive retention, disabled when Endpoint is empty
type MinioConfig struct {
	Endpoint   string `envconfig:"MINIO_ENDPOINT"`
	BucketName string `envconfig:"MINIO_BUCKET_NAME" default:"archives"`
	AccessKey  string `envconfig:"MINIO_ACCESS_KEY"`
	SecretKey  string `envconfig:"MINIO_SECRET_KEY"`
	KeyPrefix  string `envconfig:"MINIO_KEY_PREFIX" default:"archives"`
	UseSSL     bool   `envconfig:"MINIO_USE_SSL" default:"false"`
}

// Enabled reports whether archives are kept in object storage
func (m MinioConfig) Enabled() bool {
	return m.Endpoint != ""
}

type SMTPConfig struct {
	Host           string        `envconfig:"SMTP_HOST" required:"true"`
	Port           int           `envconfig:"SMTP_PORT" default:"587"`
	Username       string        `envconfig:"SMTP_USERNAME"`
	Password       string        `envconfig:"SMTP_PASSWORD"`
	From           string        `envconfig:"SMTP_FROM" required:"true"`
	TLS            string        `envconfig:"SMTP_TLS" default:"opportunistic"` // mandatory, opportunistic, none
	Timeout        time.Duration `envconfig:"SMTP_TIMEOUT" default:"2m"`
	BenignWarnings []string      `envconfig:"SMTP_BENIGN_WARNINGS" default:"security warning,security notice"`
	Subject        string        `envconfig:"SMTP_SUBJECT" default:"Files"`
	Body           string        `envconfig:"SMTP_BODY" default:"Please find attached the ZIP archive of requested files."`
}

type ArchiveConfig struct {
	WorkDir           string        `envconfig:"ARCHIVE_WORK_DIR"` // {os.TempDir()}/file-researcher when empty
	ParallelThreshold int           `envconfig:"ARCHIVE_PARALLEL_THRESHOLD" default:"32"`
	ProgressInterval  time.Duration `envconfig:"ARCHIVE_PROGRESS_INTERVAL" default:"150ms"`
	LargeMinSize      int64         `envconfig:"ARCHIVE_LARGE_MIN_SIZE" default:"10000000"`
}

type CleanupConfig struct {
	OrphanSchedule string        `envconfig:"CLEANUP_ORPHAN_SCHEDULE" default:"@every 15m"`
	OrphanTTL      time.Duration `envconfig:"CLEANUP_ORPHAN_TTL" default:"6h"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
