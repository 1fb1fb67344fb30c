// Package config loads server configuration from the environment and builds
// the storage and persistence backends from it. All external-system settings
// live here; nothing in the business logic reads the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventboard/events-api/pkg/events"
	memoryrepo "github.com/eventboard/events-api/pkg/events/repo/memory"
	pgrepo "github.com/eventboard/events-api/pkg/events/repo/postgres"
	memorystorage "github.com/eventboard/events-api/pkg/events/storage/memory"
	s3storage "github.com/eventboard/events-api/pkg/events/storage/s3"
)

// Config is the process-wide configuration, constructed once at startup and
// passed by reference into the constructors that need it.
type Config struct {
	Server ServerConfig
	DB     DbConfig
	S3     S3Config
	Auth   AuthConfig
}

type ServerConfig struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`
}

type DbConfig struct {
	// Type selects the repository: "postgres" or "memory" (dev/tests).
	Type     string `env:"DB_TYPE" env-default:"postgres"`
	Host     string `env:"DB_HOST" env-default:"localhost"`
	Port     uint16 `env:"DB_PORT" env-default:"5432"`
	Name     string `env:"DB_NAME" env-default:"events_db"`
	User     string `env:"DB_USER" env-default:"events"`
	Password string `env:"DB_PASSWORD" env-default:"pwd"`
}

type S3Config struct {
	// Type selects the blob store: "s3" or "memory" (dev/tests).
	Type            string `env:"STORAGE_TYPE" env-default:"s3"`
	Endpoint        string `env:"S3_ENDPOINT" env-default:""`
	Bucket          string `env:"S3_BUCKET" env-default:"events-bucket"`
	AccessKeyID     string `env:"S3_ACCESS_KEY" env-default:""`
	SecretAccessKey string `env:"S3_SECRET_KEY" env-default:""`
	Region          string `env:"S3_REGION" env-default:"eu-central-1"`
	UsePathStyle    bool   `env:"S3_USE_PATH_STYLE" env-default:"true"`
	CreateBucket    bool   `env:"S3_CREATE_BUCKET" env-default:"false"`

	// PublicBase, when set, bypasses presigning entirely.
	PublicBase    string        `env:"S3_PUBLIC_BASE" env-default:""`
	PresignExpiry time.Duration `env:"S3_PRESIGN_EXPIRY" env-default:"1h"`
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET" env-default:""`
	TokenTTL  time.Duration `env:"TOKEN_TTL" env-default:"24h"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field requirements before anything is wired.
func (c *Config) Validate() error {
	if c.DB.Type != "memory" && c.DB.Type != "postgres" {
		return errors.New("DB_TYPE must be 'memory' or 'postgres'")
	}
	if c.S3.Type != "memory" && c.S3.Type != "s3" {
		return errors.New("STORAGE_TYPE must be 'memory' or 's3'")
	}
	if c.S3.Type == "s3" && c.S3.Bucket == "" {
		return errors.New("S3_BUCKET is required when STORAGE_TYPE is 's3'")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

func (c DbConfig) databaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.Name,
	}
	return u.String()
}

// NewDbPool opens and pings a pgx connection pool.
func NewDbPool(ctx context.Context, dbConfig DbConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dbConfig.databaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// Repositories bundles the two repository interfaces one backend provides.
type Repositories struct {
	Events events.Repository
	Users  events.UserRepository
}

// BuildRepositories creates the configured repository backend. The returned
// cleanup closes the pool when one was opened.
func (c *Config) BuildRepositories(ctx context.Context) (Repositories, func(), error) {
	switch c.DB.Type {
	case "memory":
		repo := memoryrepo.New()
		return Repositories{Events: repo, Users: repo}, func() {}, nil
	case "postgres":
		pool, err := NewDbPool(ctx, c.DB)
		if err != nil {
			return Repositories{}, nil, err
		}
		repo := pgrepo.NewWithPool(pool)
		return Repositories{Events: repo, Users: repo}, pool.Close, nil
	default:
		return Repositories{}, nil, fmt.Errorf("unsupported DB_TYPE: %s", c.DB.Type)
	}
}

// BuildBlobStore creates the configured object-store gateway.
func (c *Config) BuildBlobStore(ctx context.Context) (events.BlobStore, error) {
	switch c.S3.Type {
	case "memory":
		return memorystorage.New(), nil
	case "s3":
		return s3storage.New(ctx, s3storage.Config{
			Region:                 c.S3.Region,
			Bucket:                 c.S3.Bucket,
			AccessKeyID:            c.S3.AccessKeyID,
			SecretAccessKey:        c.S3.SecretAccessKey,
			Endpoint:               c.S3.Endpoint,
			UsePathStyle:           c.S3.UsePathStyle,
			CreateBucketIfNotExist: c.S3.CreateBucket,
		})
	default:
		return nil, fmt.Errorf("unsupported STORAGE_TYPE: %s", c.S3.Type)
	}
}
