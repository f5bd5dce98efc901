package main

import (
	"context"
	"fmt"
	stdlog "log"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/rpupo63/portfolio-site-backend/admin"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/storage"
)

// openDatabase connects according to DB_TYPE: "supa" for the hosted Postgres, "sqlite"
// for local development.
func openDatabase(c map[string]string) (*gorm.DB, error) {
	newLogger := logger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  config.GetString(c, "LOG_FORMAT", "json") == "console",
		},
	)
	gormConfig := &gorm.Config{PrepareStmt: false, Logger: newLogger}

	dbType := config.GetString(c, "DB_TYPE", "")
	log.Info().Str("dbType", dbType).Msg("Connecting to database")

	var db *gorm.DB
	var err error
	switch dbType {
	case "supa":
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  supabaseDSN(c, config.GetString(c, "SUPABASE_DB_HOST", "")),
			PreferSimpleProtocol: true,
		}), gormConfig)
		if err != nil {
			return nil, err
		}
		if replica := config.GetString(c, "SUPABASE_DB_REPLICA_HOST", ""); replica != "" {
			err = db.Use(dbresolver.Register(dbresolver.Config{
				Replicas: []gorm.Dialector{postgres.New(postgres.Config{
					DSN:                  supabaseDSN(c, replica),
					PreferSimpleProtocol: true,
				})},
				Policy: dbresolver.RandomPolicy{},
			}))
			if err != nil {
				return nil, fmt.Errorf("register read replica: %w", err)
			}
			log.Info().Str("replica", replica).Msg("Routing reads to replica")
		}
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(config.GetString(c, "SQLITE_PATH", "portfolio.db")), gormConfig)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test database connection: %w", err)
	}
	return db, nil
}

func supabaseDSN(c map[string]string, host string) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
		host,
		config.GetString(c, "SUPABASE_DB_USER", ""),
		config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
		config.GetString(c, "SUPABASE_DB_NAME", ""),
		config.GetString(c, "SUPABASE_DB_PORT", "5432"),
	)
}

// newBucket returns nil when storage credentials are missing; uploads then fail with a
// configuration error while the rest of the site keeps working.
func newBucket(ctx context.Context, c map[string]string, bucketKey, defaultBucket string) storage.Bucket {
	bucket, err := storage.NewS3Bucket(ctx, storage.S3Config{
		Endpoint:        config.GetString(c, "STORAGE_ENDPOINT", ""),
		Region:          config.GetString(c, "STORAGE_REGION", ""),
		AccessKeyID:     config.GetString(c, "STORAGE_ACCESS_KEY_ID", ""),
		SecretAccessKey: config.GetString(c, "STORAGE_SECRET_ACCESS_KEY", ""),
		Bucket:          config.GetString(c, bucketKey, defaultBucket),
		ProjectURL:      config.GetString(c, "SUPABASE_URL", ""),
	})
	if err != nil {
		log.Warn().Err(err).Str("bucket", bucketKey).Msg("Object storage unavailable")
		return nil
	}
	return bucket
}

// newModalStore uses Redis when REDIS_URL is set so open forms survive restarts and are
// shared between instances; otherwise modals live in process memory.
func newModalStore(ctx context.Context, c map[string]string) (admin.ModalStore, func(), error) {
	ttl := time.Duration(config.GetInt(c, "MODAL_TTL_MINUTES", int(admin.ModalTTL/time.Minute))) * time.Minute
	url := config.GetString(c, "REDIS_URL", "")
	if url == "" {
		return admin.NewMemoryModalStore(ttl), func() {}, nil
	}
	client, err := admin.NewRedisClient(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Msg("Admin modals stored in Redis")
	return admin.NewRedisModalStore(client, "", ttl), func() { client.Close() }, nil
}
