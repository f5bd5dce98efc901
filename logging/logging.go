package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rpupo63/portfolio-site-backend/config"
)

// Setup configures the global zerolog logger from LOG_LEVEL, LOG_FORMAT and LOG_FILE.
// It returns the io.Closer of the rotating file, or nil when logging only to stderr.
func Setup(c map[string]string) io.Closer {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(c, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = os.Stderr
	if config.GetString(c, "LOG_FORMAT", "console") == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	var rotator *lumberjack.Logger
	if file := config.GetString(c, "LOG_FILE", ""); file != "" {
		rotator = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    config.GetInt(c, "LOG_MAX_SIZE_MB", 50),
			MaxBackups: config.GetInt(c, "LOG_MAX_BACKUPS", 5),
			MaxAge:     config.GetInt(c, "LOG_MAX_AGE_DAYS", 30),
			Compress:   true,
		}
		out = zerolog.MultiLevelWriter(out, rotator)
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	if rotator == nil {
		return nil
	}
	return rotator
}
