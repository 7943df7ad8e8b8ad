// logging/logger.go - zerolog setup
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gormlogger "gorm.io/gorm/logger"
)

// Setup configures the global zerolog logger. Development gets a console writer,
// everything else gets JSON lines on stdout.
func Setup(env, level string) zerolog.Logger {
	return SetupWithWriter(env, level, os.Stdout)
}

func SetupWithWriter(env, level string, out io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	if env == "development" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	logger := zerolog.New(out).With().Timestamp().Str("service", "clubhouse").Logger()
	log.Logger = logger
	return logger
}

// gormWriter adapts zerolog to gorm's logger.Writer.
type gormWriter struct {
	logger zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.logger.Info().Str("component", "gorm").Msg(fmt.Sprintf(format, args...))
}

// GormLogger returns a gorm logger that writes through zerolog. Without
// logQueries only slow queries and errors are written.
func GormLogger(logger zerolog.Logger, logQueries bool) gormlogger.Interface {
	level := gormlogger.Warn
	if logQueries {
		level = gormlogger.Info
	}
	return gormlogger.New(gormWriter{logger: logger}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
