package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/logger"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// emails appear as bound values in login and signup lookups
var emailLiteral = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

// GormLogger writes GORM output through the request logger found in ctx
type GormLogger struct {
	driver        string
	slowThreshold time.Duration
	showSQL       bool
	level         gormlogger.LogLevel
}

// newLogger: local/dev log every statement, production only errors and slow queries without SQL
func newLogger(cfg *config.Config) gormlogger.Interface {
	level := gormlogger.Info
	if cfg.IsProduction() {
		level = gormlogger.Warn
	}

	return &GormLogger{
		driver:        cfg.Database.Driver,
		slowThreshold: cfg.Database.SlowQuery,
		showSQL:       !cfg.IsProduction(),
		level:         level,
	}
}

func (l *GormLogger) from(ctx context.Context) *slog.Logger {
	return logger.FromContext(ctx).With("component", "gorm", "driver", l.driver)
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		l.from(ctx).InfoContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.from(ctx).WarnContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		l.from(ctx).ErrorContext(ctx, fmt.Sprintf(msg, data...))
	}
}

// Trace logs failed and slow statements, and every statement at Info level.
// A missing record is an expected outcome (login lookups, 404 pages) and is not logged.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []any{"elapsed", elapsed.String(), "rows", rows}
	if l.showSQL {
		fields = append(fields, "sql", MaskSQL(sql))
	}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		l.from(ctx).ErrorContext(ctx, "쿼리 실패", append(fields, "error", err)...)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		l.from(ctx).WarnContext(ctx, "느린 쿼리", append(fields, "threshold", l.slowThreshold.String())...)
	case l.level >= gormlogger.Info:
		l.from(ctx).DebugContext(ctx, "쿼리 실행", fields...)
	}
}

// MaskSQL hides the email addresses bound into a logged statement
func MaskSQL(sql string) string {
	return emailLiteral.ReplaceAllStringFunc(sql, logger.MaskEmail)
}
