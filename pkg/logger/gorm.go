package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// GormConfig tunes the GORM log adapter.
type GormConfig struct {
	SlowThreshold             time.Duration
	IgnoreRecordNotFoundError bool
	LogLevel                  gormlogger.LogLevel
}

// DefaultGormConfig logs failures and slow queries only.
func DefaultGormConfig() GormConfig {
	return GormConfig{
		SlowThreshold:             200 * time.Millisecond,
		IgnoreRecordNotFoundError: true,
		LogLevel:                  gormlogger.Warn,
	}
}

// GormLogger routes GORM logs through zap.
type GormLogger struct {
	logger *zap.Logger
	config GormConfig
}

var _ gormlogger.Interface = (*GormLogger)(nil)

// NewGormLogger wraps logger for use as gorm.Config.Logger.
func NewGormLogger(logger *zap.SugaredLogger, cfg GormConfig) *GormLogger {
	base := zap.NewNop()
	if logger != nil {
		base = logger.Desugar().Named("gorm").WithOptions(zap.AddCallerSkip(3))
	}
	return &GormLogger{logger: base, config: cfg}
}

// LogMode returns a copy with the given level.
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cfg := l.config
	cfg.LogLevel = level
	return &GormLogger{logger: l.logger, config: cfg}
}

func (l *GormLogger) withContext(ctx context.Context) *zap.Logger {
	if id := RequestIDFromContext(ctx); id != "" {
		return l.logger.With(zap.String("request_id", id))
	}
	return l.logger
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.config.LogLevel >= gormlogger.Info {
		l.withContext(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.config.LogLevel >= gormlogger.Warn {
		l.withContext(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.config.LogLevel >= gormlogger.Error {
		l.withContext(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

// Trace logs a finished statement: failures at error, slow queries at
// warn and everything else at debug when the level is Info.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.config.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.config.LogLevel >= gormlogger.Error &&
		!(l.config.IgnoreRecordNotFoundError && errors.Is(err, gormlogger.ErrRecordNotFound)):
		sql, rows := fc()
		l.withContext(ctx).Error("query failed",
			zap.Error(err), zap.String("sql", sql), zap.Int64("rows", rows), zap.Duration("elapsed", elapsed))
	case l.config.SlowThreshold > 0 && elapsed > l.config.SlowThreshold && l.config.LogLevel >= gormlogger.Warn:
		sql, rows := fc()
		l.withContext(ctx).Warn("slow query",
			zap.String("sql", sql), zap.Int64("rows", rows), zap.Duration("elapsed", elapsed),
			zap.Duration("threshold", l.config.SlowThreshold))
	case l.config.LogLevel >= gormlogger.Info:
		sql, rows := fc()
		l.withContext(ctx).Debug("query",
			zap.String("sql", sql), zap.Int64("rows", rows), zap.Duration("elapsed", elapsed))
	}
}
