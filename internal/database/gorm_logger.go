package database

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/clickpay/internal/logger"
)

// GormLogger routes gorm logs through zap, picking up the request-scoped
// logger from the query context when there is one.
type GormLogger struct {
	base   *zap.SugaredLogger
	config gormlogger.Config
}

func NewGormLogger(base *zap.SugaredLogger) *GormLogger {
	return &GormLogger{
		base: base,
		config: gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	}
}

func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cfg := g.config
	cfg.LogLevel = level
	return &GormLogger{base: g.base, config: cfg}
}

func (g *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if g.config.LogLevel >= gormlogger.Info {
		logger.FromCtx(ctx, g.base).Infow(msg, "args", data)
	}
}

func (g *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if g.config.LogLevel >= gormlogger.Warn {
		logger.FromCtx(ctx, g.base).Warnw(msg, "args", data)
	}
}

func (g *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if g.config.LogLevel >= gormlogger.Error {
		logger.FromCtx(ctx, g.base).Errorw(msg, "args", data)
	}
}

func (g *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.config.LogLevel == gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	lg := logger.FromCtx(ctx, g.base)
	fields := []interface{}{"rows", rows, "elapsed_ms", elapsed.Milliseconds()}

	switch {
	case err != nil && !(g.config.IgnoreRecordNotFoundError && errors.Is(err, gorm.ErrRecordNotFound)):
		lg.Errorw("gorm_trace", append(fields, "err", err, "sql", sql)...)
	case g.config.SlowThreshold > 0 && elapsed > g.config.SlowThreshold:
		lg.Warnw("gorm_slow", append(fields, "sql", sql)...)
	case g.config.LogLevel >= gormlogger.Info:
		lg.Debugw("gorm", append(fields, "sql", sql)...)
	}
}
