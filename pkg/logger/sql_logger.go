package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog/infrastructure/persistence"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// SQLLogConfig 对应 database 配置段里的 SQL 日志选项
type SQLLogConfig struct {
	Level gormlogger.LogLevel
	// SlowThreshold 为 0 时不做慢查询告警
	SlowThreshold time.Duration
	// IgnoreRecordNotFound 仓储把 ErrRecordNotFound 转成 NotFoundError，这类查询不算失败
	IgnoreRecordNotFound bool
}

// SQLLogger 把 GORM 的日志写到全局 zap logger
// 每条 SQL 带上工作单元的 operation_id，以及是否运行在事务内
type SQLLogger struct {
	cfg SQLLogConfig
}

var _ gormlogger.Interface = (*SQLLogger)(nil)

func NewSQLLogger(cfg SQLLogConfig) *SQLLogger {
	return &SQLLogger{cfg: cfg}
}

func (l *SQLLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cfg := l.cfg
	cfg.Level = level
	return &SQLLogger{cfg: cfg}
}

// 调用时再取全局 logger，Init 晚于建库连接时也能生效
func (l *SQLLogger) logger(ctx context.Context) *zap.Logger {
	base := log
	if base == nil {
		return zap.NewNop()
	}
	if operationID := persistence.OperationIDFromContext(ctx); operationID != "" {
		base = base.With(zap.String("operation_id", operationID))
	}
	return base
}

func (l *SQLLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.cfg.Level >= gormlogger.Info {
		l.logger(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (l *SQLLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.cfg.Level >= gormlogger.Warn {
		l.logger(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *SQLLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.cfg.Level >= gormlogger.Error {
		l.logger(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

func (l *SQLLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.cfg.Level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	switch {
	case err != nil && l.cfg.Level >= gormlogger.Error:
		if l.cfg.IgnoreRecordNotFound && errors.Is(err, gormlogger.ErrRecordNotFound) {
			return
		}
		l.logger(ctx).Error("sql failed", append(l.fields(ctx, fc, elapsed), zap.Error(err))...)
	case l.cfg.SlowThreshold > 0 && elapsed > l.cfg.SlowThreshold && l.cfg.Level >= gormlogger.Warn:
		l.logger(ctx).Warn("slow sql", append(l.fields(ctx, fc, elapsed), zap.Duration("threshold", l.cfg.SlowThreshold))...)
	case l.cfg.Level >= gormlogger.Info:
		l.logger(ctx).Info("sql", l.fields(ctx, fc, elapsed)...)
	}
}

func (l *SQLLogger) fields(ctx context.Context, fc func() (string, int64), elapsed time.Duration) []zap.Field {
	sql, rows := fc()
	return []zap.Field{
		zap.String("sql", sql),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
		zap.Bool("in_tx", persistence.TxFromContext(ctx) != nil),
	}
}
