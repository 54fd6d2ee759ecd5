// Package logging builds the zap loggers shared by the server and CLI.
package logging

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the minimal logging surface services depend on.
// *zap.SugaredLogger satisfies it.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// New returns a production JSON logger, or a console logger for dev.
func New(env string) (*zap.Logger, error) {
	if env == "prod" || env == "production" {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return cfg.Build()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg.Build()
}

// StdError adapts a zap logger for http.Server.ErrorLog.
func StdError(l *zap.Logger) *log.Logger {
	std, err := zap.NewStdLogAt(l, zapcore.ErrorLevel)
	if err != nil {
		return zap.NewStdLog(l)
	}
	return std
}

func Nop() Logger {
	return zap.NewNop().Sugar()
}
