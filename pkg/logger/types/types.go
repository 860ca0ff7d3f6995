package types

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a named sugared zap logger
type Logger struct {
	*zap.SugaredLogger
	LogsPath string
	Name     string
}

// Log is the part of a log entry handed to hooks
type Log struct {
	Timestamp  time.Time
	Caller     string
	LoggerName string
	Level      zapcore.Level
	Message    string
}

// LogHook is called for every written log entry
type LogHook func(log Log)
