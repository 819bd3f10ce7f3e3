package main

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logDir       = "logs"
	logFileName  = "outbreak.log"
	maxLogSizeMB = 10
	maxLogSize   = maxLogSizeMB * 1024 * 1024
	maxBackups   = 3
)

// setupLogging routes zap and the stdlib logger to a rotating file under dir when debug is set
// Without debug every log line is discarded since the terminal owns stdout
func setupLogging(debug bool, dir string) (*zap.Logger, io.Closer) {
	if !debug {
		log.SetOutput(io.Discard)
		return zap.NewNop(), nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return zap.NewNop(), nil
	}

	sink := &lumberjack.Logger{
		Filename:   filepath.Join(dir, logFileName),
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxBackups,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(sink),
		zap.DebugLevel,
	)
	logger := zap.New(core).Named("outbreak")

	// Stray log.Printf calls from dependencies land in the same file
	log.SetFlags(0)
	log.SetOutput(sink)

	return logger, sink
}
