package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLogSizeMB  = 10
	maxLogBackups = 3
	maxLogAgeDays = 28
)

// Configure sets l to JSON output on console, teed into a rotating file when
// filePath is set. The returned closer releases the file and is never nil.
func Configure(l *logrus.Logger, level logrus.Level, console io.Writer, filePath string) io.Closer {
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(level)

	if filePath == "" {
		l.SetOutput(console)
		return io.NopCloser(nil)
	}

	file := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
	}
	l.SetOutput(io.MultiWriter(console, file))
	return file
}

// SetLoggerToStructured configures the standard logrus logger for the CLI.
func SetLoggerToStructured(level logrus.Level, filePath string) io.Closer {
	return Configure(logrus.StandardLogger(), level, os.Stderr, filePath)
}
