package treeline

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// SetupLog routes the global logger to experiment.log inside the
// artifact directory, mirrored to stderr, with full timestamps. The
// file is appended to, so repeated sweeps into one directory keep a
// single continuous history. The caller owns closing the returned file.
func SetupLog(dir, level string) (*os.File, error) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logrus.SetLevel(parsed)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.100",
	})
	logFile, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	logrus.SetOutput(io.MultiWriter(logFile, os.Stderr))
	return logFile, nil
}
