package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

func init() {
	Logger.Out = os.Stdout
	Logger.Formatter = &logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339}
}

// ConfigureLogger sets the level and output format ("text" or "json") of
// Logger.
func ConfigureLogger(level, format string, out io.Writer) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	Logger.SetLevel(lvl)

	switch format {
	case "json":
		Logger.Formatter = &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "severity",
				logrus.FieldKeyMsg:   "message",
			},
			TimestampFormat: time.RFC3339Nano,
		}
	case "text", "":
		Logger.Formatter = &logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339}
	default:
		return fmt.Errorf("unknown log format %q", format)
	}

	if out != nil {
		Logger.Out = out
	}
	return nil
}

func caller(skip int) logrus.Fields {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return logrus.Fields{}
	}
	return logrus.Fields{"caller": fmt.Sprintf("%s:%d", filepath.Base(file), line)}
}

func LogDebug(format string, v ...interface{}) {
	Logger.WithFields(caller(1)).Debugf(format, v...)
}

func LogInfo(format string, v ...interface{}) {
	Logger.Infof(format, v...)
}

func LogError(format string, v ...interface{}) {
	Logger.WithFields(caller(1)).Errorf(format, v...)
}

func LogWarning(format string, v ...interface{}) {
	Logger.WithFields(caller(1)).Warnf(format, v...)
}
