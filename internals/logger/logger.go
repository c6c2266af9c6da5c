package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	NameApp   = "app"
	NameAudit = "audit"
)

type Options struct {
	Dir        string
	Level      string
	Format     string // text | json
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	// Stdout only, no rotated files.
	NoFiles bool
}

var (
	loggers   = make(map[string]*logrus.Logger)
	loggersMu sync.Mutex
	opts      = Options{Level: "info", Format: "text", NoFiles: true}
)

// Init sets the options used by loggers created afterwards and drops the
// ones already built so they pick up the new settings.
func Init(o Options) error {
	if o.MaxSizeMB == 0 {
		o.MaxSizeMB = 100
	}
	if o.MaxBackups == 0 {
		o.MaxBackups = 7
	}
	if o.MaxAgeDays == 0 {
		o.MaxAgeDays = 14
	}
	if o.Level == "" {
		o.Level = "info"
	}
	if !o.NoFiles {
		if o.Dir == "" {
			o.Dir = "./logs"
		}
		if err := os.MkdirAll(o.Dir, 0o755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
	}

	loggersMu.Lock()
	defer loggersMu.Unlock()
	opts = o
	loggers = make(map[string]*logrus.Logger)
	return nil
}

func Get(name string) *logrus.Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	if l, ok := loggers[name]; ok {
		return l
	}
	l := build(name)
	loggers[name] = l
	return l
}

func App() *logrus.Logger   { return Get(NameApp) }
func Audit() *logrus.Logger { return Get(NameAudit) }

func build(name string) *logrus.Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.EqualFold(opts.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	}

	writers := []io.Writer{os.Stdout}
	if !opts.NoFiles {
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(opts.Dir, name+".log"),
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		})
	}
	l.SetOutput(io.MultiWriter(writers...))
	return l
}
