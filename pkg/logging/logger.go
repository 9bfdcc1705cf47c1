package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"lapados-backend/internal/config"
)

var (
	mu       sync.Mutex
	debugLog *log.Logger
	infoLog  *log.Logger
	warnLog  *log.Logger
	errorLog *log.Logger
	debugOn  bool
)

func init() {
	// Sensible stdout-only defaults until Setup runs (and for tests).
	debugLog = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime)
	infoLog = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime)
	warnLog = log.New(os.Stdout, "WARNING: ", log.Ldate|log.Ltime)
	errorLog = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime)
}

// Setup routes each level to stdout/stderr plus a rotating file in the
// configured log directory.
func Setup(cfg config.LoggingConfig) {
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		log.Fatalf("failed to create log directory: %v", err)
	}

	rotating := func(name string) io.Writer {
		return &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, name),
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
	}

	infoWriter := io.MultiWriter(os.Stdout, rotating("info.log"))
	warnWriter := io.MultiWriter(os.Stdout, rotating("warn.log"))
	errorWriter := io.MultiWriter(os.Stderr, rotating("error.log"))

	debugLog = log.New(infoWriter, "DEBUG: ", log.Ldate|log.Ltime)
	infoLog = log.New(infoWriter, "INFO: ", log.Ldate|log.Ltime)
	warnLog = log.New(warnWriter, "WARNING: ", log.Ldate|log.Ltime)
	errorLog = log.New(errorWriter, "ERROR: ", log.Ldate|log.Ltime)
	debugOn = cfg.Debug

	// Redirect Go's default logger as well.
	log.SetOutput(infoWriter)
}

func callerInfo() string {
	pc, _, _, ok := runtime.Caller(3)
	if !ok {
		return "unknown"
	}
	return runtime.FuncForPC(pc).Name()
}

func write(l *log.Logger, format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	l.Printf("[%s] %s", callerInfo(), fmt.Sprintf(format, v...))
}

func Debug(format string, v ...interface{}) {
	if !debugOn {
		return
	}
	write(debugLog, format, v...)
}

func Info(format string, v ...interface{}) {
	write(infoLog, format, v...)
}

func Warn(format string, v ...interface{}) {
	write(warnLog, format, v...)
}

func Error(format string, v ...interface{}) {
	write(errorLog, format, v...)
}
