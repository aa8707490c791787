package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

type Logger struct {
	logger *log.Logger
	prefix string
	mtx    sync.Mutex
}

// NewLogger logs to stdout.
func NewLogger(prefix string) *Logger {
	return NewLoggerTo(prefix, os.Stdout)
}

// NewLoggerTo logs to w. The terminal front-end owns the screen, so it
// passes a file or io.Discard here.
func NewLoggerTo(prefix string, w io.Writer) *Logger {
	return &Logger{
		logger: log.New(w, "", log.Ldate|log.Ltime),
		prefix: prefix,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewLoggerTo("", io.Discard)
}

// With returns a logger that shares the output but uses a new prefix.
func (l *Logger) With(prefix string) *Logger {
	return &Logger{
		logger: log.New(l.logger.Writer(), "", l.logger.Flags()),
		prefix: prefix,
	}
}

func (l *Logger) Logf(format string, args ...interface{}) {
	l.logWithPrefix(fmt.Sprintf(format, args...))
}

func (l *Logger) Logln(args ...interface{}) {
	l.logWithPrefix(fmt.Sprintln(args...))
}

func (l *Logger) logWithPrefix(msg string) {
	pc, file, line, ok := runtime.Caller(2)
	if !ok {
		return
	}

	funcName := runtime.FuncForPC(pc).Name()
	lastSlash := strings.LastIndexByte(funcName, '/')
	funcName = funcName[lastSlash+1:]

	_, fileName := filepath.Split(file)

	prefix := fmt.Sprintf("%s [%s:%d] %s(): ", l.prefix, fileName, line, funcName)

	// SetPrefix + Print is not atomic
	l.mtx.Lock()
	defer l.mtx.Unlock()

	l.logger.SetPrefix(prefix)
	l.logger.Print(msg)
}
