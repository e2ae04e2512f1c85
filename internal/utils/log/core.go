package log

/*
	log module writes leveled log lines to a rotating log file and to stdout
	the file is managed by lumberjack, it is opened lazily and rotated by size
*/

import (
	"fmt"
	"io"
	go_log "log"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Log struct {
	Level int
	// File of log, nil means stdout only
	File io.WriteCloser
	lock sync.Mutex
}

const (
	LOG_LEVEL_DEBUG = 0
	LOG_LEVEL_INFO  = 1
	LOG_LEVEL_WARN  = 2
	LOG_LEVEL_ERROR = 3
)

type Options struct {
	Path       string
	Level      string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Stdout     bool
}

func (l *Log) Debug(format string, stdout bool, v ...interface{}) {
	if l.Level <= LOG_LEVEL_DEBUG {
		l.writeLog("DEBUG", format, stdout, v...)
	}
}

func (l *Log) Info(format string, stdout bool, v ...interface{}) {
	if l.Level <= LOG_LEVEL_INFO {
		l.writeLog("INFO", format, stdout, v...)
	}
}

func (l *Log) Warn(format string, stdout bool, v ...interface{}) {
	if l.Level <= LOG_LEVEL_WARN {
		l.writeLog("WARN", format, stdout, v...)
	}
}

func (l *Log) Error(format string, stdout bool, v ...interface{}) {
	if l.Level <= LOG_LEVEL_ERROR {
		l.writeLog("ERROR", format, stdout, v...)
	}
}

func (l *Log) Panic(format string, stdout bool, v ...interface{}) {
	l.writeLog("PANIC", format, stdout, v...)
	panic(fmt.Sprintf(format, v...))
}

func (l *Log) writeLog(level string, format string, stdout bool, v ...interface{}) {
	format = fmt.Sprintf("["+level+"]"+format, v...)

	if show_log && stdout {
		logger.Output(4, format)
	}

	l.lock.Lock()
	defer l.lock.Unlock()
	if l.File != nil {
		file_logger.Output(4, format)
	}
}

func (l *Log) SetLogLevel(level int) {
	l.Level = level
}

func (l *Log) Close() error {
	l.lock.Lock()
	defer l.lock.Unlock()
	if l.File == nil {
		return nil
	}
	err := l.File.Close()
	l.File = nil
	return err
}

// ParseLevel maps a config level name to a log level, unknown names map to info
func ParseLevel(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LOG_LEVEL_DEBUG
	case "warn", "warning":
		return LOG_LEVEL_WARN
	case "error":
		return LOG_LEVEL_ERROR
	default:
		return LOG_LEVEL_INFO
	}
}

func NewLog(options Options) *Log {
	l := &Log{
		Level: ParseLevel(options.Level),
	}
	if options.Path != "" {
		l.File = &lumberjack.Logger{
			Filename:   options.Path,
			MaxSize:    options.MaxSizeMB,
			MaxBackups: options.MaxBackups,
			MaxAge:     options.MaxAgeDays,
			Compress:   true,
		}
	}
	return l
}

// Init replaces the package logger, the previous file is closed
func Init(options Options) {
	next := NewLog(options)
	if main_log != nil {
		main_log.Close()
	}
	main_log = next
	show_log = options.Stdout
	if next.File != nil {
		file_logger.SetOutput(next.File)
	}
}

var main_log = &Log{Level: LOG_LEVEL_INFO}
var show_log bool = true
var logger = go_log.New(os.Stdout, "", go_log.Ldate|go_log.Ltime|go_log.Lshortfile)
var file_logger = go_log.New(io.Discard, "", go_log.Ldate|go_log.Ltime|go_log.Lshortfile)

func SetShowLog(show bool) {
	show_log = show
}

func SetLogLevel(level int) {
	main_log.SetLogLevel(level)
}

func Debug(format string, v ...interface{}) {
	main_log.Debug(format, true, v...)
}

func Info(format string, v ...interface{}) {
	main_log.Info(format, true, v...)
}

func Warn(format string, v ...interface{}) {
	main_log.Warn(format, true, v...)
}

func Error(format string, v ...interface{}) {
	main_log.Error(format, true, v...)
}

func Panic(format string, v ...interface{}) {
	main_log.Panic(format, true, v...)
}

// Silent variants only write to the log file
func SilentInfo(format string, v ...interface{}) {
	main_log.Info(format, false, v...)
}

func SilentError(format string, v ...interface{}) {
	main_log.Error(format, false, v...)
}
