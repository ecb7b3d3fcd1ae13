package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"
)

// Level represents the severity of a log message.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case DEBUG:
		return slog.LevelDebug
	case WARN:
		return slog.LevelWarn
	case ERROR:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel parses a string into a Level.
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Format selects the slog handler used for output.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat parses a string into a Format, defaulting to text.
func ParseFormat(s string) Format {
	if strings.EqualFold(s, string(FormatJSON)) {
		return FormatJSON
	}
	return FormatText
}

// Logger is a levelled printf-style logger writing through a slog.Handler.
// Loggers derived with WithField, WithFields and WithPrefix share the
// handler of their parent.
type Logger struct {
	handler slog.Handler
	level   Level
	prefix  string
	fields  map[string]any
}

type config struct {
	out    io.Writer
	level  Level
	prefix string
	format Format
}

// Option configures a Logger.
type Option func(*config)

// WithOutput sets the output destination.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.out = w
	}
}

// WithLevel sets the minimum log level.
func WithLevel(level Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithPrefix sets the component attribute of log records.
func WithPrefix(prefix string) Option {
	return func(c *config) {
		c.prefix = prefix
	}
}

// WithFormat selects text or JSON output.
func WithFormat(f Format) Option {
	return func(c *config) {
		c.format = f
	}
}

// New creates a new Logger with the given options.
func New(opts ...Option) *Logger {
	c := config{out: os.Stdout, level: INFO, format: FormatText}
	for _, opt := range opts {
		opt(&c)
	}
	hopts := &slog.HandlerOptions{AddSource: true, Level: c.level.slogLevel()}
	var h slog.Handler
	if c.format == FormatJSON {
		h = slog.NewJSONHandler(c.out, hopts)
	} else {
		h = slog.NewTextHandler(c.out, hopts)
	}
	return &Logger{
		handler: h,
		level:   c.level,
		prefix:  c.prefix,
		fields:  make(map[string]any),
	}
}

var defaultLogger = New()

// SetDefault sets the default logger. It also becomes the slog default so
// that library code logging through slog ends up in the same stream.
func SetDefault(l *Logger) {
	defaultLogger = l
	slog.SetDefault(slog.New(l.handler))
}

// Default returns the default logger.
func Default() *Logger {
	return defaultLogger
}

// Level returns the minimum level l emits.
func (l *Logger) Level() Level {
	return l.level
}

// WithField returns a new logger with the given field added.
func (l *Logger) WithField(key string, value any) *Logger {
	return l.WithFields(map[string]any{key: value})
}

// WithFields returns a new logger with the given fields added.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	newFields := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}
	return &Logger{
		handler: l.handler,
		level:   l.level,
		prefix:  l.prefix,
		fields:  newFields,
	}
}

// WithPrefix returns a new logger with the given prefix.
func (l *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{
		handler: l.handler,
		level:   l.level,
		prefix:  prefix,
		fields:  l.fields,
	}
}

func (l *Logger) log(level Level, msg string, args ...any) {
	if level < l.level {
		return
	}
	ctx := context.Background()
	if !l.handler.Enabled(ctx, level.slogLevel()) {
		return
	}

	formattedMsg := msg
	if len(args) > 0 {
		formattedMsg = fmt.Sprintf(msg, args...)
	}

	// skip runtime.Callers, log and the exported level method
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), level.slogLevel(), formattedMsg, pcs[0])

	if l.prefix != "" {
		r.AddAttrs(slog.String("component", l.prefix))
	}
	keys := make([]string, 0, len(l.fields))
	for k := range l.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r.AddAttrs(slog.Any(k, l.fields[k]))
	}

	_ = l.handler.Handle(ctx, r)
}

// Debug logs a message at DEBUG level.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(DEBUG, msg, args...)
}

// Info logs a message at INFO level.
func (l *Logger) Info(msg string, args ...any) {
	l.log(INFO, msg, args...)
}

// Warn logs a message at WARN level.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(WARN, msg, args...)
}

// Error logs a message at ERROR level.
func (l *Logger) Error(msg string, args ...any) {
	l.log(ERROR, msg, args...)
}

// Package-level functions that use the default logger.

func Debug(msg string, args ...any) { defaultLogger.log(DEBUG, msg, args...) }
func Info(msg string, args ...any)  { defaultLogger.log(INFO, msg, args...) }
func Warn(msg string, args ...any)  { defaultLogger.log(WARN, msg, args...) }
func Error(msg string, args ...any) { defaultLogger.log(ERROR, msg, args...) }

// Context key for request-scoped logger.
type ctxKey struct{}

// FromContext returns the logger from the context, or the default logger.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return defaultLogger
}

// NewContext returns a new context with the given logger.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}
