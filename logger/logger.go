package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = map[LogLevel]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

// String returns the upper-case level name.
func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "INFO"
}

// ParseLevel maps a level name (case-insensitive) to a LogLevel, defaulting to INFO.
func ParseLevel(name string) LogLevel {
	for level, levelName := range levelNames {
		if strings.EqualFold(levelName, strings.TrimSpace(name)) {
			return level
		}
	}
	return INFO
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	case FATAL:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// Logger wraps a zap logger that writes to stdout and an optional daily file.
type Logger struct {
	zl     *zap.Logger
	prefix string
	sink   *dailyFile
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Config describes how the logger should be initialised.
type Config struct {
	Level      LogLevel
	LogDir     string
	MaxSize    int64 // bytes
	MaxAge     int   // days
	UseColor   bool
	ShowCaller bool
	Prefix     string
}

// Initialize boots the global logger instance if it has not been created yet.
func Initialize(config Config) error {
	var err error
	once.Do(func() {
		var l *Logger
		l, err = New(config)
		if err != nil {
			return
		}
		defaultLogger = l

		if l.sink != nil {
			go l.maintainLogFiles(config.MaxSize, config.MaxAge)
		}
	})
	return err
}

// New builds a standalone logger. Console output always goes to stdout; a JSON
// file sink is added when LogDir is set.
func New(config Config) (*Logger, error) {
	level := zap.NewAtomicLevelAt(config.Level.zapLevel())

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if config.UseColor {
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(stdoutSink{os.Stdout}), level),
	}

	l := &Logger{prefix: config.Prefix}

	if config.LogDir != "" {
		if err := os.MkdirAll(config.LogDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log dir: %w", err)
		}
		sink := &dailyFile{dir: config.LogDir, now: time.Now}
		if err := sink.open(); err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.sink = sink

		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.TimeKey = "ts"
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), sink, level))
	}

	opts := []zap.Option{}
	if config.ShowCaller {
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(3))
	}
	l.zl = zap.New(zapcore.NewTee(cores...), opts...)
	return l, nil
}

// stdoutSink never reports sync errors; fsync on a pipe or terminal fails
// with EINVAL and there is nothing buffered to flush anyway.
type stdoutSink struct {
	*os.File
}

func (stdoutSink) Sync() error { return nil }

func logFileName(logDir, day string) string {
	return filepath.Join(logDir, fmt.Sprintf("server-%s.log", day))
}

// dailyFile appends to server-<date>.log and switches files when the date
// changes or after the active file has been rotated for size.
type dailyFile struct {
	mu   sync.Mutex
	dir  string
	day  string
	file *os.File
	now  func() time.Time
}

// open must be called with mu held (or before the sink is shared).
func (d *dailyFile) open() error {
	day := d.now().Format("2006-01-02")
	if d.file != nil && d.day == day {
		return nil
	}
	if d.file != nil {
		d.file.Close()
		d.file = nil
	}
	f, err := os.OpenFile(logFileName(d.dir, day), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	d.file, d.day = f, day
	return nil
}

func (d *dailyFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.open(); err != nil {
		return 0, err
	}
	return d.file.Write(p)
}

func (d *dailyFile) Sync() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file == nil {
		return nil
	}
	return d.file.Sync()
}

func (d *dailyFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// rotate archives the active file once it grows past maxSize and reopens a
// fresh one under the same name.
func (d *dailyFile) rotate(maxSize int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file == nil || maxSize <= 0 {
		return nil
	}
	info, err := d.file.Stat()
	if err != nil || info.Size() <= maxSize {
		return err
	}

	name := d.file.Name()
	if err := d.file.Close(); err != nil {
		return err
	}
	d.file = nil
	archived := strings.TrimSuffix(name, ".log") + fmt.Sprintf("-%d.log", d.now().Unix())
	if err := os.Rename(name, archived); err != nil {
		return err
	}
	return d.open()
}

// maintainLogFiles rotates the active file and prunes expired ones hourly.
func (l *Logger) maintainLogFiles(maxSize int64, maxAge int) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := l.sink.rotate(maxSize); err != nil {
			fallback(WARN, "log rotation failed: %v", err)
		}
		pruneLogFiles(l.sink.dir, maxAge, time.Now())
	}
}

// pruneLogFiles removes log files (archives included) older than maxAge days.
func pruneLogFiles(logDir string, maxAge int, now time.Time) {
	if maxAge <= 0 {
		return
	}
	files, _ := filepath.Glob(filepath.Join(logDir, "server-*.log"))
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) > time.Duration(maxAge)*24*time.Hour {
			os.Remove(file)
		}
	}
}

func (l *Logger) log(level LogLevel, format string, args []interface{}, fields []zap.Field) {
	message := fmt.Sprintf(format, args...)
	if l.prefix != "" {
		message = l.prefix + " " + message
	}

	switch level {
	case DEBUG:
		l.zl.Debug(message, fields...)
	case INFO:
		l.zl.Info(message, fields...)
	case WARN:
		l.zl.Warn(message, fields...)
	case ERROR:
		l.zl.Error(message, fields...)
	case FATAL:
		l.zl.Fatal(message, fields...)
	}
}

// Sync flushes buffered entries and closes the file sink. Only file sink
// errors are reported.
func (l *Logger) Sync() error {
	err := l.zl.Sync()
	if l.sink != nil {
		if cerr := l.sink.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func fallback(level LogLevel, format string, args ...interface{}) {
	log.Printf("["+level.String()+"] "+format, args...)
}

func Debug(format string, args ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.log(DEBUG, format, args, nil)
	}
}

func Info(format string, args ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.log(INFO, format, args, nil)
	} else {
		fallback(INFO, format, args...)
	}
}

func Warn(format string, args ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.log(WARN, format, args, nil)
	} else {
		fallback(WARN, format, args...)
	}
}

func Error(format string, args ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.log(ERROR, format, args, nil)
	} else {
		fallback(ERROR, format, args...)
	}
}

func Fatal(format string, args ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.log(FATAL, format, args, nil)
	} else {
		log.Fatalf("[FATAL] "+format, args...)
	}
}

// Sync flushes the global logger, if any.
func Sync() error {
	if defaultLogger != nil {
		return defaultLogger.Sync()
	}
	return nil
}

// WithFields attaches structured fields to the log entry.
func WithFields(fields map[string]interface{}) *LogEntry {
	return &LogEntry{
		fields: fields,
		logger: defaultLogger,
	}
}

// LogEntry represents a structured log entry builder.
type LogEntry struct {
	fields map[string]interface{}
	logger *Logger
}

func (e *LogEntry) Debug(format string, args ...interface{}) {
	e.log(DEBUG, format, args...)
}

func (e *LogEntry) Info(format string, args ...interface{}) {
	e.log(INFO, format, args...)
}

func (e *LogEntry) Warn(format string, args ...interface{}) {
	e.log(WARN, format, args...)
}

func (e *LogEntry) Error(format string, args ...interface{}) {
	e.log(ERROR, format, args...)
}

func (e *LogEntry) Fatal(format string, args ...interface{}) {
	e.log(FATAL, format, args...)
}

// Log allows emitting a message with an explicit level via the entry.
func (e *LogEntry) Log(level LogLevel, format string, args ...interface{}) {
	e.log(level, format, args...)
}

func (e *LogEntry) log(level LogLevel, format string, args ...interface{}) {
	if e.logger == nil {
		if level == DEBUG {
			return
		}
		fallback(level, format+" | %v", append(args, e.fields)...)
		return
	}
	e.logger.log(level, format, args, e.zapFields())
}

// zapFields converts the entry map into zap fields in key order.
func (e *LogEntry) zapFields() []zap.Field {
	keys := make([]string, 0, len(e.fields))
	for k := range e.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, zap.Any(k, e.fields[k]))
	}
	return fields
}
