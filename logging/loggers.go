package logging

import (
	"bytes"
	"io/ioutil"
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"
)

// level names accepted by Init and the --log_level flag
const (
	PanicLevel = "panic"
	FatalLevel = "fatal"
	ErrorLevel = "error"
	WarnLevel  = "warn"
	InfoLevel  = "info"
	DebugLevel = "debug"
	TraceLevel = "trace"
)

// levels passed to CPrint and VPrint
const (
	PANIC uint32 = iota
	FATAL
	ERROR
	WARN
	INFO
	DEBUG
	TRACE
)

const (
	// MsgFormatSingle records the calling function only.
	MsgFormatSingle uint32 = iota
	// MsgFormatMulti records a short call chain.
	MsgFormatMulti
)

// DefaultFilename is the log file base name used when nothing was configured.
const DefaultFilename = "sha2sum"

// LogFormat carries structured fields.
type LogFormat = map[string]interface{}

type Logger struct {
	*logrus.Logger
}

func NewLogger() *Logger {
	return &Logger{
		Logger: logrus.New(),
	}
}

// callRelation picks the caller format of an entry from its level: errors
// and worse record a short call chain, the rest only the calling function.
func callRelation(level logrus.Level) uint32 {
	if level <= logrus.ErrorLevel {
		return MsgFormatMulti
	}
	return MsgFormatSingle
}

// newDiscardLogger backs CPrint and VPrint until Init runs.
func newDiscardLogger() *Logger {
	l := NewLogger()
	l.Out = ioutil.Discard
	l.Level = logrus.InfoLevel
	return l
}

var (
	mu   sync.Mutex
	clog = newDiscardLogger() // console + file
	vlog = clog               // file only
)

var levelNames = map[string]logrus.Level{
	PanicLevel: logrus.PanicLevel,
	FatalLevel: logrus.FatalLevel,
	ErrorLevel: logrus.ErrorLevel,
	WarnLevel:  logrus.WarnLevel,
	InfoLevel:  logrus.InfoLevel,
	DebugLevel: logrus.DebugLevel,
	TraceLevel: logrus.TraceLevel,
}

// ValidLevel reports whether level is one of the level names above.
func ValidLevel(level string) bool {
	_, ok := levelNames[level]
	return ok
}

func convertLevel(level string) logrus.Level {
	if l, ok := levelNames[level]; ok {
		return l
	}
	return logrus.InfoLevel
}

// Init sets up both loggers. Until it is called every print is discarded.
// Console output goes to stderr so it never mixes with digest lines on stdout.
// With disableCPrint, CPrint writes to the file only.
// age is the number of days rotated files are kept, 0 keeps them forever.
func Init(path, filename string, level string, age uint32, disableCPrint bool) {
	fileHooker := NewFileRotateHooker(path, filename, age, nil)

	file := NewLogger()
	LoadFunctionHooker(file)
	file.Hooks.Add(fileHooker)
	file.Out = ioutil.Discard
	file.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	file.Level = convertLevel(level)

	console := file
	if !disableCPrint {
		console = NewLogger()
		LoadFunctionHooker(console)
		console.Hooks.Add(fileHooker)
		console.Out = os.Stderr
		console.Formatter = &logrus.TextFormatter{FullTimestamp: true}
		console.Level = convertLevel(level)
	}

	mu.Lock()
	vlog, clog = file, console
	mu.Unlock()

	file.WithFields(logrus.Fields{
		"path":  path,
		"level": level,
	}).Debug("Logger Configuration.")
}

func loggers() (*Logger, *Logger) {
	mu.Lock()
	defer mu.Unlock()
	return clog, vlog
}

// GetGID returns the id of the calling goroutine.
func GetGID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// CPrint logs to stderr and to the log file.
func CPrint(level uint32, msg string, formats ...LogFormat) {
	c, _ := loggers()
	emit(c, level, msg, formats)
}

// VPrint logs to the log file only.
func VPrint(level uint32, msg string, formats ...LogFormat) {
	_, v := loggers()
	emit(v, level, msg, formats)
}

func emit(l *Logger, level uint32, msg string, formats []LogFormat) {
	entry := l.WithFields(mergeLogFormats(formats...))
	switch level {
	case PANIC:
		entry.Panic(msg)
	case FATAL:
		entry.Fatal(msg)
	case WARN:
		entry.Warn(msg)
	case INFO:
		entry.Info(msg)
	case DEBUG:
		entry.Debug(msg)
	case TRACE:
		entry.Trace(msg)
	default:
		entry.Error(msg)
	}
}

// mergeLogFormats merges LogFormats; later values win on key collisions.
func mergeLogFormats(formats ...LogFormat) LogFormat {
	format := LogFormat{}
	for _, data := range formats {
		for k, v := range data {
			format[k] = v
		}
	}
	format["tid"] = GetGID()
	return format
}
