package logging

import (
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat/go-file-rotatelogs"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

// NewFileRotateHooker returns a hook writing every entry to path/filename,
// rotated daily. Rotated files older than age days are removed.
func NewFileRotateHooker(path, filename string, age uint32, formatter logrus.Formatter) logrus.Hook {
	if len(path) == 0 {
		path = os.TempDir()
	}
	if len(filename) == 0 {
		filename = DefaultFilename
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if err := os.MkdirAll(path, 0700); err != nil {
		panic("Failed to create logger folder:" + path + ". err:" + err.Error())
	}

	opts := []rotatelogs.Option{
		rotatelogs.WithLinkName(filepath.Join(path, filename+".log")),
		rotatelogs.WithRotationTime(24 * time.Hour),
	}
	if age > 0 {
		opts = append(opts, rotatelogs.WithMaxAge(time.Duration(age)*24*time.Hour))
	}
	writer, err := rotatelogs.New(filepath.Join(path, filename+"-%Y%m%d.log"), opts...)
	if err != nil {
		panic("Failed to create rotate logs. err:" + err.Error())
	}

	writers := lfshook.WriterMap{}
	for _, level := range logrus.AllLevels {
		writers[level] = writer
	}
	return lfshook.NewHook(writers, formatter)
}
