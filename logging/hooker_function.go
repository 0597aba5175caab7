package logging

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// callerSkip is the stack depth from Fire to the CPrint/VPrint caller.
const callerSkip = 8

type functionHooker struct{}

func shortFuncName(pc uintptr) (name, file string, line int) {
	f := runtime.FuncForPC(pc)
	if f == nil {
		return "unknown", "unknown", 0
	}
	name = f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	file, line = f.FileLine(pc)
	return name, filepath.Base(file), line
}

func (h *functionHooker) fire(entry *logrus.Entry) {
	pc, _, _, ok := runtime.Caller(callerSkip)
	if !ok {
		return
	}
	name, file, line := shortFuncName(pc)
	entry.Data["func"] = name
	entry.Data["line"] = line
	entry.Data["file"] = file
}

func (h *functionHooker) fires(entry *logrus.Entry) {
	for i := callerSkip; i < callerSkip+3; i++ {
		pc, _, _, ok := runtime.Caller(i)
		if !ok {
			break
		}
		name, file, line := shortFuncName(pc)
		entry.Data["f"+strconv.Itoa(i)] = fmt.Sprintf("{%s,%s,%d}", file, name, line)
	}
}

func (h *functionHooker) Fire(entry *logrus.Entry) error {
	switch callRelation(entry.Level) {
	case MsgFormatMulti:
		h.fires(entry)
	case MsgFormatSingle:
		h.fire(entry)
	}
	return nil
}

func (h *functionHooker) Levels() []logrus.Level {
	return logrus.AllLevels
}

// LoadFunctionHooker adds caller information to every entry of logger.
func LoadFunctionHooker(logger *Logger) {
	logger.Hooks.Add(&functionHooker{})
}
