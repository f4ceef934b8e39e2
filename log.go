package libewok

import "go.uber.org/zap"

// logger is the package-level diagnostic logging slot. It starts out nil
// (silent, no allocation cost on the hot paths) and can be wired up by a
// host application via SetLogger. This mirrors the teacher library's
// quiet-by-default, switchable logging slot, built here on zap instead of
// a hand-rolled func(string, ...interface{}) since the rest of the
// retrieval pack reaches for zap whenever it needs structured, leveled
// logging around a storage/data-structure layer.
var logger *zap.SugaredLogger

// SetLogger installs l as the destination for this package's diagnostic
// output (currently: oversized-serialization rejections; Dump writes only
// to the io.Writer it is given). A nil
// logger (the default) disables all logging.
func SetLogger(l *zap.SugaredLogger) {
	logger = l
}

func logDebugf(format string, a ...interface{}) {
	if logger != nil {
		logger.Debugf(format, a...)
	}
}

func logWarnf(format string, a ...interface{}) {
	if logger != nil {
		logger.Warnf(format, a...)
	}
}
