package debug

import (
	"fmt"
	"sync/atomic"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/signadot/typeconf/ir"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.TimeKey = ""
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	l, err := cfg.Build()
	if err != nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// Logger returns the process logger.
func Logger() *zap.Logger {
	return logger.Load()
}

// SetLogger replaces the process logger; nil installs a no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump renders v for humans.
func Dump(v any) string {
	return dumper.Sdump(v)
}

func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case *ir.Node:
			args[i] = x.Describe() + " " + x.String()
		case bool, string, float64, int, int64, error, fmt.Stringer:
		default:
			args[i] = Dump(x)
		}
	}
	Logger().Sugar().Debugf(msg, args...)
}
