package rrt

import (
	"testing"

	"github.com/edaniels/golog"
	"go.uber.org/zap/zapcore"
	"go.viam.com/test"
)

func TestDefaultLoggerIsQuiet(t *testing.T) {
	core := newOptions(nil).logger.Desugar().Core()
	test.That(t, core.Enabled(zapcore.DebugLevel), test.ShouldBeFalse)
	test.That(t, core.Enabled(zapcore.ErrorLevel), test.ShouldBeFalse)

	logger := golog.NewTestLogger(t)
	test.That(t, newOptions([]Option{WithLogger(logger)}).logger, test.ShouldEqual, logger)
}
