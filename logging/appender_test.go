package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.viam.com/test"

	"github.com/latticemotion/corelattice/logging"
)

func TestConsoleAppenderWritesTabSeparatedLine(t *testing.T) {
	var buf bytes.Buffer
	appender := logging.NewWriterAppender(&buf)

	entry := zapcore.Entry{Level: zapcore.InfoLevel, LoggerName: "planner", Message: "cycle complete"}
	fields := []zapcore.Field{zap.Int("pairsExamined", 12)}

	err := appender.Write(entry, fields)
	test.That(t, err, test.ShouldBeNil)

	line := buf.String()
	test.That(t, strings.Contains(line, "INFO"), test.ShouldBeTrue)
	test.That(t, strings.Contains(line, "planner"), test.ShouldBeTrue)
	test.That(t, strings.Contains(line, "cycle complete"), test.ShouldBeTrue)
	test.That(t, strings.Contains(line, "pairsExamined"), test.ShouldBeTrue)
}

func TestZapcoreFieldsToJSON(t *testing.T) {
	fields := []zapcore.Field{zap.String("obstacleID", "abc-123"), zap.Float64("gap", 4.5)}
	out, err := logging.ZapcoreFieldsToJSON(fields)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, strings.Contains(out, "abc-123"), test.ShouldBeTrue)
	test.That(t, strings.Contains(out, "gap"), test.ShouldBeTrue)
}

func TestNewFileLoggerWritesThroughRotatingAppender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.log")
	logger, closer := logging.NewFileLogger("planner", path)

	logger.Infow("planning cycle complete", "cycle", 1, "ok", true)
	test.That(t, logger.Sync(), test.ShouldBeNil)
	test.That(t, closer.Close(), test.ShouldBeNil)

	contents, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, strings.Contains(string(contents), "planning cycle complete"), test.ShouldBeTrue)
	test.That(t, strings.Contains(string(contents), "cycle"), test.ShouldBeTrue)
}
