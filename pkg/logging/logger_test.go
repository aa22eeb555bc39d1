package logging_test

import (
	"testing"

	"github.com/paperdrop/paperdrop/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLogger(t *testing.T) {
	logging.ResetForTest()
	logging.CreateLogger()
	assert.NotNil(t, logging.GetLogger())

	logging.ResetForTest()
	t.Setenv("DEBUG", "1")
	logging.CreateLogger()
	assert.NotNil(t, logging.GetLogger())
}

func TestNewTestLogger(t *testing.T) {
	testLogger := logging.NewTestLogger()
	require.NotNil(t, testLogger)
	require.NotNil(t, testLogger.Logger)
	require.NotNil(t, testLogger.Buffer)
}

func TestGetOutput(t *testing.T) {
	testLogger := logging.NewTestLogger()
	assert.Equal(t, "", testLogger.GetOutput())

	testLogger.Info("test message")
	output := testLogger.GetOutput()
	assert.Contains(t, output, "test message")

	// A logger without a capture buffer yields nothing.
	plain := &logging.Logger{Logger: testLogger.BaseLogger()}
	assert.Equal(t, "", plain.GetOutput())
}

func TestPackageLevelHelpers(t *testing.T) {
	testLogger := logging.NewTestLogger()
	logging.SetTestLogger(testLogger)

	logging.Debug("debug message", "key", "value")
	logging.Info("info message", "key", "value")
	logging.Warn("warn message", "key", "value")
	logging.Error("error message", "key", "value")

	output := testLogger.GetOutput()
	assert.Contains(t, output, "debug message")
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
	assert.Contains(t, output, "key=value")
}

func TestGetLogger(t *testing.T) {
	// Not parallel: manipulates the package singleton.
	logging.ResetForTest()
	assert.NotNil(t, logging.GetLogger())
	assert.NotNil(t, logging.GetLogger())
}

func TestBaseLogger(t *testing.T) {
	testLogger := logging.NewTestLogger()
	assert.NotNil(t, testLogger.BaseLogger())
}

func TestWith(t *testing.T) {
	testLogger := logging.NewTestLogger()

	child := testLogger.With("request_id", "abc123")
	require.NotNil(t, child)
	assert.Equal(t, testLogger.Buffer, child.Buffer)

	child.Info("scoped entry")
	output := testLogger.GetOutput()
	assert.Contains(t, output, "scoped entry")
	assert.Contains(t, output, "request_id=abc123")
}

func TestEnsureInitialized(t *testing.T) {
	// Not parallel: manipulates the package singleton.
	logging.ResetForTest()
	logging.EnsureInitialized()
	require.NotNil(t, logging.GetLogger())

	original := logging.GetLogger()
	logging.EnsureInitialized()
	assert.Equal(t, original, logging.GetLogger())
}
