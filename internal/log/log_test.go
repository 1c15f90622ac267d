package log

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := defaultLogger
	t.Cleanup(func() { defaultLogger = prev })

	var buf bytes.Buffer
	InitWriter(&buf)
	return &buf
}

func TestLog_Format(t *testing.T) {
	buf := captureLog(t)

	Info(CatFile, "saved", "path", "/tmp/x", "lines", 3)

	line := buf.String()
	require.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2} \[INFO\] \[file\] saved path=/tmp/x lines=3\n$`), line)
}

func TestLog_OddFields(t *testing.T) {
	buf := captureLog(t)

	Debug(CatMode, "switch", "from")
	require.Contains(t, buf.String(), "switch from=<missing>")
}

func TestLog_ErrorErr(t *testing.T) {
	buf := captureLog(t)

	ErrorErr(CatFile, "save failed", errors.New("disk full"), "path", "a.txt")
	require.Contains(t, buf.String(), "[ERROR] [file] save failed path=a.txt error=disk full")

	buf.Reset()
	ErrorErr(CatFile, "odd", nil)
	require.Contains(t, buf.String(), "error=<nil>")
}

func TestLog_MinLevelAndDisable(t *testing.T) {
	buf := captureLog(t)

	SetMinLevel(LevelWarn)
	Info(CatEditor, "hidden")
	Warn(CatEditor, "shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "[WARN] [editor] shown")

	buf.Reset()
	SetEnabled(false)
	Error(CatEditor, "muted")
	require.Empty(t, buf.String())
}

func TestLog_NoLoggerIsNoop(t *testing.T) {
	prev := defaultLogger
	t.Cleanup(func() { defaultLogger = prev })
	defaultLogger = nil

	require.NotPanics(t, func() { Info(CatEditor, "nothing") })
}

func TestWriter(t *testing.T) {
	buf := captureLog(t)

	_, err := Writer().Write([]byte("{\"span\":1}\n"))
	require.NoError(t, err)
	require.Equal(t, "{\"span\":1}\n", buf.String())

	SetEnabled(false)
	n, err := Writer().Write([]byte("dropped"))
	require.NoError(t, err)
	require.Equal(t, 7, n)
	require.Equal(t, "{\"span\":1}\n", buf.String())

	defaultLogger = nil
	require.Equal(t, io.Discard, Writer())
}

func TestInitWithTeaLog(t *testing.T) {
	prev := defaultLogger
	t.Cleanup(func() { defaultLogger = prev })

	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := InitWithTeaLog(path, "modal")
	require.NoError(t, err)

	Info(CatConfig, "loaded")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[INFO] [config] loaded")
}

func TestLevelString(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "ERROR", LevelError.String())
	require.Equal(t, "UNKNOWN", Level(42).String())
}
