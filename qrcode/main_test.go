package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	app := newApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err := app.Run(append([]string{"qrcode"}, args...))

	return stdout.String(), stderr.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestRunPrints(t *testing.T) {
	out, _, err := runApp(t, "", "--level", "M", "HELLO", "WORLD")
	require.NoError(t, err)

	// Version 1 with the quiet zone.
	assert.Len(t, lines(out), 29)
}

func TestRunSmallNoBorder(t *testing.T) {
	out, _, err := runApp(t, "", "--small", "--no-border", "--level", "L", "hi")
	require.NoError(t, err)
	assert.Len(t, lines(out), 11)
}

func TestRunStdin(t *testing.T) {
	out, _, err := runApp(t, "HELLO WORLD\n", "--level", "M", "--no-border")
	require.NoError(t, err)
	assert.Len(t, lines(out), 21)

	_, _, err = runApp(t, "")
	assert.Error(t, err)
}

func TestRunVerbose(t *testing.T) {
	_, stderr, err := runApp(t, "", "--verbose", "--mask", "3", "HELLO")
	require.NoError(t, err)
	assert.Contains(t, stderr, "mask=3")
	assert.Contains(t, stderr, "version chosen")
}

func TestRunPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "code.png")

	out, _, err := runApp(t, "", "--png", path, "--size", "-2", "HELLO")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestRunErrors(t *testing.T) {
	_, _, err := runApp(t, "", "--level", "X", "HELLO")
	assert.Error(t, err)

	_, _, err = runApp(t, "", "--version", "1", "--level", "H", strings.Repeat("x", 100))
	assert.ErrorContains(t, err, "content too long")

	_, _, err = runApp(t, "", "--mask", "9", "HELLO")
	assert.ErrorContains(t, err, "invalid mask")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "qrcode.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRunConfig(t *testing.T) {
	path := writeConfig(t, "level: L\nsmall: true\nno_border: true\n")

	out, _, err := runApp(t, "", "--config", path, "hi")
	require.NoError(t, err)
	assert.Len(t, lines(out), 11)

	// Flags win over the file.
	out, _, err = runApp(t, "", "--config", path, "--small=false", "hi")
	require.NoError(t, err)
	assert.Len(t, lines(out), 21)
}

func TestLoadConfig(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, loadConfig(writeConfig(t, "level: q\nversion: 5\nmask: 0\nsize: 512\nverbose: true\n"), cfg))

	assert.Equal(t, "q", cfg.Level)
	assert.Equal(t, 5, cfg.Version)
	require.NotNil(t, cfg.Mask)
	assert.Equal(t, 0, *cfg.Mask)
	assert.Equal(t, 512, cfg.Size)
	assert.True(t, cfg.Verbose)

	level, opts, err := cfg.encoderOptions(newLogger(io.Discard, false))
	require.NoError(t, err)
	assert.Equal(t, "Q", level.String())
	assert.Len(t, opts, 3)

	// Empty files keep the defaults.
	cfg = defaultConfig()
	require.NoError(t, loadConfig(writeConfig(t, ""), cfg))
	assert.Equal(t, defaultConfig(), cfg)

	assert.Error(t, loadConfig(writeConfig(t, "colour: red\n"), defaultConfig()))
	assert.Error(t, loadConfig(filepath.Join(t.TempDir(), "missing.yaml"), defaultConfig()))
}
