package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_TextToWriter(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := Setup(Default(), &buf)
	defer closer.Close()

	logger.Debug("hidden")
	logger.Info("session ready", "level", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=\"session ready\"")
	assert.Contains(t, out, "level=3")
}

func TestSetup_JSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.Format = "JSON"
	cfg.Level = slog.LevelDebug
	logger, _ := Setup(cfg, &buf)

	logger.Debug("loot rolled", "drops", 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "loot rolled", rec["msg"])
	assert.Equal(t, "DEBUG", rec["level"])
	assert.EqualValues(t, 2, rec["drops"])
}

func TestSetup_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ashaether.log")
	cfg := Default()
	cfg.File = path

	var console bytes.Buffer
	logger, closer := Setup(cfg, &console)
	logger.Warn("inventory full", "item_id", "material_iron_ore")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "item_id=material_iron_ore")
	assert.Empty(t, console.String(), "file logging must keep the console clean")
}

func TestSetup_NilWriter(t *testing.T) {
	logger, closer := Setup(Default(), nil)
	logger.Error("dropped")
	assert.NoError(t, closer.Close())
}

func TestWithSessionAndError(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := Setup(Default(), &buf)
	id := uuid.MustParse("6f1c2d3e-4a5b-4c6d-8e7f-8091a2b3c4d5")

	WithError(WithSession(logger, id), errors.New("slot 2 corrupted")).Info("load failed")

	assert.Contains(t, buf.String(), "session_id="+id.String())
	assert.Contains(t, buf.String(), "error=\"slot 2 corrupted\"")
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(t.Context(), slog.LevelError))
}
