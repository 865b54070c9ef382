package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDualHandler_CopiesOnlyErrors(t *testing.T) {
	var out, errOut bytes.Buffer
	log := slog.New(newHandler(envLocal, slog.LevelError, &out, &errOut))

	log.Info("server started")
	log.Warn("pendencies left out")
	log.With(slog.String("op", "handlers.lots.RegisterLot")).Error("failed", slog.String("error", "locked"))

	assert.Contains(t, out.String(), "server started")
	assert.Contains(t, out.String(), "failed")
	assert.NotContains(t, errOut.String(), "server started")
	assert.NotContains(t, errOut.String(), "pendencies left out")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(errOut.Bytes(), &rec))
	assert.Equal(t, "handlers.lots.RegisterLot", rec["op"])
	assert.Equal(t, envLocal, rec["env"])
	assert.Contains(t, rec, slog.SourceKey)
}

func TestDualHandler_FileLevelFromConfig(t *testing.T) {
	var out, errOut bytes.Buffer
	log := slog.New(newHandler(envProd, slog.LevelWarn, &out, &errOut))

	log.Info("server started")
	log.WithGroup("board").Warn("pendencies left out", slog.Int("count", 2))

	lines := strings.Split(strings.TrimSpace(errOut.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "pendencies left out", rec["msg"])
	assert.Equal(t, map[string]any{"count": float64(2)}, rec["board"])
	assert.Equal(t, envProd, rec["env"])
}

func TestParseLevel(t *testing.T) {
	lvl, err := parseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	lvl, err = parseLevel("loud")
	assert.Error(t, err)
	assert.Equal(t, slog.LevelError, lvl)
}

func TestNewHandler_ProdSkipsDebug(t *testing.T) {
	var out bytes.Buffer
	log := slog.New(newHandler(envProd, slog.LevelError, &out, nil))

	log.Debug("noise")
	log.Info("kept")

	assert.NotContains(t, out.String(), "noise")
	assert.Contains(t, out.String(), "kept")
}

func TestNewHandler_DevIsJSON(t *testing.T) {
	var out bytes.Buffer
	slog.New(newHandler(envDev, slog.LevelError, &out, nil)).Info("hello")

	assert.Contains(t, out.String(), `"msg":"hello"`)
}
