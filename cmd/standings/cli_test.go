package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"standings/internal/config"
	"standings/internal/logtail"
	"standings/internal/syndicate"
)

func setupCLI(t *testing.T) *bytes.Buffer {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.DefaultConfig()
	currentFlag, farmFlag, fromStart = nil, nil, false
	t.Cleanup(func() { cfg = nil })
	return &bytes.Buffer{}
}

func newCmd(out *bytes.Buffer, ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	if ctx != nil {
		cmd.SetContext(ctx)
	}
	return cmd
}

func TestRunProject(t *testing.T) {
	out := setupCLI(t)
	farmFlag = map[string]string{"steel": "1000"}

	require.NoError(t, runProject(newCmd(out, nil), nil))
	assert.Contains(t, out.String(), "Steel Meridian")
	assert.Contains(t, out.String(), "+1000")
	assert.Contains(t, out.String(), "-500")
}

func TestRunProject_RejectsBadInput(t *testing.T) {
	out := setupCLI(t)

	farmFlag = map[string]string{"steel": "-5"}
	assert.Error(t, runProject(newCmd(out, nil), nil))

	farmFlag = map[string]string{"ostron": "5"}
	err := runProject(newCmd(out, nil), nil)
	assert.True(t, errors.Is(err, syndicate.ErrUnknownFaction))

	farmFlag = nil
	currentFlag = map[string]string{"veil": "lots"}
	assert.Error(t, runProject(newCmd(out, nil), nil))
}

func TestRunRecommend_UsesConfigAndFlags(t *testing.T) {
	out := setupCLI(t)
	cfg.Standings = map[string]float64{
		"steel": 132000, "arbiters": 132000, "suda": 132000,
		"perrin": 132000, "veil": 132000, "loka": 132000,
	}

	require.NoError(t, runRecommend(newCmd(out, nil), nil))
	assert.Contains(t, out.String(), "all factions maxed")

	out.Reset()
	currentFlag = map[string]string{"loka": "1000"}
	require.NoError(t, runRecommend(newCmd(out, nil), nil))
	assert.Contains(t, out.String(), "CRITICAL")
	assert.Contains(t, out.String(), "4000")
}

func TestRunTrack_NotFound(t *testing.T) {
	out := setupCLI(t)
	missing := filepath.Join(t.TempDir(), "EE.log")

	err := runTrack(newCmd(out, context.Background()), []string{missing})
	require.Error(t, err)
	assert.True(t, errors.Is(err, logtail.ErrNotFound))
	assert.Contains(t, out.String(), "log file not found")
}

func TestRunTrack_PrintsChanges(t *testing.T) {
	out := setupCLI(t)
	cfg.Debounce = "10ms"
	cfg.Standings = map[string]float64{"veil": 1000}

	path := filepath.Join(t.TempDir(), "EE.log")
	require.NoError(t, os.WriteFile(path, []byte("Standing: Red Veil +999\n"), 0644))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	go func() {
		time.Sleep(100 * time.Millisecond)
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return
		}
		_, _ = f.WriteString("Standing: Red Veil +250\n")
		_ = f.Close()
	}()

	require.NoError(t, runTrack(newCmd(out, ctx), []string{path}))

	text := out.String()
	assert.Contains(t, text, "Tracking active")
	assert.Contains(t, text, "+250")
	assert.Contains(t, text, "1250")
	assert.NotContains(t, text, "+999")
	assert.Contains(t, text, "Final standings")
}

func TestResolveLogPath(t *testing.T) {
	setupCLI(t)

	p, err := resolveLogPath([]string{"/explicit/EE.log"})
	require.NoError(t, err)
	assert.Equal(t, "/explicit/EE.log", p)

	cfg.LogPath = "/configured/EE.log"
	p, err = resolveLogPath(nil)
	require.NoError(t, err)
	assert.Equal(t, "/configured/EE.log", p)

	cfg.LogPath = ""
	p, err = resolveLogPath(nil)
	require.NoError(t, err)
	assert.Equal(t, "EE.log", filepath.Base(p))
}

func TestApplyFactionValues(t *testing.T) {
	s, err := applyFactionValues(syndicate.Standings{syndicate.Steel: 1}, map[string]string{"Suda": "2.5"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, s[syndicate.Steel])
	assert.Equal(t, 2.5, s[syndicate.Suda])
}
