package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Umbracoindevs/UMBRA-v2/chaincfg"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.conf"))
	require.NoError(t, err)
	require.Equal(t, defaultLogLevel, cfg.DebugLevel)
	require.Equal(t, chaincfg.MainNet, cfg.Network())
	require.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "umbra.conf")
	contents := "[Application Options]\n" +
		"testnet=true\n" +
		"debuglevel=CONS=debug\n" +
		"noreorgcheck=true\n" +
		"datadir=" + dir + "\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.True(t, cfg.NoReorgCheck)
	require.Equal(t, "CONS=debug", cfg.DebugLevel)
	require.Equal(t, chaincfg.TestNet, cfg.Network())
	require.Equal(t, filepath.Join(dir, "test", "serials"), cfg.SerialDBPath())

	params, err := cfg.Params()
	require.NoError(t, err)
	require.Equal(t, 3, params.BudgetFeeConfirmations())
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "umbra.conf")
	require.NoError(t, os.WriteFile(path, []byte("nosuchoption=1\n"), 0600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestConflictingNetworks(t *testing.T) {
	cfg := Default()
	cfg.TestNet = true
	cfg.RegTest = true

	require.True(t, errors.Is(cfg.Validate(), ErrConflictingNetworks))
	_, err := cfg.Params()
	require.True(t, errors.Is(err, ErrConflictingNetworks))
}

func TestCleanAndExpandPath(t *testing.T) {
	t.Setenv("UMBRA_TEST_DIR", "/tmp/umbra")
	require.Equal(t, "/tmp/umbra/data", CleanAndExpandPath("$UMBRA_TEST_DIR/data/"))
	require.Equal(t, "", CleanAndExpandPath(""))
}
