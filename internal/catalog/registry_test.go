package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWatchlist(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestRegistryOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "equities.yaml")
	writeWatchlist(t, path, "equities:\n  - GARAN.IS\n  - AKBNK.IS\n  - GARAN.IS\n")

	reg, err := NewRegistry(path)
	require.NoError(t, err)
	defer reg.Close()

	assets := reg.Assets()
	require.Len(t, assets, 2, "override replaces the embedded list, de-duplicated")
	assert.Equal(t, "AKBNK", assets[0].Name)
	assert.Equal(t, "GARAN", assets[1].Name)
}

func TestRegistryRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "equities.yaml")
	writeWatchlist(t, path, "equities:\n  - \"not a symbol!\"\n")

	reg, err := NewRegistry(path)
	require.NoError(t, err)
	defer reg.Close()

	// Schema rejection keeps the embedded snapshot.
	assert.Len(t, reg.Assets(), len(buildEquityAssets(defaultEquitySymbols)))
}

func TestRegistryHotReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "equities.yaml")
	writeWatchlist(t, path, "equities:\n  - AKBNK.IS\n")

	reg, err := NewRegistry(path)
	require.NoError(t, err)
	defer reg.Close()
	require.Len(t, reg.Assets(), 1)

	writeWatchlist(t, path, "equities:\n  - AKBNK.IS\n  - THYAO.IS\n")

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if len(reg.Assets()) == 2 {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.Len(t, reg.Assets(), 2)

	// A broken rewrite must not clobber the good snapshot.
	writeWatchlist(t, path, "equities: []\n")
	time.Sleep(200 * time.Millisecond)
	assert.Len(t, reg.Assets(), 2)
}
