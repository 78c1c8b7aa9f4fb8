package cblite

import (
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlatformLibName(t *testing.T) {
	name, err := platformLibName("cblite")
	require.NoError(t, err)

	switch runtime.GOOS {
	case "darwin":
		require.Equal(t, "libcblite.dylib", name)
	case "linux":
		require.Equal(t, "libcblite.so", name)
	case "windows":
		require.Equal(t, "cblite.dll", name)
	}
}

func TestExtractFailsWithoutEmbeddedArtifact(t *testing.T) {
	// source checkouts carry no binaries under libs/; extraction must fail
	// cleanly so loadLibrary falls through to the system search path
	t.Setenv("CBLITE_GO_CACHE_DIR", t.TempDir())
	_, err := extractEmbeddedLibrary("cblite")
	require.Error(t, err)
	require.Contains(t, err.Error(), "embedded library")
}

func TestEmbeddedVersionIsWellFormed(t *testing.T) {
	v := strings.TrimSpace(embeddedVersion)
	require.NotEmpty(t, v)
	var major, minor, patch int
	_, err := fmt.Sscanf(v, "%d.%d.%d", &major, &minor, &patch)
	require.NoError(t, err)
}
