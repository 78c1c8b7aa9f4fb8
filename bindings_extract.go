// Library embedding and extraction at runtime, a pattern also used in
// several other Go projects that need to distribute native binaries
// (github.com/kluctl/go-embed-python and friends).
//
// The embedded library is extracted to a user-specific cache directory and
// loaded dynamically. If extraction fails, the code falls back to the
// traditional method of searching system paths. Extraction happens at most
// once per version and platform; subsequent runs reuse the cached copy.
package cblite

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

//go:embed all:libs
var embeddedLibs embed.FS

//go:embed VERSION
var embeddedVersion string

// isMuslLibc detects if the system is using musl libc (Alpine Linux, Void Linux, etc.)
func isMuslLibc() bool {
	if _, err := os.Stat("/etc/alpine-release"); err == nil {
		return true
	}

	// Check ldd output for musl - more reliable for detecting any musl-based system
	cmd := exec.Command("ldd", "--version")
	if output, err := cmd.CombinedOutput(); err == nil {
		if strings.Contains(strings.ToLower(string(output)), "musl") {
			return true
		}
	}

	return false
}

// platformLibName returns the shared library file name for the current OS.
func platformLibName(name string) (string, error) {
	switch runtime.GOOS {
	case "darwin":
		return fmt.Sprintf("lib%v.dylib", name), nil
	case "linux":
		return fmt.Sprintf("lib%v.so", name), nil
	case "windows":
		return fmt.Sprintf("%v.dll", name), nil
	default:
		return "", fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// extractEmbeddedLibrary extracts the library for the current platform
// to a cache directory and returns the path to the extracted library.
func extractEmbeddedLibrary(name string) (string, error) {
	libName, err := platformLibName(name)
	if err != nil {
		return "", err
	}

	var archSuffix string
	switch runtime.GOARCH {
	case "amd64":
		archSuffix = "amd64"
	case "arm64":
		archSuffix = "arm64"
	case "386":
		archSuffix = "386"
	default:
		return "", fmt.Errorf("unsupported architecture: %s", runtime.GOARCH)
	}

	libcVariant := ""
	if runtime.GOOS == "linux" && isMuslLibc() {
		libcVariant = "_musl"
	}

	platformDir := fmt.Sprintf("%s%s_%s", runtime.GOOS, libcVariant, archSuffix)

	// Try to find the embedded library - first with detected platform,
	// then fallback to glibc variant on Linux if musl is not available
	embedPath := path.Join("libs", platformDir, libName)
	fallbackPaths := []string{embedPath}
	if runtime.GOOS == "linux" && libcVariant == "_musl" {
		glibcPlatform := fmt.Sprintf("%s_%s", runtime.GOOS, archSuffix)
		fallbackPaths = append(fallbackPaths, path.Join("libs", glibcPlatform, libName))
	}

	cacheRoot := os.Getenv("CBLITE_GO_CACHE_DIR")
	if cacheRoot == "" {
		if d, err := os.UserCacheDir(); err == nil {
			cacheRoot = d
		} else {
			cacheRoot = os.TempDir()
		}
	}
	destDir := filepath.Join(cacheRoot, name, strings.TrimSpace(embeddedVersion), platformDir)

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", destDir, err)
	}
	extractedPath := filepath.Join(destDir, libName)

	if fi, err := os.Stat(extractedPath); err == nil && fi.Size() > 0 {
		return extractedPath, nil
	}

	var in fs.File
	foundPath := ""
	for _, tryPath := range fallbackPaths {
		in, err = embeddedLibs.Open(tryPath)
		if err == nil {
			foundPath = tryPath
			break
		}
	}
	if foundPath == "" {
		return "", fmt.Errorf("open embedded library (tried %v): %w", fallbackPaths, err)
	}
	defer in.Close()

	out, err := os.Create(extractedPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", extractedPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", fmt.Errorf("copy: %w", err)
	}
	if runtime.GOOS != "windows" {
		_ = os.Chmod(extractedPath, 0o755)
	}
	return extractedPath, nil
}

// loadLibrary locates and opens the native library, in order of preference:
// an explicit CBLITE_LIB_PATH, the embedded per-platform artifact, and
// finally the system default search path.
func loadLibrary(name string) (uintptr, error) {
	if p := os.Getenv("CBLITE_LIB_PATH"); p != "" {
		return openLibrary(p)
	}

	if extracted, err := extractEmbeddedLibrary(name); err == nil {
		if handle, err := openLibrary(extracted); err == nil {
			return handle, nil
		}
	}

	libName, err := platformLibName(name)
	if err != nil {
		return 0, err
	}
	return openLibrary(libName)
}
