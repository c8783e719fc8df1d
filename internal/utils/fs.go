package utils

import (
	"os"
	"path/filepath"
)

// AssetsDir is an optional override directory searched before the local assets folder.
var AssetsDir string

// ResolveAssetPath returns the first existing location of relPath, checking the
// override directory, then ./assets, then the assets folder next to the executable.
// When nothing exists the local path is returned so callers get a readable error.
func ResolveAssetPath(relPath string) string {
	if AssetsDir != "" {
		overridePath := filepath.Join(AssetsDir, relPath)
		if _, err := os.Stat(overridePath); err == nil {
			return overridePath
		}
	}

	localPath := filepath.Join("assets", relPath)
	if _, err := os.Stat(localPath); err == nil {
		return localPath
	}

	if exe, err := os.Executable(); err == nil {
		exePath := filepath.Join(filepath.Dir(exe), "assets", relPath)
		if _, err := os.Stat(exePath); err == nil {
			return exePath
		}
	}

	return localPath
}

// AssetExists reports whether relPath resolves to an existing file.
func AssetExists(relPath string) bool {
	_, err := os.Stat(ResolveAssetPath(relPath))
	return err == nil
}

// DiscoverAssets sets AssetsDir from a user supplied path, ignoring it when missing.
func DiscoverAssets(customPath string) {
	if customPath == "" {
		return
	}
	if _, err := os.Stat(customPath); err != nil {
		Warn("Custom assets path NOT FOUND: %s", customPath)
		Info("Falling back to built-in shaders...")
		return
	}
	AssetsDir = customPath
	Info("Using custom assets path: %s", AssetsDir)
}
