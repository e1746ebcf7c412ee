// Package config resolves pclubgit settings from defaults, the global
// configuration directory, the repository, and the environment.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the global pclubgit configuration directory.
//
// Resolution:
//   - $PCLUBGIT_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/pclubgit if set (respects XDG on any platform)
//   - %AppData%/pclubgit on Windows
//   - ~/.config/pclubgit on macOS and Linux
func Dir() string {
	if dir := os.Getenv("PCLUBGIT_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pclubgit")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "pclubgit")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pclubgit")
}

// GlobalFile returns the path of the global settings file, or "" if no
// configuration directory can be determined.
func GlobalFile() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}
