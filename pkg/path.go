package pkg

import (
	"os"
	"path/filepath"
	"sync"
)

// Environment variables that relocate the javpy directories. A non-empty
// value is used verbatim, without appending [Name].
const (
	ConfigDirEnv = EnvPrefix + "_CONFIG_DIR"
	CacheDirEnv  = EnvPrefix + "_CACHE_DIR"
)

// ConfigDir returns the directory holding the javpy configuration file:
// $JAVPY_CONFIG_DIR if set, otherwise the user configuration directory
// (for example $XDG_CONFIG_HOME/javpy).
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(ConfigDirEnv, os.UserConfigDir, ".config")
})

// CacheDir returns the directory holding transient files such as the REPL
// history and profiles: $JAVPY_CACHE_DIR if set, otherwise the user cache
// directory (for example $XDG_CACHE_HOME/javpy).
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(CacheDirEnv, os.UserCacheDir, ".cache")
})

// userDir resolves a javpy directory. When the platform base directory is
// unknown it falls back to ~/<hidden>, then to the working directory.
func userDir(env string, base func() (string, error), hidden string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Clean(dir)
	}

	dir, err := base()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, hidden)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Name)
}
