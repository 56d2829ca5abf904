package pkg

import (
	"os"
	"path/filepath"
	"sync"
)

// ConfigDir returns the directory holding the user's configuration.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// CacheDir returns the directory holding transient files such as profiles.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// ConfigFile returns the path of the default configuration file.
func ConfigFile() string { return filepath.Join(ConfigDir(), "config.yaml") }

// userDir returns the Name subdirectory of the directory reported by base.
// If base fails, the hidden directory under the user's home (or, failing
// that, the working directory) is used instead.
func userDir(base func() (string, error), hidden string) string {
	dir, err := base()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, hidden)
		} else if wd, werr := os.Getwd(); werr == nil {
			dir = wd
		} else {
			dir = "."
		}
	}

	return filepath.Join(dir, Name)
}
