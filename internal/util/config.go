package util

import (
	"errors"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// Configuration carries build metadata plus the settings read from
// lute.toml. Command-line flags override anything loaded here.
type Configuration struct {
	Version   string `toml:"-"`
	BuildDate string `toml:"-"`
	Commit    string `toml:"-"`

	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
	LibPath  string `toml:"lib_path"`
}

// LoadConfiguration reads a lute.toml file. A missing file is not an error;
// defaults are returned instead.
func LoadConfiguration(path string) (Configuration, error) {
	config := Configuration{LogLevel: "error"}
	if _, err := toml.DecodeFile(path, &config); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return config, err
	}
	return config, nil
}
