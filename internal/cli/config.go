package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/heatflow/pkg/errors"
	"github.com/matzehuels/heatflow/pkg/pipeline"
)

// Config holds user defaults read from config.toml. Flags given on the
// command line always win.
//
//	width   = 1200
//	margin  = 0.08
//	formats = ["svg", "png"]
//	policy  = "preset"
//
//	[serve]
//	addr  = ":9090"
//	redis = "localhost:6379"
type Config struct {
	Width   int      `toml:"width"`
	Margin  float64  `toml:"margin"`
	Formats []string `toml:"formats"`
	Policy  string   `toml:"policy"`
	Serve   struct {
		Addr  string `toml:"addr"`
		Redis string `toml:"redis"`
	} `toml:"serve"`
}

// loadConfig reads the config file at path, or the XDG default when path
// is empty. A missing default file yields a zero Config; a missing
// explicit file is an error. It returns the path actually read.
func loadConfig(path string) (Config, string, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, "", nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, "", nil
		}
		if os.IsNotExist(err) {
			return cfg, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, "", errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := pipeline.ValidateFormats(cfg.Formats); err != nil {
		return cfg, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	return cfg, path, nil
}
