package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/eklavyac/gogit/pkg/object"
)

// Config is the repository-local config file at .git/config.toml. It is
// additive ambient state, written by clone and readable by later commands;
// no spec.md operation depends on it existing.
type Config struct {
	Remote struct {
		URL           string `toml:"url"`
		DefaultBranch string `toml:"default_branch"`
	} `toml:"remote"`
}

func (r *Repo) configPath() string {
	return filepath.Join(r.GitDir, "config.toml")
}

// ReadConfig reads .git/config.toml. A missing file returns a zero Config.
func (r *Repo) ReadConfig() (*Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(r.configPath(), &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("%w: read config: %v", object.ErrFilesystemIO, err)
	}
	return &cfg, nil
}

// WriteConfig atomically writes .git/config.toml.
func (r *Repo) WriteConfig(cfg *Config) error {
	tmp, err := os.CreateTemp(r.GitDir, ".config-tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp config: %v", object.ErrFilesystemIO, err)
	}
	tmpName := tmp.Name()

	enc := toml.NewEncoder(tmp)
	if err := enc.Encode(cfg); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: encode config: %v", object.ErrFilesystemIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close temp config: %v", object.ErrFilesystemIO, err)
	}
	if err := os.Rename(tmpName, r.configPath()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename config into place: %v", object.ErrFilesystemIO, err)
	}
	return nil
}

// RecordRemote persists the URL and branch a clone used, for later
// inspection; it is not read back by any spec.md operation.
func (r *Repo) RecordRemote(remoteURL, defaultBranch string) error {
	cfg, err := r.ReadConfig()
	if err != nil {
		return err
	}
	cfg.Remote.URL = remoteURL
	cfg.Remote.DefaultBranch = defaultBranch
	return r.WriteConfig(cfg)
}
