package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/velkom/depviz/pkg/graph"
)

// configFileName is looked up in the repository root when --config is not
// given.
const configFileName = ".depviz.toml"

// config holds tool settings readable from a TOML file. Flags override
// whatever the file says.
type config struct {
	GraphvizPath string      `toml:"graphviz_path"`
	Output       string      `toml:"output"`
	Open         bool        `toml:"open"`
	Colors       colorConfig `toml:"colors"`
}

type colorConfig struct {
	Commit string `toml:"commit"`
	File   string `toml:"file"`
	Dir    string `toml:"dir"`
}

// loadConfig reads the config file at path, or the repository-root default
// when path is empty. A missing default file yields an empty config; a
// missing explicit file is an error.
func loadConfig(path, repoPath string) (*config, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(repoPath, configFileName)
	}

	var cfg config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return &cfg, nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return &cfg, nil
}

// style translates the configured colors into a dot style, falling back
// to the default palette per class.
func (c *config) style() graph.Style {
	s := graph.DefaultStyle()
	if c.Colors.Commit != "" {
		s.CommitColor = c.Colors.Commit
	}
	if c.Colors.File != "" {
		s.FileColor = c.Colors.File
	}
	if c.Colors.Dir != "" {
		s.DirColor = c.Colors.Dir
	}
	return s
}
