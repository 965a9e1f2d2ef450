package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// target describes one section to keep in sync: which file, which delimiter
// patterns, and where the fresh content comes from. Exactly one of Command
// and Package must be set.
type target struct {
	File    string `yaml:"file"`
	Start   string `yaml:"start"`
	End     string `yaml:"end"`
	Command string `yaml:"command"`
	Package string `yaml:"package"`
	After   string `yaml:"after"`
}

type configFile struct {
	Targets []target `yaml:"targets"`
}

func (t target) validate() error {
	if t.File == "" {
		return fmt.Errorf("target has no file")
	}
	if t.Start == "" || t.End == "" {
		return fmt.Errorf("target %s: start and end patterns are required", t.File)
	}
	if (t.Command == "") == (t.Package == "") {
		return fmt.Errorf("target %s: exactly one of command and package must be set", t.File)
	}
	return nil
}

func loadConfig(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("%s: no targets defined", path)
	}
	for _, t := range cfg.Targets {
		if err := t.validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return cfg.Targets, nil
}
