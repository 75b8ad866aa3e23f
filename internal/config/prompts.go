// Package config provides configuration loading utilities for prompt personas.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Personas are the "system" framings sent with each generation operation.
// The zero value is never used; Defaults fills the built-in framings and a
// YAML file may override individual entries.
type Personas struct {
	Questions  string `yaml:"questions"`
	Roadmap    string `yaml:"roadmap"`
	Resume     string `yaml:"resume"`
	Evaluation string `yaml:"evaluation"`
}

// DefaultPersonas returns the built-in system personas.
func DefaultPersonas() Personas {
	return Personas{
		Questions:  "You are an expert technical interviewer and career coach.",
		Roadmap:    "You are an expert career development coach and technical educator.",
		Resume:     "You are an expert resume reviewer and career advisor.",
		Evaluation: "You are an expert technical interviewer providing constructive feedback.",
	}
}

// LoadPersonas returns the defaults, overlaid with any entries found in
// the YAML file at path. An empty path means defaults only.
func LoadPersonas(path string) (Personas, error) {
	p := DefaultPersonas()
	if path == "" {
		return p, nil
	}
	// #nosec G304 -- Configuration files are expected to be safe
	content, err := os.ReadFile(path)
	if err != nil {
		return Personas{}, fmt.Errorf("op=config.LoadPersonas: %w", err)
	}
	var override Personas
	if err := yaml.Unmarshal(content, &override); err != nil {
		return Personas{}, fmt.Errorf("op=config.LoadPersonas: %w", err)
	}
	if override.Questions != "" {
		p.Questions = override.Questions
	}
	if override.Roadmap != "" {
		p.Roadmap = override.Roadmap
	}
	if override.Resume != "" {
		p.Resume = override.Resume
	}
	if override.Evaluation != "" {
		p.Evaluation = override.Evaluation
	}
	return p, nil
}
