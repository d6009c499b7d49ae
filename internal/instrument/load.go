package instrument

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"leadstyle/internal/model"
)

//go:embed default_instrument.yaml
var defaultDocument []byte

type document struct {
	Version      int                   `yaml:"version"`
	Name         string                `yaml:"name"`
	TieBreak     []model.StyleCategory `yaml:"tie_break"`
	Styles       []styleDoc            `yaml:"styles"`
	Tiers        []tierDoc             `yaml:"tiers"`
	Levels       []Band                `yaml:"levels"`
	Adaptability []Band                `yaml:"adaptability"`
	Questions    []model.Question      `yaml:"questions"`
}

type styleDoc struct {
	Key         model.StyleCategory `yaml:"key"`
	Name        string              `yaml:"name"`
	Description string              `yaml:"description"`
	Evidence    []string            `yaml:"evidence"`
}

type tierDoc struct {
	Key      model.AdequacyTier `yaml:"key"`
	Weight   int                `yaml:"weight"`
	Evidence []string           `yaml:"evidence"`
}

// Default returns the built-in twelve question instrument
func Default() (*Instrument, error) {
	return Parse(defaultDocument)
}

// Load reads, parses and validates an instrument file
func Load(path string) (*Instrument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read instrument: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML instrument and validates it
func Parse(data []byte) (*Instrument, error) {
	var doc document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse instrument: %w", err)
	}
	var extra yaml.Node
	if err := decoder.Decode(&extra); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse instrument: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse instrument: %w", err)
	}
	return build(doc)
}
