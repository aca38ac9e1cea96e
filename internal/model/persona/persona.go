package persona

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Persona is the scripted individual the model answers as.
type Persona struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Title       string            `json:"title,omitempty" yaml:"title"`
	OpeningLine string            `json:"openingLine,omitempty" yaml:"opening_line"`
	Instruction string            `json:"-" yaml:"instruction"`
	Questions   map[string]string `json:"questions,omitempty" yaml:"questions"`
}

// Question returns the canonical interview question for a topic.
func (p Persona) Question(topic string) (string, bool) {
	q, ok := p.Questions[topic]
	if !ok || strings.TrimSpace(q) == "" {
		return "", false
	}
	return q, true
}

//go:embed personas.yaml
var seedYAML []byte

type catalogue struct {
	Personas []Persona `yaml:"personas"`
}

// Seed returns the built-in persona catalogue.
func Seed() []Persona {
	items, err := Parse(seedYAML)
	if err != nil {
		panic(fmt.Sprintf("persona: invalid embedded catalogue: %v", err))
	}
	return items
}

// LoadFile reads a catalogue with the same layout as the embedded one.
func LoadFile(path string) ([]Persona, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read persona file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML persona catalogue.
func Parse(data []byte) ([]Persona, error) {
	var c catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode persona catalogue: %w", err)
	}
	if len(c.Personas) == 0 {
		return nil, errors.New("persona catalogue is empty")
	}

	seen := make(map[string]struct{}, len(c.Personas))
	for i := range c.Personas {
		p := &c.Personas[i]
		p.ID = strings.TrimSpace(p.ID)
		p.Instruction = strings.TrimSpace(p.Instruction)
		if p.ID == "" {
			return nil, fmt.Errorf("persona #%d: id is required", i)
		}
		if p.Instruction == "" {
			return nil, fmt.Errorf("persona %s: instruction is required", p.ID)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("persona %s: duplicate id", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return c.Personas, nil
}
