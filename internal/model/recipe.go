package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Difficulty is the closed set of preparation difficulty levels
type Difficulty int

const (
	DifficultyUnknown Difficulty = iota
	DifficultyEasy
	DifficultyMedium
	DifficultyHard
)

// Difficulties lists the known levels in display order
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// String returns the display label of the difficulty
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	case DifficultyUnknown:
		return ""
	}
	return ""
}

// ParseDifficulty maps a label to a Difficulty, case-insensitively
func ParseDifficulty(s string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, true
	case "medium":
		return DifficultyMedium, true
	case "hard":
		return DifficultyHard, true
	}
	return DifficultyUnknown, false
}

// MarshalText implements encoding.TextMarshaler
func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Difficulty) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = DifficultyUnknown
		return nil
	}
	parsed, ok := ParseDifficulty(string(text))
	if !ok {
		return fmt.Errorf("unknown difficulty %q", string(text))
	}
	*d = parsed
	return nil
}

// MarshalJSON encodes the difficulty as its label
func (d Difficulty) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a difficulty label
func (d *Difficulty) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// Recipe represents an immutable catalog entry
type Recipe struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Category    string     `json:"category" yaml:"category"`
	ImageURL    string     `json:"image_url" yaml:"image"`
	CookTime    string     `json:"cook_time" yaml:"cook_time"`
	Servings    int        `json:"servings" yaml:"servings"`
	Difficulty  Difficulty `json:"difficulty" yaml:"difficulty"`
	Rating      float64    `json:"rating,omitempty" yaml:"rating,omitempty"`
	Ingredients []string   `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`
}
