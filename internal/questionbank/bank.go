// Package questionbank supplies the static multiple-choice question sets the
// quiz runs over, keyed by technology and difficulty level.
package questionbank

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
)

// Question is one multiple-choice question. Correct indexes into Options.
type Question struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Correct int      `json:"correct"`
}

// Bank hands out ordered question sequences. Implementations are read-only.
type Bank interface {
	// Questions returns the ordered sequence for (technology, level). ok is
	// false when the bank has nothing for that key.
	Questions(technology, level string) (questions []Question, ok bool)
	Technologies() []string
	Levels(technology string) []string
}

//go:embed questions.json
var embeddedQuestions []byte

// StaticBank is a Bank backed by an in-memory map, normally loaded from the
// embedded question data.
type StaticBank struct {
	byTech map[string]map[string][]Question
}

// NewStaticBank loads the embedded question data.
func NewStaticBank() (*StaticBank, error) {
	return FromJSON(embeddedQuestions)
}

// FromJSON builds a bank from raw question data, validating that every
// question has at least two options and a correct index inside them.
func FromJSON(data []byte) (*StaticBank, error) {
	var byTech map[string]map[string][]Question
	if err := json.Unmarshal(data, &byTech); err != nil {
		return nil, fmt.Errorf("parsing question data: %w", err)
	}
	for tech, levels := range byTech {
		for level, questions := range levels {
			for i, q := range questions {
				if len(q.Options) < 2 {
					return nil, fmt.Errorf("question %d of %s/%s has fewer than two options", i, tech, level)
				}
				if q.Correct < 0 || q.Correct >= len(q.Options) {
					return nil, fmt.Errorf("question %d of %s/%s has correct index %d out of range", i, tech, level, q.Correct)
				}
			}
		}
	}
	return &StaticBank{byTech: byTech}, nil
}

func (b *StaticBank) Questions(technology, level string) ([]Question, bool) {
	levels, ok := b.byTech[technology]
	if !ok {
		return nil, false
	}
	questions, ok := levels[level]
	if !ok || len(questions) == 0 {
		return nil, false
	}
	return questions, true
}

func (b *StaticBank) Technologies() []string {
	techs := make([]string, 0, len(b.byTech))
	for tech := range b.byTech {
		techs = append(techs, tech)
	}
	sort.Strings(techs)
	return techs
}

func (b *StaticBank) Levels(technology string) []string {
	levelMap, ok := b.byTech[technology]
	if !ok {
		return nil
	}
	levels := make([]string, 0, len(levelMap))
	for level := range levelMap {
		levels = append(levels, level)
	}
	sort.Strings(levels)
	return levels
}
