package actor

import (
	_ "embed"
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/characters.yaml
var defaultRosterYAML []byte

// Roster is the serializable set of characters seeded into a Registry.
type Roster struct {
	Characters map[string]*Character `yaml:"characters"`
}

// DefaultRoster returns the built-in character roster.
func DefaultRoster() (*Roster, error) {
	return parseRoster(defaultRosterYAML)
}

// LoadRoster reads a character roster from a YAML file.
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}
	return parseRoster(data)
}

func parseRoster(data []byte) (*Roster, error) {
	var roster Roster
	if err := yaml.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}
	if len(roster.Characters) == 0 {
		return nil, fmt.Errorf("roster has no characters")
	}
	for id, c := range roster.Characters {
		c.ID = id
	}
	return &roster, nil
}

// Registry holds the live character set for a game. Moods and histories are
// mutated as the game runs.
type Registry struct {
	characters  map[string]*Character
	defaultMood float64
}

// NewRegistry builds a Registry from a roster. Characters with a zero mood
// take the configured default.
func NewRegistry(roster *Roster, defaultMood float64) *Registry {
	r := &Registry{
		characters:  make(map[string]*Character, len(roster.Characters)),
		defaultMood: defaultMood,
	}
	for id, c := range roster.Characters {
		char := *c
		if char.Mood == 0 {
			char.Mood = defaultMood
		}
		r.characters[id] = &char
	}
	return r
}

// Get returns a character by ID, or nil if unknown.
func (r *Registry) Get(id string) *Character {
	return r.characters[id]
}

// InLocation returns the characters currently in the given location,
// keyed by ID. The map is a copy; mutating it does not affect the registry.
func (r *Registry) InLocation(locationID string) map[string]*Character {
	out := make(map[string]*Character)
	for id, c := range r.characters {
		if c.Location == locationID {
			out[id] = c
		}
	}
	return out
}

// All returns a copy of the full character map.
func (r *Registry) All() map[string]*Character {
	return maps.Clone(r.characters)
}

// UpdateMood clamps and sets the mood of a character. Unknown IDs are a no-op.
func (r *Registry) UpdateMood(id string, mood float64) {
	if c, ok := r.characters[id]; ok {
		c.UpdateMood(mood)
	}
}

// AddConversation records one exchange for a character. Unknown IDs are a no-op.
func (r *Registry) AddConversation(id, userMessage, npcReply string) {
	if c, ok := r.characters[id]; ok {
		c.AddConversation(userMessage, npcReply)
	}
}

// Move relocates a character. Unknown IDs are a no-op.
func (r *Registry) Move(id, locationID string) {
	if c, ok := r.characters[id]; ok {
		c.Location = locationID
	}
}

// ResetAll sets every character's mood to the configured default and clears
// all conversation histories. Used only at new-game.
func (r *Registry) ResetAll() {
	for _, c := range r.characters {
		c.Mood = r.defaultMood
		c.History = nil
	}
}
