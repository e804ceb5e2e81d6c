package actor

import "fmt"

// MaxHistory is the number of conversation exchanges retained per character.
const MaxHistory = 10

// ContextWindow is the number of recent exchanges included in prompt context.
const ContextWindow = 3

// Exchange is one player/NPC conversation turn.
type Exchange struct {
	User string `json:"user"`
	NPC  string `json:"npc"`
}

// Character is a non-player character with a personality, a location, a
// mood scalar in [0,1], and a short rolling conversation history.
type Character struct {
	ID          string     `yaml:"-" json:"id"`
	Name        string     `yaml:"name" json:"name"`
	Personality string     `yaml:"personality" json:"personality"`
	Location    string     `yaml:"location" json:"location"`
	Mood        float64    `yaml:"mood" json:"mood"`
	History     []Exchange `yaml:"-" json:"history,omitempty"`
}

// UpdateMood sets the character's mood, clamped to [0,1].
func (c *Character) UpdateMood(mood float64) {
	c.Mood = max(0.0, min(1.0, mood))
}

// AddConversation appends a conversation exchange. Older entries beyond
// MaxHistory are silently dropped, oldest first.
func (c *Character) AddConversation(userMessage, npcReply string) {
	c.History = append(c.History, Exchange{User: userMessage, NPC: npcReply})
	if len(c.History) > MaxHistory {
		c.History = c.History[len(c.History)-MaxHistory:]
	}
}

// ConversationContext formats the most recent exchanges for prompt context.
func (c *Character) ConversationContext() string {
	if len(c.History) == 0 {
		return ""
	}
	recent := c.History
	if len(recent) > ContextWindow {
		recent = recent[len(recent)-ContextWindow:]
	}
	var out string
	for _, ex := range recent {
		out += fmt.Sprintf("Player: %s\n%s: %s\n", ex.User, c.Name, ex.NPC)
	}
	return out
}

// MoodLabel maps the mood scalar to a five-band display label. These bands
// are for display only; the dialogue prompt uses its own coarser bands.
func (c *Character) MoodLabel() string {
	switch {
	case c.Mood >= 0.8:
		return "very friendly"
	case c.Mood >= 0.6:
		return "friendly"
	case c.Mood >= 0.4:
		return "neutral"
	case c.Mood >= 0.2:
		return "cold"
	default:
		return "hostile"
	}
}

// Describe returns the character's display name with its mood label.
func (c *Character) Describe() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.MoodLabel())
}
