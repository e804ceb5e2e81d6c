package actor

import (
	"fmt"
	"strings"
	"testing"
)

func TestCharacter_UpdateMood(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"in range", 0.65, 0.65},
		{"lower bound", 0.0, 0.0},
		{"upper bound", 1.0, 1.0},
		{"below range", -5.0, 0.0},
		{"above range", 5.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Character{Mood: 0.5}
			c.UpdateMood(tt.in)
			if c.Mood != tt.want {
				t.Errorf("UpdateMood(%v) -> %v, want %v", tt.in, c.Mood, tt.want)
			}
		})
	}
}

func TestCharacter_AddConversationCap(t *testing.T) {
	c := &Character{Name: "Elder"}
	for i := 0; i < MaxHistory+5; i++ {
		c.AddConversation(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	if len(c.History) != MaxHistory {
		t.Fatalf("history length = %d, want %d", len(c.History), MaxHistory)
	}
	if c.History[0].User != "q5" {
		t.Errorf("oldest retained exchange = %q, want q5", c.History[0].User)
	}
	if last := c.History[len(c.History)-1]; last.User != "q14" || last.NPC != "a14" {
		t.Errorf("newest exchange = %+v, want q14/a14", last)
	}
}

func TestCharacter_ConversationContext(t *testing.T) {
	c := &Character{Name: "Elder"}
	if c.ConversationContext() != "" {
		t.Error("empty history should produce empty context")
	}

	for i := 0; i < 5; i++ {
		c.AddConversation(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	ctx := c.ConversationContext()
	if strings.Contains(ctx, "q1") {
		t.Error("context should only include the most recent exchanges")
	}
	for _, want := range []string{"Player: q2", "Elder: a2", "Player: q4", "Elder: a4"} {
		if !strings.Contains(ctx, want) {
			t.Errorf("context missing %q:\n%s", want, ctx)
		}
	}
}

func TestCharacter_MoodLabel(t *testing.T) {
	tests := []struct {
		mood float64
		want string
	}{
		{0.95, "very friendly"},
		{0.8, "very friendly"},
		{0.7, "friendly"},
		{0.6, "friendly"},
		{0.5, "neutral"},
		{0.4, "neutral"},
		{0.3, "cold"},
		{0.2, "cold"},
		{0.1, "hostile"},
		{0.0, "hostile"},
	}

	for _, tt := range tests {
		c := &Character{Mood: tt.mood}
		if got := c.MoodLabel(); got != tt.want {
			t.Errorf("MoodLabel() at %v = %q, want %q", tt.mood, got, tt.want)
		}
	}
}

func TestCharacter_Describe(t *testing.T) {
	c := &Character{Name: "Village Elder", Mood: 0.7}
	if got := c.Describe(); got != "Village Elder (friendly)" {
		t.Errorf("Describe() = %q", got)
	}
}
