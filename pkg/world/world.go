package world

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Location is a place in the game world with directional exits and a
// presence list of the character IDs currently there.
type Location struct {
	ID          string            `yaml:"-" json:"id"`
	Name        string            `yaml:"name" json:"name"`
	Description string            `yaml:"description" json:"description"`
	Exits       map[string]string `yaml:"exits" json:"exits,omitempty"` // direction -> location ID
	Characters  []string          `yaml:"-" json:"characters,omitempty"`
}

// AddCharacter adds a character ID to the presence list. Duplicates are ignored.
func (l *Location) AddCharacter(characterID string) {
	if !slices.Contains(l.Characters, characterID) {
		l.Characters = append(l.Characters, characterID)
	}
}

// RemoveCharacter removes a character ID from the presence list.
// Removing an absent ID is a no-op.
func (l *Location) RemoveCharacter(characterID string) {
	if i := slices.Index(l.Characters, characterID); i >= 0 {
		l.Characters = slices.Delete(l.Characters, i, i+1)
	}
}

// Canonical direction tokens used as exit-map keys.
var canonicalDirections = []string{"north", "south", "east", "west", "up", "down"}

// directionSynonyms maps accepted direction input (English abbreviations and
// Chinese words) to canonical tokens. Canonical tokens map to themselves.
var directionSynonyms = map[string]string{
	"north": "north", "n": "north", "北": "north", "北方": "north",
	"south": "south", "s": "south", "南": "south", "南方": "south",
	"east": "east", "e": "east", "东": "east", "东方": "east",
	"west": "west", "w": "west", "西": "west", "西方": "west",
	"up": "up", "u": "up", "上": "up", "上方": "up",
	"down": "down", "d": "down", "下": "down", "下方": "down",
}

// directionDisplayZH holds the Chinese display names for canonical directions.
var directionDisplayZH = map[string]string{
	"north": "北方", "south": "南方",
	"east": "东方", "west": "西方",
	"up": "上方", "down": "下方",
}

var titleCaser = cases.Title(language.English)

// NormalizeDirection resolves a direction synonym to its canonical token.
// Unrecognized input is returned unchanged so exit lookup can fail naturally.
func NormalizeDirection(token string) string {
	if canonical, ok := directionSynonyms[strings.ToLower(strings.TrimSpace(token))]; ok {
		return canonical
	}
	return token
}

// IsDirection reports whether token is a recognized direction synonym.
func IsDirection(token string) bool {
	_, ok := directionSynonyms[strings.ToLower(strings.TrimSpace(token))]
	return ok
}

// World is the static location graph plus the current-location pointer.
type World struct {
	locations map[string]*Location
	current   string
	start     string
	lang      string // "en" or "zh" display names for directions
}

// New builds a World from a definition. The exit graph is validated up
// front: an exit that references an unknown location ID is a construction
// error, not a runtime surprise.
func New(def *Definition, lang string) (*World, error) {
	if def == nil {
		return nil, fmt.Errorf("world definition is required")
	}
	if len(def.Locations) == 0 {
		return nil, fmt.Errorf("world has no locations")
	}
	if _, ok := def.Locations[def.Start]; !ok {
		return nil, fmt.Errorf("start location %q does not exist", def.Start)
	}

	locations := make(map[string]*Location, len(def.Locations))
	for id, loc := range def.Locations {
		l := *loc
		l.ID = id
		locations[id] = &l
	}
	for id, loc := range locations {
		for direction, dest := range loc.Exits {
			if _, ok := directionSynonyms[direction]; !ok {
				return nil, fmt.Errorf("location %q: unknown exit direction %q", id, direction)
			}
			if _, ok := locations[dest]; !ok {
				return nil, fmt.Errorf("location %q: exit %q references unknown location %q", id, direction, dest)
			}
		}
	}

	if lang != "zh" {
		lang = "en"
	}

	return &World{
		locations: locations,
		current:   def.Start,
		start:     def.Start,
		lang:      lang,
	}, nil
}

// CurrentLocation returns the location the player is in. The second return
// is false if the pointer is stale; callers should fall back to a
// "lost in an unknown place" message rather than fail.
func (w *World) CurrentLocation() (*Location, bool) {
	loc, ok := w.locations[w.current]
	return loc, ok
}

// CurrentLocationID returns the current location identifier.
func (w *World) CurrentLocationID() string {
	return w.current
}

// Location returns a location by ID.
func (w *World) Location(id string) (*Location, bool) {
	loc, ok := w.locations[id]
	return loc, ok
}

// Move attempts to move in the given direction. Direction synonyms in both
// supported languages are accepted. Returns whether the move succeeded and
// a player-facing message either way.
func (w *World) Move(direction string) (bool, string) {
	loc, ok := w.CurrentLocation()
	if !ok {
		return false, "You are lost in an unknown place and cannot move."
	}

	canonical := NormalizeDirection(direction)
	dest, ok := loc.Exits[canonical]
	if !ok {
		return false, fmt.Sprintf("You cannot go %s. There is no path that way.", w.DirectionName(canonical))
	}
	if _, ok := w.locations[dest]; !ok {
		return false, fmt.Sprintf("The way %s leads nowhere.", w.DirectionName(canonical))
	}

	w.current = dest
	return true, fmt.Sprintf("You head %s.", w.DirectionName(canonical))
}

// AvailableDirections returns the canonical exit directions of the current
// location, in a fixed north/south/east/west/up/down order.
func (w *World) AvailableDirections() []string {
	loc, ok := w.CurrentLocation()
	if !ok {
		return nil
	}
	var out []string
	for _, d := range canonicalDirections {
		if _, ok := loc.Exits[d]; ok {
			out = append(out, d)
		}
	}
	return out
}

// DirectionName returns the display name of a canonical direction in the
// world's configured language.
func (w *World) DirectionName(canonical string) string {
	if w.lang == "zh" {
		if name, ok := directionDisplayZH[canonical]; ok {
			return name
		}
	}
	return titleCaser.String(canonical)
}

// DescribeCurrentLocation composes the full description of the current
// location: name, descriptive text, exits, and present characters, in that
// fixed order.
func (w *World) DescribeCurrentLocation() string {
	loc, ok := w.CurrentLocation()
	if !ok {
		return "You seem to be lost in an unknown place..."
	}

	var sb strings.Builder
	sb.WriteString("📍 " + loc.Name + "\n\n")
	sb.WriteString(loc.Description + "\n\n")
	sb.WriteString(w.describeExits(loc))

	if len(loc.Characters) > 0 {
		sb.WriteString("\n\n👥 Here: " + strings.Join(loc.Characters, ", "))
	}
	return sb.String()
}

func (w *World) describeExits(loc *Location) string {
	if len(loc.Exits) == 0 {
		return "There is no obvious way out."
	}
	var names []string
	for _, d := range canonicalDirections {
		if _, ok := loc.Exits[d]; ok {
			names = append(names, w.DirectionName(d))
		}
	}
	return "You can go: " + strings.Join(names, ", ")
}

// AddCharacter places a character in the named location. An empty location
// ID means the current location. Unknown locations are ignored.
func (w *World) AddCharacter(characterID, locationID string) {
	if locationID == "" {
		locationID = w.current
	}
	if loc, ok := w.locations[locationID]; ok {
		loc.AddCharacter(characterID)
	}
}

// RemoveCharacter removes a character from the named location. An empty
// location ID means the current location.
func (w *World) RemoveCharacter(characterID, locationID string) {
	if locationID == "" {
		locationID = w.current
	}
	if loc, ok := w.locations[locationID]; ok {
		loc.RemoveCharacter(characterID)
	}
}

// CharactersHere returns a copy of the current location's presence list.
func (w *World) CharactersHere() []string {
	loc, ok := w.CurrentLocation()
	if !ok {
		return nil
	}
	return slices.Clone(loc.Characters)
}

// Reset returns the current-location pointer to the start location.
// Presence lists are left as they are.
func (w *World) Reset() {
	w.current = w.start
}
