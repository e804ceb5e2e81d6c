// Package game routes player commands to the world model, the character
// registry, and the dialogue adapter, and composes the text shown back to
// the player.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Meow-nya-nya-nya/chat-game/pkg/actor"
	"github.com/Meow-nya-nya-nya/chat-game/pkg/dialogue"
	"github.com/Meow-nya-nya-nya/chat-game/pkg/plot"
	"github.com/Meow-nya-nya-nya/chat-game/pkg/world"
)

// Config carries the game-facing settings the interpreter needs.
type Config struct {
	Title   string
	Version string
	Debug   bool
}

// Game composes the three stateful services and dispatches commands.
type Game struct {
	world    *world.World
	registry *actor.Registry
	adapter  *dialogue.Adapter
	plots    *plot.Manager
	cfg      Config
	logger   *slog.Logger
}

// New wires a Game from its services and synchronizes character presence
// into the world's location lists.
func New(w *world.World, registry *actor.Registry, adapter *dialogue.Adapter, plots *plot.Manager, cfg Config, logger *slog.Logger) *Game {
	g := &Game{
		world:    w,
		registry: registry,
		adapter:  adapter,
		plots:    plots,
		cfg:      cfg,
		logger:   logger,
	}
	g.syncCharacterLocations()
	return g
}

func (g *Game) syncCharacterLocations() {
	for id, c := range g.registry.All() {
		g.world.AddCharacter(id, c.Location)
	}
}

// NewGame resets the world and characters to their defaults and returns a
// fresh game state seeded with the welcome banner and the opening scene.
func (g *Game) NewGame() *GameState {
	g.world.Reset()
	g.registry.ResetAll()
	g.syncCharacterLocations()

	gs := NewGameState()
	gs.Location = g.world.CurrentLocationID()
	gs.PlayerName = "Adventurer"
	gs.Started = true

	gs.AppendHistory(EntrySystem, g.welcomeMessage())
	if g.plots != nil {
		if intro := g.plots.PlotText("intro", 1); intro != "" {
			gs.AppendHistory(EntrySystem, intro)
		}
	}
	gs.AppendHistory(EntrySystem, g.world.DescribeCurrentLocation())
	return gs
}

func (g *Game) welcomeMessage() string {
	return fmt.Sprintf(`Welcome to %s!

You are a young adventurer who has just arrived in a mysterious realm.
Explore this world and chat with AI-driven characters!

Tip: Type 'help' to see available commands
Tip: Type 'clear' to clear the screen

---`, g.cfg.Title)
}

// ProcessCommand handles one line of player input and returns the reply
// text. It never panics out to the caller: failures during dispatch become
// a generic message, or the raw error text in debug mode.
func (g *Game) ProcessCommand(ctx context.Context, command string, gs *GameState) (response string) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("Command dispatch panicked", "command", command, "panic", r)
			if g.cfg.Debug {
				response = fmt.Sprintf("Error while handling command: %v", r)
			} else {
				response = "Something went wrong. Please try again."
			}
		}
	}()

	command = strings.ToLower(strings.TrimSpace(command))
	if command == "" {
		return "Please enter a command."
	}

	parts := strings.Fields(command)
	verb := parts[0]
	args := parts[1:]

	switch {
	case matchVerb(verb, "clear", "清空", "清屏"):
		return g.handleClear(gs)
	case matchVerb(verb, "help", "h", "帮助", "命令"):
		return helpMessage
	case matchVerb(verb, "look", "l", "看", "查看", "观察"):
		return g.world.DescribeCurrentLocation()
	case matchVerb(verb, "where", "位置", "我在哪"):
		return g.handleWhere()
	case matchVerb(verb, "characters", "chars", "角色", "人物", "npc"):
		return g.handleCharacters()
	case matchVerb(verb, "go", "move", "走", "去", "移动"):
		return g.handleMove(args, gs)
	case world.IsDirection(verb):
		return g.handleMove([]string{verb}, gs)
	case matchVerb(verb, "talk", "say", "说", "聊", "对话", "交谈"):
		return g.handleTalk(ctx, args, gs)
	case matchVerb(verb, "status", "stat", "状态"):
		return g.handleStatus(gs)
	default:
		return fmt.Sprintf("Unknown command: %s\nType 'help' to see available commands.", verb)
	}
}

func matchVerb(verb string, synonyms ...string) bool {
	for _, s := range synonyms {
		if verb == s {
			return true
		}
	}
	return false
}

const helpMessage = `Available Commands:

Exploration Commands:
  look / 看             - View current location
  where / 位置          - Show current location name
  go <direction> / 走 <方向>   - Move (north/south/east/west or 北/南/东/西)

Character Commands:
  characters / 角色     - List characters in current location
  talk <character> <message> / 说 <角色> <消息> - Chat with AI characters

System Commands:
  status / 状态         - Show game status
  help / 帮助           - Show this help information
  clear / 清空          - Clear screen

Examples:
  look                 - Look around
  北 or go north       - Move north
  talk elder hello     - Greet the elder`

func (g *Game) handleClear(gs *GameState) string {
	gs.History = gs.History[:0]
	return "Screen cleared."
}

func (g *Game) handleWhere() string {
	loc, ok := g.world.CurrentLocation()
	if !ok {
		return "You seem to be lost in an unknown place..."
	}
	return "Current Location: " + loc.Name
}

func (g *Game) handleCharacters() string {
	characters := g.registry.InLocation(g.world.CurrentLocationID())
	if len(characters) == 0 {
		return "There are no other people here."
	}

	lines := make([]string, 0, len(characters))
	for _, id := range g.world.CharactersHere() {
		if c, ok := characters[id]; ok {
			lines = append(lines, fmt.Sprintf("  • %s (ID: %s) - %s", c.Name, id, c.Describe()))
		}
	}
	return "Characters here:\n" + strings.Join(lines, "\n") +
		"\n\nTip: Use 'talk <character_id> <message>' to chat with them"
}

func (g *Game) handleMove(args []string, gs *GameState) string {
	if len(args) == 0 {
		directions := g.world.AvailableDirections()
		names := make([]string, 0, len(directions))
		for _, d := range directions {
			names = append(names, g.world.DirectionName(d))
		}
		return "Go where? Available directions: " + strings.Join(names, ", ")
	}

	ok, message := g.world.Move(args[0])
	if !ok {
		return message
	}

	gs.Location = g.world.CurrentLocationID()
	return message + "\n\n" + g.world.DescribeCurrentLocation()
}

func (g *Game) handleTalk(ctx context.Context, args []string, gs *GameState) string {
	if len(args) < 1 {
		return "Talk to whom? Usage: talk <character_id> <message>"
	}

	characterID := args[0]
	message := "hello"
	if len(args) > 1 {
		message = strings.Join(args[1:], " ")
	}

	c := g.registry.Get(characterID)
	if c == nil {
		return fmt.Sprintf("No character named '%s' found.\nType 'characters' to list characters at your location.", characterID)
	}
	if c.Location != g.world.CurrentLocationID() {
		return fmt.Sprintf("%s is not here.", c.Name)
	}

	locationName := c.Location
	if loc, ok := g.world.CurrentLocation(); ok {
		locationName = loc.Name
	}

	reply := g.adapter.Respond(ctx, c, message, locationName, "char_"+characterID)

	g.registry.UpdateMood(characterID, reply.Mood)
	g.registry.AddConversation(characterID, message, reply.Message)

	var statusInfo string
	if g.cfg.Debug {
		statusInfo = fmt.Sprintf("\n[debug: %s, mood: %.2f]", reply.Status, c.Mood)
	}

	return fmt.Sprintf("You said to %s: %q\n\n%s: %q%s",
		c.Name, message, c.Name, reply.Message, statusInfo)
}

func (g *Game) handleStatus(gs *GameState) string {
	locationName := "unknown"
	if loc, ok := g.world.CurrentLocation(); ok {
		locationName = loc.Name
	}
	charCount := len(g.world.CharactersHere())

	return fmt.Sprintf(`Game Status:
Current Location: %s
Characters in Location: %d
Game Version: %s
History Count: %d`, locationName, charCount, g.cfg.Version, len(gs.History))
}
