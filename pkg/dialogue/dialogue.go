// Package dialogue prompts a chat-completion endpoint for in-character NPC
// replies and parses the structured {msg, mood} payload out of the response.
package dialogue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Meow-nya-nya-nya/chat-game/pkg/actor"
	"github.com/Meow-nya-nya-nya/chat-game/pkg/chat"
)

const (
	StatusSuccess     = "success"      // structured reply parsed
	StatusSuccessText = "success_text" // degraded: raw text used verbatim
	StatusError       = "error"        // fallback reply, mood unchanged

	// sessionHistoryLimit bounds a session to the system prompt plus the
	// most recent turns.
	sessionHistoryLimit = 20

	requestTimeout = 30 * time.Second
)

// Completer is the slice of the LLM service the adapter needs.
type Completer interface {
	GetChatResponse(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)
}

// Reply is the outcome of one dialogue turn.
type Reply struct {
	Message string  `json:"msg"`
	Mood    float64 `json:"mood"`
	Status  string  `json:"status"`
	Err     error   `json:"-"`
}

// Adapter holds per-session conversation histories and turns player
// messages into in-character NPC replies. A nil Completer models a client
// that failed to initialize: every turn degrades to a fallback reply.
type Adapter struct {
	llm         Completer
	maxReplyLen int
	lang        string
	logger      *slog.Logger

	mu       sync.Mutex
	sessions map[string][]chat.ChatMessage
}

// NewAdapter creates a dialogue adapter. llm may be nil if the client could
// not be constructed; Respond then always returns a fallback.
func NewAdapter(llm Completer, maxReplyLen int, lang string, logger *slog.Logger) *Adapter {
	if lang != "zh" {
		lang = "en"
	}
	return &Adapter{
		llm:         llm,
		maxReplyLen: maxReplyLen,
		lang:        lang,
		logger:      logger,
		sessions:    make(map[string][]chat.ChatMessage),
	}
}

// replyPayload is the structured body expected from the model, possibly
// wrapped in a fenced code block. Mood is decoded loosely: models sometimes
// quote the number.
type replyPayload struct {
	Msg  string `json:"msg"`
	Mood any    `json:"mood"`
}

// moodValue extracts a usable mood from the payload. ok is false when the
// field is absent or unparseable; the caller keeps the prior mood then.
func (p *replyPayload) moodValue() (float64, bool) {
	switch v := p.Mood.(type) {
	case float64:
		return v, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

// Respond runs one dialogue turn for a character. It never returns an
// error to the caller: every failure degrades to a character-flavored
// fallback line with the mood unchanged.
func (a *Adapter) Respond(ctx context.Context, c *actor.Character, playerMessage, locationName, sessionKey string) Reply {
	if a.llm == nil {
		return Reply{
			Message: fmt.Sprintf("%s seems absorbed in thought and doesn't want to talk right now.", c.Name),
			Mood:    c.Mood,
			Status:  StatusError,
			Err:     fmt.Errorf("llm client not initialized"),
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	systemPrompt := a.buildSystemPrompt(c, locationName)
	history := a.sessions[sessionKey]

	// The system prompt lives at index 0 and is overwritten each turn so
	// mood and location changes take effect without duplicate entries.
	if len(history) == 0 || history[0].Role != chat.ChatRoleSystem {
		history = append([]chat.ChatMessage{{Role: chat.ChatRoleSystem, Content: systemPrompt}}, history...)
	} else {
		history[0].Content = systemPrompt
	}
	history = append(history, chat.ChatMessage{Role: chat.ChatRoleUser, Content: playerMessage})
	a.sessions[sessionKey] = history

	callCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := a.llm.GetChatResponse(callCtx, history)
	if err != nil {
		a.logger.Warn("LLM request failed", "session", sessionKey, "error", err)
		return Reply{
			Message: fallbackMessage(c.Name, err),
			Mood:    c.Mood,
			Status:  StatusError,
			Err:     err,
		}
	}

	content := strings.TrimSpace(resp.Message)

	payload, perr := parseReply(content)
	if perr != nil {
		// Malformed model output is a degraded success, not an error:
		// the raw text is the reply and the mood stays put.
		a.logger.Debug("Falling back to raw text reply", "session", sessionKey, "error", perr)
		a.appendAssistant(sessionKey, content)
		return Reply{Message: content, Mood: c.Mood, Status: StatusSuccessText}
	}

	mood := c.Mood
	if parsed, ok := payload.moodValue(); ok {
		mood = max(0.0, min(1.0, parsed))
	}

	a.appendAssistant(sessionKey, payload.Msg)
	return Reply{Message: payload.Msg, Mood: mood, Status: StatusSuccess}
}

// appendAssistant records the assistant turn and truncates the session to
// the system entry plus the newest turns. Caller must hold a.mu.
func (a *Adapter) appendAssistant(sessionKey, content string) {
	history := append(a.sessions[sessionKey], chat.ChatMessage{Role: chat.ChatRoleAgent, Content: content})
	if len(history) > sessionHistoryLimit {
		kept := make([]chat.ChatMessage, 0, sessionHistoryLimit)
		kept = append(kept, history[0])
		kept = append(kept, history[len(history)-(sessionHistoryLimit-1):]...)
		history = kept
	}
	a.sessions[sessionKey] = history
}

// ClearHistory discards a session's message list entirely.
func (a *Adapter) ClearHistory(sessionKey string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.sessions, sessionKey)
}

// SessionInfo reports the message count of a session and whether its first
// entry is a system prompt.
func (a *Adapter) SessionInfo(sessionKey string) (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	history := a.sessions[sessionKey]
	return len(history), len(history) > 0 && history[0].Role == chat.ChatRoleSystem
}

// promptMoodLabel maps mood to the coarse label used for prompt tone.
// Deliberately different banding than actor.Character.MoodLabel.
func promptMoodLabel(mood float64) string {
	switch {
	case mood >= 0.7:
		return "good"
	case mood >= 0.4:
		return "fair"
	default:
		return "poor"
	}
}

func (a *Adapter) buildSystemPrompt(c *actor.Character, locationName string) string {
	replyLang := "English"
	if a.lang == "zh" {
		replyLang = "Chinese"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("You are playing the game character [%s]. Current mood=%.2f (%s).\n\n",
		c.Name, c.Mood, promptMoodLabel(c.Mood)))
	sb.WriteString("Character profile: " + c.Personality + "\n\n")
	sb.WriteString("Current location: " + locationName + "\n\n")
	sb.WriteString("You must:\n")
	sb.WriteString(fmt.Sprintf("- Always stay in character and respond as %s\n", c.Name))
	sb.WriteString("- Adjust your tone to the mood value: closer to 0 is surly, closer to 1 is friendly\n")
	sb.WriteString("- Keep the conversation engaging and fun\n")
	sb.WriteString("- Help the player when appropriate\n")
	sb.WriteString(fmt.Sprintf("- Keep replies under %d characters\n", a.maxReplyLen))
	sb.WriteString(fmt.Sprintf("- Reply in %s\n", replyLang))
	sb.WriteString("- Only discuss topics related to the current game scene and story\n")
	sb.WriteString("- If the player asks about something unrelated to the game, politely steer them back\n\n")
	sb.WriteString("Respond strictly in this JSON format:\n")
	sb.WriteString("{\n  \"msg\": \"what you want to say\",\n  \"mood\": new mood value (a number between 0.0 and 1.0)\n}\n\n")
	sb.WriteString("Important: never reveal that you are an AI or mention any technical details. Stay in character at all times.")
	return sb.String()
}

// parseReply strips optional markdown code fences and decodes the
// structured reply. A missing msg field is a parse failure.
func parseReply(content string) (*replyPayload, error) {
	stripped := stripFences(content)

	var payload replyPayload
	if err := json.Unmarshal([]byte(stripped), &payload); err != nil {
		return nil, fmt.Errorf("invalid reply JSON: %w", err)
	}
	if payload.Msg == "" {
		return nil, fmt.Errorf("reply is missing msg field")
	}
	return &payload, nil
}

// stripFences removes a wrapping markdown code fence (``` or ```json) if
// present. Content without fences passes through unchanged.
func stripFences(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop an optional language tag on the opening fence line.
	if i := strings.IndexByte(s, '\n'); i >= 0 && !strings.ContainsAny(s[:i], "{}") {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// fallbackMessage picks a player-facing line for a failed LLM call. The
// error text drives a coarse taxonomy: model missing, auth, quota, generic.
func fallbackMessage(characterName string, err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "404") || strings.Contains(msg, "not found"):
		return "The model is unavailable right now. Please try again later."
	case strings.Contains(msg, "401") || strings.Contains(msg, "403"):
		return "API authentication failed. Please check the configuration."
	case strings.Contains(msg, "quota") || strings.Contains(msg, "limit"):
		return "The API quota has been used up. Please try again later."
	default:
		return fmt.Sprintf("%s seems lost in thought and cannot answer you right now.", characterName)
	}
}
