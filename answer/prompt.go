package answer

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // persona modes need Asia/Kolkata on hosts without zoneinfo
)

// personaZone is the fixed timezone used for the friend and psychologist personas.
var personaZone = loadZone("Asia/Kolkata", 5*60*60+30*60)

func loadZone(name string, offset int) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone(name, offset)
	}
	return loc
}

const defaultFriendDescription = "a warm, supportive friend who listens carefully, remembers what was said earlier in the conversation and replies like a real person would"

const psychologistDescription = "a compassionate, professional AI psychologist who listens without judgement, reflects feelings back and suggests gentle, practical coping strategies. You are not a replacement for a licensed therapist and you recommend professional help when someone may be at risk"

// PromptContext is the caller state the system prompt depends on.
type PromptContext struct {
	ChatMode          ChatMode
	FriendName        string
	FriendDescription string
	SpaceTitle        string
	SpaceDescription  string
}

// BuildSystemPrompt renders the system prompt for the given context at now.
// The date block is recomputed on every call.
func BuildSystemPrompt(pc PromptContext, now time.Time) string {
	var b strings.Builder

	if pc.ChatMode.conversational() {
		name := pc.FriendName
		if name == "" {
			name = "Perle"
		}
		desc := pc.FriendDescription
		if desc == "" {
			desc = defaultFriendDescription
			if pc.ChatMode == ChatPsychologist {
				desc = psychologistDescription
			}
		}
		fmt.Fprintf(&b, "You are %s, %s.\n\n", name, desc)
		b.WriteString(conversationalRules)
	} else {
		b.WriteString(normalRules)
	}

	b.WriteString("\n\n")
	b.WriteString(dateBlock(pc.ChatMode, now))

	if pc.SpaceTitle != "" && pc.SpaceDescription != "" {
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "SPACE CONTEXT:\nThis conversation belongs to the space %q: %s\n"+
			"Keep the answer within the scope of this space. If the question is unrelated, answer briefly and relate it back to the space where possible.",
			pc.SpaceTitle, pc.SpaceDescription)
	}

	return b.String()
}

const normalRules = `You are Perle, an AI-powered answer engine. Provide clear, factual answers suitable for reading on a phone.

FORMATTING RULES:
- Structure the answer as short bullet points, one idea per bullet.
- Start with a one-sentence direct answer, then the bullets.
- Do NOT use markdown headers, bold text or code blocks. Plain text only.
- Do NOT introduce yourself or mention which AI model you run on unless the user asks.`

const conversationalRules = `CONVERSATION RULES:
- Reply in natural, flowing prose like a real conversation, in two or three short paragraphs at most.
- Do NOT use bullet points, numbered lists, headers or any other structure.
- Do NOT use markdown formatting.
- Never mention which AI model you run on.`

// dateBlock tells the model what "now" is. Persona modes use the fixed
// regional zone; other modes use the host's local time.
func dateBlock(mode ChatMode, now time.Time) string {
	loc := time.Local
	if mode.conversational() {
		loc = personaZone
	}
	t := now.In(loc)

	return fmt.Sprintf("CURRENT DATE AND TIME: %s (%s)\n"+
		"Treat this date as ground truth. The current year is %d. "+
		"Do not present information from earlier years as current; if you are unsure whether something is still true, say so.",
		t.Format("Monday, 2 January 2006, 15:04"), t.Location(), t.Year())
}

// UserPrompt phrases the current query. Normal-style modes carry the analysis
// mode; persona modes send the query verbatim.
func UserPrompt(query string, mode Mode, chat ChatMode) string {
	if chat.conversational() {
		return query
	}
	if !mode.Valid() {
		mode = ModeAsk
	}
	return fmt.Sprintf("[Mode: %s] %s", mode, query)
}

// TokenBudget returns the output budget for mode, clamped to ceiling when the
// ceiling is lower. A non-positive ceiling means no clamp.
func TokenBudget(mode Mode, ceiling int) int {
	var n int
	switch mode {
	case ModeResearch:
		n = 4000
	case ModeSummarize:
		n = 1500
	case ModeCompare:
		n = 3000
	default:
		n = 2500
	}
	if ceiling > 0 && ceiling < n {
		return ceiling
	}
	return n
}
