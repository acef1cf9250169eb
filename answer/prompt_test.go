package answer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildSystemPromptNormal(t *testing.T) {
	now := time.Date(2026, time.January, 15, 20, 0, 0, 0, time.UTC)
	got := BuildSystemPrompt(PromptContext{ChatMode: ChatNormal}, now)

	assert.Contains(t, got, "bullet points")
	assert.Contains(t, got, "Do NOT introduce yourself")
	assert.Contains(t, got, "The current year is 2026")
	assert.NotContains(t, got, "SPACE CONTEXT")
}

func TestBuildSystemPromptPersonaUsesRegionalZone(t *testing.T) {
	// 20:00 UTC is 01:30 the next day in Asia/Kolkata.
	now := time.Date(2026, time.January, 15, 20, 0, 0, 0, time.UTC)

	friend := BuildSystemPrompt(PromptContext{ChatMode: ChatFriend, FriendName: "Asha", FriendDescription: "a cheerful cricket fan"}, now)
	assert.True(t, strings.HasPrefix(friend, "You are Asha, a cheerful cricket fan."))
	assert.Contains(t, friend, "Friday, 16 January 2026, 01:30")
	assert.Contains(t, friend, "Do NOT use bullet points")

	psych := BuildSystemPrompt(PromptContext{ChatMode: ChatPsychologist}, now)
	assert.Contains(t, psych, psychologistDescription)
	assert.Contains(t, psych, "16 January 2026")

	def := BuildSystemPrompt(PromptContext{ChatMode: ChatFriend}, now)
	assert.Contains(t, def, defaultFriendDescription)
}

func TestBuildSystemPromptSpace(t *testing.T) {
	now := time.Now()

	got := BuildSystemPrompt(PromptContext{ChatMode: ChatFriend, SpaceTitle: "Astronomy", SpaceDescription: "Stars and galaxies"}, now)
	assert.Contains(t, got, `space "Astronomy": Stars and galaxies`)

	partial := BuildSystemPrompt(PromptContext{ChatMode: ChatSpace, SpaceTitle: "Astronomy"}, now)
	assert.NotContains(t, partial, "SPACE CONTEXT")
}

func TestBuildSystemPromptNotCached(t *testing.T) {
	a := BuildSystemPrompt(PromptContext{}, time.Date(2025, time.May, 1, 12, 0, 0, 0, time.Local))
	b := BuildSystemPrompt(PromptContext{}, time.Date(2026, time.May, 1, 12, 0, 0, 0, time.Local))
	assert.NotEqual(t, a, b)
}

func TestUserPrompt(t *testing.T) {
	assert.Equal(t, "[Mode: Research] history of tea", UserPrompt("history of tea", ModeResearch, ChatNormal))
	assert.Equal(t, "[Mode: Ask] history of tea", UserPrompt("history of tea", Mode("Shout"), ChatSpace))
	assert.Equal(t, "I had a rough day", UserPrompt("I had a rough day", ModeAsk, ChatPsychologist))
}

func TestTokenBudget(t *testing.T) {
	tests := []struct {
		mode    Mode
		ceiling int
		want    int
	}{
		{ModeAsk, 16384, 2500},
		{ModeResearch, 16384, 4000},
		{ModeSummarize, 8192, 1500},
		{ModeCompare, 8192, 3000},
		{Mode(""), 8192, 2500},
		{ModeResearch, 2048, 2048},
		{ModeResearch, 0, 4000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TokenBudget(tt.mode, tt.ceiling), "TokenBudget(%q, %d)", tt.mode, tt.ceiling)
	}
}
