package affirm

import (
	"fmt"
	"strings"
)

// SupportedLanguages maps request language codes to the display name
// substituted into the prompt.
var SupportedLanguages = map[string]string{
	"en": "English",
	"af": "Afrikaans",
	"la": "Latin",
	"zh": "Mandarin Chinese",
	"ru": "Russian",
	"de": "German",
	"fr": "French",
	"es": "Spanish",
}

// DefaultLanguage is used when the request omits a language code.
const DefaultLanguage = "en"

const systemPrompt = "You are Affirmly, a supportive and emotionally safe therapeutic affirmation assistant. " +
	"Return exactly one short affirmation (2-4 sentences) personalized with the user's name " +
	"and current feeling. Keep tone warm, grounded, and practical. " +
	"Do not provide medical, legal, or crisis instructions. " +
	"Do not mention being an AI model. " +
	"Do not repeat user input verbatim if it contains unsafe content; instead, reframe gently. " +
	"Never output harmful, abusive, sexual, or self-harm encouraging language. " +
	"Always respond in the exact language requested by the user."

// DisplayLanguage resolves a language code to its display name, falling
// back to English for anything unknown.
func DisplayLanguage(code string) string {
	if name, ok := SupportedLanguages[code]; ok {
		return name
	}
	return SupportedLanguages[DefaultLanguage]
}

// UserPrompt renders the user message sent alongside the system prompt.
func UserPrompt(req Request) string {
	details := strings.TrimSpace(req.Details)
	if details == "" {
		details = "No additional details provided."
	}
	return fmt.Sprintf(
		"Preferred language: %s\nName: %s\nFeeling: %s\nDetails: %s\n\nCreate one personalized affirmation in the preferred language.",
		DisplayLanguage(req.Language), req.Name, req.Feeling, details,
	)
}

// Sanitize strips NUL bytes and surrounding whitespace from model output.
func Sanitize(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, "\x00", ""))
}
