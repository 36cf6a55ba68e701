package voices

import "strings"

// Voice describes a single entry in the build-time voice catalog.
type Voice struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	Description string `json:"description"`
	Provider    string `json:"provider"`
	Model       string `json:"model"`
	Accent      string `json:"accent,omitempty"`
	Personality string `json:"personality,omitempty"`
	PreviewText string `json:"preview_text,omitempty"`
}

// DefaultVoiceID is the catalog entry used when no persisted preference exists.
const DefaultVoiceID = "luna"

var catalog = []Voice{
	{
		ID:          "luna",
		Name:        "Luna",
		Gender:      "female",
		Description: "Warm and professional, the default support voice.",
		Provider:    "deepgram",
		Model:       "aura-luna-en",
		Accent:      "american",
		Personality: "warm",
		PreviewText: "Hi, I'm Luna. How can I help you today?",
	},
	{
		ID:          "stella",
		Name:        "Stella",
		Gender:      "female",
		Description: "Bright and energetic, good for quick exchanges.",
		Provider:    "deepgram",
		Model:       "aura-stella-en",
		Accent:      "american",
		Personality: "energetic",
		PreviewText: "Hey there, Stella speaking. What can I do for you?",
	},
	{
		ID:          "asteria",
		Name:        "Asteria",
		Gender:      "female",
		Description: "Clear and confident, a steady narrator.",
		Provider:    "deepgram",
		Model:       "aura-asteria-en",
		Accent:      "american",
		Personality: "confident",
		PreviewText: "Hello, this is Asteria. Let's get started.",
	},
	{
		ID:          "athena",
		Name:        "Athena",
		Gender:      "female",
		Description: "Calm and measured with a British accent.",
		Provider:    "deepgram",
		Model:       "aura-athena-en",
		Accent:      "british",
		Personality: "calm",
		PreviewText: "Good day, Athena here. How may I assist?",
	},
	{
		ID:          "orion",
		Name:        "Orion",
		Gender:      "male",
		Description: "Deep and reassuring, suited to longer explanations.",
		Provider:    "deepgram",
		Model:       "aura-orion-en",
		Accent:      "american",
		Personality: "reassuring",
		PreviewText: "Hello, I'm Orion. Happy to walk you through it.",
	},
	{
		ID:          "arcas",
		Name:        "Arcas",
		Gender:      "male",
		Description: "Friendly and casual, conversational register.",
		Provider:    "deepgram",
		Model:       "aura-arcas-en",
		Accent:      "american",
		Personality: "casual",
		PreviewText: "Hey, Arcas here. What's up?",
	},
}

// All returns the full catalog in its fixed order.
func All() []Voice {
	out := make([]Voice, len(catalog))
	copy(out, catalog)
	return out
}

// Default returns the catalog entry for DefaultVoiceID.
func Default() Voice {
	v, _ := Find(DefaultVoiceID)
	return v
}

// Find looks up a catalog entry by ID, case-insensitively.
func Find(id string) (Voice, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, v := range catalog {
		if v.ID == id {
			return v, true
		}
	}
	return Voice{}, false
}

// Recommended returns the short list surfaced first in the picker.
func Recommended() []Voice {
	ids := []string{"luna", "stella", "athena"}
	out := make([]Voice, 0, len(ids))
	for _, id := range ids {
		if v, ok := Find(id); ok {
			out = append(out, v)
		}
	}
	return out
}
