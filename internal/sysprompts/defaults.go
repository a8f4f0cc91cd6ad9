package sysprompts

import _ "embed"

//go:embed defaults/system.md
var defaultContent string

//go:embed defaults/system_gpt_4.1.md
var gpt41Content string

// Names of the built-in prompts seeded on first initialization.
const (
	DefaultName = "Default"
	GPT41Name   = "GPT-4.1 Optimized"
)

// Seeds returns the two built-in prompts written when no collection exists:
// the default prompt and a prompt tuned for GPT-4.1 models.
func Seeds() []Prompt {
	return []Prompt{
		New(DefaultName, defaultContent).
			WithDescription("Default system prompt").
			WithTags([]string{"default"}).
			SetAsDefault(),
		New(GPT41Name, gpt41Content).
			WithDescription("System prompt optimized for GPT-4.1 models").
			WithModelSpecific("gpt-4.1").
			WithTags([]string{"gpt-4", "optimized"}),
	}
}
