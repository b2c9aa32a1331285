package catalog

import "aicompass/types"

// fallbackCategories is the fixed substitute dataset served when the
// live categories fetch fails. It mirrors the directory's standing
// top-level sections so navigation keeps rendering through an outage.
var fallbackCategories = []types.Category{
	{ID: "fb-1", Name: "General Assistants", Slug: "general-assistants", Icon: "i-lucide-bot", Description: "Conversational assistants and copilots"},
	{ID: "fb-2", Name: "Developer Tools", Slug: "developer-tools", Icon: "i-lucide-code", Description: "AI coding editors, completion and review"},
	{ID: "fb-3", Name: "Image Generation", Slug: "image-generation", Icon: "i-lucide-image", Description: "Text-to-image and image editing"},
	{ID: "fb-4", Name: "Writing", Slug: "writing", Icon: "i-lucide-pen-line", Description: "Drafting, rewriting and summarization"},
	{ID: "fb-5", Name: "Search", Slug: "search", Icon: "i-lucide-search", Description: "Answer engines and research tools"},
	{ID: "fb-6", Name: "Productivity", Slug: "productivity", Icon: "i-lucide-zap", Description: "Meeting notes, scheduling and automation"},
}

// FallbackCategories returns a copy of the built-in category dataset so
// callers cannot mutate the canonical one.
func FallbackCategories() []types.Category {
	out := make([]types.Category, len(fallbackCategories))
	copy(out, fallbackCategories)
	return out
}
