package llm

import "strings"

// cleanJSONBlock strips markdown fencing from a JSON response. The batch
// prompts ask for a bare object, but models fence the document anyway;
// schema validation downstream needs it raw.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	// Any other fence tag sits alone on the opening line.
	if idx := strings.Index(text, "\n"); idx >= 0 && !strings.Contains(text[:idx], "{") {
		text = text[idx+1:]
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
