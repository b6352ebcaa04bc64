package ocr

import "strings"

// parseTextLines turns a provider response into ordered, trimmed,
// non-empty receipt lines. Providers occasionally wrap output in
// markdown code fences despite the prompt; those are stripped.
func parseTextLines(text string) []string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
