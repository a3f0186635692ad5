package summarize

import "strings"

const SimplificationPrompt = `Write a simplified summary of the scientific paper below for readers with no scientific background. Explain the research in terms anyone can follow.

Cover, in this order:
1. What the researchers studied
2. How they did it
3. What they found
4. Why it matters

Use plain language and avoid jargon. If a technical term is unavoidable, explain it in a few words. Keep the summary under 300 words. Respond with the summary text only, without headings or a preamble.`

// BuildPrompt appends the combined paper text to the simplification
// instructions.
func BuildPrompt(paperText string) string {
	var sb strings.Builder
	sb.WriteString(SimplificationPrompt)
	sb.WriteString("\n\n---\nPaper content:\n")
	sb.WriteString(paperText)
	return sb.String()
}
