package summarizer

import (
	"fmt"
	"strings"
)

const (
	chunkMarker = "\n\nTEXT:\n"
	mergeMarker = "\n\nCombine these parts into ONE clear summary:\n\n"
)

// BuildPrompt renders the instruction block shared by chunk and merge prompts.
func BuildPrompt(style Style, language string) string {
	return fmt.Sprintf(`You summarize documents for busy readers.
Output language: %s
Form: %s
Rules:
- Keep important facts, names, numbers, and dates.
- Be neutral and precise.
- Return only the summary, with no preamble.`, language, formDirective(style))
}

func formDirective(style Style) string {
	switch style {
	case StyleDetailed:
		return "Write a clear summary in 2-4 short paragraphs."
	case StyleBullets:
		return "Write 5-8 bullet points. Each bullet must be crisp and factual."
	default:
		return "Write a short 3-5 sentence summary."
	}
}

func buildChunkPrompt(chunk string, opts Options) string {
	return BuildPrompt(opts.Style, opts.Language) + chunkMarker + chunk
}

// buildMergePrompt labels parts by their 1-based position in chunk order.
func buildMergePrompt(partials []string, opts Options) string {
	var builder strings.Builder
	builder.WriteString(BuildPrompt(opts.Style, opts.Language))
	builder.WriteString(mergeMarker)
	for i, part := range partials {
		if i > 0 {
			builder.WriteString("\n\n")
		}
		fmt.Fprintf(&builder, "Part %d:\n%s", i+1, part)
	}
	return builder.String()
}
