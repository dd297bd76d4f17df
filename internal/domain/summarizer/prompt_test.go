package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		style    Style
		wantForm string
	}{
		{style: StyleConcise, wantForm: "Form: Write a short 3-5 sentence summary."},
		{style: StyleDetailed, wantForm: "Form: Write a clear summary in 2-4 short paragraphs."},
		{style: StyleBullets, wantForm: "Form: Write 5-8 bullet points."},
		{style: Style("unknown"), wantForm: "Form: Write a short 3-5 sentence summary."},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.style), func(t *testing.T) {
			t.Parallel()
			prompt := BuildPrompt(tt.style, "German")
			require.Contains(t, prompt, "Output language: German")
			require.Contains(t, prompt, tt.wantForm)
			require.Contains(t, prompt, "Keep important facts, names, numbers, and dates.")
			require.Contains(t, prompt, "Be neutral and precise.")
			require.Contains(t, prompt, "Return only the summary")
			require.Equal(t, prompt, BuildPrompt(tt.style, "German"))
		})
	}
}

func TestParseStyle(t *testing.T) {
	require.Equal(t, StyleBullets, ParseStyle(" Bullets "))
	require.Equal(t, StyleDetailed, ParseStyle("detailed"))
	require.Equal(t, StyleConcise, ParseStyle(""))
	require.Equal(t, StyleConcise, ParseStyle("poem"))
}

func TestParseSourceKind(t *testing.T) {
	require.Equal(t, SourceText, ParseSourceKind(""))
	require.Equal(t, SourceFile, ParseSourceKind("FILE"))
	require.Equal(t, SourceKind("url"), ParseSourceKind("url"))
}

func TestBuildChunkPrompt(t *testing.T) {
	opts := Options{Style: StyleConcise, Language: "English"}
	prompt := buildChunkPrompt("chunk body", opts)
	require.True(t, strings.HasPrefix(prompt, BuildPrompt(StyleConcise, "English")))
	require.True(t, strings.HasSuffix(prompt, "\n\nTEXT:\nchunk body"))
}

func TestBuildMergePromptKeepsPartOrder(t *testing.T) {
	opts := Options{Style: StyleBullets, Language: "French"}
	prompt := buildMergePrompt([]string{"alpha", "beta", "gamma"}, opts)

	require.Contains(t, prompt, "Combine these parts into ONE clear summary:")
	require.True(t, strings.HasSuffix(prompt, "Part 1:\nalpha\n\nPart 2:\nbeta\n\nPart 3:\ngamma"))

	swapped := buildMergePrompt([]string{"beta", "alpha", "gamma"}, opts)
	require.NotEqual(t, prompt, swapped)
}
