package summarizer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "collapses mixed whitespace", in: "  Hello \t\n world\r\n\nagain  ", want: "Hello world again"},
		{name: "unicode spaces", in: "a\u00a0\u2003b", want: "a b"},
		{name: "already clean", in: "one two", want: "one two"},
		{name: "whitespace only", in: " \n\t ", want: ""},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Normalize(tt.in)
			require.Equal(t, tt.want, got)
			require.Equal(t, got, Normalize(got), "normalize must be idempotent")
			require.NotContains(t, got, "  ")
			require.Equal(t, strings.TrimSpace(got), got)
		})
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "empty", in: "", want: 0},
		{name: "whitespace", in: "   \n", want: 0},
		{name: "three words", in: "a b c", want: 4},
		{name: "sentence", in: "The quick brown fox jumps over the lazy dog.", want: 12},
		{name: "irregular spacing", in: " a\n\nb\tc ", want: 4},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, EstimateTokens(tt.in))
		})
	}
}

func TestWordsPerChunk(t *testing.T) {
	require.Equal(t, 1923, WordsPerChunk(2500))
	require.Equal(t, 10, WordsPerChunk(14))
	require.Equal(t, 1, WordsPerChunk(1))
	require.Equal(t, 1, WordsPerChunk(0))
}

func TestSplitChunksShortTextIsSingleChunk(t *testing.T) {
	text := numberedWords(10)
	chunks := SplitChunks(text, 14, 3)
	require.Equal(t, []string{text}, chunks)
}

func TestSplitChunksOverlapAndReconstruction(t *testing.T) {
	tests := []struct {
		name      string
		words     int
		maxTokens int
		overlap   int
		wantCount int
	}{
		{name: "default sized budget", words: 5000, maxTokens: 2500, overlap: 120, wantCount: 3},
		{name: "exact fit on last window", words: 24, maxTokens: 14, overlap: 3, wantCount: 3},
		{name: "short final window", words: 25, maxTokens: 14, overlap: 3, wantCount: 4},
		{name: "no overlap", words: 25, maxTokens: 14, overlap: 0, wantCount: 3},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			words := strings.Fields(numberedWords(tt.words))
			chunks := SplitChunks(strings.Join(words, " "), tt.maxTokens, tt.overlap)
			require.Len(t, chunks, tt.wantCount)

			size := WordsPerChunk(tt.maxTokens)
			var rebuilt []string
			for i, chunk := range chunks {
				chunkWords := strings.Fields(chunk)
				require.LessOrEqual(t, len(chunkWords), size)
				if i == 0 {
					rebuilt = append(rebuilt, chunkWords...)
					continue
				}
				prev := strings.Fields(chunks[i-1])
				require.Equal(t, prev[len(prev)-tt.overlap:], chunkWords[:tt.overlap], "chunk %d must start with the previous tail", i)
				rebuilt = append(rebuilt, chunkWords[tt.overlap:]...)
			}
			if diff := cmp.Diff(words, rebuilt); diff != "" {
				t.Fatalf("reconstructed words mismatch (-want +got):\n%s", diff)
			}
			last := strings.Fields(chunks[len(chunks)-1])
			require.Equal(t, words[len(words)-1], last[len(last)-1])
		})
	}
}

func TestSplitChunksClampsOversizedOverlap(t *testing.T) {
	// 3 tokens fit 2 words; an overlap of 120 would never advance without the clamp.
	chunks := SplitChunks("a b c d e", 3, 120)
	require.Equal(t, []string{"a b", "b c", "c d", "d e"}, chunks)
}

func numberedWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(words, " ")
}
