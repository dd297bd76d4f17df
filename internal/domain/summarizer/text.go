package summarizer

import (
	"math"
	"strings"
)

// tokensPerWord calibrates the chunk budget. Changing it changes chunk sizes.
const tokensPerWord = 1.3

// Normalize collapses every whitespace run to a single space and trims the ends.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// EstimateTokens approximates model tokens as ceil(words * 1.3).
func EstimateTokens(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) * tokensPerWord))
}

// WordsPerChunk is the number of words that fit a token budget, never below one.
func WordsPerChunk(maxTokens int) int {
	words := int(math.Floor(float64(maxTokens) / tokensPerWord))
	if words < 1 {
		return 1
	}
	return words
}

// SplitChunks walks the words of text in windows of WordsPerChunk(maxTokens) words.
// Consecutive windows share overlapWords words; the overlap is clamped below the window
// size so the walk always advances. The last window ends on the last word.
func SplitChunks(text string, maxTokens, overlapWords int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}
	size := WordsPerChunk(maxTokens)
	overlap := clampOverlap(overlapWords, size)

	chunks := make([]string, 0, len(words)/size+1)
	for start := 0; ; {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
		start = end - overlap
		if start < 0 {
			start = 0
		}
	}
	return chunks
}

func clampOverlap(overlap, size int) int {
	if overlap < 0 {
		return 0
	}
	if overlap >= size {
		return size - 1
	}
	return overlap
}
