package metrics

import "math"

// Reduction describes how much shorter a summary is than its source, in estimated tokens.
type Reduction struct {
	OriginalTokens int     `json:"originalTokens"`
	SummaryTokens  int     `json:"summaryTokens"`
	ReductionRatio float64 `json:"reductionRatio"`
}

// NewReduction computes max(0, 1 - summary/original) rounded to two decimals.
// A zero original yields a zero ratio.
func NewReduction(originalTokens, summaryTokens int) Reduction {
	r := Reduction{OriginalTokens: originalTokens, SummaryTokens: summaryTokens}
	if originalTokens <= 0 {
		return r
	}
	ratio := 1 - float64(summaryTokens)/float64(originalTokens)
	if ratio < 0 {
		ratio = 0
	}
	r.ReductionRatio = math.Round(ratio*100) / 100
	return r
}

