// Package text fits strings into fixed-width boxes.
//
// The helpers are independent of any font implementation: callers pass a
// glyph-support predicate or a width measurer, usually bound to a
// [github.com/matzehuels/orchard/pkg/fonts.Font].
package text

import (
	"math"
	"strings"
	"unicode"
)

// Measurer returns the rendered width of s at the given font size.
type Measurer func(s string, size float64) float64

// Filter removes every rune the font cannot draw. Whitespace is kept as long
// as the font supports it. Filter is idempotent.
func Filter(s string, supports func(rune) bool) string {
	if supports == nil {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == unicode.ReplacementChar || !supports(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Fit returns the largest size in steps of 1 from start down to min at which
// s is no wider than maxWidth. It returns min when even min overflows.
func Fit(s string, maxWidth, start, min float64, measure Measurer) float64 {
	return FitStep(s, maxWidth, start, min, 1, measure)
}

// FitStep is [Fit] with a custom decrement. The loop runs at most
// ceil((start-min)/step) times.
func FitStep(s string, maxWidth, start, min, step float64, measure Measurer) float64 {
	if step <= 0 {
		step = 1
	}
	if min > start {
		min = start
	}
	size := start
	n := int(math.Ceil((start - min) / step))
	for i := 0; i < n && measure(s, size) > maxWidth; i++ {
		size = math.Max(size-step, min)
	}
	return size
}

// FitAll is [FitStep] for several lines that must share one size.
func FitAll(lines []string, maxWidth, start, min, step float64, measure Measurer) float64 {
	widest := func(_ string, size float64) float64 {
		var w float64
		for _, l := range lines {
			w = math.Max(w, measure(l, size))
		}
		return w
	}
	return FitStep("", maxWidth, start, min, step, widest)
}

// Wrap breaks s at word boundaries so that each line is at most maxWidth wide.
// A single word wider than maxWidth occupies its own line. No line is empty.
func Wrap(s string, maxWidth float64, width func(string) float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var (
		lines []string
		cur   = words[0]
	)
	for _, w := range words[1:] {
		next := cur + " " + w
		if width(next) <= maxWidth {
			cur = next
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur)
}
