package resolver

import (
	"strings"

	"github.com/readlark/htmlhl/internal/htmldom"
)

// resolveTextPosition tries four patterns against the plain-text
// projection, in order, and accepts the first one that matches:
//
//  1. prefix + exact + suffix, confidence 1.0
//  2. prefix + exact (prefix non-empty), confidence 0.9
//  3. exact + suffix (suffix non-empty), confidence 0.9
//  4. exact alone: if it occurs exactly once, confidence 0.8; if it occurs
//     more than once, the occurrence closest to the anchor's recorded
//     StartOffset wins (ties keep the earlier occurrence), confidence 0.7
//
// All four confidences already clear the strategy's 0.7 acceptance bar, so
// this strategy either returns a result the cascade will accept or finds
// nothing at all.
func resolveTextPosition(in Input, tm *htmldom.TextMap) (Result, bool) {
	text := tm.PlainText
	n := len(text)

	if idx := strings.Index(text, in.PrefixContext+in.ExactText+in.SuffixContext); idx >= 0 {
		start := idx + len(in.PrefixContext)
		if res, ok := candidate(in.AnchorID, start, start+len(in.ExactText), n, StrategyTextPosition, 1.0); ok {
			return res, true
		}
	}

	if in.PrefixContext != "" {
		if idx := strings.Index(text, in.PrefixContext+in.ExactText); idx >= 0 {
			start := idx + len(in.PrefixContext)
			if res, ok := candidate(in.AnchorID, start, start+len(in.ExactText), n, StrategyTextPosition, 0.9); ok {
				return res, true
			}
		}
	}

	if in.SuffixContext != "" {
		if idx := strings.Index(text, in.ExactText+in.SuffixContext); idx >= 0 {
			if res, ok := candidate(in.AnchorID, idx, idx+len(in.ExactText), n, StrategyTextPosition, 0.9); ok {
				return res, true
			}
		}
	}

	occurrences := findAllOccurrences(text, in.ExactText)
	switch len(occurrences) {
	case 0:
		return Result{}, false
	case 1:
		start := occurrences[0]
		return candidate(in.AnchorID, start, start+len(in.ExactText), n, StrategyTextPosition, 0.8)
	default:
		best := occurrences[0]
		bestDist := abs(best - in.StartOffset)
		for _, o := range occurrences[1:] {
			if d := abs(o - in.StartOffset); d < bestDist {
				bestDist, best = d, o
			}
		}
		return candidate(in.AnchorID, best, best+len(in.ExactText), n, StrategyTextPosition, 0.7)
	}
}

func findAllOccurrences(text, substr string) []int {
	if substr == "" {
		return nil
	}
	var out []int
	offset := 0
	for {
		idx := strings.Index(text[offset:], substr)
		if idx < 0 {
			return out
		}
		out = append(out, offset+idx)
		offset += idx + 1
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
