package resolver

import (
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/readlark/htmlhl/internal/htmldom"
	"go.uber.org/zap"
)

// resolveContextSearch slides a window the width of the anchor's exact text
// across the plain-text projection, scoring each position as
// 0.6*textSimilarity + 0.4*contextSimilarity (context being the average
// similarity of the clamped surrounding prefix/suffix). The highest-scoring
// position wins if its total clears the strategy's 0.5 bar.
//
// If nothing clears the bar, the scan repeats with both the document and the
// three anchor strings whitespace-normalized (runs of whitespace collapsed
// to one space, ends trimmed). That second pass reuses the raw (non
// normalized) exact-text length as the window width rather than the
// normalized length — a known quirk of the matching behavior this mirrors,
// kept intentionally rather than "fixed".
func resolveContextSearch(in Input, tm *htmldom.TextMap, log *zap.Logger) (Result, bool) {
	if in.ExactText == "" {
		return Result{}, false
	}

	if res, ok := scanWindow(tm.PlainText, in.ExactText, in.PrefixContext, in.SuffixContext, len(in.ExactText)); ok {
		logContextMatch(log, in, tm.PlainText[res.start:res.end], res.confidence, false)
		return candidate(in.AnchorID, res.start, res.end, len(tm.PlainText), StrategyContextSearch, res.confidence)
	}

	normDoc, origPos := normalizeWhitespace(tm.PlainText)
	normExact := normalizeWhitespace1(in.ExactText)
	normPrefix := normalizeWhitespace1(in.PrefixContext)
	normSuffix := normalizeWhitespace1(in.SuffixContext)

	res, ok := scanWindow(normDoc, normExact, normPrefix, normSuffix, len(in.ExactText))
	if !ok {
		return Result{}, false
	}
	if res.end > len(origPos) || res.start >= len(origPos) {
		return Result{}, false
	}
	origStart := origPos[res.start]
	var origEnd int
	if res.end == len(origPos) {
		origEnd = len(tm.PlainText)
	} else {
		origEnd = origPos[res.end]
	}

	logContextMatch(log, in, normDoc[res.start:res.end], res.confidence, true)
	return candidate(in.AnchorID, origStart, origEnd, len(tm.PlainText), StrategyContextSearch, res.confidence)
}

func logContextMatch(log *zap.Logger, in Input, matched string, confidence float64, normalized bool) {
	if log == nil {
		return
	}
	rank := fuzzy.RankMatchNormalizedFold(in.ExactText, matched)
	log.Debug("context search candidate",
		zap.String("anchor_id", in.AnchorID),
		zap.Float64("confidence", confidence),
		zap.Bool("whitespace_normalized", normalized),
		zap.Int("fuzzy_rank", rank),
	)
}

type windowMatch struct {
	start, end int
	confidence float64
}

// scanWindow tries every offset where a window of width windowLen fits in
// doc and returns the highest-scoring one.
func scanWindow(doc, exact, prefix, suffix string, windowLen int) (windowMatch, bool) {
	if windowLen <= 0 || windowLen > len(doc) {
		return windowMatch{}, false
	}

	var best windowMatch
	found := false
	for i := 0; i+windowLen <= len(doc); i++ {
		window := doc[i : i+windowLen]
		textSim := Similarity(window, exact)
		if textSim < 0.7 {
			continue
		}

		prefixStart := i - len(prefix)
		if prefixStart < 0 {
			prefixStart = 0
		}
		actualPrefix := doc[prefixStart:i]

		suffixEnd := i + windowLen + len(suffix)
		if suffixEnd > len(doc) {
			suffixEnd = len(doc)
		}
		actualSuffix := doc[i+windowLen : suffixEnd]

		contextScore := (Similarity(actualPrefix, prefix) + Similarity(actualSuffix, suffix)) / 2
		total := 0.6*textSim + 0.4*contextScore
		if total < 0.5 {
			continue
		}
		if !found || total > best.confidence {
			best = windowMatch{start: i, end: i + windowLen, confidence: total}
			found = true
		}
	}
	return best, found
}

// normalizeWhitespace collapses runs of ASCII whitespace to a single space
// and trims leading/trailing whitespace, operating byte-by-byte so UTF-8
// multi-byte sequences (never matched as whitespace bytes themselves) pass
// through untouched. origPos[i] is the byte offset in the source string that
// produced normalized byte i, letting callers map a match back to the
// original document's coordinates.
func normalizeWhitespace(s string) (normalized string, origPos []int) {
	var out []byte
	inSpace := false
	started := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isASCIISpace(c) {
			if !started {
				continue
			}
			if !inSpace {
				out = append(out, ' ')
				origPos = append(origPos, i)
				inSpace = true
			}
			continue
		}
		started = true
		inSpace = false
		out = append(out, c)
		origPos = append(origPos, i)
	}
	if len(out) > 0 && out[len(out)-1] == ' ' {
		out = out[:len(out)-1]
		origPos = origPos[:len(origPos)-1]
	}
	return string(out), origPos
}

// normalizeWhitespace1 is normalizeWhitespace without the offset map, for
// the anchor strings where no back-mapping is needed.
func normalizeWhitespace1(s string) string {
	normalized, _ := normalizeWhitespace(s)
	return normalized
}

func isASCIISpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	default:
		return false
	}
}
