package resolver

import (
	"testing"

	"github.com/readlark/htmlhl/internal/htmldom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarityEdgeCases(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 0.0, Similarity("abc", ""))
	assert.Equal(t, 0.0, Similarity("", "abc"))
	assert.Equal(t, 1.0, Similarity("same text", "same text"))
	assert.InDelta(t, 0.8, Similarity("gamma", "gammx"), 1e-9)
}

func TestResolveDomPathSuccess(t *testing.T) {
	root, err := htmldom.Parse(`<p>Alpha beta.</p><p>Gamma delta.</p>`)
	require.NoError(t, err)
	tm := htmldom.BuildTextMap(root, "html-hl")

	rec := tm.Nodes[1] // "Gamma delta."
	in := Input{
		AnchorID:       "a1",
		ExactText:      "Gamma",
		HasNodePaths:   true,
		StartNodePath:  rec.Path.String(),
		StartNodeInset: 0,
		EndNodePath:    rec.Path.String(),
		EndNodeInset:   5,
	}

	res := Resolve(in, tm, DefaultThresholds(), nil)
	assert.Equal(t, StrategyDomPath, res.Strategy)
	assert.Equal(t, 1.0, res.Confidence)
	assert.Equal(t, "Gamma", tm.PlainText[res.Start:res.End])
}

func TestResolveDomPathMissingPathFallsThroughToTextPosition(t *testing.T) {
	root, err := htmldom.Parse(`<p>Alpha beta.</p><p>Gamma delta.</p>`)
	require.NoError(t, err)
	tm := htmldom.BuildTextMap(root, "html-hl")

	in := Input{
		AnchorID:      "a2",
		ExactText:     "Gamma",
		HasNodePaths:  true,
		StartNodePath: "/body/p[9]/text()[0]", // does not exist
		EndNodePath:   "/body/p[9]/text()[0]",
	}

	res := Resolve(in, tm, DefaultThresholds(), nil)
	assert.Equal(t, StrategyTextPosition, res.Strategy)
	assert.Equal(t, "Gamma", tm.PlainText[res.Start:res.End])
}

func TestResolveTextPositionPrefixSuffixExactMatch(t *testing.T) {
	tm := &htmldom.TextMap{PlainText: "one two three four"}
	in := Input{
		AnchorID:      "a3",
		ExactText:     "three",
		PrefixContext: "two ",
		SuffixContext: " four",
	}

	res := Resolve(in, tm, DefaultThresholds(), nil)
	assert.Equal(t, StrategyTextPosition, res.Strategy)
	assert.Equal(t, 1.0, res.Confidence)
	assert.Equal(t, "three", tm.PlainText[res.Start:res.End])
}

func TestResolveTextPositionMultipleOccurrencesPicksClosest(t *testing.T) {
	tm := &htmldom.TextMap{PlainText: "cat sat on the cat mat near the cat door"}
	// three occurrences of "cat" at byte offsets 0, 15, 32; anchor recalls
	// the middle one. The contexts occur nowhere in the text, so patterns
	// 1-3 miss and the exact-text-alone pattern decides.
	in := Input{
		AnchorID:      "a4",
		ExactText:     "cat",
		PrefixContext: "zzz ",
		SuffixContext: " zzz",
		StartOffset:   15,
	}

	res := Resolve(in, tm, DefaultThresholds(), nil)
	assert.Equal(t, StrategyTextPosition, res.Strategy)
	assert.Equal(t, 15, res.Start)
	assert.Equal(t, 0.7, res.Confidence)
}

func TestResolveContextSearchFuzzyTypo(t *testing.T) {
	tm := &htmldom.TextMap{PlainText: "Alpha beta gamma delta epsilon."}
	in := Input{
		AnchorID:      "a5",
		ExactText:     "gammx", // typo vs actual "gamma"
		PrefixContext: "beta ",
		SuffixContext: " delta",
		StartOffset:   11,
	}

	res := Resolve(in, tm, DefaultThresholds(), nil)
	require.Equal(t, StrategyContextSearch, res.Strategy)
	assert.Equal(t, "gamma", tm.PlainText[res.Start:res.End])
	assert.InDelta(t, 0.88, res.Confidence, 1e-9)
}

func TestResolveOrphanWhenNothingMatches(t *testing.T) {
	tm := &htmldom.TextMap{PlainText: "completely unrelated content here"}
	in := Input{
		AnchorID:      "a7",
		ExactText:     "nonexistent phrase",
		PrefixContext: "xyz",
		SuffixContext: "xyz",
		StartOffset:   0,
	}

	res := Resolve(in, tm, DefaultThresholds(), nil)
	assert.True(t, res.Orphan())
	assert.Equal(t, StrategyFailed, res.Strategy)
}

func TestNormalizeWhitespaceMapsBackToOriginalOffsets(t *testing.T) {
	normalized, origPos := normalizeWhitespace("  a    b  c ")
	assert.Equal(t, "a b c", normalized)
	require.Len(t, origPos, len(normalized))
	for i, b := range []byte(normalized) {
		if b == ' ' {
			continue
		}
		assert.Equal(t, b, "  a    b  c "[origPos[i]])
	}
}
