// Package resolver implements the three-strategy anchor resolution cascade:
// DOM path match, text position match, and fuzzy context search. Each
// strategy is tried in order and the cascade stops at the first one whose
// confidence clears its own acceptance threshold; an anchor that clears no
// threshold resolves as an orphan.
package resolver

// Input is the subset of an anchor's fields the cascade needs. It is
// independent of pkg/highlight's Anchor type so this package stays free of
// the serialization concerns that live there; callers translate.
type Input struct {
	AnchorID string

	ExactText     string
	PrefixContext string
	SuffixContext string

	// StartOffset is the plain-text position recorded when the anchor was
	// created. Strategy B uses it to break ties among repeated occurrences
	// of ExactText.
	StartOffset int

	// HasNodePaths is true for v2 anchors that recorded a DOM path at
	// creation time. Strategy A is skipped entirely when false.
	HasNodePaths   bool
	StartNodePath  string
	StartNodeInset int
	EndNodePath    string
	EndNodeInset   int
}

// Strategy names the cascade member that produced a Result.
type Strategy string

const (
	StrategyDomPath       Strategy = "dom_path"
	StrategyTextPosition  Strategy = "text_position"
	StrategyContextSearch Strategy = "context_search"
	StrategyFailed        Strategy = "failed"
)

// Result is the outcome of resolving one anchor against a document's text
// map: either a located [Start, End) range with the strategy and confidence
// that found it, or an orphan (Strategy == StrategyFailed).
type Result struct {
	AnchorID   string
	Start      int
	End        int
	Strategy   Strategy
	Confidence float64
}

// Orphan reports whether r represents a failed resolution.
func (r Result) Orphan() bool {
	return r.Strategy == StrategyFailed
}

func failed(id string) Result {
	return Result{AnchorID: id, Start: -1, End: -1, Strategy: StrategyFailed, Confidence: 0}
}

// Thresholds holds the per-strategy acceptance bars. Note that strategy A's
// own internal success bar (0.7) is lower than the cascade's acceptance bar
// for it (DomPath, normally 0.9): a DOM-path match that scores between the
// two still falls through to strategy B rather than being accepted outright.
type Thresholds struct {
	DomPath       float64
	TextPosition  float64
	ContextSearch float64
}

// DefaultThresholds returns the thresholds named in the resolution spec.
func DefaultThresholds() Thresholds {
	return Thresholds{DomPath: 0.9, TextPosition: 0.7, ContextSearch: 0.5}
}

func candidate(id string, start, end, textLen int, strat Strategy, confidence float64) (Result, bool) {
	if start < 0 || end > textLen || start >= end {
		return Result{}, false
	}
	return Result{AnchorID: id, Start: start, End: end, Strategy: strat, Confidence: confidence}, true
}
