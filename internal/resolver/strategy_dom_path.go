package resolver

import "github.com/readlark/htmlhl/internal/htmldom"

// resolveDomPath translates the anchor's recorded node paths back through
// the current text map and accepts the result if the substring it lands on
// still resembles the anchor's exact text closely enough (its own bar is
// 0.7; the cascade's acceptance bar for this strategy is usually higher, see
// Thresholds.DomPath).
func resolveDomPath(in Input, tm *htmldom.TextMap) (Result, bool) {
	if !in.HasNodePaths {
		return Result{}, false
	}

	startRec, ok := tm.NodeByPath(in.StartNodePath)
	if !ok {
		return Result{}, false
	}
	endRec, ok := tm.NodeByPath(in.EndNodePath)
	if !ok {
		return Result{}, false
	}

	start := startRec.Start + in.StartNodeInset
	end := endRec.Start + in.EndNodeInset

	res, ok := candidate(in.AnchorID, start, end, len(tm.PlainText), StrategyDomPath, 0)
	if !ok {
		return Result{}, false
	}

	sim := Similarity(tm.PlainText[start:end], in.ExactText)
	if sim < 0.7 {
		return Result{}, false
	}
	res.Confidence = sim
	return res, true
}
