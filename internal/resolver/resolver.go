package resolver

import (
	"github.com/readlark/htmlhl/internal/htmldom"
	"go.uber.org/zap"
)

// Resolve runs the three-strategy cascade against the document's text map.
// A strategy that returns a result but whose confidence misses the
// corresponding threshold is treated the same as a strategy that found
// nothing: the cascade falls through to the next one. An anchor that
// exhausts all three strategies resolves as an orphan.
func Resolve(in Input, tm *htmldom.TextMap, th Thresholds, log *zap.Logger) Result {
	if res, ok := resolveDomPath(in, tm); ok && res.Confidence >= th.DomPath {
		logAccepted(log, res)
		return res
	}
	if res, ok := resolveTextPosition(in, tm); ok && res.Confidence >= th.TextPosition {
		logAccepted(log, res)
		return res
	}
	if res, ok := resolveContextSearch(in, tm, log); ok && res.Confidence >= th.ContextSearch {
		logAccepted(log, res)
		return res
	}
	if log != nil {
		log.Debug("anchor resolution failed, orphaned", zap.String("anchor_id", in.AnchorID))
	}
	return failed(in.AnchorID)
}

// logAccepted records which strategy resolved an anchor and at what
// confidence, the per-anchor detail half of resolution observability (the
// Info-level summary is the caller's responsibility once a whole batch is
// resolved).
func logAccepted(log *zap.Logger, res Result) {
	if log == nil {
		return
	}
	log.Debug("anchor resolved",
		zap.String("anchor_id", res.AnchorID),
		zap.String("strategy", string(res.Strategy)),
		zap.Float64("confidence", res.Confidence),
	)
}

// ResolveAll resolves every anchor in order, returning one Result per input
// anchor in the same order.
func ResolveAll(inputs []Input, tm *htmldom.TextMap, th Thresholds, log *zap.Logger) []Result {
	out := make([]Result, len(inputs))
	for i, in := range inputs {
		out[i] = Resolve(in, tm, th, log)
	}
	return out
}
