package highlight

// Result is the outcome of applying a set of anchors to a document.
type Result struct {
	HTML         string
	Applied      int
	OrphanedIDs  []string // preserves input order
	TextMap      *TextMap // non-nil only if requested
}

// OrphanedCount is the number of anchors that failed to resolve.
func (r Result) OrphanedCount() int {
	return len(r.OrphanedIDs)
}

// AllApplied reports whether all totalAnchors anchors were applied: none
// orphaned and none dropped by overlap resolution.
func (r Result) AllApplied(totalAnchors int) bool {
	return r.Applied == totalAnchors
}

// Total is Applied plus the orphan count. Anchors dropped by overlap
// resolution are counted in neither, so Total is less than the number of
// anchors Apply was given whenever any were dropped.
func (r Result) Total() int {
	return r.Applied + len(r.OrphanedIDs)
}

// TextMap is the public projection of a document's plain-text map: enough
// for position queries (plain-text offset <-> node path) without exposing
// the underlying DOM tree. A cached map may be used only for position
// queries, never for mutation.
type TextMap struct {
	PlainText string
	Nodes     []TextNodeInfo
}

// TextNodeInfo describes one addressable text node's position in the
// plain-text projection.
type TextNodeInfo struct {
	Path  string
	Start int
	End   int
	Text  string
}
