package engine

import (
	"github.com/readlark/htmlhl/internal/htmldom"
	"github.com/readlark/htmlhl/internal/resolver"
	"github.com/readlark/htmlhl/pkg/highlight"
)

// toResolverInput translates the public, flat-schema Anchor into the
// cascade's own Input shape via its tagged AnchorPosition view.
func toResolverInput(a highlight.Anchor) resolver.Input {
	pos := a.Position()
	in := resolver.Input{
		AnchorID:      a.ID,
		ExactText:     pos.ExactText,
		PrefixContext: pos.PrefixContext,
		SuffixContext: pos.SuffixContext,
		StartOffset:   pos.StartOffset,
	}
	if pos.Kind == highlight.PositionV2 {
		in.HasNodePaths = true
		in.StartNodePath = pos.StartNodePath
		in.StartNodeInset = pos.StartNodeOffset
		in.EndNodePath = pos.EndNodePath
		in.EndNodeInset = pos.EndNodeOffset
	}
	return in
}

// toPublicTextMap strips a htmldom.TextMap down to the position-query-only
// projection pkg/highlight exposes, safe to hand to a caller after the
// originating Apply/GetTextMap call has returned.
func toPublicTextMap(tm *htmldom.TextMap) *highlight.TextMap {
	out := &highlight.TextMap{PlainText: tm.PlainText, Nodes: make([]highlight.TextNodeInfo, len(tm.Nodes))}
	for i, rec := range tm.Nodes {
		out.Nodes[i] = highlight.TextNodeInfo{
			Path:  rec.Path.String(),
			Start: rec.Start,
			End:   rec.End,
			Text:  rec.Text,
		}
	}
	return out
}
