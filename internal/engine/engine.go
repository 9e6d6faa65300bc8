// Package engine is the pipeline's façade: it orchestrates parsing, marker
// stripping, text-map construction, anchor resolution, overlap filtering,
// and range application into three operations (Apply, GetTextMap,
// ExtractPlainText) over pkg/highlight's anchor, result, and text-map types.
package engine

import (
	"fmt"
	"sort"

	"github.com/readlark/htmlhl/internal/applicator"
	"github.com/readlark/htmlhl/internal/htmldom"
	"github.com/readlark/htmlhl/internal/palette"
	"github.com/readlark/htmlhl/internal/resolver"
	"github.com/readlark/htmlhl/pkg/highlight"
	"go.uber.org/zap"
)

// Engine holds the configuration, palette, logger, and cache a caller
// constructs once and reuses across calls, rather than relying on
// process-wide global state.
type Engine struct {
	cfg     Config
	palette *palette.Palette
	log     *zap.Logger
	cache   *textMapCache
}

// New constructs an Engine, loading the palette override file if
// cfg.PaletteOverridePath is set. A nil logger is replaced with a no-op one.
func New(cfg Config, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	pal := palette.New()
	if cfg.PaletteOverridePath != "" {
		if err := pal.LoadOverride(cfg.PaletteOverridePath); err != nil {
			return nil, fmt.Errorf("load palette override: %w", err)
		}
	}
	return &Engine{
		cfg:     cfg,
		palette: pal,
		log:     log,
		cache:   newTextMapCache(cfg.CacheCapacity, log),
	}, nil
}

// Apply runs the full pipeline: parse, strip prior markers, build the text
// map, resolve every anchor, overlap-filter the resolved set, apply each
// surviving range in reverse document order, and serialize.
func (e *Engine) Apply(htmlInput string, anchors []highlight.Anchor, articleID string, includeTextMap bool) (highlight.Result, error) {
	if len(anchors) == 0 {
		result := highlight.Result{HTML: htmlInput, Applied: 0}
		if includeTextMap {
			if tm, err := e.buildStrippedMap(htmlInput, ""); err == nil {
				result.TextMap = toPublicTextMap(tm)
			}
		}
		return result, nil
	}

	root, err := htmldom.Parse(htmlInput)
	if err != nil {
		return highlight.Result{}, fmt.Errorf("parse html: %w", err)
	}
	if err := htmldom.RemoveHighlights(root, e.cfg.MarkerTag); err != nil {
		return highlight.Result{}, fmt.Errorf("strip prior markers: %w", err)
	}
	tm := htmldom.BuildTextMap(root, e.cfg.MarkerTag)
	e.cache.set(articleID, tm)

	type resolved struct {
		anchor highlight.Anchor
		res    resolver.Result
	}
	var survivors []resolved
	var orphanIDs []string
	for _, a := range anchors {
		res := resolver.Resolve(toResolverInput(a), tm, e.cfg.Thresholds, e.log)
		if res.Orphan() {
			orphanIDs = append(orphanIDs, a.ID)
			continue
		}
		survivors = append(survivors, resolved{anchor: a, res: res})
	}

	if len(survivors) == 0 {
		html, err := htmldom.Serialize(root)
		if err != nil {
			return highlight.Result{}, fmt.Errorf("serialize html: %w", err)
		}
		result := highlight.Result{HTML: html, Applied: 0, OrphanedIDs: orphanIDs}
		if includeTextMap {
			result.TextMap = toPublicTextMap(tm)
		}
		return result, nil
	}

	// Overlap filter: stable sort ascending by start, greedy first-wins.
	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].res.Start < survivors[j].res.Start
	})
	kept := survivors[:0:0]
	for _, s := range survivors {
		if len(kept) == 0 || s.res.Start >= kept[len(kept)-1].res.End {
			kept = append(kept, s)
		} else {
			e.log.Debug("anchor dropped for overlapping an earlier range",
				zap.String("anchor_id", s.anchor.ID),
				zap.Int("start", s.res.Start),
				zap.Int("end", s.res.End),
			)
		}
	}

	// Reverse document order for application, so earlier wraps never shift
	// a later range's position.
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].res.Start > kept[j].res.Start
	})

	applied := 0
	for _, s := range kept {
		rgb := e.palette.Resolve(s.anchor.Color)
		if applicator.Apply(tm, s.res.Start, s.res.End, e.cfg.MarkerTag, s.anchor.ID, applicator.RGB(rgb)) {
			applied++
		}
	}

	htmlOut, err := htmldom.Serialize(root)
	if err != nil {
		return highlight.Result{}, fmt.Errorf("serialize html: %w", err)
	}

	strategyCounts := map[resolver.Strategy]int{}
	for _, s := range kept {
		strategyCounts[s.res.Strategy]++
	}
	e.log.Info("apply resolved anchors",
		zap.Int("total", len(anchors)),
		zap.Int("applied", applied),
		zap.Int("orphaned", len(orphanIDs)),
		zap.Int("dropped_for_overlap", len(survivors)-len(kept)),
		zap.Int("via_dom_path", strategyCounts[resolver.StrategyDomPath]),
		zap.Int("via_text_position", strategyCounts[resolver.StrategyTextPosition]),
		zap.Int("via_context_search", strategyCounts[resolver.StrategyContextSearch]),
	)

	result := highlight.Result{HTML: htmlOut, Applied: applied, OrphanedIDs: orphanIDs}
	if includeTextMap {
		result.TextMap = toPublicTextMap(tm)
	}
	return result, nil
}

// GetTextMap parses, strips prior markers, builds the text map, and caches
// it under articleID if one is given.
func (e *Engine) GetTextMap(htmlInput string, articleID string) (*highlight.TextMap, error) {
	tm, err := e.buildStrippedMap(htmlInput, articleID)
	if err != nil {
		return nil, err
	}
	return toPublicTextMap(tm), nil
}

// ExtractPlainText parses, strips prior markers, and builds the text map,
// returning only its plain-text projection, so a highlighted document
// projects to the same plain text as its unhighlighted source. Unlike
// GetTextMap it never caches.
func (e *Engine) ExtractPlainText(htmlInput string) (string, error) {
	tm, err := e.buildStrippedMap(htmlInput, "")
	if err != nil {
		return "", err
	}
	return tm.PlainText, nil
}

// CachedTextMap returns the text map cached under articleID, if any, without
// rebuilding it. As with GetTextMap's result, the returned map is safe for
// position queries only, never for driving DOM mutation.
func (e *Engine) CachedTextMap(articleID string) (*highlight.TextMap, bool) {
	tm, ok := e.cache.get(articleID)
	if !ok {
		return nil, false
	}
	return toPublicTextMap(tm), true
}

// ClearCache evicts one article's cached text map.
func (e *Engine) ClearCache(articleID string) {
	e.cache.clear(articleID)
}

// ClearAllCache evicts every cached text map.
func (e *Engine) ClearAllCache() {
	e.cache.clearAll()
}

func (e *Engine) buildStrippedMap(htmlInput, articleID string) (*htmldom.TextMap, error) {
	root, err := htmldom.Parse(htmlInput)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	if err := htmldom.RemoveHighlights(root, e.cfg.MarkerTag); err != nil {
		return nil, fmt.Errorf("strip prior markers: %w", err)
	}
	tm := htmldom.BuildTextMap(root, e.cfg.MarkerTag)
	e.cache.set(articleID, tm)
	return tm, nil
}
