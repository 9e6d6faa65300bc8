// Package highlight holds the public data types of the durable HTML
// highlighting engine: anchor records, apply results, and the text-map
// projection. The Engine that applies anchors lives in internal/engine;
// this package has no Engine type of its own.
package highlight

import (
	"encoding/json"
	"fmt"
	"time"
)

// Anchor is a durable record describing a previously-made highlight well
// enough to re-locate it in a possibly-changed document. Fields follow a
// flat JSON schema for backward compatibility; Position converts to the
// clearer tagged AnchorPosition variant for internal use.
type Anchor struct {
	ID            string     `json:"id"`
	ArticleID     string     `json:"article_id"`
	StartOffset   int        `json:"start_offset"`
	EndOffset     int        `json:"end_offset"`
	ExactText     string     `json:"exact_text"`
	PrefixContext string     `json:"prefix_context"`
	SuffixContext string     `json:"suffix_context"`
	NoteContent   *string    `json:"note_content"`
	Color         string     `json:"color"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	StartNodePath *string    `json:"start_node_path"`
	StartNodeOffset *int     `json:"start_node_offset"`
	EndNodePath     *string  `json:"end_node_path"`
	EndNodeOffset   *int     `json:"end_node_offset"`
	TextFingerprint *string  `json:"text_fingerprint"`
	SchemaVersion   int      `json:"schema_version"`
}

// anchorJSON mirrors Anchor but makes SchemaVersion optional on decode so
// it can default to 1 when the key is absent.
type anchorJSON Anchor

// UnmarshalJSON decodes an anchor, reporting which field was invalid, and
// defaults schema_version to 1 when the key is absent (zero value).
func (a *Anchor) UnmarshalJSON(data []byte) error {
	var raw anchorJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode anchor: %w", err)
	}
	if raw.SchemaVersion == 0 {
		raw.SchemaVersion = 1
	}
	*a = Anchor(raw)
	return nil
}

// ToJSON serializes the anchor using its flat schema.
func (a Anchor) ToJSON() ([]byte, error) {
	return json.Marshal(a)
}

// FromJSON parses a single anchor from its flat JSON schema.
func FromJSON(data []byte) (Anchor, error) {
	var a Anchor
	err := json.Unmarshal(data, &a)
	return a, err
}

// Equal compares anchors by id alone, deliberately: two anchors with the
// same id but different field values compare equal. This suits set/map
// membership; use a field-by-field comparison if you need to diff two
// versions of the same anchor.
func (a Anchor) Equal(other Anchor) bool {
	return a.ID == other.ID
}

// PositionKind distinguishes a v1 anchor (offset + context only) from a v2
// anchor (offset + context plus a recorded DOM path).
type PositionKind string

const (
	PositionV1 PositionKind = "v1"
	PositionV2 PositionKind = "v2"
)

// AnchorPosition is the tagged-variant view of an anchor's location data,
// clearer to operate on than Anchor's flat, nullable-field JSON shape.
type AnchorPosition struct {
	Kind PositionKind

	StartOffset   int
	EndOffset     int
	ExactText     string
	PrefixContext string
	SuffixContext string

	// Populated only when Kind == PositionV2.
	StartNodePath   string
	StartNodeOffset int
	EndNodePath     string
	EndNodeOffset   int
	Fingerprint     string
}

// Position converts the anchor's flat, nullable fields into the tagged
// variant. An anchor is v2 only when all four of StartNodePath,
// StartNodeOffset, EndNodePath, and EndNodeOffset are present (and the
// paths non-empty); a partially-populated set of v2 fields is treated as
// v1 rather than silently defaulting a missing offset to 0.
func (a Anchor) Position() AnchorPosition {
	p := AnchorPosition{
		Kind:          PositionV1,
		StartOffset:   a.StartOffset,
		EndOffset:     a.EndOffset,
		ExactText:     a.ExactText,
		PrefixContext: a.PrefixContext,
		SuffixContext: a.SuffixContext,
	}
	if a.StartNodePath == nil || a.EndNodePath == nil ||
		a.StartNodeOffset == nil || a.EndNodeOffset == nil ||
		*a.StartNodePath == "" || *a.EndNodePath == "" {
		return p
	}
	p.Kind = PositionV2
	p.StartNodePath = *a.StartNodePath
	p.EndNodePath = *a.EndNodePath
	p.StartNodeOffset = *a.StartNodeOffset
	p.EndNodeOffset = *a.EndNodeOffset
	if a.TextFingerprint != nil {
		p.Fingerprint = *a.TextFingerprint
	}
	return p
}
