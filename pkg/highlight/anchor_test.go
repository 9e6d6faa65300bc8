package highlight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v1Anchor() Anchor {
	return Anchor{
		ID:            "anchor-1",
		ArticleID:     "article-1",
		StartOffset:   10,
		EndOffset:     18,
		ExactText:     "powerful",
		PrefixContext: "is a ",
		SuffixContext: " engine",
		Color:         "yellow",
		CreatedAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		SchemaVersion: 1,
	}
}

func v2Anchor() Anchor {
	a := v1Anchor()
	a.ID = "anchor-2"
	path := "/body/p[0]/text()[0]"
	offset := 10
	endOffset := 18
	fp := "abc123"
	a.StartNodePath = &path
	a.StartNodeOffset = &offset
	a.EndNodePath = &path
	a.EndNodeOffset = &endOffset
	a.TextFingerprint = &fp
	a.SchemaVersion = 2
	return a
}

func TestAnchorRoundTripV1(t *testing.T) {
	a := v1Anchor()
	data, err := a.ToJSON()
	require.NoError(t, err)

	back, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, a, back)
}

func TestAnchorRoundTripV2(t *testing.T) {
	a := v2Anchor()
	data, err := a.ToJSON()
	require.NoError(t, err)

	back, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, a, back)
}

func TestSchemaVersionDefaultsWhenAbsent(t *testing.T) {
	raw := `{
		"id": "a1", "article_id": "art1", "start_offset": 0, "end_offset": 4,
		"exact_text": "text", "prefix_context": "", "suffix_context": "",
		"note_content": null, "color": "yellow",
		"created_at": "2026-01-01T00:00:00Z", "updated_at": "2026-01-01T00:00:00Z",
		"start_node_path": null, "start_node_offset": null,
		"end_node_path": null, "end_node_offset": null,
		"text_fingerprint": null
	}`
	a, err := FromJSON([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, 1, a.SchemaVersion)
}

func TestEqualIsByIDOnly(t *testing.T) {
	a := v1Anchor()
	b := v1Anchor()
	b.ExactText = "something else entirely"
	assert.True(t, a.Equal(b)) // same id, different fields -- still equal
	c := v1Anchor()
	c.ID = "different"
	assert.False(t, a.Equal(c))
}

func TestPositionV1(t *testing.T) {
	pos := v1Anchor().Position()
	assert.Equal(t, PositionV1, pos.Kind)
	assert.Equal(t, "powerful", pos.ExactText)
}

func TestPositionV2(t *testing.T) {
	pos := v2Anchor().Position()
	assert.Equal(t, PositionV2, pos.Kind)
	assert.Equal(t, "/body/p[0]/text()[0]", pos.StartNodePath)
	assert.Equal(t, 10, pos.StartNodeOffset)
	assert.Equal(t, "abc123", pos.Fingerprint)
}

func TestPositionFallsBackToV1WhenAnOffsetIsMissing(t *testing.T) {
	a := v2Anchor()
	a.EndNodeOffset = nil
	pos := a.Position()
	assert.Equal(t, PositionV1, pos.Kind)
}
