package markdown

import (
	"testing"
	"time"

	"github.com/rogersnm/dolphin/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestRenderServiceTable(t *testing.T) {
	out := RenderServiceTable([]model.Service{{
		ID:        "1",
		Content:   model.Content{TitleEN: "Web", TitleAR: "ويب"},
		Image:     "https://cdn/a.png",
		UpdatedAt: model.Timestamp{Time: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}})
	assert.Contains(t, out, "Web")
	assert.Contains(t, out, "ويب")
	assert.Contains(t, out, "2026-03-01")
	assert.Contains(t, out, "yes")
}

func TestRenderTables_Empty(t *testing.T) {
	assert.Equal(t, "No services found.", RenderServiceTable(nil))
	assert.Equal(t, "No features found.", RenderFeatureTable(nil))
	assert.Equal(t, "No FAQs found.", RenderFAQTable(nil))
	assert.Equal(t, "No reviews found.", RenderReviewTable(nil))
}

func TestCell_TruncatesRunes(t *testing.T) {
	long := ""
	for i := 0; i < 50; i++ {
		long += "ع"
	}
	got := []rune(cell(long))
	assert.Len(t, got, maxCellWidth)
	assert.Equal(t, '…', got[len(got)-1])
	assert.Equal(t, "short", cell("short"))
}

func TestRenderField_Empty(t *testing.T) {
	assert.Contains(t, RenderField("Email", ""), "-")
}

func TestRenderSections_SkipsEmpty(t *testing.T) {
	out, err := RenderSections([]Section{{Heading: "English", Body: ""}})
	assert.NoError(t, err)
	assert.Empty(t, out)
}
