package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"remotehirehub/ingest-service/internal/model"
	"remotehirehub/ingest-service/internal/normalize"
)

func TestCategoryDetector_PicksHighestScore(t *testing.T) {
	d := normalize.NewCategoryDetector([]model.Category{
		{ID: "cat-dev", Slug: "software-development"},
		{ID: "cat-design", Slug: "design-creative"},
	})

	got := d.Detect("Senior Backend Engineer", "<p>We need a developer to write software in python</p>")
	assert.Equal(t, "cat-dev", got)
}

func TestCategoryDetector_TieKeepsListOrder(t *testing.T) {
	text := "marketing and sales role"

	first := normalize.NewCategoryDetector([]model.Category{
		{ID: "cat-marketing", Slug: "marketing-growth"},
		{ID: "cat-sales", Slug: "sales-business"},
	})
	assert.Equal(t, "cat-marketing", first.Detect(text, ""))

	// Same score, reversed order: the earlier category still wins.
	reversed := normalize.NewCategoryDetector([]model.Category{
		{ID: "cat-sales", Slug: "sales-business"},
		{ID: "cat-marketing", Slug: "marketing-growth"},
	})
	assert.Equal(t, "cat-sales", reversed.Detect(text, ""))
}

func TestCategoryDetector_NoMatches(t *testing.T) {
	d := normalize.NewCategoryDetector([]model.Category{
		{ID: "cat-finance", Slug: "finance-accounting"},
	})
	assert.Equal(t, "", d.Detect("Ship Captain", "sailing the high seas"))
}

func TestCategoryDetector_UnknownSlugNeverMatches(t *testing.T) {
	d := normalize.NewCategoryDetector([]model.Category{
		{ID: "cat-x", Slug: "not-in-keyword-table"},
	})
	assert.Equal(t, "", d.Detect("developer engineer software", ""))
}

func TestCategoryDetector_NilAndEmpty(t *testing.T) {
	var d *normalize.CategoryDetector
	assert.Equal(t, "", d.Detect("developer", "software"))

	empty := normalize.NewCategoryDetector(nil)
	assert.Equal(t, "", empty.Detect("developer", "software"))
}
