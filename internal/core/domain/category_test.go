package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/habit-tracker/internal/core/domain"
)

func TestNormalizeCategoryTitle(t *testing.T) {
	got, err := domain.NormalizeCategoryTitle("  Health ")
	require.NoError(t, err)
	assert.Equal(t, "Health", got)

	_, err = domain.NormalizeCategoryTitle(" ")
	assert.ErrorIs(t, err, domain.ErrCategoryTitleEmpty)

	_, err = domain.NormalizeCategoryTitle(strings.Repeat("x", domain.MaxCategoryTitleLen+1))
	assert.ErrorIs(t, err, domain.ErrCategoryTitleTooLong)
}

func TestCatalog(t *testing.T) {
	run := &domain.Tracker{ID: "run", Name: "Run"}
	read := &domain.Tracker{ID: "read", Name: "Read"}

	catalog := domain.NewCatalog([]*domain.Category{
		{Title: "Health", Trackers: []*domain.Tracker{run}},
		{Title: "Study", Trackers: []*domain.Tracker{read}},
		{Title: "Empty"},
	})

	tr, title, err := catalog.Tracker("read")
	require.NoError(t, err)
	assert.Same(t, read, tr)
	assert.Equal(t, "Study", title)

	_, _, err = catalog.Tracker("missing")
	assert.ErrorIs(t, err, domain.ErrTrackerNotFound)

	assert.Len(t, catalog.AllCategories(), 3)

	var nilCatalog *domain.Catalog
	assert.Nil(t, nilCatalog.AllCategories())
	_, _, err = nilCatalog.Tracker("run")
	assert.ErrorIs(t, err, domain.ErrTrackerNotFound)
}
