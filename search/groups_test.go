package search

import (
	"testing"

	"github.com/poiesic/labsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_Groups(t *testing.T) {
	idx := loadFixture(t)

	groups := idx.Groups()
	labels := make([]core.Category, len(groups))
	for i, g := range groups {
		labels[i] = g.Category
	}
	assert.Equal(t, []core.Category{
		"Analyses hormonales",
		"Analyses sanguines",
		"Examens généraux",
		"Fer",
		"Sérologies",
		"Vitamines",
	}, labels)

	require.Len(t, groups[1].Records, 2)
	assert.Equal(t, []string{"Glycémie à jeun", "Hémoglobine"}, names(groups[1].Records))

	total := 0
	for _, g := range groups {
		total += len(g.Records)
	}
	assert.Equal(t, idx.Len(), total)
}

func TestIndex_GroupsIsCopy(t *testing.T) {
	idx := loadFixture(t)
	groups := idx.Groups()
	groups[0].Records[0].Name = "changed"
	assert.NotEqual(t, "changed", idx.Groups()[0].Records[0].Name)
}

func TestIndex_TopCategories(t *testing.T) {
	idx := loadFixture(t)

	top := idx.TopCategories(2)
	require.Len(t, top, 2)
	assert.Equal(t, CategoryCount{Category: "Analyses sanguines", Count: 2}, top[0])
	assert.Equal(t, CategoryCount{Category: "Analyses hormonales", Count: 1}, top[1])

	all := idx.TopCategories(0)
	assert.Len(t, all, 6)
	assert.Equal(t, core.Category("Analyses sanguines"), all[0].Category)

	assert.Len(t, idx.TopCategories(100), 6)
}
