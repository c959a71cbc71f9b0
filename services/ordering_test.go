package services

import (
	"testing"

	"techcity-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankedSale(rank int, ts int64) models.Sale {
	return models.Sale{ID: uuid.New(), SortOrder: rank, Timestamp: ts}
}

func TestPlanReorderMinimalWrites(t *testing.T) {
	a := rankedSale(1, 100)
	b := rankedSale(2, 200)
	c := rankedSale(3, 300)
	current := []models.Sale{a, b, c}

	// [A,B,C] -> [B,A,C]: only A and B change rank
	writes, err := PlanReorder(current, []uuid.UUID{b.ID, a.ID, c.ID})
	require.NoError(t, err)

	require.Len(t, writes, 2)
	assert.Equal(t, RankWrite{SaleID: b.ID, SortOrder: 1}, writes[0])
	assert.Equal(t, RankWrite{SaleID: a.ID, SortOrder: 2}, writes[1])
}

func TestPlanReorderNoChanges(t *testing.T) {
	a := rankedSale(1, 100)
	b := rankedSale(2, 200)

	writes, err := PlanReorder([]models.Sale{a, b}, []uuid.UUID{a.ID, b.ID})
	require.NoError(t, err)
	assert.Empty(t, writes)
}

func TestPlanReorderRanksUnranked(t *testing.T) {
	a := rankedSale(0, 100)
	b := rankedSale(0, 200)

	writes, err := PlanReorder([]models.Sale{a, b}, []uuid.UUID{b.ID, a.ID})
	require.NoError(t, err)
	require.Len(t, writes, 2)
	assert.Equal(t, 1, writes[0].SortOrder)
	assert.Equal(t, 2, writes[1].SortOrder)
}

func TestPlanReorderUnknownID(t *testing.T) {
	a := rankedSale(1, 100)
	_, err := PlanReorder([]models.Sale{a}, []uuid.UUID{uuid.New()})
	var nferr *NotFoundError
	require.ErrorAs(t, err, &nferr)
}

func TestSortSales(t *testing.T) {
	ranked2 := rankedSale(2, 100)
	ranked1 := rankedSale(1, 400)
	unrankedOld := rankedSale(0, 200)
	unrankedNew := rankedSale(0, 300)

	sales := []models.Sale{unrankedNew, ranked2, unrankedOld, ranked1}
	SortSales(sales)

	// ranked block first by rank, then unranked by creation instant
	assert.Equal(t, ranked1.ID, sales[0].ID)
	assert.Equal(t, ranked2.ID, sales[1].ID)
	assert.Equal(t, unrankedOld.ID, sales[2].ID)
	assert.Equal(t, unrankedNew.ID, sales[3].ID)
}
