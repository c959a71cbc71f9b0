// services/ordering.go
package services

import (
	"context"
	"math"
	"sort"

	"techcity-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderingService maintains the per-date manual display ranking of a
// transaction list. sortOrder is 1-based; 0 means unranked.
type OrderingService struct {
	db *gorm.DB
}

func NewOrderingService(db *gorm.DB) *OrderingService {
	return &OrderingService{db: db}
}

func sortKey(rank int) float64 {
	if rank == 0 {
		return math.Inf(1)
	}
	return float64(rank)
}

// SortSales orders a same-day list in place: manually ranked items
// first by rank, unranked ones after them by creation instant. A
// freshly inserted sale (rank 0) therefore always lands after the
// manually ordered block.
func SortSales(sales []models.Sale) {
	sort.SliceStable(sales, func(i, j int) bool {
		ki, kj := sortKey(sales[i].SortOrder), sortKey(sales[j].SortOrder)
		if ki != kj {
			return ki < kj
		}
		return sales[i].Timestamp < sales[j].Timestamp
	})
}

// RankWrite is one persisted rank change.
type RankWrite struct {
	SaleID    uuid.UUID `json:"saleId"`
	SortOrder int       `json:"sortOrder"`
}

// PlanReorder assigns 1-based ranks following the desired id order and
// returns only the writes whose rank actually changed. Keeping the
// write set minimal keeps concurrent reorders from trampling rows they
// did not touch.
func PlanReorder(current []models.Sale, desiredIDs []uuid.UUID) ([]RankWrite, error) {
	ranks := make(map[uuid.UUID]int, len(current))
	for _, sale := range current {
		ranks[sale.ID] = sale.SortOrder
	}

	var writes []RankWrite
	for i, id := range desiredIDs {
		existing, ok := ranks[id]
		if !ok {
			return nil, &NotFoundError{Resource: "sale", ID: id.String()}
		}
		want := i + 1
		if existing != want {
			writes = append(writes, RankWrite{SaleID: id, SortOrder: want})
		}
	}
	return writes, nil
}

// Reorder loads the date's list, diffs it against the desired order
// and persists only the changed ranks.
func (s *OrderingService) Reorder(ctx context.Context, category, date string, desiredIDs []uuid.UUID) ([]RankWrite, error) {
	var current []models.Sale
	err := s.db.WithContext(ctx).
		Select("id", "sort_order", "timestamp").
		Where("category = ? AND date = ?", category, date).
		Find(&current).Error
	if err != nil {
		return nil, &StoreError{Op: "load sales for reorder", Err: err}
	}

	writes, err := PlanReorder(current, desiredIDs)
	if err != nil {
		return nil, err
	}

	for _, w := range writes {
		err := s.db.WithContext(ctx).Model(&models.Sale{}).
			Where("id = ?", w.SaleID).
			Update("sort_order", w.SortOrder).Error
		if err != nil {
			return nil, &StoreError{Op: "persist rank", Err: err}
		}
	}
	return writes, nil
}
