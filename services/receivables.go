// services/receivables.go
package services

import (
	"context"
	"errors"
	"sort"

	"techcity-backend/models"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReceivableItem is the read-only projection of an unpaid financed
// sale. It is rebuilt on every query and never persisted.
type ReceivableItem struct {
	SaleID          uuid.UUID `json:"saleId"`
	Category        string    `json:"category"`
	DeviceID        string    `json:"deviceId"`
	Date            string    `json:"date"`
	Timestamp       int64     `json:"timestamp"`
	TransactionType string    `json:"transactionType"`
	CustomerName    string    `json:"customerName,omitempty"`

	FinalPrice       float64 `json:"finalPrice"`
	Downpayment      float64 `json:"downpayment"`
	Balance          float64 `json:"balance"`
	BrandZeroSubsidy float64 `json:"brandZeroSubsidy,omitempty"`
}

// InHouse reports whether the item needs the installment-ledger payment
// path instead of the bulk settle flip.
func (r ReceivableItem) InHouse() bool {
	return r.TransactionType == models.TransactionInHouse
}

// ReceivablesService surfaces unpaid balances across both item
// categories and settles them.
type ReceivablesService struct {
	db *gorm.DB
}

func NewReceivablesService(db *gorm.DB) *ReceivablesService {
	return &ReceivablesService{db: db}
}

var financedTypes = []string{models.TransactionHC, models.TransactionSkyro, models.TransactionInHouse}

// ListReceivables fetches unpaid financed sales from both categories in
// parallel and merges them newest-first.
func (s *ReceivablesService) ListReceivables(ctx context.Context) ([]ReceivableItem, error) {
	var device, accessory []models.Sale

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.fetchCategory(gctx, models.CategoryDevice, &device)
	})
	g.Go(func() error {
		return s.fetchCategory(gctx, models.CategoryAccessory, &accessory)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]ReceivableItem, 0, len(device)+len(accessory))
	for _, sale := range append(device, accessory...) {
		if item, ok := buildReceivable(sale); ok {
			items = append(items, item)
		}
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Timestamp > items[j].Timestamp })
	return items, nil
}

func (s *ReceivablesService) fetchCategory(ctx context.Context, category string, out *[]models.Sale) error {
	err := s.db.WithContext(ctx).
		Where("category = ? AND status = ? AND transaction_type IN ?", category, models.StatusCompleted, financedTypes).
		Order("timestamp DESC").
		Find(out).Error
	if err != nil {
		return &StoreError{Op: "list " + category + " receivables", Err: err}
	}
	return nil
}

// buildReceivable projects a sale into a ReceivableItem, dropping sales
// whose balance is already settled.
func buildReceivable(sale models.Sale) (ReceivableItem, bool) {
	item := ReceivableItem{
		SaleID:          sale.ID,
		Category:        sale.Category,
		DeviceID:        sale.DeviceID,
		Date:            sale.Date,
		Timestamp:       sale.Timestamp,
		TransactionType: sale.TransactionType,
		FinalPrice:      sale.FinalPrice,
	}

	switch sale.TransactionType {
	case models.TransactionHC, models.TransactionSkyro:
		plan := sale.InstallmentDetails()
		if plan == nil || plan.IsBalancePaid {
			return ReceivableItem{}, false
		}
		item.Downpayment = plan.DownpaymentAmount
		item.Balance = plan.Balance
		item.BrandZeroSubsidy = plan.BrandZeroSubsidy
		return item, true

	case models.TransactionInHouse:
		plan := sale.InHouseInstallment
		if plan == nil || plan.IsBalancePaid {
			return ReceivableItem{}, false
		}
		item.CustomerName = plan.CustomerName
		item.Downpayment = plan.DownpaymentAmount
		item.Balance = DerivedRemaining(&sale)
		return item, true
	}
	return ReceivableItem{}, false
}

// ValidateSelection enforces the cross-type exclusivity rule: any
// number of HC/Skyro items together, or exactly one in-house item
// alone. A violating attempt is rejected so the caller can revert it;
// it is a notice, not a hard failure.
func ValidateSelection(current []ReceivableItem, next ReceivableItem) error {
	if next.InHouse() {
		if len(current) > 0 {
			return &ValidationError{Field: "selection", Reason: "an in-house installment must be selected on its own"}
		}
		return nil
	}
	for _, item := range current {
		if item.InHouse() {
			return &ValidationError{Field: "selection", Reason: "cannot mix financed items with an in-house installment"}
		}
	}
	return nil
}

// SettlementResult reports the outcome for one sale in a bulk settle.
type SettlementResult struct {
	SaleID uuid.UUID `json:"saleId"`
	OK     bool      `json:"ok"`
	Error  string    `json:"error,omitempty"`
}

// BulkResult is the per-item outcome list of a best-effort batch.
type BulkResult struct {
	Results      []SettlementResult `json:"results"`
	SuccessCount int                `json:"successCount"`
	FailCount    int                `json:"failCount"`
}

// BulkMarkPaid flips isBalancePaid on each selected HC/Skyro sale.
// Each document update is independent: partial failures are counted
// and reported, never rolled back as a unit. In-house sales are
// rejected here; their settlement goes through RecordPayment.
func (s *ReceivablesService) BulkMarkPaid(ctx context.Context, ids []uuid.UUID) BulkResult {
	var out BulkResult
	for _, id := range ids {
		res := SettlementResult{SaleID: id, OK: true}
		if err := s.markPaid(ctx, id); err != nil {
			res.OK = false
			res.Error = err.Error()
			out.FailCount++
		} else {
			out.SuccessCount++
		}
		out.Results = append(out.Results, res)
	}
	return out
}

// markPaid settles one HC/Skyro balance. The flip is monotonic:
// isBalancePaid never transitions back to false.
func (s *ReceivablesService) markPaid(ctx context.Context, saleID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sale models.Sale
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", saleID).
			First(&sale).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "sale", ID: saleID.String()}
			}
			return &StoreError{Op: "load sale", Err: err}
		}

		var column string
		switch sale.TransactionType {
		case models.TransactionHC:
			column = "home_credit_payment"
		case models.TransactionSkyro:
			column = "skyro_payment"
		case models.TransactionInHouse:
			return &ValidationError{Field: "sale", Reason: "in-house installments are settled through payments"}
		default:
			return &ValidationError{Field: "sale", Reason: "sale has no balance to settle"}
		}

		plan := sale.InstallmentDetails()
		if plan == nil {
			return &ValidationError{Field: "sale", Reason: "sale has no financing details"}
		}
		if plan.IsBalancePaid {
			return &ConflictError{Reason: "balance already settled"}
		}

		plan.IsBalancePaid = true
		if err := tx.Model(&sale).Update(column, plan).Error; err != nil {
			return &StoreError{Op: "settle balance", Err: err}
		}
		return nil
	})
}
