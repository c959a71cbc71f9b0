package models

import (
	"database/sql/driver"
	"time"
)

// DailySummary is the persisted end-of-day snapshot: one row per
// calendar date. It is derived data — rebuilt in full from the day's
// sales and service-ledger rows — and re-saving a date overwrites the
// prior snapshot completely, never merges into it.
type DailySummary struct {
	Date        string    `gorm:"primaryKey;size:10" json:"date"`
	DisplayDate string    `json:"displayDate"`
	GeneratedAt time.Time `json:"generatedAt"`
	GeneratedBy string    `json:"generatedBy"`

	TransactionCounts TransactionCounts  `gorm:"type:jsonb" json:"transactionCounts"`
	TransactionIDs    TransactionIDs     `gorm:"type:jsonb" json:"transactionIds"`
	SalesSummary      SalesByCategory    `gorm:"type:jsonb" json:"salesSummary"`
	CashFlowSummary   CashFlowByCategory `gorm:"type:jsonb" json:"cashFlowSummary"`
	LedgerSummary     LedgerSummaryData  `gorm:"type:jsonb" json:"ledgerSummary"`
	GrandTotals       GrandTotals        `gorm:"type:jsonb" json:"grandTotals"`
	RevenueBreakdown  RevenueBreakdown   `gorm:"type:jsonb" json:"revenueBreakdown"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type TransactionCounts struct {
	Devices     int `json:"devices"`
	Accessories int `json:"accessories"`
	Services    int `json:"services"`
	Total       int `json:"total"`
}

type TransactionIDs struct {
	Devices     []string `json:"devices"`
	Accessories []string `json:"accessories"`
	Services    []string `json:"services"`
}

// MethodSales is the count/amount pair for the cash method.
type MethodSales struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// InstallmentSales extends MethodSales with the financing split. For
// in-house sales Balance carries totalAmountDue, since the receivable
// includes interest.
type InstallmentSales struct {
	Count       int     `json:"count"`
	Amount      float64 `json:"amount"`
	Downpayment float64 `json:"downpayment"`
	Balance     float64 `json:"balance"`
}

// SalesSummary is the per-category sales breakdown by method.
type SalesSummary struct {
	Cash       MethodSales      `json:"cash"`
	HomeCredit InstallmentSales `json:"homeCredit"`
	Skyro      InstallmentSales `json:"skyro"`
	InHouse    InstallmentSales `json:"inHouse"`

	TotalCount  int     `json:"totalCount"`
	TotalAmount float64 `json:"totalAmount"`
}

// ServiceSales is the services-category sales breakdown.
type ServiceSales struct {
	Count       int     `json:"count"`
	ServiceFees float64 `json:"serviceFees"`
	MiscIncome  float64 `json:"miscIncome"`
	Expenses    float64 `json:"expenses"`
	Net         float64 `json:"net"`
}

type SalesByCategory struct {
	Devices     SalesSummary `json:"devices"`
	Accessories SalesSummary `json:"accessories"`
	Services    ServiceSales `json:"services"`
}

// SourceBuckets splits an amount across the six payment-source
// channels.
type SourceBuckets struct {
	Cash         float64 `json:"cash"`
	GCash        float64 `json:"gcash"`
	PayMaya      float64 `json:"paymaya"`
	BankTransfer float64 `json:"bankTransfer"`
	CreditCard   float64 `json:"creditCard"`
	Others       float64 `json:"others"`
}

// Add routes amount into the bucket matching source. Unknown sources
// fall into Others rather than being dropped.
func (b *SourceBuckets) Add(source string, amount float64) {
	switch source {
	case SourceCash:
		b.Cash += amount
	case SourceGCash:
		b.GCash += amount
	case SourcePayMaya:
		b.PayMaya += amount
	case SourceBankTransfer:
		b.BankTransfer += amount
	case SourceCreditCard:
		b.CreditCard += amount
	default:
		b.Others += amount
	}
}

// Total sums all buckets.
func (b SourceBuckets) Total() float64 {
	return b.Cash + b.GCash + b.PayMaya + b.BankTransfer + b.CreditCard + b.Others
}

// CashFlowSummary is the per-category view of actual money movement:
// day-of-sale inflows per source bucket, receivables created per
// financing method, and the Brand-Zero subsidy accumulated separately
// because it is absorbed by the financing partner, not collected.
type CashFlowSummary struct {
	Inflow      SourceBuckets `json:"inflow"`
	TotalInflow float64       `json:"totalInflow"`

	HomeCreditReceivable float64 `json:"homeCreditReceivable"`
	SkyroReceivable      float64 `json:"skyroReceivable"`
	InHouseReceivable    float64 `json:"inHouseReceivable"`
	BrandZeroSubsidy     float64 `json:"brandZeroSubsidy"`
}

// ServiceCashFlowSummary tracks the service ledger's in/out flows.
// Services have no bank-transfer or credit-card channel; those bucket
// fields stay zero by construction.
type ServiceCashFlowSummary struct {
	Inflow       SourceBuckets `json:"inflow"`
	Outflow      SourceBuckets `json:"outflow"`
	TotalInflow  float64       `json:"totalInflow"`
	TotalOutflow float64       `json:"totalOutflow"`
}

type CashFlowByCategory struct {
	Devices     CashFlowSummary        `json:"devices"`
	Accessories CashFlowSummary        `json:"accessories"`
	Services    ServiceCashFlowSummary `json:"services"`
}

// LedgerSummaryData is the cross-category net position per bucket:
// device + accessory inflow plus the service ledger's net flow. The
// receivables line nets HC/Skyro balances against their Brand-Zero
// subsidy.
type LedgerSummaryData struct {
	Cash         float64 `json:"cash"`
	GCash        float64 `json:"gcash"`
	PayMaya      float64 `json:"paymaya"`
	BankTransfer float64 `json:"bankTransfer"`
	CreditCard   float64 `json:"creditCard"`
	Others       float64 `json:"others"`
	Receivables  float64 `json:"receivables"`
	Total        float64 `json:"total"`
}

type GrandTotals struct {
	TotalProductSales       float64 `json:"totalProductSales"`
	TotalRevenue            float64 `json:"totalRevenue"`
	TotalCashCollected      float64 `json:"totalCashCollected"`
	TotalReceivablesCreated float64 `json:"totalReceivablesCreated"`
}

type RevenueBreakdown struct {
	DeviceSales    float64 `json:"deviceSales"`
	AccessorySales float64 `json:"accessorySales"`
	ServiceFees    float64 `json:"serviceFees"`
	MiscIncome     float64 `json:"miscIncome"`
	TotalRevenue   float64 `json:"totalRevenue"`
}

func (t TransactionCounts) Value() (driver.Value, error) { return jsonbValue(t) }
func (t *TransactionCounts) Scan(value interface{}) error { return jsonbScan(t, value) }

func (t TransactionIDs) Value() (driver.Value, error) { return jsonbValue(t) }
func (t *TransactionIDs) Scan(value interface{}) error { return jsonbScan(t, value) }

func (s SalesByCategory) Value() (driver.Value, error) { return jsonbValue(s) }
func (s *SalesByCategory) Scan(value interface{}) error { return jsonbScan(s, value) }

func (c CashFlowByCategory) Value() (driver.Value, error) { return jsonbValue(c) }
func (c *CashFlowByCategory) Scan(value interface{}) error { return jsonbScan(c, value) }

func (l LedgerSummaryData) Value() (driver.Value, error) { return jsonbValue(l) }
func (l *LedgerSummaryData) Scan(value interface{}) error { return jsonbScan(l, value) }

func (g GrandTotals) Value() (driver.Value, error) { return jsonbValue(g) }
func (g *GrandTotals) Scan(value interface{}) error { return jsonbScan(g, value) }

func (r RevenueBreakdown) Value() (driver.Value, error) { return jsonbValue(r) }
func (r *RevenueBreakdown) Scan(value interface{}) error { return jsonbScan(r, value) }
