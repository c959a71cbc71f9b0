package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Transaction methods. The string values are part of the wire contract
// with the mobile client and must not be renamed.
const (
	TransactionCash    = "Cash"
	TransactionHC      = "HomeCredit"
	TransactionSkyro   = "Skyro"
	TransactionInHouse = "InHouseInstallment"
)

// Payment source channels used across sales and the service ledger.
const (
	SourceCash         = "Cash"
	SourceGCash        = "GCash"
	SourcePayMaya      = "PayMaya"
	SourceBankTransfer = "Bank Transfer"
	SourceCreditCard   = "Credit Card"
	SourceOthers       = "Others"
)

// AccountDetails identifies the receiving account for non-cash sources.
type AccountDetails struct {
	AccountName string `json:"accountName"`
	AccountType string `json:"accountType"`
}

// CashPayment is the detail block for straight cash sales. No balance.
type CashPayment struct {
	AmountPaid     float64        `json:"amountPaid"`
	PaymentSource  string         `json:"paymentSource"`
	AccountDetails AccountDetails `json:"accountDetails"`
}

// InstallmentPlan is the detail block shared by Home Credit and Skyro
// financed sales: a down payment plus one lump unpaid balance. BrandZero
// subsidy reduces the net receivable in reporting but never the stored
// balance.
type InstallmentPlan struct {
	DownpaymentAmount float64        `json:"downpaymentAmount"`
	DownpaymentSource string         `json:"downpaymentSource"`
	AccountDetails    AccountDetails `json:"accountDetails"`
	Balance           float64        `json:"balance"`
	IsBalancePaid     bool           `json:"isBalancePaid"`
	BrandZero         bool           `json:"brandZero"`
	BrandZeroSubsidy  float64        `json:"brandZeroSubsidy"`
	SubsidyPercent    float64        `json:"subsidyPercent"`
}

// PaymentRecord is one partial payment against an in-house plan. The
// timestamp distinguishes repeated identical-looking payments so the
// store never collapses them.
type PaymentRecord struct {
	Date           string  `json:"date"`
	Amount         float64 `json:"amount"`
	RemainingAfter float64 `json:"remainingAfter"`
	Source         string  `json:"source"`
	Timestamp      int64   `json:"timestamp"`
}

// InHousePlan is the detail block for store-financed installments:
// interest, a monthly schedule and a running partial-payment history.
type InHousePlan struct {
	CustomerName      string          `json:"customerName"`
	CustomerPhone     string          `json:"customerPhone,omitempty"`
	DownpaymentAmount float64         `json:"downpaymentAmount"`
	DownpaymentSource string          `json:"downpaymentSource"`
	AccountDetails    AccountDetails  `json:"accountDetails"`
	InterestPercent   float64         `json:"interestPercent"`
	InterestAmount    float64         `json:"interestAmount"`
	MonthsToPay       int             `json:"monthsToPay"`
	MonthlyAmount     float64         `json:"monthlyAmount"`
	Balance           float64         `json:"balance"`
	TotalAmountDue    float64         `json:"totalAmountDue"`
	IsBalancePaid     bool            `json:"isBalancePaid"`
	RemainingBalance  float64         `json:"remainingBalance"`
	Payments          []PaymentRecord `json:"payments"`
}

// SortedPayments returns the history ordered by record timestamp.
// Concurrent appends can land out of order in storage, so insertion
// order is never trusted for display or reconciliation.
func (p *InHousePlan) SortedPayments() []PaymentRecord {
	out := make([]PaymentRecord, len(p.Payments))
	copy(out, p.Payments)
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out
}

// PaidTotal sums all recorded partial payments.
func (p *InHousePlan) PaidTotal() float64 {
	var total float64
	for _, rec := range p.Payments {
		total += rec.Amount
	}
	return total
}

func jsonbValue(v interface{}) (driver.Value, error) {
	return json.Marshal(v)
}

func jsonbScan(dst interface{}, value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			b = []byte(s)
		} else {
			return errors.New("type assertion to []byte failed")
		}
	}
	return json.Unmarshal(b, dst)
}

func (p CashPayment) Value() (driver.Value, error) { return jsonbValue(p) }
func (p *CashPayment) Scan(value interface{}) error { return jsonbScan(p, value) }

func (p InstallmentPlan) Value() (driver.Value, error) { return jsonbValue(p) }
func (p *InstallmentPlan) Scan(value interface{}) error { return jsonbScan(p, value) }

func (p InHousePlan) Value() (driver.Value, error) { return jsonbValue(p) }
func (p *InHousePlan) Scan(value interface{}) error { return jsonbScan(p, value) }

// PaymentDetails is the tagged union over the per-method detail blocks.
// The concrete type is selected by the sale's transactionType.
type PaymentDetails interface {
	isPaymentDetails()
}

func (p *CashPayment) isPaymentDetails() {}

func (p *InstallmentPlan) isPaymentDetails() {}

func (p *InHousePlan) isPaymentDetails() {}

// ErrUnknownTransactionType reports a sale whose discriminant does not
// match any known detail block.
var ErrUnknownTransactionType = errors.New("unknown transaction type")

// ValidTransactionType reports whether t is one of the four supported
// methods.
func ValidTransactionType(t string) bool {
	switch t {
	case TransactionCash, TransactionHC, TransactionSkyro, TransactionInHouse:
		return true
	}
	return false
}

// ValidSource reports whether s is a known payment-source channel.
func ValidSource(s string) bool {
	switch s {
	case SourceCash, SourceGCash, SourcePayMaya, SourceBankTransfer, SourceCreditCard, SourceOthers:
		return true
	}
	return false
}

func unknownType(t string) error {
	return fmt.Errorf("%w: %q", ErrUnknownTransactionType, t)
}
