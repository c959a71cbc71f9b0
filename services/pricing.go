// services/pricing.go
package services

import (
	"fmt"
	"math"

	"techcity-backend/models"
)

// PricingInput carries the raw checkout fields. Exactly one of
// DiscountAmount/DiscountPercent is expected; when both are set the
// amount wins and the percent is rederived from it.
type PricingInput struct {
	Price           float64  `json:"price"`
	DiscountAmount  *float64 `json:"discountAmount"`
	DiscountPercent *float64 `json:"discountPercent"`
	TransactionType string   `json:"transactionType"`

	DownpaymentAmount float64 `json:"downpaymentAmount"`
	InterestPercent   float64 `json:"interestPercent"`
	MonthsToPay       int     `json:"monthsToPay"`
}

// PricingResult holds every derived field for the selected method.
// Warnings report inputs that were clamped; they never block entry.
type PricingResult struct {
	Price           float64 `json:"price"`
	DiscountAmount  float64 `json:"discountAmount"`
	DiscountPercent float64 `json:"discountPercent"`
	FinalPrice      float64 `json:"finalPrice"`

	AmountDue float64 `json:"amountDue"`

	DownpaymentAmount float64 `json:"downpaymentAmount"`
	Balance           float64 `json:"balance"`

	InterestAmount float64 `json:"interestAmount"`
	MonthlyAmount  float64 `json:"monthlyAmount"`
	TotalAmountDue float64 `json:"totalAmountDue"`

	Warnings []string `json:"warnings,omitempty"`
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }

// ComputePricing derives a sale's final price and per-method fields.
// Out-of-range numeric inputs are clamped and surfaced as warnings; an
// unknown transaction method is the only hard failure.
func ComputePricing(in PricingInput) (PricingResult, error) {
	if !models.ValidTransactionType(in.TransactionType) {
		return PricingResult{}, &ValidationError{Field: "transactionType", Reason: fmt.Sprintf("unknown method %q", in.TransactionType)}
	}

	var res PricingResult

	price := in.Price
	if price < 0 {
		res.Warnings = append(res.Warnings, "price cannot be negative, set to 0")
		price = 0
	}
	res.Price = price

	// Discount amount and percent are mutually derivable. The edited
	// field drives; the other is recomputed from it.
	var amount, percent float64
	switch {
	case in.DiscountAmount != nil:
		amount = *in.DiscountAmount
		if amount < 0 {
			res.Warnings = append(res.Warnings, "discount amount cannot be negative, set to 0")
			amount = 0
		}
		if amount > price {
			res.Warnings = append(res.Warnings, "discount amount cannot exceed price, clamped")
			amount = price
		}
		if price > 0 {
			percent = round1(amount / price * 100)
		}
	case in.DiscountPercent != nil:
		percent = *in.DiscountPercent
		if percent < 0 {
			res.Warnings = append(res.Warnings, "discount percent cannot be negative, set to 0")
			percent = 0
		}
		if percent > 100 {
			res.Warnings = append(res.Warnings, "discount percent cannot exceed 100, clamped")
			percent = 100
		}
		percent = round1(percent)
		amount = round2(price * percent / 100)
	}
	res.DiscountAmount = round2(amount)
	res.DiscountPercent = percent
	res.FinalPrice = round2(price - res.DiscountAmount)

	switch in.TransactionType {
	case models.TransactionCash:
		res.AmountDue = res.FinalPrice

	case models.TransactionHC, models.TransactionSkyro:
		down := clampDownpayment(in.DownpaymentAmount, res.FinalPrice, &res.Warnings)
		res.DownpaymentAmount = down
		res.Balance = round2(res.FinalPrice - down)

	case models.TransactionInHouse:
		down := clampDownpayment(in.DownpaymentAmount, res.FinalPrice, &res.Warnings)
		res.DownpaymentAmount = down

		ip := in.InterestPercent
		if ip < 0 {
			res.Warnings = append(res.Warnings, "interest percent cannot be negative, set to 0")
			ip = 0
		}
		if ip > 100 {
			res.Warnings = append(res.Warnings, "interest percent cannot exceed 100, clamped")
			ip = 100
		}

		months := in.MonthsToPay
		if months < 0 {
			res.Warnings = append(res.Warnings, "months to pay cannot be negative, set to 0")
			months = 0
		}

		principal := res.FinalPrice - down
		res.InterestAmount = round2(principal * ip / 100)
		res.Balance = round2(principal + res.InterestAmount)
		res.TotalAmountDue = res.Balance
		if months > 0 {
			res.MonthlyAmount = round2(res.Balance / float64(months))
		}
	}

	return res, nil
}

func clampDownpayment(down, finalPrice float64, warnings *[]string) float64 {
	if down < 0 {
		*warnings = append(*warnings, "down payment cannot be negative, set to 0")
		down = 0
	}
	if down > finalPrice {
		*warnings = append(*warnings, "down payment cannot exceed amount due, clamped")
		down = finalPrice
	}
	return round2(down)
}
