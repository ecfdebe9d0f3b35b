package tools

import (
	"context"
	"math"

	"github.com/toolhost/toolhost-go/schema"
	"github.com/toolhost/toolhost-go/toolset"
)

// MortgagePayment returns the mortgage_payment tool: monthly payment via the
// standard amortization formula M = P*r(1+r)^n / ((1+r)^n - 1), with an
// explicit zero-rate branch M = P/n.
func MortgagePayment() toolset.Descriptor {
	s := schema.New().
		Add("loanAmount", schema.FieldSpec{
			Kind:        schema.Number,
			Required:    true,
			Description: "Principal loan amount",
			Constraints: schema.Constraints{Positive: true},
		}).
		Add("annualInterestRate", schema.FieldSpec{
			Kind:        schema.Number,
			Required:    true,
			Description: "Annual interest rate in percent (e.g. 6.5)",
			Constraints: schema.Constraints{Minimum: schema.Min(0)},
		}).
		Add("loanTermYears", schema.FieldSpec{
			Kind:        schema.Integer,
			Required:    true,
			Description: "Loan term in years",
			Constraints: schema.Constraints{Positive: true},
		})

	return toolset.Descriptor{
		Name:        "mortgage_payment",
		Description: "Calculate the monthly payment for a fixed-rate mortgage",
		Schema:      s,
		Handler: func(ctx context.Context, args schema.Bundle) (*toolset.Result, error) {
			principal := args.Float("loanAmount")
			annualRate := args.Float("annualInterestRate")
			years := args.Int("loanTermYears")

			payments := years * 12
			monthlyRate := annualRate / 100 / 12

			var monthly float64
			if monthlyRate == 0 {
				// Zero-interest loans divide the principal evenly; the
				// amortization formula degenerates to 0/0 here.
				monthly = principal / float64(payments)
			} else {
				pow := math.Pow(1+monthlyRate, float64(payments))
				monthly = principal * monthlyRate * pow / (pow - 1)
			}

			monthlyPayment := round2(monthly)
			totalPayment := round2(monthly * float64(payments))
			totalInterest := round2(totalPayment - principal)

			return toolset.Textf("Monthly payment: $%.2f over %d payments (total $%.2f, interest $%.2f)",
				monthlyPayment, payments, totalPayment, totalInterest).
				With("loanAmount", principal).
				With("annualInterestRate", annualRate).
				With("loanTermYears", years).
				With("monthlyInterestRate", round4(monthlyRate)).
				With("numberOfPayments", payments).
				With("monthlyPayment", monthlyPayment).
				With("totalPayment", totalPayment).
				With("totalInterest", totalInterest), nil
		},
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
