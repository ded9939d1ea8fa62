package main

import (
	"fmt"
	"os"

	"github.com/rpgo/pension-simulator/internal/calculation"
	"github.com/rpgo/pension-simulator/internal/config"
	"github.com/shopspring/decimal"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: print_brackets <tax-config> <monthly-income> [credit-points]")
		return
	}
	cfg, err := config.NewLoader().LoadTaxConfiguration(os.Args[1])
	if err != nil {
		panic(err)
	}
	income, err := decimal.NewFromString(os.Args[2])
	if err != nil {
		panic(err)
	}
	points := decimal.Zero
	if len(os.Args) > 3 {
		if points, err = decimal.NewFromString(os.Args[3]); err != nil {
			panic(err)
		}
	}

	for _, w := range calculation.ValidateTaxConfiguration(cfg) {
		fmt.Printf("warning: %s\n", w)
	}

	tc := calculation.NewProgressiveTaxCalculator(cfg)
	gross, slices := tc.GrossTax(income)
	fmt.Printf("Tax year %d, monthly income %s\n", cfg.Year, income.StringFixed(2))
	fmt.Printf("%4s %12s %6s %12s %10s\n", "#", "up to", "rate", "taxed", "tax")
	for _, s := range slices {
		upTo := "open"
		if s.UpTo != nil {
			upTo = s.UpTo.StringFixed(2)
		}
		fmt.Printf("%4d %12s %6s %12s %10s\n", s.Index+1, upTo, s.Rate.StringFixed(2), s.Amount.StringFixed(2), s.Tax.StringFixed(2))
	}
	fmt.Printf("Gross tax:   %s\n", gross.StringFixed(2))
	fmt.Printf("Credits:     %s\n", tc.CreditValue(points).StringFixed(2))
	fmt.Printf("Tax payable: %s\n", tc.CalculateTax(income, points).StringFixed(2))
}
