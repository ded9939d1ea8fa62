package main

import (
	"fmt"
	"os"

	calc "github.com/rpgo/pension-simulator/internal/calculation"
	"github.com/rpgo/pension-simulator/internal/config"
	"github.com/shopspring/decimal"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Println("usage: debug_break_even <tax-config> <coefficients> <simulation-file>")
		return
	}
	loader := config.NewLoader()
	tables, err := loader.LoadTables(os.Args[1], os.Args[2])
	if err != nil {
		panic(err)
	}
	input, err := loader.LoadSimulationInput(os.Args[3])
	if err != nil {
		panic(err)
	}

	engine := calc.NewSimulationEngine(tables)
	gross, res, err := engine.FixationBreakEven(input)
	if err != nil {
		fmt.Printf("no break-even: %v\n", err)
		return
	}
	fmt.Printf("Fixation starts paying at a gross pension of %s (tax year %d)\n", gross.StringFixed(2), res.TaxYear)

	// Scan around the threshold to show how the gain grows
	step := decimal.NewFromInt(500)
	fmt.Printf("%12s %12s %12s %12s\n", "gross", "tax w/o", "tax with", "gain")
	trial := *input
	trial.Sources = nil
	trial.TaxOnly = true
	trial.RightsFixationRequested = true
	for i := -2; i <= 8; i++ {
		g := gross.Add(step.Mul(decimal.NewFromInt(int64(i))))
		if !g.IsPositive() {
			continue
		}
		trial.GrossMonthlyOverride = &g
		r := engine.ComputeSimulation(&trial)
		fmt.Printf("%12s %12s %12s %12s\n", g.StringFixed(2), r.WithoutFixation.MonthlyTax.StringFixed(2),
			r.WithFixation.MonthlyTax.StringFixed(2), r.FixationGain().StringFixed(2))
	}
}
