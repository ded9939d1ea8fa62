package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rpgo/pension-simulator/internal/calculation"
	"github.com/rpgo/pension-simulator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Loader reads the tax, coefficient and simulation documents from disk.
// Files ending in .json are decoded as JSON, everything else as YAML.
type Loader struct{}

// NewLoader creates a new document loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadTaxConfiguration loads a tax schedule. Schedule defects are not reported
// here; they surface as warnings through calculation.ValidateTaxConfiguration.
func (l *Loader) LoadTaxConfiguration(filename string) (*domain.TaxConfiguration, error) {
	var cfg domain.TaxConfiguration
	if err := l.decodeFile(filename, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadCoefficientTable loads an annuity coefficient table
func (l *Loader) LoadCoefficientTable(filename string) (*domain.CoefficientTable, error) {
	var table domain.CoefficientTable
	if err := l.decodeFile(filename, &table); err != nil {
		return nil, err
	}
	if len(table.Tables) == 0 {
		return nil, fmt.Errorf("coefficient table %s has no tables", filename)
	}
	return &table, nil
}

// LoadTables loads both documents and bundles them for the engine
func (l *Loader) LoadTables(taxFile, coefficientFile string) (*calculation.Tables, error) {
	tax, err := l.LoadTaxConfiguration(taxFile)
	if err != nil {
		return nil, err
	}
	coefficients, err := l.LoadCoefficientTable(coefficientFile)
	if err != nil {
		return nil, err
	}
	return calculation.NewTables(tax, coefficients), nil
}

// LoadSimulationInput loads and validates a simulation request file
func (l *Loader) LoadSimulationInput(filename string) (*domain.SimulationInput, error) {
	var in domain.SimulationInput
	if err := l.decodeFile(filename, &in); err != nil {
		return nil, err
	}
	if err := ValidateSimulationInput(&in); err != nil {
		return nil, fmt.Errorf("simulation input validation failed: %w", err)
	}
	return &in, nil
}

func (l *Loader) decodeFile(filename string, out any) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse JSON %s: %w", filename, err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse YAML %s: %w", filename, err)
	}
	return nil
}

// ValidateSimulationInput rejects requests the engine cannot interpret. Numeric
// defects are left to the engine, which coerces them and reports warnings.
func ValidateSimulationInput(in *domain.SimulationInput) error {
	if in == nil {
		return fmt.Errorf("no simulation input provided")
	}
	if in.Gender != domain.Male && in.Gender != domain.Female {
		return fmt.Errorf("gender must be 'male' or 'female', got %q", in.Gender)
	}
	if in.RetirementAge > 120 {
		return fmt.Errorf("retirement age %d is not plausible", in.RetirementAge)
	}
	if in.Spouse.SpousePercent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("spouse percent must be between 0 and 100")
	}
	for i, s := range in.Sources {
		if !knownSourceType(s.SourceType) {
			return fmt.Errorf("source %d: unknown source type %q", i+1, s.SourceType)
		}
	}
	return nil
}

func knownSourceType(st domain.SourceType) bool {
	for _, known := range domain.SourceTypes {
		if st == known {
			return true
		}
	}
	return false
}
