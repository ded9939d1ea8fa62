package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/rpgo/pension-simulator/internal/calculation"
	"github.com/rpgo/pension-simulator/internal/config"
	"github.com/rpgo/pension-simulator/internal/domain"
	"github.com/rpgo/pension-simulator/internal/output"
	"github.com/rpgo/pension-simulator/pkg/logger"
	"github.com/shopspring/decimal"
)

const maxRequestBody = 1 << 20

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	tables := s.tables()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "healthy",
		"service":  "pension-simulator",
		"tax_year": tables.TaxYear(),
	})
}

// handleSimulate runs one simulation against the current tables snapshot
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var input domain.SimulationInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&input); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := config.ValidateSimulationInput(&input); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	engine := calculation.NewSimulationEngine(s.tables())
	engine.SetLogger(logger.Adapter{L: s.log})
	result := engine.ComputeSimulation(&input)

	format := r.URL.Query().Get("format")
	if format == "" || output.NormalizeFormatName(format) == "json" {
		s.writeJSON(w, http.StatusOK, result)
		return
	}

	f, err := output.Lookup(format)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	data, err := f.Format(result)
	if err != nil {
		s.log.Error().Err(err).Str("format", f.Name()).Msg("Failed to format simulation result")
		s.writeError(w, http.StatusInternalServerError, "failed to format result")
		return
	}
	w.Header().Set("Content-Type", contentType(f))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// coefficientResponse is the payload of GET /api/coefficient
type coefficientResponse struct {
	FundID        string            `json:"fund_id"`
	SourceType    domain.SourceType `json:"source_type"`
	Gender        domain.Gender     `json:"gender"`
	RetirementAge int               `json:"retirement_age"`
	BirthYear     int               `json:"birth_year"`
	SpouseKey     string            `json:"spouse_key"`
	Found         bool              `json:"found"`
	Coefficient   *string           `json:"coefficient"`
}

// handleCoefficient resolves a single table coefficient from query parameters
func (s *Server) handleCoefficient(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	ints := map[string]int{}
	for _, name := range []string{"age", "birth_year"} {
		v, err := queryInt(q.Get(name))
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("%s: %v", name, err))
			return
		}
		ints[name] = v
	}
	nums := map[string]decimal.Decimal{}
	for _, name := range []string{"guarantee_months", "spouse_percent"} {
		v, err := queryDecimal(q.Get(name))
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("%s: %v", name, err))
			return
		}
		nums[name] = v
	}
	hasSpouse := false
	if raw := q.Get("has_spouse"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("has_spouse: %v", err))
			return
		}
		hasSpouse = b
	}

	tables := s.tables()
	key := calculation.CoefficientLookupKey{
		FundID:        q.Get("fund"),
		SourceType:    domain.SourceType(q.Get("source_type")),
		Gender:        domain.Gender(strings.ToLower(q.Get("gender"))),
		RetirementAge: ints["age"],
		SpouseKey: calculation.SpouseKey(domain.SpouseBenefit{
			HasSpouse:       hasSpouse,
			GuaranteeMonths: nums["guarantee_months"],
			SpousePercent:   nums["spouse_percent"],
		}),
		BirthYear: calculation.EffectiveBirthYear(ints["birth_year"], ints["age"], tables.TaxYear()),
	}

	resp := coefficientResponse{
		FundID:        key.FundID,
		SourceType:    key.SourceType,
		Gender:        key.Gender,
		RetirementAge: key.RetirementAge,
		BirthYear:     key.BirthYear,
		SpouseKey:     key.SpouseKey,
	}
	if v, ok := s.resolveCoefficient(tables, key); ok {
		resp.Found = true
		resp.Coefficient = &v
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// resolveCoefficient memoizes lookups per tables snapshot. Keys carry the snapshot
// address and entries hold the snapshot, so an address cannot be reused while an
// entry for it is cached. Entries from before a reload are never served.
func (s *Server) resolveCoefficient(tables *calculation.Tables, key calculation.CoefficientLookupKey) (string, bool) {
	cacheKey := fmt.Sprintf("%p|%s|%s|%s|%d|%s|%d", tables, key.FundID, key.SourceType, key.Gender, key.RetirementAge, key.SpouseKey, key.BirthYear)
	if cached, found := s.lookups.Get(cacheKey); found {
		entry := cached.(cachedCoefficient)
		return entry.value, entry.found
	}

	entry := cachedCoefficient{tables: tables}
	if c, ok := calculation.NewSimulationEngine(tables).ResolveCoefficient(key); ok {
		entry.value, entry.found = c.String(), true
	}
	s.lookups.SetDefault(cacheKey, entry)
	return entry.value, entry.found
}

type cachedCoefficient struct {
	tables *calculation.Tables
	value  string
	found  bool
}

// handleCatalog lists the funds and source types known to the coefficient table
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	tables := s.tables()
	funds := []domain.Option{}
	sourceTypes := []domain.Option{}
	if tables.Coefficients != nil {
		funds = append(funds, tables.Coefficients.Funds...)
		sourceTypes = append(sourceTypes, tables.Coefficients.SourceTypes...)
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"tax_year":     tables.TaxYear(),
		"funds":        funds,
		"source_types": sourceTypes,
	})
}

// handleTaxWarnings reports the validation descriptors of the loaded tax configuration
func (s *Server) handleTaxWarnings(w http.ResponseWriter, r *http.Request) {
	tables := s.tables()
	warnings := tables.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"tax_year": tables.TaxYear(),
		"warnings": warnings,
	})
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// tables returns the current snapshot, or empty tables when nothing is loaded
func (s *Server) tables() *calculation.Tables {
	if s.store != nil {
		if t := s.store.Load(); t != nil {
			return t
		}
	}
	return calculation.NewTables(nil, nil)
}

var (
	errNotInteger = errors.New("not an integer")
	errNotNumber  = errors.New("not a number")
)

func queryInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errNotInteger
	}
	return v, nil
}

func queryDecimal(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, errNotNumber
	}
	return v, nil
}

func contentType(f output.Formatter) string {
	switch f.Extension() {
	case "csv":
		return "text/csv"
	case "yaml":
		return "application/yaml"
	case "msgpack":
		return "application/msgpack"
	case "json":
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}
