package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/pension-simulator/internal/calculation"
	"github.com/rpgo/pension-simulator/internal/config"
	"github.com/rpgo/pension-simulator/internal/domain"
)

const simulationBody = `{
  "gender": "male",
  "retirement_age": 67,
  "birth_year": 1958,
  "tax_credit_points": 2.25,
  "sources": [{"source_type": "main_pension", "fund_id": "clal", "capital": 1800000}],
  "rights_fixation": true
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := config.NewStore(config.NewLoader(), "../../testdata/tax_2026.yaml", "../../testdata/coefficients.yaml")
	require.NoError(t, err)
	return New(Config{Port: 0, Log: zerolog.Nop(), Store: store, DevMode: true})
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.EqualValues(t, 2026, body["tax_year"])
}

func TestSimulate(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/api/simulate", simulationBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res domain.SimulationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.GrossPension.Equal(decimal.NewFromInt(9000)), res.GrossPension.String())
	assert.True(t, res.WithoutFixation.MonthlyTax.Equal(decimal.RequireFromString("435.1")), res.WithoutFixation.MonthlyTax.String())
	assert.True(t, res.WithFixation.ExemptPension.Equal(decimal.NewFromInt(4680)))
	assert.True(t, res.WithFixation.NetPension.Equal(decimal.NewFromInt(9000)))
	assert.True(t, res.FixationEligible)
	require.Len(t, res.PerSourceMonthly, 1)
	assert.Equal(t, "s1", res.PerSourceMonthly[0].SourceID)
}

func TestSimulateFormats(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/simulate?format=csv", simulationBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "with_fixation")

	rec = do(t, s, http.MethodPost, "/api/simulate?format=summary", simulationBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "PENSION SIMULATION 2026")

	rec = do(t, s, http.MethodPost, "/api/simulate?format=pdf", simulationBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSimulateRejectsBadInput(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed json", `{"gender":`, http.StatusBadRequest},
		{"bad gender", `{"gender":"other","retirement_age":67}`, http.StatusUnprocessableEntity},
		{"unknown source type", `{"gender":"female","retirement_age":64,"sources":[{"source_type":"annuity"}]}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/simulate", tt.body)
			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestCoefficient(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name  string
		query string
		found bool
		want  string
		key   string
	}{
		{"tie picks first listed year", "fund=clal&source_type=main_pension&gender=male&age=67&birth_year=1959", true, "200", "S0"},
		{"spouse table", "fund=clal&source_type=main_pension&gender=male&age=67&birth_year=1960&has_spouse=true&guarantee_months=240&spouse_percent=60", true, "225", "S1_m240_p60"},
		{"fractional spouse percent", "fund=clal&source_type=main_pension&gender=male&age=67&birth_year=1960&has_spouse=true&guarantee_months=240&spouse_percent=50.5", false, "", "S1_m240_p50.5"},
		{"non-finite cell", "fund=clal&source_type=main_pension&gender=female&age=64&birth_year=1958", false, "", "S0"},
		{"unknown fund", "fund=harel&source_type=main_pension&gender=male&age=67&birth_year=1958", false, "", "S0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, "/api/coefficient?"+tt.query, "")
			require.Equal(t, http.StatusOK, rec.Code)

			var resp coefficientResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.found, resp.Found)
			assert.Equal(t, tt.key, resp.SpouseKey)
			if tt.found {
				require.NotNil(t, resp.Coefficient)
				assert.Equal(t, tt.want, *resp.Coefficient)
			} else {
				assert.Nil(t, resp.Coefficient)
			}
		})
	}
}

func TestCoefficientDerivesBirthYear(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/coefficient?fund=clal&source_type=main_pension&gender=male&age=67", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp coefficientResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1959, resp.BirthYear)
	assert.True(t, resp.Found)
}

func TestCoefficientBadQuery(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/coefficient?age=abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/coefficient?age=67&has_spouse=maybe", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/coefficient?age=67&has_spouse=true&spouse_percent=half", "").Code)
}

func TestCatalog(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/catalog", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		TaxYear     int             `json:"tax_year"`
		Funds       []domain.Option `json:"funds"`
		SourceTypes []domain.Option `json:"source_types"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2026, body.TaxYear)
	require.Len(t, body.Funds, 2)
	assert.Equal(t, "Clal Pension", body.Funds[0].Label)
	assert.Len(t, body.SourceTypes, 2)
}

func TestTaxWarnings(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/tax/warnings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tax_year":2026,"warnings":[]}`, rec.Body.String())

	broken, err := config.NewLoader().LoadTaxConfiguration("../../testdata/tax_broken.yaml")
	require.NoError(t, err)
	s := New(Config{Log: zerolog.Nop(), Store: config.NewStaticStore(calculation.NewTables(broken, nil)), DevMode: true})

	rec = do(t, s, http.MethodGet, "/api/tax/warnings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Warnings []string `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Warnings, 3)

	rec = do(t, s, http.MethodGet, "/api/catalog", "")
	assert.JSONEq(t, `{"tax_year":2026,"funds":[],"source_types":[]}`, rec.Body.String())
}

func TestNilStoreServesEmptyTables(t *testing.T) {
	s := New(Config{Log: zerolog.Nop(), DevMode: true})
	rec := do(t, s, http.MethodGet, "/api/tax/warnings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "warnings")
}

func TestRateLimit(t *testing.T) {
	store, err := config.NewStore(config.NewLoader(), "../../testdata/tax_2026.yaml", "../../testdata/coefficients.yaml")
	require.NoError(t, err)
	s := New(Config{Log: zerolog.Nop(), Store: store, DevMode: true, RateLimit: 0.001, RateLimitBurst: 2})

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/api/catalog", "").Code)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/api/catalog", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, s, http.MethodGet, "/api/catalog", "").Code)

	// health checks are outside the limited group
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", "").Code)
}

func TestCoefficientCacheFollowsReload(t *testing.T) {
	loader := config.NewLoader()
	first, err := loader.LoadTables("../../testdata/tax_2026.yaml", "../../testdata/coefficients.yaml")
	require.NoError(t, err)
	second, err := loader.LoadTables("../../testdata/tax_2026.yaml", "../../testdata/coefficients.json")
	require.NoError(t, err)

	store := config.NewStaticStore(first)
	s := New(Config{Log: zerolog.Nop(), Store: store, DevMode: true})
	query := "/api/coefficient?fund=clal&source_type=main_pension&gender=male&age=67&birth_year=1958&has_spouse=true&guarantee_months=240&spouse_percent=60"

	var resp coefficientResponse
	rec := do(t, s, http.MethodGet, query, "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Found)
	assert.Equal(t, 1, s.lookups.ItemCount())

	rec = do(t, s, http.MethodGet, query, "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Found, "cached lookup")
	assert.Equal(t, 1, s.lookups.ItemCount())

	// the JSON table has no spouse-benefit rows
	store.Swap(second)
	resp = coefficientResponse{}
	rec = do(t, s, http.MethodGet, query, "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Found)
	assert.Equal(t, 2, s.lookups.ItemCount())
}
