package domain

import (
	"fmt"
	"sort"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Option is an identifier with a display label (funds, source types).
// Labels are passed through to callers; the engine only uses IDs.
type Option struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// YearTable maps a birth year (as written in the document) to a raw coefficient.
// Values stay float64 so that non-finite cells can be detected and rejected.
type YearTable map[string]float64

// SpouseTable maps a spouse-benefit key to its year table
type SpouseTable map[string]YearTable

// AgeTable maps a retirement age string to its spouse table
type AgeTable map[string]SpouseTable

// SourceTable holds the coefficients of one fund / source type pair.
// In the document the recorded birth years sit next to the gender keys:
//
//	main_pension:
//	  years: [1958, 1960]
//	  male:
//	    "67":
//	      S0: {"1958": 200.5, "1960": 204.1}
type SourceTable struct {
	Years   []int
	Genders map[Gender]AgeTable
}

const yearsKey = "years"

// UnmarshalYAML splits the "years" list from the gender keys
func (st *SourceTable) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]yaml.Node
	if err := value.Decode(&raw); err != nil {
		return err
	}
	st.Genders = make(map[Gender]AgeTable, len(raw))
	for key, node := range raw {
		if key == yearsKey {
			if err := node.Decode(&st.Years); err != nil {
				return fmt.Errorf("years: %w", err)
			}
			continue
		}
		var ages AgeTable
		if err := node.Decode(&ages); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		st.Genders[Gender(key)] = ages
	}
	return nil
}

// UnmarshalJSON mirrors UnmarshalYAML for JSON documents
func (st *SourceTable) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	st.Genders = make(map[Gender]AgeTable, len(raw))
	for key, msg := range raw {
		if key == yearsKey {
			if err := json.Unmarshal(msg, &st.Years); err != nil {
				return fmt.Errorf("years: %w", err)
			}
			continue
		}
		var ages AgeTable
		if err := json.Unmarshal(msg, &ages); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		st.Genders[Gender(key)] = ages
	}
	return nil
}

// CoefficientTable is the static annuity-coefficient document
type CoefficientTable struct {
	Funds       []Option                          `yaml:"funds" json:"funds"`
	SourceTypes []Option                          `yaml:"source_types" json:"source_types"`
	Tables      map[string]map[string]SourceTable `yaml:"tables" json:"tables"`
}

// FundIDs returns the fund identifiers present in the lookup tables, sorted.
func (ct *CoefficientTable) FundIDs() []string {
	ids := make([]string, 0, len(ct.Tables))
	for id := range ct.Tables {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HasFund reports whether id is one of the enumerated funds
func (ct *CoefficientTable) HasFund(id string) bool {
	for _, f := range ct.Funds {
		if f.ID == id {
			return true
		}
	}
	return false
}

// HasSourceType reports whether id is one of the enumerated source types
func (ct *CoefficientTable) HasSourceType(id string) bool {
	for _, s := range ct.SourceTypes {
		if s.ID == id {
			return true
		}
	}
	return false
}
