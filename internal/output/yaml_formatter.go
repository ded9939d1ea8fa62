package output

import (
	"github.com/rpgo/pension-simulator/internal/domain"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter serializes the simulation result as YAML.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string      { return "yaml" }
func (y YAMLFormatter) Extension() string { return "yaml" }

func (y YAMLFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	return yaml.Marshal(result)
}
