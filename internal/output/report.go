package output

import (
	"io"

	"github.com/rpgo/pension-simulator/internal/domain"
)

// Render formats result with the named formatter and writes it to w.
func Render(w io.Writer, result *domain.SimulationResult, format string) error {
	f, err := Lookup(format)
	if err != nil {
		return err
	}
	data, err := f.Format(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// GenerateReport writes result to a timestamped file in dir using the named formatter.
func GenerateReport(result *domain.SimulationResult, format, dir string) (string, error) {
	f, err := Lookup(format)
	if err != nil {
		return "", err
	}
	return WriteFormatted(f, result, dir)
}
