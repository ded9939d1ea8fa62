package output

import (
	"bytes"

	"github.com/rpgo/pension-simulator/internal/domain"
	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackFormatter produces a compact binary encoding for machine consumers.
// Field keys follow the JSON tags; decimals use their binary marshaling.
type MsgpackFormatter struct{}

func (m MsgpackFormatter) Name() string      { return "msgpack" }
func (m MsgpackFormatter) Extension() string { return "msgpack" }

func (m MsgpackFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeMsgpack reverses MsgpackFormatter.Format.
func DecodeMsgpack(data []byte) (*domain.SimulationResult, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	var result domain.SimulationResult
	if err := dec.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
