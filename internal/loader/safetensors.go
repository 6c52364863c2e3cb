// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/tidwall/gjson"

	"github.com/modeldiff/modeldiff/internal/value"
)

// loadSafetensors parses a .safetensors file: an 8-byte little-endian header
// length, a JSON header describing each tensor, then the raw tensor data.
// The result is a mapping of tensor name to nested numeric sequences, in
// header document order, plus the optional __metadata__ block as-is.
func loadSafetensors(path string) (*value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) < 8 {
		return nil, fmt.Errorf("truncated safetensors header")
	}

	headerLen := binary.LittleEndian.Uint64(data[:8])
	if headerLen > uint64(len(data)-8) {
		return nil, fmt.Errorf("safetensors header length %d exceeds file size", headerLen)
	}
	header := data[8 : 8+headerLen]
	payload := data[8+headerLen:]

	if !gjson.ValidBytes(header) {
		return nil, fmt.Errorf("invalid safetensors header JSON")
	}

	m := value.NewMapping()
	var walkErr error
	gjson.ParseBytes(header).ForEach(func(key, val gjson.Result) bool {
		name := key.String()
		if name == "__metadata__" {
			m.Set(name, valueFromJSON(val))
			return true
		}

		tensor, err := tensorFromHeader(name, val, payload)
		if err != nil {
			walkErr = err
			return false
		}
		m.Set(name, tensor)
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return m, nil
}

func tensorFromHeader(name string, entry gjson.Result, payload []byte) (*value.Value, error) {
	dtypeName := entry.Get("dtype").String()
	dt, err := safetensorsDtype(dtypeName)
	if err != nil {
		return nil, fmt.Errorf("tensor %s: %w", name, err)
	}

	var shape []int
	for _, dim := range entry.Get("shape").Array() {
		d := int(dim.Int())
		if d < 0 {
			return nil, fmt.Errorf("tensor %s: negative shape dimension", name)
		}
		shape = append(shape, d)
	}

	offsets := entry.Get("data_offsets").Array()
	if len(offsets) != 2 {
		return nil, fmt.Errorf("tensor %s: malformed data_offsets", name)
	}
	begin, end := int(offsets[0].Int()), int(offsets[1].Int())
	if begin < 0 || end < begin || end > len(payload) {
		return nil, fmt.Errorf("tensor %s: data_offsets out of range", name)
	}
	data := payload[begin:end]

	count := 1
	for _, dim := range shape {
		if dim != 0 && count > math.MaxInt/dim {
			return nil, fmt.Errorf("tensor %s: shape %v is too large", name, shape)
		}
		count *= dim
	}
	if count > math.MaxInt/dt.size || count*dt.size != len(data) {
		return nil, fmt.Errorf("tensor %s: %d bytes of data for %d %s elements",
			name, len(data), count, dtypeName)
	}

	flat := make([]float64, count)
	for i := 0; i < count; i++ {
		flat[i] = dt.decode(data[i*dt.size:])
	}
	return nestByShape(flat, shape), nil
}

// safetensorsDtype maps safetensors dtype names onto the shared element
// decoders. Data is little-endian by format definition.
func safetensorsDtype(name string) (dtype, error) {
	le := binary.LittleEndian
	switch name {
	case "F64":
		return dtype{8, func(b []byte) float64 {
			return math.Float64frombits(le.Uint64(b))
		}}, nil
	case "F32":
		return dtype{4, func(b []byte) float64 {
			return float64(math.Float32frombits(le.Uint32(b)))
		}}, nil
	case "F16":
		return dtype{2, func(b []byte) float64 {
			return float16ToFloat64(le.Uint16(b))
		}}, nil
	case "BF16":
		return dtype{2, func(b []byte) float64 {
			return bfloat16ToFloat64(le.Uint16(b))
		}}, nil
	case "I64":
		return dtype{8, func(b []byte) float64 {
			return float64(int64(le.Uint64(b)))
		}}, nil
	case "I32":
		return dtype{4, func(b []byte) float64 {
			return float64(int32(le.Uint32(b)))
		}}, nil
	case "I16":
		return dtype{2, func(b []byte) float64 {
			return float64(int16(le.Uint16(b)))
		}}, nil
	case "I8":
		return dtype{1, func(b []byte) float64 {
			return float64(int8(b[0]))
		}}, nil
	case "U8":
		return dtype{1, func(b []byte) float64 {
			return float64(b[0])
		}}, nil
	case "BOOL":
		return dtype{1, func(b []byte) float64 {
			if b[0] != 0 {
				return 1
			}
			return 0
		}}, nil
	default:
		return dtype{}, fmt.Errorf("unsupported dtype %q", name)
	}
}
