// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/modeldiff/modeldiff/internal/value"
)

var npyMagic = []byte("\x93NUMPY")

var (
	descrRe = regexp.MustCompile(`'descr':\s*'([^']*)'`)
	orderRe = regexp.MustCompile(`'fortran_order':\s*(True|False)`)
	shapeRe = regexp.MustCompile(`'shape':\s*\(([^)]*)\)`)
)

// loadNPY parses a NumPy .npy array file into nested sequences of numbers.
// Shape is carried implicitly by the nesting.
func loadNPY(path string) (*value.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readNPY(f)
}

// loadNPZ parses a NumPy .npz archive (a zip of .npy members) into a mapping
// of array name to array, names sorted for determinism.
func loadNPZ(path string) (*value.Value, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("invalid npz archive: %w", err)
	}
	defer r.Close()

	names := make([]string, 0, len(r.File))
	byName := make(map[string]*zip.File, len(r.File))
	for _, zf := range r.File {
		names = append(names, zf.Name)
		byName[zf.Name] = zf
	}
	sort.Strings(names)

	m := value.NewMapping()
	for _, name := range names {
		rc, err := byName[name].Open()
		if err != nil {
			return nil, fmt.Errorf("npz member %s: %w", name, err)
		}
		arr, err := readNPY(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("npz member %s: %w", name, err)
		}
		m.Set(strings.TrimSuffix(name, ".npy"), arr)
	}
	return m, nil
}

// readNPY reads one .npy stream: magic, version, python-dict header, then
// the flat element data in C order.
func readNPY(r io.Reader) (*value.Value, error) {
	prefix := make([]byte, 8)
	if _, err := io.ReadFull(r, prefix); err != nil {
		return nil, fmt.Errorf("truncated npy header: %w", err)
	}
	if !bytes.Equal(prefix[:6], npyMagic) {
		return nil, fmt.Errorf("not an npy file")
	}

	major := prefix[6]
	var headerLen int
	switch {
	case major == 1:
		var l uint16
		if err := binary.Read(r, binary.LittleEndian, &l); err != nil {
			return nil, fmt.Errorf("truncated npy header: %w", err)
		}
		headerLen = int(l)
	case major >= 2:
		var l uint32
		if err := binary.Read(r, binary.LittleEndian, &l); err != nil {
			return nil, fmt.Errorf("truncated npy header: %w", err)
		}
		headerLen = int(l)
	default:
		return nil, fmt.Errorf("unsupported npy version %d", major)
	}

	header := make([]byte, headerLen)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("truncated npy header: %w", err)
	}

	descr, fortran, shape, err := parseNPYHeader(string(header))
	if err != nil {
		return nil, err
	}
	if fortran {
		return nil, fmt.Errorf("fortran-order arrays are not supported")
	}

	dt, err := parseDtype(descr)
	if err != nil {
		return nil, err
	}

	// The header is untrusted input: the dim product is overflow-checked and
	// bounded by the bytes actually present before anything is allocated.
	count := 1
	for _, dim := range shape {
		if dim != 0 && count > math.MaxInt/dim {
			return nil, fmt.Errorf("npy shape %v is too large", shape)
		}
		count *= dim
	}
	if count > math.MaxInt/dt.size {
		return nil, fmt.Errorf("npy shape %v is too large", shape)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading npy data: %w", err)
	}
	if len(data) < count*dt.size {
		return nil, fmt.Errorf("truncated npy data: %d bytes for %d %s elements",
			len(data), count, descr)
	}

	flat := make([]float64, count)
	for i := 0; i < count; i++ {
		flat[i] = dt.decode(data[i*dt.size:])
	}

	return nestByShape(flat, shape), nil
}

func parseNPYHeader(header string) (descr string, fortran bool, shape []int, err error) {
	m := descrRe.FindStringSubmatch(header)
	if m == nil {
		return "", false, nil, fmt.Errorf("npy header missing descr")
	}
	descr = m[1]

	m = orderRe.FindStringSubmatch(header)
	if m == nil {
		return "", false, nil, fmt.Errorf("npy header missing fortran_order")
	}
	fortran = m[1] == "True"

	m = shapeRe.FindStringSubmatch(header)
	if m == nil {
		return "", false, nil, fmt.Errorf("npy header missing shape")
	}
	for _, part := range strings.Split(m[1], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		dim, convErr := strconv.Atoi(part)
		if convErr != nil || dim < 0 {
			return "", false, nil, fmt.Errorf("invalid npy shape dimension %q", part)
		}
		shape = append(shape, dim)
	}
	return descr, fortran, shape, nil
}

// dtype pairs an element width with a decoder to float64.
type dtype struct {
	size   int
	decode func([]byte) float64
}

// parseDtype understands the little-endian and endian-agnostic subset of
// NumPy descr strings that model dumps actually use.
func parseDtype(descr string) (dtype, error) {
	if len(descr) < 2 {
		return dtype{}, fmt.Errorf("invalid dtype %q", descr)
	}
	if descr[0] == '>' {
		return dtype{}, fmt.Errorf("big-endian dtype %q is not supported", descr)
	}
	if descr[0] == '<' || descr[0] == '|' || descr[0] == '=' {
		descr = descr[1:]
	}

	le := binary.LittleEndian
	switch descr {
	case "f8":
		return dtype{8, func(b []byte) float64 {
			return math.Float64frombits(le.Uint64(b))
		}}, nil
	case "f4":
		return dtype{4, func(b []byte) float64 {
			return float64(math.Float32frombits(le.Uint32(b)))
		}}, nil
	case "f2":
		return dtype{2, func(b []byte) float64 {
			return float16ToFloat64(le.Uint16(b))
		}}, nil
	case "i8":
		return dtype{8, func(b []byte) float64 {
			return float64(int64(le.Uint64(b)))
		}}, nil
	case "i4":
		return dtype{4, func(b []byte) float64 {
			return float64(int32(le.Uint32(b)))
		}}, nil
	case "i2":
		return dtype{2, func(b []byte) float64 {
			return float64(int16(le.Uint16(b)))
		}}, nil
	case "i1":
		return dtype{1, func(b []byte) float64 {
			return float64(int8(b[0]))
		}}, nil
	case "u8":
		return dtype{8, func(b []byte) float64 {
			return float64(le.Uint64(b))
		}}, nil
	case "u4":
		return dtype{4, func(b []byte) float64 {
			return float64(le.Uint32(b))
		}}, nil
	case "u2":
		return dtype{2, func(b []byte) float64 {
			return float64(le.Uint16(b))
		}}, nil
	case "u1":
		return dtype{1, func(b []byte) float64 {
			return float64(b[0])
		}}, nil
	case "b1":
		return dtype{1, func(b []byte) float64 {
			if b[0] != 0 {
				return 1
			}
			return 0
		}}, nil
	default:
		return dtype{}, fmt.Errorf("unsupported dtype %q", descr)
	}
}

// nestByShape folds a flat C-order element slice into nested sequences.
// A zero-dimensional array is a bare number.
func nestByShape(flat []float64, shape []int) *value.Value {
	if len(shape) == 0 {
		if len(flat) == 0 {
			return value.Null()
		}
		return value.Number(flat[0])
	}

	if len(shape) == 1 {
		items := make([]*value.Value, shape[0])
		for i := range items {
			items[i] = value.Number(flat[i])
		}
		return value.Sequence(items...)
	}

	stride := 1
	for _, dim := range shape[1:] {
		stride *= dim
	}
	items := make([]*value.Value, shape[0])
	for i := range items {
		items[i] = nestByShape(flat[i*stride:(i+1)*stride], shape[1:])
	}
	return value.Sequence(items...)
}

// float16ToFloat64 expands an IEEE 754 half-precision value.
func float16ToFloat64(u uint16) float64 {
	sign := uint64(u>>15) << 63
	exp := uint64(u >> 10 & 0x1f)
	frac := uint64(u & 0x3ff)

	switch exp {
	case 0:
		if frac == 0 {
			return math.Float64frombits(sign)
		}
		// Subnormal: normalize into float64 range.
		e := -14
		for frac&0x400 == 0 {
			frac <<= 1
			e--
		}
		frac &= 0x3ff
		return math.Float64frombits(sign | uint64(e+1023)<<52 | frac<<42)
	case 0x1f:
		if frac == 0 {
			return math.Float64frombits(sign | 0x7ff<<52)
		}
		return math.NaN()
	default:
		return math.Float64frombits(sign | (exp-15+1023)<<52 | frac<<42)
	}
}

// bfloat16ToFloat64 expands a bfloat16 value (the high half of a float32).
func bfloat16ToFloat64(u uint16) float64 {
	return float64(math.Float32frombits(uint32(u) << 16))
}
