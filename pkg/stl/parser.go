package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/philipparndt/printplate/pkg/geometry"
)

const (
	binaryHeaderSize  = 80
	binaryCountSize   = 4
	binaryFacetSize   = 50
	binaryPrefixBytes = binaryHeaderSize + binaryCountSize
)

// Parse reads an STL file and returns a Model.
// It automatically detects whether the file is ASCII or binary format.
// Models without a solid name are named after the file.
func Parse(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	model, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(filename), err)
	}
	if model.Name == "" {
		model.Name = filepath.Base(filename)
	}
	return model, nil
}

// Decode reads an STL stream in either format.
// Binary files whose header happens to start with "solid" are recognised by
// their facet count matching the stream length.
func Decode(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read STL data: %w", err)
	}

	if isBinary(data) {
		return parseBinary(bytes.NewReader(data))
	}
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return parseASCII(bytes.NewReader(data))
	}
	return parseBinary(bytes.NewReader(data))
}

// isBinary reports whether the data length matches the binary layout
// announced by its facet count.
func isBinary(data []byte) bool {
	if len(data) < binaryPrefixBytes {
		return false
	}
	count := binary.LittleEndian.Uint32(data[binaryHeaderSize:binaryPrefixBytes])
	return uint64(len(data)) == binaryPrefixBytes+uint64(count)*binaryFacetSize
}

// parseASCII parses an ASCII STL stream
func parseASCII(reader io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(reader)
	model := NewModel("")

	var vertices []geometry.Vector3
	line := 0

	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
			}

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", line)
			}
			v, err := parseVertex(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			vertices = append(vertices, v)

		case "endfacet":
			if len(vertices) == 3 {
				model.AddTriangle(geometry.NewTriangle(vertices[0], vertices[1], vertices[2]))
			}
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return model, nil
}

func parseVertex(fields []string) (geometry.Vector3, error) {
	var coords [3]float64
	for i, f := range fields {
		value, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid coordinate %q: %w", f, err)
		}
		coords[i] = value
	}
	v := geometry.NewVector3(coords[0], coords[1], coords[2])
	if !v.IsFinite() {
		return geometry.Vector3{}, fmt.Errorf("%w: %v", geometry.ErrNonFinite, fields)
	}
	return v, nil
}

// parseBinary parses a binary STL stream
func parseBinary(reader io.Reader) (*Model, error) {
	model := NewModel("")

	header := make([]byte, binaryHeaderSize)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	headerStr := strings.TrimSpace(string(bytes.TrimRight(header, "\x00")))
	if len(headerStr) > 0 {
		model.Name = headerStr
	}

	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	// Normal (3), vertices (9), attribute byte count
	facet := make([]byte, binaryFacetSize)
	for i := uint32(0); i < triangleCount; i++ {
		if _, err := io.ReadFull(reader, facet); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}

		var v [3]geometry.Vector3
		for j := range v {
			offset := 12 + j*12
			v[j] = geometry.NewVector3(
				readFloat32(facet[offset:]),
				readFloat32(facet[offset+4:]),
				readFloat32(facet[offset+8:]),
			)
			if !v[j].IsFinite() {
				return nil, fmt.Errorf("triangle %d: %w: %v", i, geometry.ErrNonFinite, v[j])
			}
		}
		model.AddTriangle(geometry.NewTriangle(v[0], v[1], v[2]))
	}

	return model, nil
}

func readFloat32(b []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}
