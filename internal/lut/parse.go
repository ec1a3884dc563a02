package lut

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Parse reads a 3D LUT in the Adobe/Resolve .cube text format.
func Parse(r io.Reader) (*Cube, error) {
	c := &Cube{DomainMax: [3]float64{1, 1, 1}}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch strings.ToUpper(fields[0]) {
		case "TITLE":
			c.Title = strings.Trim(strings.TrimSpace(line[len(fields[0]):]), `"`)

		case "LUT_3D_SIZE":
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: LUT_3D_SIZE needs one value", lineNo)
			}
			size, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: failed to parse LUT_3D_SIZE: %w", lineNo, err)
			}
			if size < MinSize || size > MaxSize {
				return nil, fmt.Errorf("line %d: LUT_3D_SIZE %d out of range [%d,%d]", lineNo, size, MinSize, MaxSize)
			}
			c.Size = size
			c.Table = make([]colorful.Color, 0, size*size*size)

		case "LUT_1D_SIZE":
			return nil, fmt.Errorf("line %d: 1D lookup tables are not supported", lineNo)

		case "DOMAIN_MIN", "DOMAIN_MAX":
			v, err := parseTriple(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: failed to parse %s: %w", lineNo, fields[0], err)
			}
			if strings.ToUpper(fields[0]) == "DOMAIN_MIN" {
				c.DomainMin = v
			} else {
				c.DomainMax = v
			}

		case "LUT_3D_INPUT_RANGE":
			if len(fields) != 3 {
				return nil, fmt.Errorf("line %d: LUT_3D_INPUT_RANGE needs two values", lineNo)
			}
			lo, err1 := strconv.ParseFloat(fields[1], 64)
			hi, err2 := strconv.ParseFloat(fields[2], 64)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("line %d: failed to parse LUT_3D_INPUT_RANGE", lineNo)
			}
			c.DomainMin = [3]float64{lo, lo, lo}
			c.DomainMax = [3]float64{hi, hi, hi}

		default:
			if c.Size == 0 {
				return nil, fmt.Errorf("line %d: table data before LUT_3D_SIZE", lineNo)
			}
			v, err := parseTriple(fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if len(c.Table) == cap(c.Table) {
				return nil, fmt.Errorf("line %d: more than %d table entries", lineNo, cap(c.Table))
			}
			c.Table = append(c.Table, colorful.Color{R: v[0], G: v[1], B: v[2]})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cube: %w", err)
	}

	if c.Size == 0 {
		return nil, fmt.Errorf("missing LUT_3D_SIZE")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func Load(filename string) (*Cube, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return c, nil
}

func parseTriple(fields []string) ([3]float64, error) {
	var v [3]float64
	if len(fields) != 3 {
		return v, fmt.Errorf("expected 3 values, got %d", len(fields))
	}
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return v, fmt.Errorf("invalid value %q: %w", f, err)
		}
		v[i] = n
	}
	return v, nil
}
