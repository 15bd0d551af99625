package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"herbalsearch/internal/domain"
)

//go:embed sample.json
var sampleJSON []byte

// Sample returns the built-in catalog used when no data file is given
func Sample() ([]domain.Plant, error) {
	return ReadJSON(bytes.NewReader(sampleJSON))
}

// LoadFile reads plants from a .json or .xlsx file
func LoadFile(path string) ([]domain.Plant, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open catalog: %w", err)
		}
		defer f.Close()
		return ReadJSON(f)
	case ".xlsx", ".xlsm":
		return LoadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))
	}
}

// ReadJSON accepts either a bare array of plants or an object with a "plants" array
func ReadJSON(r io.Reader) ([]domain.Plant, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var plants []domain.Plant
		if err := json.Unmarshal(data, &plants); err != nil {
			return nil, fmt.Errorf("failed to parse catalog: %w", err)
		}
		return plants, nil
	}

	var resp domain.PlantsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return resp.Plants, nil
}

// LoadXLSX reads plants from the first sheet of a workbook. The first row
// names the columns; unknown columns are ignored.
func LoadXLSX(path string) ([]domain.Plant, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return plantsFromRows(rows)
}

func plantsFromRows(rows [][]string) ([]domain.Plant, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	cols := make(map[string]int)
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("header row has no name column")
	}

	var plants []domain.Plant
	for n, row := range rows[1:] {
		cell := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		if cell("name") == "" {
			continue
		}
		p := domain.Plant{
			Name:           cell("name"),
			ScientificName: cell("scientific_name"),
			Category:       cell("category"),
			Description:    cell("description"),
			Usage:          cell("usage"),
			Benefits:       splitList(cell("benefits")),
			Image:          cell("image"),
			Images:         splitList(cell("images")),
		}
		if raw := cell("id"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad id %q: %w", n+2, raw, err)
			}
			p.ID = id
		}
		plants = append(plants, p)
	}
	return plants, nil
}

// splitList splits a comma or semicolon separated cell
func splitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
