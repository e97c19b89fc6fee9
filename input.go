package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"gantt2svg/gantt"
)

// loadBinding reads a complete data binding (state, metadata and data)
// from a YAML or JSON file.
func loadBinding(path string) (gantt.DataBinding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gantt.DataBinding{}, fmt.Errorf("error reading binding file: %w", err)
	}
	var b gantt.DataBinding
	if err := yaml.Unmarshal(data, &b); err != nil {
		return gantt.DataBinding{}, fmt.Errorf("error parsing binding file: %w", err)
	}
	return b, nil
}

// loadMetadata reads the field description used with CSV input.
func loadMetadata(path string) (gantt.Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gantt.Metadata{}, fmt.Errorf("error reading metadata file: %w", err)
	}
	var md gantt.Metadata
	if err := yaml.Unmarshal(data, &md); err != nil {
		return gantt.Metadata{}, fmt.Errorf("error parsing metadata file: %w", err)
	}
	return md, nil
}

// loadCSVBinding builds a ready binding from a CSV export and its metadata.
// Header cells name a field by key or by id (case-insensitive). Dimension
// cells become both id and label; measure cells must be numbers or empty.
func loadCSVBinding(csvPath, metadataPath string) (gantt.DataBinding, error) {
	md, err := loadMetadata(metadataPath)
	if err != nil {
		return gantt.DataBinding{}, err
	}

	file, err := os.Open(csvPath)
	if err != nil {
		return gantt.DataBinding{}, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer file.Close()

	records, err := parseRecords(file, gantt.NewCatalog(md))
	if err != nil {
		return gantt.DataBinding{}, err
	}
	return gantt.DataBinding{State: gantt.StateSuccess, Metadata: md, Data: records}, nil
}

func parseRecords(r io.Reader, cat gantt.Catalog) ([]gantt.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	// Create case-insensitive column mapping by key and by id
	byName := make(map[string]gantt.Field)
	for _, f := range cat.Fields() {
		byName[strings.ToLower(f.ID)] = f
		byName[strings.ToLower(f.Key)] = f
	}
	columns := make([]*gantt.Field, len(header))
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if f, ok := byName[name]; ok {
			columns[i] = &f
			log.Debug().Str("column", col).Str("field", f.ID).Str("role", f.Role.String()).Msg("CSV column mapped")
		}
	}

	var records []gantt.Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rec := make(gantt.Record, len(columns))
		for i, f := range columns {
			if f == nil || i >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[i])
			if f.Role == gantt.Dimension {
				rec[f.Key] = gantt.Cell{ID: v, Label: v}
				continue
			}
			if v == "" {
				rec[f.Key] = gantt.Cell{}
				continue
			}
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %s: %w: %q", line, f.ID, gantt.ErrMalformedValue, v)
			}
			rec[f.Key] = gantt.Cell{Raw: &n}
		}
		records = append(records, rec)
	}
	return records, nil
}

// getOutputFilename determines the output filename.
// If outputFile is provided and not empty, it returns that filename.
// Otherwise, it derives the filename from the input file by replacing
// the extension with .svg (e.g., "orders.csv" becomes "orders.svg").
func getOutputFilename(inputFile, outputFile string) string {
	if outputFile != "" {
		return outputFile
	}

	base := filepath.Base(inputFile)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".svg"
}
