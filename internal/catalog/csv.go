package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Column headers of the procedure signature export.
const (
	colProcedure = "ProcedureName"
	colParameter = "ParameterName"
	colType      = "ParameterType"
	colSize      = "ParameterSize"
	colRequired  = "IsRequired"
	colOutput    = "IsOutput"
	colDefault   = "DefaultValue"
)

// readExport parses the CSV export and normalizes each row into a
// Parameter. The header row names the columns; column order is free.
func readExport(r io.Reader) ([]Parameter, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("catalog export is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read export header: %w", err)
	}

	index, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var params []Parameter
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read export line %d: %w", line, err)
		}

		p, err := normalizeRecord(index, record)
		if err != nil {
			return nil, fmt.Errorf("export line %d: %w", line, err)
		}
		params = append(params, p)
	}

	return params, nil
}

// headerIndex maps required column names to their positions.
func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	required := []string{colProcedure, colParameter, colType, colSize, colRequired, colOutput}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("export is missing column %q", name)
		}
	}
	// DefaultValue is absent from older exports
	return index, nil
}

// normalizeRecord converts one CSV row into a typed Parameter.
func normalizeRecord(index map[string]int, record []string) (Parameter, error) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	procedure := field(colProcedure)
	if procedure == "" {
		return Parameter{}, fmt.Errorf("row has no procedure name")
	}
	name := strings.TrimPrefix(field(colParameter), "@")
	if name == "" {
		return Parameter{}, fmt.Errorf("procedure %s: row has no parameter name", procedure)
	}
	typ := field(colType)
	if typ == "" {
		return Parameter{}, fmt.Errorf("procedure %s: parameter %s has no type", procedure, name)
	}

	return Parameter{
		Procedure: procedure,
		Name:      name,
		Type:      typ,
		Size:      normalizeSize(field(colSize)),
		Required:  flagValue(field(colRequired)),
		Output:    flagValue(field(colOutput)),
		Default:   optionalValue(field(colDefault)),
	}, nil
}

// flagValue maps the export's "Yes"/"No" flags to a boolean.
func flagValue(s string) bool {
	return strings.EqualFold(s, "Yes")
}

// optionalValue maps the export's "None" marker (and blanks) to absent.
func optionalValue(s string) *string {
	if s == "" || s == "None" {
		return nil
	}
	return &s
}

// normalizeSize drops the export's "None" marker; "MAX" and "-1" pass
// through for the display layer to interpret.
func normalizeSize(s string) string {
	if s == "None" {
		return ""
	}
	return s
}
