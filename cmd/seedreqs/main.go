// Command seedreqs converts the licensing authority's published Excel
// workbook of license types and document requirements into a SQL seed file.
// Sheet 0 lists license types (code, name); the "Keperluan_Dokumen" sheet
// lists per-license-type requirements (license code, name, description,
// mandatory flag, sort order).
// Usage: go run ./cmd/seedreqs <workbook.xlsx>
// Output: db/seeds/reference_data.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

type licenseType struct {
	code string
	name string
}

type requirement struct {
	licenseCode string
	name        string
	description string
	mandatory   bool
	sortOrder   int
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: seedreqs <workbook.xlsx>")
	}
	xlsxPath := os.Args[1]
	outPath := "db/seeds/reference_data.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	types, err := parseLicenseTypes(f)
	if err != nil {
		return fmt.Errorf("parse license types: %w", err)
	}
	log.Printf("license types: %d entries", len(types))

	reqs, err := parseRequirements(f)
	if err != nil {
		return fmt.Errorf("parse requirements: %w", err)
	}
	log.Printf("document requirements: %d entries", len(reqs))

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	var b strings.Builder
	b.WriteString("-- License type and document requirement seed data generated from the authority workbook.\n")
	fmt.Fprintf(&b, "-- %d license types, %d requirements.\n", len(types), len(reqs))
	b.WriteString("BEGIN;\n\n")

	for _, t := range types {
		fmt.Fprintf(&b,
			"INSERT INTO license_types (id, code, name) VALUES (gen_random_uuid(), '%s', '%s')\n"+
				"ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name;\n",
			escapeSQL(t.code), escapeSQL(t.name))
	}
	b.WriteString("\n")

	for _, r := range reqs {
		mandatory := "false"
		if r.mandatory {
			mandatory = "true"
		}
		fmt.Fprintf(&b,
			"INSERT INTO document_requirements (id, license_type_id, name, description, mandatory, sort_order)\n"+
				"SELECT gen_random_uuid(), lt.id, '%s', '%s', %s, %d FROM license_types lt WHERE lt.code = '%s'\n"+
				"ON CONFLICT (license_type_id, name) DO UPDATE SET description = EXCLUDED.description, mandatory = EXCLUDED.mandatory, sort_order = EXCLUDED.sort_order;\n",
			escapeSQL(r.name), escapeSQL(r.description), mandatory, r.sortOrder, escapeSQL(r.licenseCode))
	}

	b.WriteString("\nCOMMIT;\n")

	if _, err := out.WriteString(b.String()); err != nil {
		return fmt.Errorf("write seed file: %w", err)
	}

	log.Printf("Generated %s", outPath)
	return nil
}

// parseLicenseTypes reads sheet 0. Columns: A(0)=code, B(1)=name.
// Data starts at row index 1 (header row skipped).
func parseLicenseTypes(f *excelize.File) ([]licenseType, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var types []licenseType
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		code := strings.TrimSpace(cellVal(row, 0))
		name := strings.TrimSpace(cellVal(row, 1))
		if code == "" || name == "" || seen[code] {
			continue
		}
		seen[code] = true
		types = append(types, licenseType{code: code, name: name})
	}
	return types, nil
}

// parseRequirements reads the Keperluan_Dokumen sheet. Columns:
// A(0)=license code, B(1)=requirement name, C(2)=description,
// D(3)=mandatory ("Wajib"/"Ya"/"Yes"), E(4)=sort order.
// Data starts at row index 1.
func parseRequirements(f *excelize.File) ([]requirement, error) {
	rows, err := f.GetRows("Keperluan_Dokumen")
	if err != nil {
		return nil, err
	}

	var reqs []requirement
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		licenseCode := strings.TrimSpace(cellVal(row, 0))
		name := strings.TrimSpace(cellVal(row, 1))
		if licenseCode == "" || name == "" {
			continue
		}

		sortOrder := i
		if raw := strings.TrimSpace(cellVal(row, 4)); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				sortOrder = n
			}
		}

		reqs = append(reqs, requirement{
			licenseCode: licenseCode,
			name:        name,
			description: strings.TrimSpace(cellVal(row, 2)),
			mandatory:   parseMandatory(cellVal(row, 3)),
			sortOrder:   sortOrder,
		})
	}
	return reqs, nil
}

// parseMandatory accepts the flag spellings seen in published workbooks.
func parseMandatory(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wajib", "ya", "yes", "true", "1", "mandatory":
		return true
	default:
		return false
	}
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
