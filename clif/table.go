// Package clif reads tables that follow the Common Longitudinal ICU-data
// Format into memory. Every cell is kept as its text representation; callers
// that need a timestamp or a number parse the column they care about.
package clif

import (
	"fmt"
)

// The CLIF tables a cohort project consumes.
const (
	TableADT                = "adt"
	TableHospitalization    = "hospitalization"
	TableVitals             = "vitals"
	TableLabs               = "labs"
	TableMedicationAdmin    = "medication_admin_continuous"
	TableRespiratorySupport = "respiratory_support"
)

var TableNames = []string{
	TableADT,
	TableHospitalization,
	TableVitals,
	TableLabs,
	TableMedicationAdmin,
	TableRespiratorySupport,
}

// Columns of the hospitalization table that cohort identification relies on.
const (
	ColumnHospitalizationID = "hospitalization_id"
	ColumnAdmissionDTTM     = "admission_dttm"
	ColumnAgeAtAdmission    = "age_at_admission"
)

// Table is one CLIF table held fully in memory. Rows are parallel to Columns.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// ColumnIndex scans the header for the named column. Column names are keyed
// exactly as the CLIF data dictionary spells them, so no case folding.
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, col := range t.Columns {
		if col == name {
			return i, nil
		}
	}

	return -1, fmt.Errorf("table %s has no column '%s' (columns: %v)", t.Name, name, t.Columns)
}

func (t *Table) NumRows() int {
	return len(t.Rows)
}

// MemoryEstimateMB walks every cell and sums the string bytes plus the Go
// header overhead of each string and row slice. Diagnostic only; nothing
// downstream consumes it.
func (t *Table) MemoryEstimateMB() float64 {
	const (
		stringHeader = 16
		sliceHeader  = 24
	)

	bytes := sliceHeader
	for _, col := range t.Columns {
		bytes += stringHeader + len(col)
	}
	for _, row := range t.Rows {
		bytes += sliceHeader
		for _, cell := range row {
			bytes += stringHeader + len(cell)
		}
	}

	return float64(bytes) / (1024 * 1024)
}
