// Package cohort derives the set of qualifying hospitalizations from a CLIF
// hospitalization table. The cohort is the anchor for everything downstream:
// the other CLIF tables get restricted to its hospitalization_ids before any
// project-specific analysis (e.g., sepsis surveillance) begins.
package cohort

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/carbocation/pfx"

	"github.com/08wparker/CLIF-sepsis/clif"
)

// Identify applies the inclusion criteria to the hospitalization table and
// returns the deduplicated hospitalization_ids, in first-seen order.
//
// The date filter runs first, so a malformed age on a row outside the window
// never surfaces. A malformed admission timestamp anywhere is fatal: an
// encounter we cannot place in time could silently change the cohort.
func Identify(hosp *clif.Table, c Criteria) ([]string, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	idCol, err := hosp.ColumnIndex(clif.ColumnHospitalizationID)
	if err != nil {
		return nil, err
	}
	admitCol, err := hosp.ColumnIndex(clif.ColumnAdmissionDTTM)
	if err != nil {
		return nil, err
	}
	ageCol, err := hosp.ColumnIndex(clif.ColumnAgeAtAdmission)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0)
	seen := make(map[string]struct{})
	for i, row := range hosp.Rows {
		admit, err := ParseAdmission(row[admitCol])
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("row %d of table %s: %v", i+1, hosp.Name, err))
		}
		if !c.Contains(admit) {
			continue
		}

		age, err := strconv.ParseFloat(strings.TrimSpace(row[ageCol]), 64)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("row %d of table %s: bad %s '%s'", i+1, hosp.Name, clif.ColumnAgeAtAdmission, row[ageCol]))
		}
		if age < c.MinimumAge {
			continue
		}

		id := row[idCol]
		if _, exists := seen[id]; exists {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ids, nil
}

// ParseAdmission reads an admission_dttm cell, inferring the timestamp layout
// from the text itself so csv and parquet extracts both work.
func ParseAdmission(value string) (time.Time, error) {
	res, err := dateparse.ParseAny(value)
	if err == nil {
		return res, nil
	}

	// Try a known clinical-export layout that dateparse fails to understand
	return time.Parse("02-Jan-2006 15:04:05", value)
}

// Unique drops duplicate ids, keeping first-seen order. Running it over its
// own output is the identity.
func Unique(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, exists := seen[id]; exists {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}

// Subset restricts any CLIF table to the rows belonging to the cohort's
// hospitalizations. The table keeps its name and columns; only rows whose
// hospitalization_id is in the cohort survive.
func Subset(t *clif.Table, ids []string) (*clif.Table, error) {
	idCol, err := t.ColumnIndex(clif.ColumnHospitalizationID)
	if err != nil {
		return nil, err
	}

	member := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		member[id] = struct{}{}
	}

	out := &clif.Table{Name: t.Name, Columns: t.Columns}
	for _, row := range t.Rows {
		if _, exists := member[row[idCol]]; exists {
			out.Rows = append(out.Rows, row)
		}
	}

	return out, nil
}
