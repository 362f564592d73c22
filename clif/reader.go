package clif

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"
)

// ErrUnsupportedFileType is returned for any format discriminator other than
// 'csv' or 'parquet', before the file itself is touched.
var ErrUnsupportedFileType = errors.New("unsupported file type: please provide either 'csv' or 'parquet'")

// ReadTable loads one CLIF table into memory using the reader that matches
// the configured file type. Each successful load reports its wall-clock time
// and estimated in-memory size, which is useful for spotting the tables that
// dominate a site's load step.
func ReadTable(path, fileType string) (*Table, error) {
	start := time.Now()

	var t *Table
	var err error
	switch fileType {
	case "csv":
		t, err = readCSV(path)
	case "parquet":
		t, err = readParquet(path)
	default:
		return nil, fmt.Errorf("%w (got '%s')", ErrUnsupportedFileType, fileType)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("File name: %s", filepath.Base(path))
	log.Printf("Time taken to load the dataset: %.2f seconds", time.Since(start).Seconds())
	log.Printf("Size of the loaded dataset: %.2f MB", t.MemoryEstimateMB())

	return t, nil
}

// tableName recovers the CLIF table name from the conventional file name,
// clif_<table>.<ext>. Files named otherwise keep their base name.
func tableName(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	if len(base) > 5 && base[:5] == "clif_" {
		return base[5:]
	}

	return base
}
