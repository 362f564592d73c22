package clif

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/carbocation/pfx"
)

// readCSV parses a comma-delimited file whose first record is the header.
// Any parse error from the csv reader (ragged rows, bad quoting) aborts the
// load; sites are expected to hand this pipeline well-formed extracts.
func readCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	rdr := csv.NewReader(f)

	t := &Table{Name: tableName(path)}
	for i := 0; ; i++ {
		line, err := rdr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, pfx.Err(err)
		}

		if i == 0 {
			t.Columns = line
			continue
		}

		t.Rows = append(t.Rows, line)
	}

	if t.Columns == nil {
		return nil, fmt.Errorf("%s: empty file, expected at least a header row", path)
	}

	return t, nil
}
