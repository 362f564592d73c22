package clif

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"

	_ "github.com/duckdb/duckdb-go/v2"
)

// Layout used to render native parquet timestamps as text. The fractional
// part drops out when it is zero, and the admission-time parser reads this
// form back without loss.
const timestampLayout = "2006-01-02 15:04:05.999999"

// readParquet scans a parquet file through an in-memory DuckDB instance.
// DuckDB owns the decoding (column types, compression, nulls); we flatten
// each value back to text so that parquet and csv extracts look identical to
// the rest of the pipeline.
func readParquet(path string) (*Table, error) {
	db, err := sqlx.Open("duckdb", "")
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer db.Close()

	quoted := strings.ReplaceAll(path, "'", "''")
	rows, err := db.Queryx(fmt.Sprintf("SELECT * FROM read_parquet('%s')", quoted))
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, pfx.Err(err)
	}

	t := &Table{Name: tableName(path), Columns: cols}
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, pfx.Err(err)
		}

		row := make([]string, len(vals))
		for i, v := range vals {
			row[i] = cellString(v)
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	return t, nil
}

// cellString renders one DuckDB value the way a csv extract of the same
// table would spell it. NULL becomes the empty cell.
func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(timestampLayout)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
