package clif

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/duckdb/duckdb-go/v2"
)

const sampleCSV = `hospitalization_id,admission_dttm,age_at_admission
1,2020-06-01 00:00:00,45
2,2019-12-31 00:00:00,30
3,2021-01-01 00:00:00,17
`

func writeSampleCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clif_hospitalization.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	return path
}

func TestReadTable_CSV(t *testing.T) {
	tab, err := ReadTable(writeSampleCSV(t), "csv")
	require.NoError(t, err)

	assert.Equal(t, "hospitalization", tab.Name)
	assert.Equal(t, []string{"hospitalization_id", "admission_dttm", "age_at_admission"}, tab.Columns)
	require.Equal(t, 3, tab.NumRows())
	assert.Equal(t, []string{"2", "2019-12-31 00:00:00", "30"}, tab.Rows[1])
}

func TestReadTable_UnsupportedFileType(t *testing.T) {
	// The path deliberately does not exist: an unsupported discriminator has
	// to fail before any file access.
	_, err := ReadTable(filepath.Join(t.TempDir(), "clif_labs.xlsx"), "xlsx")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestReadTable_CSVMissingFile(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "clif_vitals.csv"), "csv")
	require.Error(t, err)
}

func TestReadTable_CSVEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clif_adt.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := ReadTable(path, "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header")
}

func TestReadTable_Parquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clif_hospitalization.parquet")

	db, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(fmt.Sprintf(`COPY (
		SELECT * FROM (VALUES
			('1', TIMESTAMP '2020-06-01 00:00:00', 45),
			('2', TIMESTAMP '2019-12-31 08:30:00', 30),
			('3', NULL, 17)
		) t(hospitalization_id, admission_dttm, age_at_admission)
	) TO '%s' (FORMAT PARQUET)`, path))
	require.NoError(t, err)

	tab, err := ReadTable(path, "parquet")
	require.NoError(t, err)

	assert.Equal(t, "hospitalization", tab.Name)
	assert.Equal(t, []string{"hospitalization_id", "admission_dttm", "age_at_admission"}, tab.Columns)
	require.Equal(t, 3, tab.NumRows())

	assert.Equal(t, []string{"1", "2020-06-01 00:00:00", "45"}, tab.Rows[0])
	assert.Equal(t, []string{"2", "2019-12-31 08:30:00", "30"}, tab.Rows[1])
	// NULL timestamps flatten to the empty cell
	assert.Equal(t, "", tab.Rows[2][1])
}

func TestColumnIndex(t *testing.T) {
	tab := &Table{
		Name:    "hospitalization",
		Columns: []string{"hospitalization_id", "admission_dttm"},
	}

	idx, err := tab.ColumnIndex("admission_dttm")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = tab.ColumnIndex("age_at_admission")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "age_at_admission")
	assert.Contains(t, err.Error(), "hospitalization")
}

func TestMemoryEstimateMB(t *testing.T) {
	tab := &Table{
		Name:    "vitals",
		Columns: []string{"hospitalization_id", "vital_value"},
		Rows:    [][]string{{"1", "98.6"}, {"2", "101.2"}},
	}

	assert.Greater(t, tab.MemoryEstimateMB(), 0.0)
	assert.Less(t, tab.MemoryEstimateMB(), 1.0)
}
