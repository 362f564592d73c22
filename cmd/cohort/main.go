// Command cohort identifies a cohort of inpatient hospitalizations from a
// site's CLIF tables.
//
// Objective: find the hospitalizations admitted in a given date range whose
// patients were adults at admission, and emit the list of hospitalization_ids
// for downstream filtering of the other CLIF tables. An example project for
// this cohort would be surveillance of sepsis events based on the CDC Adult
// Sepsis Event criteria.
//
// With no arguments the tool reads config/config.json and uses the template
// window (2020-01-01 through 2021-12-31) and the adult age cutoff.
// Diagnostics go to stderr; the id list goes to stdout as a one-column table.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/08wparker/CLIF-sepsis/clif"
	"github.com/08wparker/CLIF-sepsis/cohort"
	"github.com/08wparker/CLIF-sepsis/siteconfig"
)

var (
	BufferSize = 4096 * 8
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

func main() {
	defer STDOUT.Flush()

	defaults := cohort.DefaultCriteria()

	var configPath, startDate, endDate string
	var minAge float64
	flag.StringVar(&configPath, "config", siteconfig.DefaultPath, "Path to the site's config.json")
	flag.StringVar(&startDate, "start-date", defaults.StartDate.Format("2006-01-02"), "First admission date to include (YYYY-MM-DD)")
	flag.StringVar(&endDate, "end-date", defaults.EndDate.Format("2006-01-02"), "Last admission date to include (YYYY-MM-DD)")
	flag.Float64Var(&minAge, "min-age", defaults.MinimumAge, "Minimum age at admission")
	flag.Parse()

	criteria, err := buildCriteria(startDate, endDate, minAge)
	if err != nil {
		log.Fatalln(err)
	}

	cfg, err := siteconfig.Load(configPath)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Loaded configuration from", configPath)
	log.Println("Site Name:", cfg.SiteName)
	log.Println("Tables Path:", cfg.TablesPath)
	log.Println("File Type:", cfg.FileType)

	tables := make(map[string]*clif.Table)
	for _, name := range clif.TableNames {
		t, err := clif.ReadTable(cfg.TablePath(name), cfg.FileType)
		if err != nil {
			log.Fatalln(err)
		}
		tables[name] = t
	}

	ids, err := cohort.Identify(tables[clif.TableHospitalization], criteria)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Identified", len(ids), "hospitalizations in the cohort")

	// Restrict the remaining CLIF tables to the cohort. Exporting these
	// subsets is left to each project; the row counts show how much data the
	// cohort retains per table.
	for _, name := range clif.TableNames {
		if name == clif.TableHospitalization {
			continue
		}
		sub, err := cohort.Subset(tables[name], ids)
		if err != nil {
			log.Fatalln(err)
		}
		log.Printf("Table %s: %d of %d rows belong to the cohort", name, sub.NumRows(), tables[name].NumRows())
	}

	// Apply other inclusion and exclusion criteria here before exporting.

	fmt.Fprintf(STDOUT, "%s\n", clif.ColumnHospitalizationID)
	for _, id := range ids {
		fmt.Fprintf(STDOUT, "%s\n", id)
	}
}

func buildCriteria(startDate, endDate string, minAge float64) (cohort.Criteria, error) {
	var c cohort.Criteria
	var err error

	c.StartDate, err = time.Parse("2006-01-02", startDate)
	if err != nil {
		return c, fmt.Errorf("bad -start-date '%s': %v", startDate, err)
	}
	c.EndDate, err = time.Parse("2006-01-02", endDate)
	if err != nil {
		return c, fmt.Errorf("bad -end-date '%s': %v", endDate, err)
	}
	c.MinimumAge = minAge

	return c, c.Validate()
}
