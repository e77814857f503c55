package rbi

import (
	"fmt"
	"log"

	"github.com/maseology/mmio"
)

// ResultsTable accumulates computed benefit columns keyed by the stable site
// id. All joins are by id, never by row position: the underlying feature
// storage may renumber rows on copy, so positional joins cross-contaminate
// sites. Absent cells read blank.
type ResultsTable struct {
	ids  []int
	cols []string
	rows map[int]map[string]string
	has  map[string]bool
}

func NewResultsTable(ids []int) *ResultsTable {
	t := &ResultsTable{
		ids:  append([]int{}, ids...),
		rows: make(map[int]map[string]string, len(ids)),
		has:  make(map[string]bool),
	}
	for _, id := range ids {
		t.rows[id] = make(map[string]string)
	}
	return t
}

// AddColumns registers output columns in report order; repeats are ignored.
func (t *ResultsTable) AddColumns(names ...string) {
	for _, n := range names {
		if !t.has[n] {
			t.has[n] = true
			t.cols = append(t.cols, n)
		}
	}
}

func (t *ResultsTable) set(id int, col, v string) {
	r, ok := t.rows[id]
	if !ok {
		log.Fatalf("ResultsTable.set: unknown site id %d", id)
	}
	if !t.has[col] {
		log.Fatalf("ResultsTable.set: unregistered column %s", col)
	}
	r[col] = v
}

func (t *ResultsTable) SetInt(id int, col string, v int)  { t.set(id, col, fmt.Sprintf("%d", v)) }
func (t *ResultsTable) SetBool(id int, col string, v bool) {
	if v {
		t.set(id, col, "TRUE")
	} else {
		t.set(id, col, "FALSE")
	}
}
func (t *ResultsTable) SetFloat(id int, col string, v float64) {
	t.set(id, col, fmt.Sprintf("%.3f", v))
}

// Get returns the formatted cell value, blank when never written.
func (t *ResultsTable) Get(id int, col string) string { return t.rows[id][col] }

// Columns returns the registered column names in report order.
func (t *ResultsTable) Columns() []string { return append([]string{}, t.cols...) }

// WriteCSV writes one row per site in input order.
func (t *ResultsTable) WriteCSV(fp string) error {
	csvw := mmio.NewCSVwriter(fp)
	defer csvw.Close()
	h := "siteid"
	for _, c := range t.cols {
		h += "," + c
	}
	if err := csvw.WriteHead(h); err != nil {
		return fmt.Errorf("ResultsTable.WriteCSV %s: %v", fp, err)
	}
	for _, id := range t.ids {
		vs := make([]interface{}, 0, len(t.cols)+1)
		vs = append(vs, id)
		for _, c := range t.cols {
			vs = append(vs, t.rows[id][c])
		}
		csvw.WriteLine(vs...)
	}
	return nil
}
