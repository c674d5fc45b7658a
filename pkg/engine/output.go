package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"

	"github.com/bennyhartnett/swucalc/pkg/calc"
)

// Report summarizes one batch run. Rows are in canonical units.
type Report struct {
	ID      uuid.UUID     `json:"id"`
	Started time.Time     `json:"started"`
	Elapsed time.Duration `json:"elapsed"`
	Config  Config        `json:"config"`
	Rows    []calc.Result `json:"rows"`
	Failed  int           `json:"failed"`
}

// Table is a header row plus data rows. Cells are strings, float64 values
// or nil for blanks.
type Table struct {
	Headers []string
	Rows    [][]any
}

// Table renders the report rows in the configured display units.
func (r Report) Table() (Table, error) {
	mass, assay, work, err := r.Config.Units()
	if err != nil {
		return Table{}, err
	}

	t := Table{Headers: []string{
		"Name", "Mode",
		"Product assay (" + assay.Name + ")",
		"Feed assay (" + assay.Name + ")",
		"Tails assay (" + assay.Name + ")",
		"Product (" + mass.Name + ")",
		"Feed (" + mass.Name + ")",
		"Tails (" + mass.Name + ")",
		"Work (" + work.Name + ")",
		"Cost",
		"Error",
	}}
	for _, row := range r.Rows {
		cells := []any{row.Name, row.Mode, assay.FromBase(row.Xp), assay.FromBase(row.Xf), nil, nil, nil, nil, nil, nil, nil}
		if row.Xw > 0 {
			cells[4] = assay.FromBase(row.Xw)
		}
		if row.OK() {
			cells[5] = mass.FromBase(row.Product)
			cells[6] = mass.FromBase(row.Feed)
			cells[7] = mass.FromBase(row.Waste)
			cells[8] = work.FromBase(row.SWU)
			if row.Cost > 0 {
				cells[9] = row.Cost
			}
		} else {
			cells[10] = row.Err
		}
		t.Rows = append(t.Rows, cells)
	}
	return t, nil
}

// SweepTable renders a tails sweep in the configured display units. The
// feed, work and cost columns are per unit of product mass.
func SweepTable(points []calc.SweepPoint, cfg Config) (Table, error) {
	mass, assay, work, err := cfg.Units()
	if err != nil {
		return Table{}, err
	}
	t := Table{Headers: []string{
		"Tails assay (" + assay.Name + ")",
		"Feed (" + mass.Name + "/" + mass.Name + ")",
		"Work (" + work.Name + "/" + mass.Name + ")",
		"Cost/" + mass.Name,
	}}
	for _, p := range points {
		// per-kg figures scaled to one display mass unit
		t.Rows = append(t.Rows, []any{
			assay.FromBase(p.Tails),
			p.Feed,
			work.FromBase(p.SWU) * mass.Scale,
			p.Cost * mass.Scale,
		})
	}
	return t, nil
}

// FormatValue formats v the way WriteTable formats a numeric cell.
func FormatValue(v float64, precision int) string { return formatCell(v, precision) }

func formatCell(v any, precision int) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		if precision <= 0 {
			precision = -1
		}
		return strconv.FormatFloat(c, 'g', precision, 64)
	case int:
		return strconv.Itoa(c)
	default:
		return fmt.Sprint(c)
	}
}

// WriteTable writes t as left-aligned columns separated by two spaces.
// Columns that are blank in every row are dropped unless there are no rows.
func WriteTable(w io.Writer, t Table, precision int) {
	cells := make([][]string, len(t.Rows))
	used := make([]bool, len(t.Headers))
	if len(t.Rows) == 0 {
		for j := range used {
			used[j] = true
		}
	}
	for i, row := range t.Rows {
		cells[i] = make([]string, len(t.Headers))
		for j := range t.Headers {
			if j < len(row) {
				cells[i][j] = formatCell(row[j], precision)
			}
			if cells[i][j] != "" {
				used[j] = true
			}
		}
	}

	widths := make([]int, len(t.Headers))
	for j, h := range t.Headers {
		widths[j] = runewidth.StringWidth(h)
		for i := range cells {
			if n := runewidth.StringWidth(cells[i][j]); n > widths[j] {
				widths[j] = n
			}
		}
	}

	line := func(vals []string) {
		parts := make([]string, 0, len(vals))
		for j, v := range vals {
			if !used[j] {
				continue
			}
			parts = append(parts, runewidth.FillRight(v, widths[j]))
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	line(t.Headers)
	rule := make([]string, len(t.Headers))
	for j := range rule {
		rule[j] = strings.Repeat("-", widths[j])
	}
	line(rule)
	for _, row := range cells {
		line(row)
	}
}

// WriteTextReport writes the report table followed by a one-line summary.
func WriteTextReport(w io.Writer, r Report) error {
	t, err := r.Table()
	if err != nil {
		return err
	}
	WriteTable(w, t, r.Config.Precision)
	fmt.Fprintf(w, "\n%d rows, %d failed (run %s, %s)\n",
		len(r.Rows), r.Failed, r.ID, r.Elapsed.Round(time.Microsecond))
	return nil
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
