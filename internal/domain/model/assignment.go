package model

import "time"

// AssignmentTable is the final slot by date grid. Unset cells are blank.
type AssignmentTable struct {
	labels []string
	dates  []time.Time
	cells  map[string]map[time.Time]string
}

// NewAssignmentTable creates an empty table with the given row labels and date columns.
func NewAssignmentTable(labels []string, dates []time.Time) *AssignmentTable {
	return &AssignmentTable{
		labels: append([]string(nil), labels...),
		dates:  append([]time.Time(nil), dates...),
		cells:  make(map[string]map[time.Time]string, len(labels)),
	}
}

// Set records name for label on date.
func (t *AssignmentTable) Set(label string, date time.Time, name string) {
	row, ok := t.cells[label]
	if !ok {
		row = make(map[time.Time]string)
		t.cells[label] = row
	}
	row[date] = name
}

// Get returns the name recorded for label on date, or "".
func (t *AssignmentTable) Get(label string, date time.Time) string {
	return t.cells[label][date]
}

// Labels returns the row labels in order.
func (t *AssignmentTable) Labels() []string {
	return append([]string(nil), t.labels...)
}

// Dates returns the date columns in order.
func (t *AssignmentTable) Dates() []time.Time {
	return append([]time.Time(nil), t.dates...)
}

// Rows renders the grid with a header row. The first header cell is empty
// and dates are written with format.
func (t *AssignmentTable) Rows(format func(time.Time) string) [][]string {
	header := make([]string, 0, len(t.dates)+1)
	header = append(header, "")
	for _, d := range t.dates {
		header = append(header, format(d))
	}
	rows := [][]string{header}
	for _, l := range t.labels {
		row := make([]string, 0, len(t.dates)+1)
		row = append(row, l)
		for _, d := range t.dates {
			row = append(row, t.Get(l, d))
		}
		rows = append(rows, row)
	}
	return rows
}
