package model

// Table is a set of canonical records plus the column layout they were read
// with. Filtered views share Columns and Fields with their source table.
type Table struct {
	Columns []string `json:"columns"`
	Fields  FieldSet `json:"-"`
	Records []Record `json:"records"`
}

// Has reports whether the source file carried field f. total_cost,
// additional_cost and cost_sum are always present after normalization.
func (t *Table) Has(f Field) bool {
	if t == nil {
		return false
	}
	return t.Fields.Has(f)
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// WithRecords returns a table with the same layout holding recs.
func (t *Table) WithRecords(recs []Record) *Table {
	return &Table{
		Columns: t.Columns,
		Fields:  t.Fields,
		Records: recs,
	}
}

// PresentFields lists the present canonical fields in canonical order.
func (t *Table) PresentFields() []Field {
	var out []Field
	for _, f := range CanonicalFields {
		if t.Has(f) {
			out = append(out, f)
		}
	}
	return out
}
