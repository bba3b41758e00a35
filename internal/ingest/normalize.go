package ingest

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sells-group/transport-report/internal/model"
)

// Normalizer maps raw spreadsheet columns onto canonical fields.
type Normalizer struct {
	columns map[string]model.Field
}

// NewNormalizer builds a Normalizer from DefaultColumns plus extra aliases.
// Aliases win over defaults for the same header.
func NewNormalizer(aliases map[string]model.Field) *Normalizer {
	return &Normalizer{columns: buildColumnIndex(aliases)}
}

// binding is the canonical field a raw column feeds, if any.
type binding struct {
	field model.Field
	ok    bool
}

// Normalize converts raw into a canonical table. It never fails and never
// drops or merges rows: missing cost columns read as zero, unknown headers
// pass through unchanged, and unreadable dates become null.
func (n *Normalizer) Normalize(raw *model.RawTable) *model.Table {
	if raw == nil {
		raw = &model.RawTable{}
	}

	fields := model.NewFieldSet()
	bindings := make([]binding, len(raw.Header))
	for i, h := range raw.Header {
		if f, ok := n.columns[headerKey(h)]; ok && !fields.Has(f) {
			fields.Add(f)
			bindings[i] = binding{field: f, ok: true}
		}
	}

	names := passthroughNames(raw.Header, bindings)
	columns := make([]string, 0, len(raw.Header)+3)
	var recognized, passthrough []string
	for i, b := range bindings {
		if b.ok {
			columns = append(columns, string(b.field))
			recognized = append(recognized, string(b.field))
			continue
		}
		passthrough = append(passthrough, names[i])
		columns = append(columns, names[i])
	}

	for _, f := range []model.Field{model.FieldTotalCost, model.FieldAdditionalCost, model.FieldCostSum} {
		if !fields.Has(f) {
			fields.Add(f)
			columns = append(columns, string(f))
		}
	}

	records := make([]model.Record, len(raw.Rows))
	for r, row := range raw.Rows {
		rec := &records[r]
		for i, b := range bindings {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if !b.ok {
				if rec.Passthrough == nil {
					rec.Passthrough = make(map[string]string, len(passthrough))
				}
				rec.Passthrough[names[i]] = cell
				continue
			}
			assign(rec, b.field, cell)
		}
		rec.CostSum = rec.TotalCost + rec.AdditionalCost
	}

	zap.L().Debug("ingest: normalized table",
		zap.Int("rows", len(records)),
		zap.Strings("recognized", recognized),
		zap.Strings("passthrough", passthrough),
	)

	return &model.Table{
		Columns: columns,
		Fields:  fields,
		Records: records,
	}
}

// passthroughNames names every unbound column. A header that spells a
// canonical field, or clashes with another column, gets the ".N" suffix the
// loader uses for repeated headers so its values stay addressable.
func passthroughNames(header []string, bindings []binding) []string {
	taken := make(map[string]bool, len(header)+len(model.CanonicalFields))
	for _, f := range model.CanonicalFields {
		taken[string(f)] = true
	}
	for i, h := range header {
		if !bindings[i].ok {
			taken[h] = true
		}
	}

	names := make([]string, len(header))
	for i, h := range header {
		if bindings[i].ok {
			continue
		}
		if _, canonical := model.ParseField(h); !canonical {
			names[i] = h
			continue
		}
		for n := 1; ; n++ {
			name := fmt.Sprintf("%s.%d", h, n)
			if !taken[name] {
				taken[name] = true
				names[i] = name
				break
			}
		}
	}
	return names
}

// assign coerces one cell into its canonical field. A cost_sum column in the
// source is ignored; the derived sum replaces it.
func assign(rec *model.Record, f model.Field, cell string) {
	switch f {
	case model.FieldAssignDate:
		rec.AssignDate = parseDate(cell)
	case model.FieldJobID:
		rec.JobID = trimmed(cell)
	case model.FieldNumDeliveries:
		rec.NumDeliveries = coerceInt(cell)
	case model.FieldNumItems:
		rec.NumItems = coerceInt(cell)
	case model.FieldTotalCost:
		rec.TotalCost = coerceFloat(cell)
	case model.FieldAdditionalCost:
		rec.AdditionalCost = coerceFloat(cell)
	case model.FieldRouteName:
		rec.RouteName = nullString(cell)
	case model.FieldSuccessCount:
		rec.SuccessCount = coerceInt(cell)
	case model.FieldFailCount:
		rec.FailCount = coerceInt(cell)
	case model.FieldCostSum:
	}
}

func trimmed(s string) string {
	if p := nullString(s); p != nil {
		return *p
	}
	return ""
}
