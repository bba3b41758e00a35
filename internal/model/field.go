package model

// Field is a canonical column name of a transport job record.
type Field string

const (
	FieldAssignDate     Field = "assign_date"
	FieldJobID          Field = "job_id"
	FieldNumDeliveries  Field = "num_deliveries"
	FieldNumItems       Field = "num_items"
	FieldTotalCost      Field = "total_cost"
	FieldAdditionalCost Field = "additional_cost"
	FieldRouteName      Field = "route_name"
	FieldSuccessCount   Field = "success_count"
	FieldFailCount      Field = "fail_count"
	FieldCostSum        Field = "cost_sum"
)

// CanonicalFields lists every canonical field in declaration order.
var CanonicalFields = []Field{
	FieldAssignDate,
	FieldJobID,
	FieldNumDeliveries,
	FieldNumItems,
	FieldTotalCost,
	FieldAdditionalCost,
	FieldRouteName,
	FieldSuccessCount,
	FieldFailCount,
	FieldCostSum,
}

var canonicalIndex = func() map[string]Field {
	m := make(map[string]Field, len(CanonicalFields))
	for _, f := range CanonicalFields {
		m[string(f)] = f
	}
	return m
}()

// ParseField returns the canonical field named s.
func ParseField(s string) (Field, bool) {
	f, ok := canonicalIndex[s]
	return f, ok
}

// FieldSet records which canonical fields a table carries.
type FieldSet map[Field]bool

// NewFieldSet builds a set from the given fields.
func NewFieldSet(fields ...Field) FieldSet {
	s := make(FieldSet, len(fields))
	for _, f := range fields {
		s[f] = true
	}
	return s
}

// Has reports whether f is present.
func (s FieldSet) Has(f Field) bool {
	return s[f]
}

// Add marks f as present.
func (s FieldSet) Add(f Field) {
	s[f] = true
}

// Clone returns an independent copy of the set.
func (s FieldSet) Clone() FieldSet {
	out := make(FieldSet, len(s))
	for f, ok := range s {
		if ok {
			out[f] = true
		}
	}
	return out
}
