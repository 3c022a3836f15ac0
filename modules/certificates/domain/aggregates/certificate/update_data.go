package certificate

import "sort"

// Canonical patch field names. A patch addresses mutable fields by these
// names; anything else is ignored by the persistence layer.
const (
	FieldType           = "type"
	FieldRecordNumber   = "record_number"
	FieldPartiesName    = "parties_name"
	FieldNotes          = "notes"
	FieldPriority       = "priority"
	FieldStatus         = "status"
	FieldCost           = "cost"
	FieldAdditionalCost = "additional_cost"
	FieldOrderNumber    = "order_number"
	FieldPaymentTypeID  = "payment_type_id"
	FieldPaymentDate    = "payment_date"
)

// MutableFields lists every field a patch may address, in canonical order.
var MutableFields = []string{
	FieldType,
	FieldRecordNumber,
	FieldPartiesName,
	FieldNotes,
	FieldPriority,
	FieldStatus,
	FieldCost,
	FieldAdditionalCost,
	FieldOrderNumber,
	FieldPaymentTypeID,
	FieldPaymentDate,
}

// UpdateData is a sparse patch keyed by canonical field names. The status
// field carries the target status's internal name.
type UpdateData map[string]any

// Clone returns a shallow copy so callers can filter without mutating the
// original payload.
func (d UpdateData) Clone() UpdateData {
	out := make(UpdateData, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// TouchedFields returns the patch keys in canonical field order. Keys
// outside MutableFields are appended last so nothing silently disappears
// from an audit trail.
func (d UpdateData) TouchedFields() []string {
	out := make([]string, 0, len(d))
	seen := make(map[string]bool, len(d))
	for _, name := range MutableFields {
		if _, ok := d[name]; ok {
			out = append(out, name)
			seen[name] = true
		}
	}
	var extras []string
	for k := range d {
		if !seen[k] {
			extras = append(extras, k)
		}
	}
	sort.Strings(extras)
	return append(out, extras...)
}
