// Package conferences defines the domain model for the crypto conference
// tracker: the fixed field schema, tabular records loaded from a backing
// store, the completeness analyzer that produces the scrape work list, and
// validation of values returned by the research oracle.
package conferences

// Field identifies one of the tracked conference attributes. Fields form a
// closed set; values arriving under any other key are rejected at the parse
// boundary rather than silently stored.
type Field string

// Tracked conference fields. The string values match the column headers in
// the backing store and the JSON keys the oracle is instructed to use.
const (
	FieldStartDate Field = "Start Date"
	FieldEndDate   Field = "End Date"
	FieldLocation  Field = "Location"
	FieldSpeaker   Field = "Speaker"
	FieldAttendees Field = "Attendees"
	FieldStatus    Field = "Status"
)

// Descriptive columns that identify a conference but are never scraped.
const (
	ColumnName     = "Conference Name"
	ColumnCategory = "Category"
	ColumnRegion   = "Region"
)

// requiredFields lists the scraped fields in canonical order. The order
// matters: it determines both prompt construction and the order missing
// fields are reported in.
var requiredFields = []Field{
	FieldStartDate,
	FieldEndDate,
	FieldLocation,
	FieldSpeaker,
	FieldAttendees,
	FieldStatus,
}

// RequiredFields returns the scraped field set in canonical order.
// The returned slice is a copy and safe to modify.
func RequiredFields() []Field {
	out := make([]Field, len(requiredFields))
	copy(out, requiredFields)
	return out
}

// IsRequiredField reports whether name is one of the tracked fields.
func IsRequiredField(name string) bool {
	for _, f := range requiredFields {
		if string(f) == name {
			return true
		}
	}
	return false
}
