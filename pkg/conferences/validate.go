package conferences

import "strings"

// maxDateLen bounds the MM/DD shape the sheet expects; anything longer is
// a full date or prose and gets rejected.
const maxDateLen = 5

// ValidateFields normalizes and sanity-checks oracle-returned values.
// The result is strictly a subset of the input: a value that fails its rule
// is dropped silently, leaving the record incomplete for that field so a
// future cycle retries it. Running the validator on its own output is a
// no-op.
//
// Rules:
//   - Start Date / End Date: trimmed value must contain "/" and be at most
//     five characters (an MM/DD shape, without full date parsing).
//   - Location / Speaker / Attendees / Status: trimmed value must be
//     non-empty.
func ValidateFields(fields map[Field]string) map[Field]string {
	validated := make(map[Field]string, len(fields))

	for field, raw := range fields {
		value := strings.TrimSpace(raw)
		switch field {
		case FieldStartDate, FieldEndDate:
			if strings.Contains(value, "/") && len(value) <= maxDateLen {
				validated[field] = value
			}
		case FieldLocation, FieldSpeaker, FieldAttendees, FieldStatus:
			if value != "" {
				validated[field] = value
			}
		}
	}

	return validated
}
