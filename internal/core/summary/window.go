package summary

import "time"

// FilterWindow narrows records to the trailing window that starts at
// boundary. The window is half-open below: a record at exactly the
// boundary is kept, anything older is dropped. There is no upper bound —
// records timestamped ahead of the run clock (skewed writers) pass
// through, matching the source pipeline's behavior.
func FilterWindow(records []Transaction, boundary time.Time) []Transaction {
	var out []Transaction
	for _, r := range records {
		if r.OrderedAt.Before(boundary) {
			continue
		}
		out = append(out, r)
	}
	return out
}
