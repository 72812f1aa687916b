package booking

// OCRConfidenceThreshold is the minimum extractor confidence at which a
// scanned field may be auto-filled into a form.
const OCRConfidenceThreshold = 0.8

// MergeField applies the single precedence rule for combining a scanned
// value with the current form value: anything the user typed always wins,
// and low-confidence extractions are discarded. No per-field special cases.
func MergeField(current, incoming string, userEdited bool, confidence float64) string {
	if userEdited {
		return current
	}
	if incoming == "" || confidence < OCRConfidenceThreshold {
		return current
	}
	return incoming
}

// MergeFields folds a whole extraction into the current form values.
// edited marks fields the user has touched.
func MergeFields(current map[string]string, incoming map[string]string, edited map[string]bool, confidence float64) map[string]string {
	merged := make(map[string]string, len(current)+len(incoming))
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range incoming {
		merged[k] = MergeField(merged[k], v, edited[k], confidence)
	}
	return merged
}
