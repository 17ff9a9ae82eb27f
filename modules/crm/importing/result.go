package importing

// RowError is one failed row: its 1-based position in the original
// file (the header occupies row 1), the failure message, and the raw
// row values for targeted correction and resubmission.
type RowError struct {
	Row   int               `json:"row"`
	Error string            `json:"error"`
	Data  map[string]string `json:"data"`
}

// Result is the aggregate outcome of a run. The error list preserves
// file order; successCount + len(errors) always equals the number of
// data rows processed.
type Result struct {
	SuccessCount int        `json:"successCount"`
	Errors       []RowError `json:"errors"`
}

func (r Result) ErrorCount() int {
	return len(r.Errors)
}

func (r Result) TotalRows() int {
	return r.SuccessCount + len(r.Errors)
}
