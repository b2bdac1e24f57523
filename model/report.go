package model

// ReportField is one display line of a report row. Fields keep the order the
// handler emitted them in.
type ReportField struct {
	Key   string
	Value string
}

// ReportRow is the flat record a handler produces for one classified
// transaction. Rows are rendered to text immediately and never persisted.
type ReportRow struct {
	Handler string
	TxIndex int
	Fields  []ReportField
}

// Add appends one display pair and returns the row for chaining.
func (r *ReportRow) Add(key, value string) *ReportRow {
	r.Fields = append(r.Fields, ReportField{Key: key, Value: value})
	return r
}

// Get returns the value for key, "" when the row has no such field.
func (r *ReportRow) Get(key string) string {
	for _, field := range r.Fields {
		if field.Key == key {
			return field.Value
		}
	}
	return ""
}

// FileReport groups the rows one handler produced for one payload file.
type FileReport struct {
	Payload *Payload
	Handler string
	Rows    []ReportRow
}

// HandlerReport maps payload file names to their per-handler report. One of
// these exists per handler per run; the merge step stitches them together in
// handler order.
type HandlerReport map[string]*FileReport
