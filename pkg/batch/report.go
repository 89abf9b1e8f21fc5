package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// Report is the JSON summary written at the end of a batch run: one
// entry per job plus pass/fail totals, the JSON analogue of the
// teacher's result.Rule export the main.go `--output-json` flag writes.
type Report struct {
	Total     int       `json:"total"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Jobs      []Outcome `json:"jobs"`
}

// BuildReport summarizes a Table's outcomes into a Report.
func BuildReport(t *Table) Report {
	outcomes := t.Outcomes()
	r := Report{Total: len(outcomes), Jobs: outcomes}
	for _, o := range outcomes {
		if o.Err == "" {
			r.Succeeded++
		} else {
			r.Failed++
		}
	}
	return r
}

// WriteJSON writes r to path as indented JSON.
func WriteJSON(path string, r Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// ReadJSON reads a Report previously written by WriteJSON.
func ReadJSON(path string) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, err
	}
	defer f.Close()
	var r Report
	if err := json.NewDecoder(f).Decode(&r); err != nil {
		return Report{}, fmt.Errorf("batch: ReadJSON: %w", err)
	}
	return r, nil
}
