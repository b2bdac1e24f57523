package handler

import (
	"fmt"

	"github.com/safeops/payloadeye/model"
)

// RunResult pairs one handler's name with the per-file reports it produced.
type RunResult struct {
	Handler string
	Reports model.HandlerReport
}

// RunAll runs every classifier over every payload, then the catch-all over
// whatever remained unclaimed. Results keep handler order so the rendered
// report sections are stable across runs.
func RunAll(env *Env, payloads []*model.Payload) ([]RunResult, error) {
	results := []RunResult{}
	for _, h := range All() {
		reports := model.HandlerReport{}
		for _, payload := range payloads {
			rows := []model.ReportRow{}
			for i := range payload.Transactions {
				row, err := h.Fn(env, payload, &payload.Transactions[i], i)
				if err != nil {
					return nil, fmt.Errorf("handler %s on %s tx %d is err: %v", h.Name, payload.FileName, i, err)
				}
				if row != nil {
					rows = append(rows, *row)
				}
			}
			if len(rows) > 0 {
				reports[payload.FileName] = &model.FileReport{Payload: payload, Handler: h.Name, Rows: rows}
			}
		}
		results = append(results, RunResult{Handler: h.Name, Reports: reports})
	}
	results = append(results, RunResult{Handler: HandlerUncovered, Reports: Uncovered(env, payloads, results)})
	return results, nil
}
