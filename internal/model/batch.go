package model

// BatchRow is one input row of a batch run together with its outcome.
// Index is the original row position so callers can reassemble output in
// input order regardless of completion order.
type BatchRow struct {
	Index      int         `json:"index"`
	Input      string      `json:"input"`
	Coordinate *Coordinate `json:"coordinate,omitempty"`
	Breakdown  *Breakdown  `json:"breakdown,omitempty"`
	Err        string      `json:"error,omitempty"`
}

// Resolved reports whether the row's input produced a coordinate.
func (r BatchRow) Resolved() bool {
	return r.Coordinate != nil
}

// Rank returns the row's rank, or RankUnresolved for failed rows.
func (r BatchRow) Rank() Rank {
	if r.Breakdown == nil {
		return RankUnresolved
	}
	return r.Breakdown.Rank
}

// Score returns the row's total score, zero for failed rows.
func (r BatchRow) Score() float64 {
	if r.Breakdown == nil {
		return 0
	}
	return r.Breakdown.Total
}
