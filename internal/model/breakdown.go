package model

// Rank is the overall visibility grade for a location.
type Rank string

const (
	RankS Rank = "S"
	RankA Rank = "A"
	RankB Rank = "B"
	RankC Rank = "C"
	RankD Rank = "D"

	// RankUnresolved marks batch rows whose input could not be resolved
	// to a coordinate.
	RankUnresolved Rank = "-"
)

// MaxScore is the highest attainable total (transit 3 + road 2 + intersection 1).
const MaxScore = 6.0

// rankBand is one row of the rank threshold table.
type rankBand struct {
	rank    Rank
	color   string
	comment string
}

var (
	bandS = rankBand{RankS, "green", "Prime location. A main street right in front of a station."}
	bandA = rankBand{RankA, "blue", "Strong location. A back street near a station, or a main-road intersection."}
	bandB = rankBand{RankB, "orange", "Average location. Along a main road, or a corner lot on a residential street. Steady demand expected."}
	bandC = rankBand{RankC, "orange", "Low visibility. Deep in a residential area; most rides will come from in-app search."}
	bandD = rankBand{RankD, "red", "Very low visibility. Far from any station, on a private drive or tucked away. Unlikely to be discovered."}
)

// RankFor maps a total score to its rank band. Thresholds are evaluated
// top-down, first match wins. The C band deliberately uses a strict >0 so
// that a truly zero score lands in D.
func RankFor(total float64) (Rank, string, string) {
	var b rankBand
	switch {
	case total >= 4:
		b = bandS
	case total >= 3:
		b = bandA
	case total >= 1.5:
		b = bandB
	case total > 0:
		b = bandC
	default:
		b = bandD
	}
	return b.rank, b.color, b.comment
}

// Breakdown is the full result of scoring one coordinate: an ordered trace
// of findings, the running total, and the derived rank.
type Breakdown struct {
	Coordinate Coordinate `json:"coordinate" yaml:"coordinate"`
	Findings   []string   `json:"findings" yaml:"findings"`
	Total      float64    `json:"total" yaml:"total"`
	Rank       Rank       `json:"rank" yaml:"rank"`
	Color      string     `json:"color" yaml:"color"`
	Comment    string     `json:"comment" yaml:"comment"`
}

// Finalize derives the rank fields from the accumulated total.
func (b *Breakdown) Finalize() {
	b.Rank, b.Color, b.Comment = RankFor(b.Total)
}
