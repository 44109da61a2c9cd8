package ledger

import "math"

// Progress is the derived view of a ledger for rendering.
type Progress struct {
	Current  int     `json:"current"`
	Goal     int     `json:"goal"`
	Percent  float64 `json:"percent"`
	Rounded  int     `json:"rounded"`
	Achieved bool    `json:"achieved"`
}

// Percentage is current as a share of goal, capped at 100.
func Percentage(current, goal int) float64 {
	return math.Min(float64(current)/float64(goal)*100, 100)
}

func NewProgress(current, goal int) Progress {
	p := Percentage(current, goal)
	return Progress{
		Current:  current,
		Goal:     goal,
		Percent:  p,
		Rounded:  int(math.Round(p)),
		Achieved: current >= goal,
	}
}
