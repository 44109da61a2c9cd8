package ledger

import (
	"fmt"
	"math"
)

type NoticeKind string

const (
	GoalAchieved  NoticeKind = "goal_achieved"
	AlmostThere   NoticeKind = "almost_there"
	GreatProgress NoticeKind = "great_progress"
	WaterAdded    NoticeKind = "water_added"
)

// Notice is what the UI shows after a drink is logged.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Percent int        `json:"percent"`
	Amount  int        `json:"amount"`
}

// Classify picks the notice for a post-add total. The achieved band compares
// raw totals, so 1995 of 2000 (rounds to 100%) is still AlmostThere.
func Classify(total, goal, amount int) Notice {
	p := int(math.Round(float64(total) / float64(goal) * 100))
	n := Notice{Percent: p, Amount: amount}
	switch {
	case total >= goal:
		n.Kind = GoalAchieved
	case p >= 75:
		n.Kind = AlmostThere
	case p >= 50:
		n.Kind = GreatProgress
	default:
		n.Kind = WaterAdded
	}
	return n
}

func (n Notice) Title() string {
	switch n.Kind {
	case GoalAchieved:
		return "Goal Achieved!"
	case AlmostThere:
		return "Almost There!"
	case GreatProgress:
		return "Great Progress!"
	default:
		return "Water Added!"
	}
}

func (n Notice) Message() string {
	switch n.Kind {
	case GoalAchieved:
		return "Congratulations! You've reached your daily hydration goal!"
	case AlmostThere:
		return fmt.Sprintf("You're at %d%% of your daily goal. Keep it up!", n.Percent)
	case GreatProgress:
		return fmt.Sprintf("Halfway there! %d%% of your goal completed.", n.Percent)
	default:
		return fmt.Sprintf("Added %dml. You're doing great!", n.Amount)
	}
}
