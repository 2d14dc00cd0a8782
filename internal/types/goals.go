package types

import "fmt"

// Goal identifies the eating objective that drives dish scoring.
type Goal string

const (
	GoalEnjoymentFirst Goal = "enjoyment_first"
	GoalFatLoss        Goal = "fat_loss"
	GoalMuscleGain     Goal = "muscle_gain"
	GoalBloodSugar     Goal = "blood_sugar"
)

// AllGoals lists every supported goal id.
var AllGoals = []Goal{GoalEnjoymentFirst, GoalFatLoss, GoalMuscleGain, GoalBloodSugar}

// ParseGoal validates a goal id string. An empty string defaults to
// enjoyment_first.
func ParseGoal(s string) (Goal, error) {
	if s == "" {
		return GoalEnjoymentFirst, nil
	}
	for _, g := range AllGoals {
		if s == string(g) {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown goal %q", s)
}
