package services

// Tier is a display-only reward threshold. Nothing in the service is gated on
// tier membership.
type Tier struct {
	Name      string `json:"tier"`
	MinPoints int64  `json:"points"`
	Reward    string `json:"reward"`
}

var rewardTiers = []Tier{
	{Name: "Bronze", MinPoints: 50, Reward: "Reusable Bag"},
	{Name: "Silver", MinPoints: 100, Reward: "Eco Bottle"},
	{Name: "Gold", MinPoints: 200, Reward: "Tree Plantation"},
	{Name: "Platinum", MinPoints: 500, Reward: "Community Recognition"},
}

// ListTiers returns the tier table in ascending order of MinPoints.
func ListTiers() []Tier {
	out := make([]Tier, len(rewardTiers))
	copy(out, rewardTiers)
	return out
}
