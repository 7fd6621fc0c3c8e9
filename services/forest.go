package services

// StageDef is one step of the forest growth visualization.
type StageDef struct {
	Threshold int    `json:"threshold"`
	Label     string `json:"label"`
}

var forestStages = []StageDef{
	{Threshold: 0, Label: "Seedling"},
	{Threshold: 5, Label: "Sprout"},
	{Threshold: 10, Label: "Small Tree"},
	{Threshold: 20, Label: "Growing Forest"},
	{Threshold: 50, Label: "Lush Ecosystem"},
}

// ForestStages returns the stage table in threshold order.
func ForestStages() []StageDef {
	out := make([]StageDef, len(forestStages))
	copy(out, forestStages)
	return out
}

// StageProgress is where a level sits in the stage table.
type StageProgress struct {
	Level   int       `json:"level"`
	Current StageDef  `json:"current"`
	Next    *StageDef `json:"next"`
	Percent float64   `json:"percent"`
}

// Stage picks the highest stage whose threshold is <= level, the stage after
// it, and the percentage of the way there. Percent is 0 at the final stage.
func Stage(level int) StageProgress {
	if level < 0 {
		level = 0
	}

	idx := 0
	for i, st := range forestStages {
		if st.Threshold <= level {
			idx = i
		}
	}

	out := StageProgress{Level: level, Current: forestStages[idx]}
	if idx+1 < len(forestStages) {
		next := forestStages[idx+1]
		out.Next = &next
		if span := next.Threshold - out.Current.Threshold; span > 0 {
			// multiply first so whole percentages stay exact
			out.Percent = float64(level-out.Current.Threshold) * 100 / float64(span)
		}
	}
	return out
}
