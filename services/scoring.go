package services

import (
	"math"
	"strconv"
	"strings"
)

// CategoryScore is the per-item value of one recyclable category.
type CategoryScore struct {
	Category string `json:"category"`
	Points   int64  `json:"points"`
}

// categoryScores is ordered for display; categoryPoints is the lookup.
var categoryScores = []CategoryScore{
	{Category: "Plastic Bottles", Points: 2},
	{Category: "Cardboard", Points: 5},
	{Category: "Electronics", Points: 10},
	{Category: "Metal", Points: 8},
	{Category: "Glass", Points: 6},
	{Category: "E-Waste", Points: 12},
}

var categoryPoints = func() map[string]int64 {
	m := make(map[string]int64, len(categoryScores))
	for _, cs := range categoryScores {
		m[cs.Category] = cs.Points
	}
	return m
}()

// DefaultUnitPoints is what an item outside the known categories is worth.
const DefaultUnitPoints int64 = 1

// Categories lists the known categories in display order.
func Categories() []CategoryScore {
	out := make([]CategoryScore, len(categoryScores))
	copy(out, categoryScores)
	return out
}

// UnitPoints returns the per-item value of a category.
func UnitPoints(category string) int64 {
	if p, ok := categoryPoints[category]; ok {
		return p
	}
	return DefaultUnitPoints
}

// Score is unit points × quantity. A negative quantity scores 0 and a product
// past the int64 range saturates at math.MaxInt64.
func Score(category string, quantity int) int64 {
	if quantity <= 0 {
		return 0
	}
	unit := UnitPoints(category)
	if int64(quantity) > math.MaxInt64/unit {
		return math.MaxInt64
	}
	return unit * int64(quantity)
}

// ParseQuantity coerces a raw form value to a non-negative integer.
// Anything that does not parse, or parses negative, is 0.
func ParseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ScoreRaw scores an uncoerced quantity, e.g. straight from a form.
func ScoreRaw(category, rawQuantity string) int64 {
	return Score(category, ParseQuantity(rawQuantity))
}
