package assessment

import (
	"fmt"
	"math"

	"github.com/jonathan/skillsage/internal/types"
)

// ProgressionWeeks is the length of the progression series.
const ProgressionWeeks = 5

// GenerateProgression synthesizes a five-week readiness curve that rises
// toward score and ends exactly on it. random must return values in [0, 1);
// each intermediate week gets noise in [-2, +8).
func GenerateProgression(score int, random func() float64) []types.ProgressPoint {
	target := float64(score)
	current := math.Max(5, target*0.2)

	points := make([]types.ProgressPoint, 0, ProgressionWeeks)
	for i := 1; i < ProgressionWeeks; i++ {
		noise := random()*10 - 2
		current += (target-current)/float64(6-i) + noise
		week := int(math.Round(current))
		week = max(0, min(week, score))
		points = append(points, types.ProgressPoint{Week: fmt.Sprintf("Week %d", i), Score: week})
	}
	points = append(points, types.ProgressPoint{Week: fmt.Sprintf("Week %d", ProgressionWeeks), Score: score})
	return points
}
