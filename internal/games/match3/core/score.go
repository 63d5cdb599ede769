package core

import "github.com/samber/lo"

// Scoring holds the constants of the scoring formula:
// points = BasePoints × (length − 2) × combo × kind multiplier.
type Scoring struct {
	BasePoints      int
	LMultiplier     int
	TMultiplier     int
	CrossMultiplier int
}

// DefaultScoring returns the standard scoring constants.
func DefaultScoring() Scoring {
	return Scoring{
		BasePoints:      60,
		LMultiplier:     2,
		TMultiplier:     2,
		CrossMultiplier: 3,
	}
}

// multiplier returns the kind multiplier for a shape.
func (sc Scoring) multiplier(k ShapeKind) int {
	switch k {
	case ShapeL:
		return sc.LMultiplier
	case ShapeT:
		return sc.TMultiplier
	case ShapeCross:
		return sc.CrossMultiplier
	default:
		return 1
	}
}

// Points returns the score of a single shape at the given combo value.
func (sc Scoring) Points(s *Shape, combo int) int {
	return sc.BasePoints * (s.Len() - 2) * combo * sc.multiplier(s.Kind)
}

// ScoreShapes assigns a score to each shape in order, starting at *combo and
// incrementing it after every shape. Returns the points awarded in total.
func (sc Scoring) ScoreShapes(shapes []*Shape, combo *int) int {
	for _, s := range shapes {
		s.Score = sc.Points(s, *combo)
		*combo++
	}
	return TotalScore(shapes)
}

// TotalScore sums the scores already assigned to shapes.
func TotalScore(shapes []*Shape) int {
	return lo.SumBy(shapes, func(s *Shape) int { return s.Score })
}
