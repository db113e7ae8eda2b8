package screen

import (
	"fmt"

	"github.com/jackzampolin/quizclick/internal/quiz"
)

// CoordinateTable maps every answer label to a fixed screen point.
// It is immutable once built.
type CoordinateTable struct {
	points map[quiz.Label]Point
}

// DefaultPoints returns the answer slots of the reference layout:
// four rows stacked 50px apart at a constant horizontal offset.
func DefaultPoints() map[quiz.Label]Point {
	return map[quiz.Label]Point{
		quiz.LabelA: {X: 270, Y: 320},
		quiz.LabelB: {X: 270, Y: 370},
		quiz.LabelC: {X: 270, Y: 420},
		quiz.LabelD: {X: 270, Y: 470},
	}
}

// NewCoordinateTable builds a table from points.
// The table must cover the whole label set, nothing else, and no two labels
// may share a point.
func NewCoordinateTable(points map[quiz.Label]Point) (*CoordinateTable, error) {
	owner := make(map[Point]quiz.Label, len(points))
	table := make(map[quiz.Label]Point, len(points))

	for label, p := range points {
		if !label.Valid() {
			return nil, fmt.Errorf("coordinate table: %w", &quiz.InvalidLabelError{Value: string(label)})
		}
		if other, dup := owner[p]; dup {
			return nil, fmt.Errorf("coordinate table: labels %s and %s both map to %s", other, label, p)
		}
		owner[p] = label
		table[label] = p
	}

	for _, label := range quiz.Labels() {
		if _, ok := table[label]; !ok {
			return nil, fmt.Errorf("coordinate table: no point for label %s", label)
		}
	}

	return &CoordinateTable{points: table}, nil
}

// DefaultCoordinateTable returns the table built from DefaultPoints.
func DefaultCoordinateTable() *CoordinateTable {
	t, err := NewCoordinateTable(DefaultPoints())
	if err != nil {
		panic(err) // DefaultPoints is static
	}
	return t
}

// Map returns the point for label.
// Labels outside the set fail with *quiz.InvalidLabelError.
func (t *CoordinateTable) Map(label quiz.Label) (Point, error) {
	p, ok := t.points[label]
	if !ok {
		return Point{}, &quiz.InvalidLabelError{Value: string(label)}
	}
	return p, nil
}

// Points returns a copy of the table.
func (t *CoordinateTable) Points() map[quiz.Label]Point {
	out := make(map[quiz.Label]Point, len(t.points))
	for k, v := range t.points {
		out[k] = v
	}
	return out
}
