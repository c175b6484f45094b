package catalog

import (
	"sort"

	"github.com/sredowan/uhud-builders-new/internal/models"
)

// Direction moves a project one slot up or down in the display sequence
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Valid reports whether the direction is one of up/down
func (d Direction) Valid() bool {
	return d == DirectionUp || d == DirectionDown
}

// sortByOrder re-sorts the sequence ascending by the order field
func sortByOrder(projects []models.Project) {
	sort.Slice(projects, func(i, j int) bool { return projects[i].Order < projects[j].Order })
}

// swapTargets locates id in the order-ascending sequence and returns the
// indexes of the project and its neighbor in the requested direction. ok is
// false when the id is unknown or the move would cross a boundary (first
// element up, last element down), in which case the reorder is a no-op.
func swapTargets(projects []models.Project, id string, direction Direction) (current, target int, ok bool) {
	current = -1
	for i, p := range projects {
		if p.ID == id {
			current = i
			break
		}
	}
	if current < 0 {
		return 0, 0, false
	}

	target = current + 1
	if direction == DirectionUp {
		target = current - 1
	}
	if target < 0 || target >= len(projects) {
		return 0, 0, false
	}
	return current, target, true
}
