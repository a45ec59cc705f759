package services

import "sort"

// AssignmentChanges lists course IDs to link and unlink, each in ascending order
type AssignmentChanges struct {
	Add    []int64
	Remove []int64
}

// Empty reports whether nothing needs to change
func (c AssignmentChanges) Empty() bool {
	return len(c.Add) == 0 && len(c.Remove) == 0
}

// ReconcileCourseAssignments computes the links needed so that the assigned set
// equals selected intersected with catalog. Selected IDs outside the catalog are
// ignored, and applying the result twice changes nothing the second time.
func ReconcileCourseAssignments(catalog []int64, current, selected map[int64]struct{}) AssignmentChanges {
	var changes AssignmentChanges
	for _, id := range catalog {
		_, isSelected := selected[id]
		_, isCurrent := current[id]
		switch {
		case isSelected && !isCurrent:
			changes.Add = append(changes.Add, id)
		case isCurrent && !isSelected:
			changes.Remove = append(changes.Remove, id)
		}
	}
	sort.Slice(changes.Add, func(i, j int) bool { return changes.Add[i] < changes.Add[j] })
	sort.Slice(changes.Remove, func(i, j int) bool { return changes.Remove[i] < changes.Remove[j] })
	return changes
}
