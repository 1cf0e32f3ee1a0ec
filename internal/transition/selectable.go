package transition

import "tickets-cli/internal/model"

// EntityType selects the per-entity status rules. Tickets and tasks expose
// different user-selectable subsets, so the tables are per-type rather than a
// single global exclusion list.
type EntityType int

const (
	EntityTicket EntityType = iota
	EntityTask
)

// ticketExcluded: Completed is a system-only terminal state for tickets; the
// support flow closes them through Resolved instead.
var ticketExcluded = map[model.StatusID]bool{
	model.StatusCompleted: true,
}

// taskAllowed: tasks use a reduced palette; personal completion goes through
// Completed directly.
var taskAllowed = map[model.StatusID]bool{
	model.StatusPending:    true,
	model.StatusInProgress: true,
	model.StatusCompleted:  true,
	model.StatusCancelled:  true,
}

// Selectable filters the statuses catalog down to the user-selectable targets
// for the given entity type, preserving catalog order. Inactive catalog
// entries are dropped.
func Selectable(entity EntityType, all []model.Status) []model.Status {
	out := make([]model.Status, 0, len(all))
	for _, s := range all {
		if !s.Active {
			continue
		}
		if !SelectableID(entity, s.ID) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// SelectableID reports whether a single status id is a legal user-driven
// target for the entity type.
func SelectableID(entity EntityType, id model.StatusID) bool {
	switch entity {
	case EntityTask:
		return taskAllowed[id]
	default:
		return !ticketExcluded[id]
	}
}
