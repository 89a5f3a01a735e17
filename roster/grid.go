/*
grid.go - Assignment grid resolution

PURPOSE:
  Joins a date's persisted assignments with the schedule's role and person
  records into the grid the roster screen displays and edits: one row per
  role, in role-list order, each either assigned to a person or empty.

TOLERANCE:
  Deleting a person or role does not cascade into assignments. A dangling
  person reference resolves to an unassigned row; an assignment for a
  deleted role simply has no row to land on. Neither is an error.
*/
package roster

// GridRow is one resolved slot: a role and the person assigned to it for
// the date, or nil when unassigned.
type GridRow struct {
	Role   Role
	Person *Person
}

// BuildAssignmentGrid resolves the grid for one date. roles defines both
// the row set and the row order; every role is represented even when
// unassigned. assignments must already be filtered to the exact date.
func BuildAssignmentGrid(roles []Role, assignments []Assignment, people []Person) []GridRow {
	byRole := make(map[RoleID]Assignment, len(assignments))
	for _, a := range assignments {
		byRole[a.RoleID] = a
	}
	byPerson := make(map[PersonID]*Person, len(people))
	for i := range people {
		byPerson[people[i].ID] = &people[i]
	}

	grid := make([]GridRow, 0, len(roles))
	for _, role := range roles {
		row := GridRow{Role: role}
		if a, ok := byRole[role.ID]; ok {
			// Dangling person reference resolves to unassigned.
			row.Person = byPerson[a.PersonID]
		}
		grid = append(grid, row)
	}
	return grid
}

// EligiblePeopleForRole filters people to those who may fill the role: an
// empty or absent FillableRoleIDs list means eligible for any role.
//
// This filter is advisory, for candidate dropdowns only. Assignment writes
// never validate eligibility; assigning outside the filter through another
// path is intentional flexibility, not a bug.
func EligiblePeopleForRole(role Role, people []Person) []Person {
	var eligible []Person
	for _, p := range people {
		if len(p.FillableRoleIDs) == 0 {
			eligible = append(eligible, p)
			continue
		}
		for _, id := range p.FillableRoleIDs {
			if id == role.ID {
				eligible = append(eligible, p)
				break
			}
		}
	}
	return eligible
}
