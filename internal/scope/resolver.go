// Package scope computes the read boundary for an authenticated actor.
// Every screen and endpoint consumes the same three capabilities (Resolve,
// the visibility predicates, Instructors) instead of branching on role
// locally. All functions are pure and safe to call concurrently.
package scope

import (
	"sort"
	"strings"
	"time"

	"github.com/noah-isme/eduflow-api/internal/models"
)

// Actor is the authenticated identity plus role-scoping attributes for one
// session. It is built from JWT claims at the request boundary.
type Actor struct {
	Role        models.UserRole
	Department  string
	Semester    int
	Section     string
	Subjects    []string
	DisplayName string
}

// Filter is the derived view constraint for an actor. A field is either
// locked to exactly one value or empty (unconstrained); it is never a set.
// Locked fields must be treated as fixed inputs to filtering, not as
// user-selectable options.
type Filter struct {
	Department string `json:"department,omitempty"`
	Section    string `json:"section,omitempty"`
	Instructor string `json:"instructor,omitempty"`
}

// ActivityQuery carries the caller-supplied report filters. They can only
// narrow the resolved scope, never widen it.
type ActivityQuery struct {
	StartDate  time.Time
	EndDate    time.Time
	Department string
	Instructor string
	Section    string
}

// Resolve derives the scope filter for an actor. An actor missing an
// attribute its role would normally constrain on yields an unconstrained
// dimension rather than an error.
func Resolve(actor Actor) Filter {
	switch actor.Role {
	case models.RoleAdmin:
		return Filter{}
	case models.RoleHOD, models.RoleTeacher:
		return Filter{Department: actor.Department}
	case models.RoleClassCoordinator, models.RoleStudent:
		return Filter{Department: actor.Department, Section: actor.Section}
	case models.RoleSubjectIncharge:
		return Filter{Department: actor.Department, Instructor: actor.DisplayName}
	default:
		return Filter{}
	}
}

// Merge applies the client-supplied query on top of the resolved scope.
// Client values are untrusted narrowing: a client filter that conflicts
// with a locked constraint is discarded in favour of the locked value.
func Merge(f Filter, q ActivityQuery) ActivityQuery {
	merged := q
	if f.Department != "" {
		merged.Department = f.Department
	}
	if f.Section != "" {
		merged.Section = f.Section
	}
	if f.Instructor != "" {
		merged.Instructor = f.Instructor
	}
	return merged
}

// ActivityVisible reports whether a class activity falls inside the actor's
// scope combined with the caller-supplied query. Department and section are
// matched against the structured columns when present, falling back to
// containment in the legacy batch label; instructor names match exactly,
// case-sensitive.
func ActivityVisible(f Filter, q ActivityQuery, a models.ClassActivity) bool {
	if !q.StartDate.IsZero() && a.Date.Before(q.StartDate) {
		return false
	}
	if !q.EndDate.IsZero() && a.Date.After(q.EndDate) {
		return false
	}
	if !departmentMatches(a, f.Department) {
		return false
	}
	if !sectionMatches(a, f.Section) {
		return false
	}
	if f.Instructor != "" && a.InstructorName != f.Instructor {
		return false
	}
	if !departmentMatches(a, q.Department) {
		return false
	}
	if !sectionMatches(a, q.Section) {
		return false
	}
	if q.Instructor != "" && a.InstructorName != q.Instructor {
		return false
	}
	return true
}

// StudentVisible reports whether a student record is inside the actor's
// scope: department equality when constrained, plus semester equality for
// class coordinators.
func StudentVisible(f Filter, actor Actor, s models.Student) bool {
	if f.Department != "" && s.Department != f.Department {
		return false
	}
	if actor.Role == models.RoleClassCoordinator && actor.Semester > 0 && s.Semester != actor.Semester {
		return false
	}
	return true
}

// TeacherVisible reports whether a teacher record is inside the actor's scope.
func TeacherVisible(f Filter, t models.Teacher) bool {
	return f.Department == "" || t.Department == f.Department
}

// Instructors returns the distinct instructor names an actor may filter by.
// The effective department is the selected one, or the scope lock when none
// is selected; class coordinators are additionally restricted to their
// section. A subject incharge always gets the singleton of their own name.
func Instructors(actor Actor, f Filter, selectedDept string, activities []models.ClassActivity) []string {
	if actor.Role == models.RoleSubjectIncharge {
		return []string{actor.DisplayName}
	}

	dept := selectedDept
	if dept == "" {
		dept = f.Department
	}

	seen := make(map[string]struct{})
	for _, a := range activities {
		if !departmentMatches(a, dept) {
			continue
		}
		if actor.Role == models.RoleClassCoordinator && !sectionMatches(a, f.Section) {
			continue
		}
		if a.InstructorName == "" {
			continue
		}
		seen[a.InstructorName] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func departmentMatches(a models.ClassActivity, code string) bool {
	if code == "" {
		return true
	}
	if a.DepartmentCode != "" {
		return a.DepartmentCode == code
	}
	return strings.Contains(a.Batch, code)
}

func sectionMatches(a models.ClassActivity, letter string) bool {
	if letter == "" {
		return true
	}
	if a.Section != "" {
		return a.Section == letter
	}
	return strings.Contains(a.Batch, letter)
}
