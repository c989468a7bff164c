package scope

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/eduflow-api/internal/models"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleActivities() []models.ClassActivity {
	return []models.ClassActivity{
		{ID: "1", Date: day("2025-04-01"), Time: "9:00 AM - 10:00 AM", Batch: "CP09 2022JUN NEC-A", Topic: "Project", InstructorName: "Sreedhar E"},
		{ID: "2", Date: day("2025-04-01"), Time: "9:00 AM - 10:00 AM", Batch: "CP09 2022JUN NEC-B", Topic: "Project", InstructorName: "Amrutha M Kenchara"},
		{ID: "3", Date: day("2025-04-01"), Time: "10:15 AM - 11:45 AM", Batch: "CP09 2022JUN NEC-A", Topic: "Project", InstructorName: "Bhuvana K"},
		{ID: "4", Date: day("2025-04-02"), Time: "10:15 AM - 11:45 AM", Batch: "CP09 2023 JUN NEC-B", Topic: "Dynamic Website", InstructorName: "Sreedhar E"},
		{ID: "5", Date: day("2025-04-03"), Time: "12:15 PM - 1:15 PM", Batch: "CP09 2022JUN NEC-A", Topic: "Project", InstructorName: "ENOS KERKETTA"},
		{ID: "6", Date: day("2025-04-01"), Time: "12:15 PM - 1:15 PM", Batch: "CP04 2024JUN NEC-A", Topic: "SQL Server Lab", InstructorName: "C S SUNIL KUMAR"},
	}
}

func TestResolveRoleTable(t *testing.T) {
	tests := []struct {
		name  string
		actor Actor
		want  Filter
	}{
		{
			name:  "admin unconstrained",
			actor: Actor{Role: models.RoleAdmin, Department: "CP09"},
			want:  Filter{},
		},
		{
			name:  "hod locked to department",
			actor: Actor{Role: models.RoleHOD, Department: "CP09"},
			want:  Filter{Department: "CP09"},
		},
		{
			name:  "coordinator locked to department and section",
			actor: Actor{Role: models.RoleClassCoordinator, Department: "CP09", Section: "A", Semester: 4},
			want:  Filter{Department: "CP09", Section: "A"},
		},
		{
			name:  "subject incharge forces own instructor name",
			actor: Actor{Role: models.RoleSubjectIncharge, Department: "CP09", DisplayName: "Mrs. Priya S"},
			want:  Filter{Department: "CP09", Instructor: "Mrs. Priya S"},
		},
		{
			name:  "teacher locked to department only",
			actor: Actor{Role: models.RoleTeacher, Department: "CP08"},
			want:  Filter{Department: "CP08"},
		},
		{
			name:  "student locked to department and section",
			actor: Actor{Role: models.RoleStudent, Department: "CP09", Section: "A"},
			want:  Filter{Department: "CP09", Section: "A"},
		},
		{
			name:  "hod without department degrades to unconstrained",
			actor: Actor{Role: models.RoleHOD},
			want:  Filter{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Resolve(tc.actor))
		})
	}
}

func TestResolveNarrowsForNonAdmins(t *testing.T) {
	roles := []models.UserRole{
		models.RoleHOD,
		models.RoleClassCoordinator,
		models.RoleSubjectIncharge,
		models.RoleTeacher,
		models.RoleStudent,
	}
	for _, role := range roles {
		f := Resolve(Actor{Role: role, Department: "CP09", Section: "A", DisplayName: "X"})
		assert.Equal(t, "CP09", f.Department, "role %s must stay inside its department", role)
	}
}

func TestResolveIdempotent(t *testing.T) {
	actor := Actor{Role: models.RoleClassCoordinator, Department: "CP09", Section: "A", Semester: 4}
	assert.Equal(t, Resolve(actor), Resolve(actor))
}

func TestActivityVisibleCoordinator(t *testing.T) {
	actor := Actor{Role: models.RoleClassCoordinator, Department: "CP09", Section: "A", Semester: 4}
	f := Resolve(actor)
	q := ActivityQuery{StartDate: day("2025-04-01"), EndDate: day("2025-04-02")}

	var visible []string
	for _, a := range sampleActivities() {
		if ActivityVisible(f, q, a) {
			visible = append(visible, a.ID)
		}
	}
	// Section B rows, other departments and out-of-window dates are excluded.
	assert.Equal(t, []string{"1", "3"}, visible)
}

func TestActivityVisibleDateWindowInclusive(t *testing.T) {
	a := models.ClassActivity{Date: day("2025-04-02"), Batch: "CP09 2022JUN NEC-A"}
	q := ActivityQuery{StartDate: day("2025-04-02"), EndDate: day("2025-04-02")}
	assert.True(t, ActivityVisible(Filter{}, q, a))

	q.EndDate = day("2025-04-01")
	q.StartDate = day("2025-04-01")
	assert.False(t, ActivityVisible(Filter{}, q, a))
}

func TestActivityVisibleStructuredFieldsWin(t *testing.T) {
	// The batch label mentions CP09 but the structured column says CP04;
	// the structured reference is authoritative.
	a := models.ClassActivity{
		Date:           day("2025-04-01"),
		Batch:          "CP09 2022JUN NEC-A",
		DepartmentCode: "CP04",
		Section:        "A",
	}
	f := Filter{Department: "CP09"}
	assert.False(t, ActivityVisible(f, ActivityQuery{}, a))

	f.Department = "CP04"
	assert.True(t, ActivityVisible(f, ActivityQuery{}, a))
}

func TestActivityVisibleInstructorExact(t *testing.T) {
	a := models.ClassActivity{Date: day("2025-04-01"), Batch: "CP09 NEC-A", InstructorName: "Sreedhar E"}
	assert.True(t, ActivityVisible(Filter{Instructor: "Sreedhar E"}, ActivityQuery{}, a))
	assert.False(t, ActivityVisible(Filter{Instructor: "sreedhar e"}, ActivityQuery{}, a))
	assert.False(t, ActivityVisible(Filter{Instructor: "Sreedhar"}, ActivityQuery{}, a))
}

func TestActivityVisibleQueryOnlyNarrows(t *testing.T) {
	a := models.ClassActivity{Date: day("2025-04-01"), Batch: "CP09 2022JUN NEC-A", InstructorName: "Sreedhar E"}
	f := Filter{Department: "CP09"}

	// A client filter for another department cannot widen the scope; the
	// row must satisfy both, so a conflicting filter yields nothing.
	assert.False(t, ActivityVisible(f, ActivityQuery{Department: "CP04"}, a))
	assert.True(t, ActivityVisible(f, ActivityQuery{Department: "CP09"}, a))
	assert.True(t, ActivityVisible(f, ActivityQuery{Instructor: "Sreedhar E"}, a))
	assert.False(t, ActivityVisible(f, ActivityQuery{Instructor: "Bhuvana K"}, a))
}

func TestMergeLockedFieldsWin(t *testing.T) {
	f := Filter{Department: "CP09", Section: "A"}
	q := ActivityQuery{
		StartDate:  day("2025-04-01"),
		EndDate:    day("2025-04-30"),
		Department: "CP04",
		Instructor: "Sreedhar E",
	}

	merged := Merge(f, q)
	assert.Equal(t, "CP09", merged.Department)
	assert.Equal(t, "A", merged.Section)
	assert.Equal(t, "Sreedhar E", merged.Instructor)
	assert.Equal(t, q.StartDate, merged.StartDate)
	assert.Equal(t, q.EndDate, merged.EndDate)
}

func TestMergeUnconstrainedKeepsClientFilters(t *testing.T) {
	q := ActivityQuery{Department: "CP04", Instructor: "Priya Sharma", Section: "B"}
	assert.Equal(t, q, Merge(Filter{}, q))
}

func TestStudentVisible(t *testing.T) {
	coordinator := Actor{Role: models.RoleClassCoordinator, Department: "CP09", Section: "A", Semester: 4}
	f := Resolve(coordinator)

	assert.True(t, StudentVisible(f, coordinator, models.Student{Department: "CP09", Section: "A", Semester: 4}))
	assert.False(t, StudentVisible(f, coordinator, models.Student{Department: "CP09", Section: "A", Semester: 5}))
	assert.False(t, StudentVisible(f, coordinator, models.Student{Department: "CP04", Section: "A", Semester: 4}))

	hod := Actor{Role: models.RoleHOD, Department: "CP09"}
	hf := Resolve(hod)
	assert.True(t, StudentVisible(hf, hod, models.Student{Department: "CP09", Semester: 5}))
	assert.False(t, StudentVisible(hf, hod, models.Student{Department: "CP01", Semester: 5}))
}

func TestTeacherVisible(t *testing.T) {
	assert.True(t, TeacherVisible(Filter{}, models.Teacher{Department: "CP01"}))
	assert.True(t, TeacherVisible(Filter{Department: "CP09"}, models.Teacher{Department: "CP09"}))
	assert.False(t, TeacherVisible(Filter{Department: "CP09"}, models.Teacher{Department: "CP01"}))
}

func TestInstructorsSubjectIncharge(t *testing.T) {
	actor := Actor{Role: models.RoleSubjectIncharge, Department: "CP09", DisplayName: "Mrs. Priya S"}
	f := Resolve(actor)

	// Singleton regardless of any other filter input.
	names := Instructors(actor, f, "CP04", sampleActivities())
	require.Equal(t, []string{"Mrs. Priya S"}, names)
}

func TestInstructorsCoordinator(t *testing.T) {
	actor := Actor{Role: models.RoleClassCoordinator, Department: "CP09", Section: "A", Semester: 4}
	f := Resolve(actor)

	names := Instructors(actor, f, "", sampleActivities())
	assert.Equal(t, []string{"Bhuvana K", "ENOS KERKETTA", "Sreedhar E"}, names)
}

func TestInstructorsSelectedDepartmentOverridesUnconstrained(t *testing.T) {
	admin := Actor{Role: models.RoleAdmin}
	f := Resolve(admin)

	names := Instructors(admin, f, "CP04", sampleActivities())
	assert.Equal(t, []string{"C S SUNIL KUMAR"}, names)
}
