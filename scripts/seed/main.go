// Command seed provisions the database schema and loads the demo dataset
// used by the frontend: four departments, the CP09-A student roster, the
// weekly timetable, April 2025 class activities, subject legends, one day
// of department attendance and one account per role.
package main

import (
	"flag"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/eduflow-api/internal/models"
	"github.com/noah-isme/eduflow-api/pkg/config"
	"github.com/noah-isme/eduflow-api/pkg/database"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	full_name TEXT NOT NULL,
	role TEXT NOT NULL,
	department TEXT,
	semester INT,
	section TEXT,
	subjects JSONB NOT NULL DEFAULT '[]',
	active BOOLEAN NOT NULL DEFAULT TRUE,
	last_login TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS refresh_tokens (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	token TEXT NOT NULL UNIQUE,
	expires_at TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	revoked_at TIMESTAMPTZ,
	revoked BOOLEAN NOT NULL DEFAULT FALSE,
	ip_address TEXT NOT NULL DEFAULT '',
	user_agent TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS departments (
	id UUID PRIMARY KEY,
	code TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS subject_legends (
	id UUID PRIMARY KEY,
	code TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS students (
	id UUID PRIMARY KEY,
	token_no TEXT NOT NULL UNIQUE,
	full_name TEXT NOT NULL,
	department TEXT NOT NULL,
	section TEXT NOT NULL DEFAULT '',
	semester INT NOT NULL DEFAULT 0,
	email TEXT,
	phone TEXT,
	attendance_percentage INT NOT NULL DEFAULT 0,
	fee_status TEXT NOT NULL DEFAULT 'pending',
	pending_amount BIGINT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS teachers (
	id UUID PRIMARY KEY,
	employee_id TEXT NOT NULL UNIQUE,
	full_name TEXT NOT NULL,
	department TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT,
	subjects JSONB NOT NULL DEFAULT '[]',
	hours_allocated INT NOT NULL DEFAULT 0,
	hours_completed INT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS timetable_entries (
	id UUID PRIMARY KEY,
	day TEXT NOT NULL,
	batch TEXT NOT NULL,
	venue TEXT NOT NULL DEFAULT '',
	time_slot TEXT NOT NULL,
	subject TEXT NOT NULL,
	teacher_code TEXT NOT NULL DEFAULT '',
	teacher_name TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS class_activities (
	id UUID PRIMARY KEY,
	date DATE NOT NULL,
	time TEXT NOT NULL,
	batch TEXT NOT NULL,
	department_code TEXT NOT NULL DEFAULT '',
	section TEXT NOT NULL DEFAULT '',
	cohort_year TEXT NOT NULL DEFAULT '',
	topic TEXT NOT NULL,
	instructor_name TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS department_attendance (
	id UUID PRIMARY KEY,
	department_code TEXT NOT NULL,
	date DATE NOT NULL,
	present INT NOT NULL,
	total INT NOT NULL,
	UNIQUE (department_code, date)
);
`

var tables = []string{
	"refresh_tokens",
	"users",
	"department_attendance",
	"class_activities",
	"timetable_entries",
	"teachers",
	"students",
	"subject_legends",
	"departments",
}

func main() {
	var drop bool
	flag.BoolVar(&drop, "drop", false, "Drop and recreate all tables before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	if drop {
		for _, table := range tables {
			db.MustExec("DROP TABLE IF EXISTS " + table + " CASCADE")
		}
		log.Println("dropped existing tables")
	}

	db.MustExec(schema)

	seedDepartments(db)
	seedLegends(db)
	seedStudents(db)
	seedTeachers(db)
	seedTimetable(db)
	seedActivities(db)
	seedAttendance(db)
	seedUsers(db)

	log.Println("seed complete")
}

func seedDepartments(db *sqlx.DB) {
	rows := []struct{ code, name, description string }{
		{"CP01", "Tool & Dye", "Tool and Dye Making"},
		{"CP04", "Electronics and Embedded Systems", "Electronics and Embedded Systems"},
		{"CP08", "Computer Engineering", "Computer Engineering"},
		{"CP09", "IT & Data Science", "Information Technology and Data Science"},
	}
	for _, r := range rows {
		db.MustExec(`INSERT INTO departments (id, code, name, description) VALUES ($1, $2, $3, $4)
			ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description`,
			uuid.NewString(), r.code, r.name, r.description)
	}
	log.Println("seeded departments")
}

func seedLegends(db *sqlx.DB) {
	rows := []struct{ code, name string }{
		{"JGK", "Mr. Jagadish G K"},
		{"SE", "Mr. Sreedhar E"},
		{"BK", "Mrs. Bhuvana K"},
		{"VOC", "Mr. Vinil O C"},
		{"EK", "Mr. Enos Kerketta"},
		{"AMK", "Ms. Amrutha K"},
		{"CS", "Mrs. Sarasa C"},
		{"ES", "Employability Skills"},
		{"FSD", "Full Stack Development"},
		{"RP", "R-Programming"},
		{"ISA", "Information System Analysis and System Documentation"},
		{"ETW", "English Technical Writing"},
		{"BIT", "Business IT Project"},
		{"PBO", "Python Based Optimization"},
	}
	for _, r := range rows {
		db.MustExec(`INSERT INTO subject_legends (id, code, name) VALUES ($1, $2, $3)
			ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name`,
			uuid.NewString(), r.code, r.name)
	}
	log.Println("seeded subject legends")
}

func seedStudents(db *sqlx.DB) {
	type row struct {
		tokenNo, name, dept, section string
		semester, attendance         int
		email, phone                 string
		feeStatus                    models.FeeStatus
		pending                      int64
	}
	rows := []row{
		{"NEC0923028", "Rithick Roshan", "CP09", "A", 5, 88, "rithick@nec.edu", "9876543220", models.FeeStatusPaid, 0},
		{"NEC0923029", "Nivash M", "CP09", "A", 5, 88, "nivash@nec.edu", "9876543221", models.FeeStatusPaid, 0},
		{"NEC0923032", "Kabila Sri D", "CP09", "A", 5, 94, "kabila@nec.edu", "9876543222", models.FeeStatusPending, 15000},
		{"NEC0923034", "Abel Jamin E", "CP09", "A", 5, 94, "abel@nec.edu", "9876543223", models.FeeStatusPaid, 0},
		{"NEC0923038", "Niranjan S", "CP09", "A", 5, 82, "niranjan@nec.edu", "9876543224", models.FeeStatusPartial, 8000},
		{"NEC0923044", "Vishal P", "CP09", "A", 5, 94, "vishal@nec.edu", "9876543225", models.FeeStatusPaid, 0},
		{"NEC0923057", "Soniya R", "CP09", "A", 5, 82, "soniya@nec.edu", "9876543226", models.FeeStatusPaid, 0},
		{"NEC0923058", "Aginivesh Shaji", "CP09", "A", 5, 66, "aginivesh@nec.edu", "9876543227", models.FeeStatusPending, 25000},
		{"NEC0923059", "Nithish T", "CP09", "A", 5, 88, "nithish@nec.edu", "9876543228", models.FeeStatusPaid, 0},
		{"NEC0923060", "Naveen N", "CP09", "A", 5, 88, "naveen.n@nec.edu", "9876543229", models.FeeStatusPaid, 0},
		{"NEC0923061", "Akash S", "CP09", "A", 5, 94, "akash@nec.edu", "9876543230", models.FeeStatusPaid, 0},
		{"NEC0923063", "Rahul K", "CP09", "A", 5, 94, "rahul@nec.edu", "9876543231", models.FeeStatusPartial, 5000},
		{"NEC0923064", "Anish Kumar R", "CP09", "A", 5, 66, "anish@nec.edu", "9876543232", models.FeeStatusPaid, 0},
		{"NEC0923068", "Prashanth Kumar", "CP09", "A", 5, 94, "prashanth@nec.edu", "9876543233", models.FeeStatusPaid, 0},
		{"NEC0923070", "Naveen Kumar KP", "CP09", "A", 5, 86, "naveen.kp@nec.edu", "9876543234", models.FeeStatusPending, 20000},
		{"NEC0923074", "Charan V", "CP09", "A", 5, 78, "charan@nec.edu", "9876543235", models.FeeStatusPaid, 0},
		{"NEC0923094", "Keerthika Y", "CP09", "A", 5, 88, "keerthika@nec.edu", "9876543236", models.FeeStatusPaid, 0},
		{"NEC0923083", "Anubhrah Pramod", "CP09", "A", 5, 88, "anubhrah@nec.edu", "9876543237", models.FeeStatusPaid, 0},
		{"NEC0923100", "Deepak R", "CP08", "B", 5, 92, "deepak@nec.edu", "9876543238", models.FeeStatusPaid, 0},
		{"NEC0923101", "Meera S", "CP04", "A", 4, 85, "meera@nec.edu", "9876543239", models.FeeStatusPaid, 0},
	}
	for _, r := range rows {
		db.MustExec(`INSERT INTO students
			(id, token_no, full_name, department, section, semester, email, phone, attendance_percentage, fee_status, pending_amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (token_no) DO NOTHING`,
			uuid.NewString(), r.tokenNo, r.name, r.dept, r.section, r.semester, r.email, r.phone, r.attendance, r.feeStatus, r.pending)
	}
	log.Println("seeded students")
}

func seedTeachers(db *sqlx.DB) {
	type row struct {
		employeeID, name, dept, email, phone string
		subjects                             models.SubjectList
		allocated, completed                 int
	}
	rows := []row{
		{"T001", "Mr. Jagadish G K", "CP08", "jagadish.gk@nec.edu", "9876543210", models.SubjectList{"ISA", "BIT"}, 40, 35},
		{"T002", "Mr. Sreedhar E", "CP09", "sreedhar.e@nec.edu", "9876543211", models.SubjectList{"RP", "FSD"}, 45, 42},
		{"T003", "Mrs. Bhuvana K", "CP09", "bhuvana.k@nec.edu", "9876543212", models.SubjectList{"FSD"}, 35, 30},
		{"T004", "Mr. Vinil O C", "CP09", "vinil.oc@nec.edu", "9876543213", models.SubjectList{"FSD", "PBO"}, 40, 38},
		{"T005", "Mr. Enos Kerketta", "CP09", "enos.kerk@nec.edu", "9876543214", models.SubjectList{"ES"}, 30, 28},
		{"T006", "Ms. Amrutha K", "CP09", "amrutha.k@nec.edu", "9876543215", models.SubjectList{"RP", "PBO"}, 42, 40},
		{"T007", "Mrs. Sarasa C", "CP09", "sarasa.c@nec.edu", "9876543216", models.SubjectList{"ETW"}, 35, 32},
		{"T008", "Mr. Rajesh Kumar", "CP08", "rajesh.k@nec.edu", "9876543217", models.SubjectList{"ISA"}, 38, 35},
		{"T009", "Ms. Priya Sharma", "CP04", "priya.s@nec.edu", "9876543218", models.SubjectList{"Electronics"}, 40, 37},
		{"T010", "Mr. Arjun Nair", "CP01", "arjun.n@nec.edu", "9876543219", models.SubjectList{"Tool & Dye"}, 45, 43},
	}
	for _, r := range rows {
		db.MustExec(`INSERT INTO teachers
			(id, employee_id, full_name, department, email, phone, subjects, hours_allocated, hours_completed)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (employee_id) DO NOTHING`,
			uuid.NewString(), r.employeeID, r.name, r.dept, r.email, r.phone, r.subjects, r.allocated, r.completed)
	}
	log.Println("seeded teachers")
}

func seedTimetable(db *sqlx.DB) {
	type row struct {
		day, batch, venue, slot, subject, code, name string
	}
	rows := []row{
		{"MON", "A", "CR1", "9.00-10.00", "FSD", "VOC", "Mr. Vinil O C"},
		{"MON", "A", "CR1", "10.00-11.00", "RP LAB", "SE", "Mr. Sreedhar E"},
		{"MON", "A", "CR1", "11.15-12.15", "ETW", "CS", "Mrs. Sarasa C"},
		{"MON", "A", "CR1", "12.15-1.15", "BIT LAB", "JGK", "Mr. Jagadish G K"},
		{"MON", "A", "CR1", "1.45-2.45", "ISA", "JGK", "Mr. Jagadish G K"},
		{"MON", "A", "CR1", "2.45-3.45", "ES", "EK", "Mr. Enos Kerketta"},
		{"MON", "B", "CL1", "9.00-10.00", "RP", "AMK", "Ms. Amrutha K"},
		{"MON", "B", "CL1", "12.15-1.15", "FSD LAB", "VOC", "Mr. Vinil O C"},
		{"TUE", "A", "CR1", "9.00-10.00", "PBO", "AMK", "Ms. Amrutha K"},
		{"TUE", "A", "CR1", "10.00-11.00", "ETW", "CS", "Mrs. Sarasa C"},
		{"TUE", "A", "CR1", "11.15-12.15", "ISA", "JGK", "Mr. Jagadish G K"},
		{"TUE", "A", "CR1", "1.45-2.45", "RP LAB", "SE", "Mr. Sreedhar E"},
	}
	db.MustExec("DELETE FROM timetable_entries")
	for _, r := range rows {
		db.MustExec(`INSERT INTO timetable_entries
			(id, day, batch, venue, time_slot, subject, teacher_code, teacher_name)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.NewString(), r.day, r.batch, r.venue, r.slot, r.subject, r.code, r.name)
	}
	log.Println("seeded timetable")
}

func seedActivities(db *sqlx.DB) {
	type row struct {
		date, time, batch, topic, instructor string
	}
	rows := []row{
		{"2025-04-01", "9:00 AM - 10:00 AM", "CP09 2022JUN NEC-A", "Project", "Sreedhar E"},
		{"2025-04-01", "9:00 AM - 10:00 AM", "CP09 2022JUN NEC-B", "Project", "Amrutha M Kenchara"},
		{"2025-04-01", "10:15 AM - 11:45 AM", "CP09 2022JUN NEC-A", "Project", "Bhuvana K"},
		{"2025-04-01", "10:15 AM - 11:45 AM", "CP09 2023 JUN NEC-B", "Dynamic Website", "Sreedhar E"},
		{"2025-04-01", "12:15 PM - 1:15 PM", "CP09 2022JUN NEC-A", "Project", "ENOS KERKETTA"},
		{"2025-04-01", "12:15 PM - 1:15 PM", "CP09 2024JUN NEC-A", "SQL Server Lab", "C S SUNIL KUMAR"},
		{"2025-04-02", "9:00 AM - 10:00 AM", "CP09 2022JUN NEC-A", "Full Stack Development", "Vinil O C"},
		{"2025-04-02", "10:15 AM - 11:45 AM", "CP09 2022JUN NEC-A", "React Components", "Bhuvana K"},
		{"2025-04-02", "12:15 PM - 1:15 PM", "CP09 2022JUN NEC-A", "Database Design", "Jagadish G K"},
		{"2025-04-03", "9:00 AM - 10:00 AM", "CP08 2022JUN NEC-A", "ISA Concepts", "Jagadish G K"},
		{"2025-04-03", "10:15 AM - 11:45 AM", "CP08 2022JUN NEC-A", "System Analysis", "Rajesh Kumar"},
		{"2025-04-04", "9:00 AM - 10:00 AM", "CP04 2022JUN NEC-A", "Embedded Systems", "Priya Sharma"},
		{"2025-04-04", "10:15 AM - 11:45 AM", "CP01 2022JUN NEC-A", "Tool Design", "Arjun Nair"},
	}
	db.MustExec("DELETE FROM class_activities")
	for _, r := range rows {
		date, err := time.Parse("2006-01-02", r.date)
		if err != nil {
			log.Fatalf("bad activity date %q: %v", r.date, err)
		}
		dept, cohort, section := splitBatchLabel(r.batch)
		db.MustExec(`INSERT INTO class_activities
			(id, date, time, batch, department_code, section, cohort_year, topic, instructor_name)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			uuid.NewString(), date, r.time, r.batch, dept, section, cohort, r.topic, r.instructor)
	}
	log.Println("seeded class activities")
}

// splitBatchLabel derives the structured scoping columns from a legacy batch
// label like "CP09 2022JUN NEC-A". Labels that do not follow the pattern get
// empty columns, leaving scoping to the label containment fallback.
func splitBatchLabel(batch string) (dept, cohort, section string) {
	fields := strings.Fields(batch)
	if len(fields) < 2 || !strings.HasPrefix(fields[0], "CP") {
		return "", "", ""
	}
	dept = fields[0]
	if len(fields[1]) >= 4 {
		cohort = fields[1][:4]
	}
	last := fields[len(fields)-1]
	if idx := strings.LastIndex(last, "-"); idx >= 0 && idx < len(last)-1 {
		section = last[idx+1:]
	}
	return dept, cohort, section
}

func seedAttendance(db *sqlx.DB) {
	type row struct {
		dept           string
		present, total int
	}
	rows := []row{
		{"CP01", 42, 45},
		{"CP04", 29, 32},
		{"CP08", 27, 28},
		{"CP09", 29, 32},
	}
	date := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	for _, r := range rows {
		db.MustExec(`INSERT INTO department_attendance (id, department_code, date, present, total)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (department_code, date) DO UPDATE SET present = EXCLUDED.present, total = EXCLUDED.total`,
			uuid.NewString(), r.dept, date, r.present, r.total)
	}
	log.Println("seeded department attendance")
}

func seedUsers(db *sqlx.DB) {
	type row struct {
		username, password, email, name string
		role                            models.UserRole
		department                      *string
		semester                        *int
		section                         *string
		subjects                        models.SubjectList
	}
	cp09 := "CP09"
	sem4 := 4
	sectionA := "A"
	rows := []row{
		{"admin", "admin123", "admin@mis.edu", "Administrator", models.RoleAdmin, nil, nil, nil, nil},
		{"hod", "hod123", "hod.cp09@nttf.co.in", "Dr. Ramesh Kumar", models.RoleHOD, &cp09, nil, nil, nil},
		{"coordinator", "coord123", "coordinator@nttf.co.in", "Mr. Sreedhar E", models.RoleClassCoordinator, &cp09, &sem4, &sectionA, nil},
		{"subjectincharge", "subject123", "subject@nttf.co.in", "Mrs. Priya S", models.RoleSubjectIncharge, &cp09, nil, nil, models.SubjectList{"PROGRAMMING", "DATA STRUCTURES"}},
		{"teacher", "teacher123", "sreedhar.e@nec.edu", "Mr. Sreedhar E", models.RoleTeacher, &cp09, nil, nil, models.SubjectList{"RP", "FSD"}},
		{"student", "student123", "student@nttf.co.in", "Rithick Roshan", models.RoleStudent, &cp09, &sem4, &sectionA, nil},
	}
	for _, r := range rows {
		hash, err := bcrypt.GenerateFromPassword([]byte(r.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash password for %s: %v", r.username, err)
		}
		db.MustExec(`INSERT INTO users
			(id, username, email, password_hash, full_name, role, department, semester, section, subjects)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (username) DO NOTHING`,
			uuid.NewString(), r.username, r.email, string(hash), r.name, r.role, r.department, r.semester, r.section, r.subjects)
	}
	log.Println("seeded demo accounts")
}
