package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin            UserRole = "ADMIN"
	RoleHOD              UserRole = "HOD"
	RoleClassCoordinator UserRole = "CLASS_COORDINATOR"
	RoleSubjectIncharge  UserRole = "SUBJECT_INCHARGE"
	RoleTeacher          UserRole = "TEACHER"
	RoleStudent          UserRole = "STUDENT"
)

// Valid returns true when the role is a supported value.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleHOD, RoleClassCoordinator, RoleSubjectIncharge, RoleTeacher, RoleStudent:
		return true
	default:
		return false
	}
}

// SubjectList stores an ordered set of subject identifiers as a JSON column.
type SubjectList []string

// Value implements driver.Valuer.
func (s SubjectList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	payload, err := json.Marshal([]string(s))
	if err != nil {
		return nil, fmt.Errorf("marshal subjects: %w", err)
	}
	return string(payload), nil
}

// Scan implements sql.Scanner.
func (s *SubjectList) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported subjects type %T", src)
	}
	if len(raw) == 0 {
		*s = nil
		return nil
	}
	return json.Unmarshal(raw, (*[]string)(s))
}

// User represents an application account stored in the users table. The
// scoping attributes (department, semester, section, subjects) are only
// populated for the roles that carry them.
type User struct {
	ID           string      `db:"id" json:"id"`
	Username     string      `db:"username" json:"username"`
	Email        string      `db:"email" json:"email"`
	PasswordHash string      `db:"password_hash" json:"-"`
	FullName     string      `db:"full_name" json:"full_name"`
	Role         UserRole    `db:"role" json:"role"`
	Department   *string     `db:"department" json:"department,omitempty"`
	Semester     *int        `db:"semester" json:"semester,omitempty"`
	Section      *string     `db:"section" json:"section,omitempty"`
	Subjects     SubjectList `db:"subjects" json:"subjects,omitempty"`
	Active       bool        `db:"active" json:"active"`
	LastLogin    *time.Time  `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}
