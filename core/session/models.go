package session

import "github.com/tkabila/shajara/core/journal"

type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

type (
	// Principal is the currently authenticated actor. It is a closed variant:
	// only TeacherIdentity and StudentIdentity implement it, so a student can
	// never carry an authorized-section set.
	Principal interface {
		PrincipalID() string
		PrincipalName() string
		PrincipalEmail() string
		Role() Role
	}

	// TeacherIdentity is the read-only projection of a Teacher after login.
	TeacherIdentity struct {
		ID       string              `json:"id"`
		Name     string              `json:"name"`
		Email    string              `json:"email"`
		Sections []journal.SectionID `json:"sections"`
	}

	// StudentIdentity is the read-only projection of a Student after login.
	StudentIdentity struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
)

var (
	_ Principal = TeacherIdentity{}
	_ Principal = StudentIdentity{}
)

func (t TeacherIdentity) PrincipalID() string    { return t.ID }
func (t TeacherIdentity) PrincipalName() string  { return t.Name }
func (t TeacherIdentity) PrincipalEmail() string { return t.Email }
func (t TeacherIdentity) Role() Role             { return RoleTeacher }

func (s StudentIdentity) PrincipalID() string    { return s.ID }
func (s StudentIdentity) PrincipalName() string  { return s.Name }
func (s StudentIdentity) PrincipalEmail() string { return s.Email }
func (s StudentIdentity) Role() Role             { return RoleStudent }

// CanEdit is the single authorization predicate for attendance/grade/note/section
// fields: editable iff the principal is a teacher authorized for the section.
// Every surface consults this instead of re-deriving role checks.
func CanEdit(p Principal, sectionID journal.SectionID) bool {
	teacher, ok := p.(TeacherIdentity)
	if !ok {
		return false
	}
	for _, sid := range teacher.Sections {
		if sid == sectionID {
			return true
		}
	}
	return false
}
