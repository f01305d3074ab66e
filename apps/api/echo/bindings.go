package echoapi

import (
	"github.com/go-playground/validator/v10"

	"github.com/tkabila/shajara/core"
	"github.com/tkabila/shajara/core/journal"
	"github.com/tkabila/shajara/core/session"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate(validate *validator.Validate) error {
	r.Email = core.CleanString(r.Email, true /* lower */)
	return validate.Struct(r)
}

type AttendanceRequest struct {
	Date    string `json:"date" validate:"required"`
	Present bool   `json:"present"`
}

func (r *AttendanceRequest) Validate(validate *validator.Validate) error {
	r.Date = core.CleanString(r.Date)
	return validate.Struct(r)
}

type GradeRequest struct {
	Date  string `json:"date" validate:"required"`
	Grade int    `json:"grade" validate:"required,min=1,max=5"`
}

func (r *GradeRequest) Validate(validate *validator.Validate) error {
	r.Date = core.CleanString(r.Date)
	return validate.Struct(r)
}

type NoteRequest struct {
	Note string `json:"note"`
}

func (r *NoteRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

// IdentityResponse is the wire shape of the current principal; only teachers
// carry a sections field.
type IdentityResponse struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Email    string              `json:"email"`
	Role     session.Role        `json:"role"`
	Sections []journal.SectionID `json:"sections,omitempty"`
}

func newIdentityResponse(p session.Principal) IdentityResponse {
	res := IdentityResponse{
		ID:    p.PrincipalID(),
		Name:  p.PrincipalName(),
		Email: p.PrincipalEmail(),
		Role:  p.Role(),
	}
	if teacher, ok := p.(session.TeacherIdentity); ok {
		res.Sections = teacher.Sections
	}
	return res
}

// ReportResponse bundles the per-section performance views for one student.
type ReportResponse struct {
	Averages   map[journal.SectionID]float64                 `json:"averages"`
	Attendance map[journal.SectionID]journal.AttendanceRatio `json:"attendance"`
}

