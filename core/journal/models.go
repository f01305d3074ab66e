package journal

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/tkabila/shajara/core"
)

// Section identifiers are a closed set; sections are seeded, never created at runtime.
const (
	SectionActing  SectionID = "acting"
	SectionSinging SectionID = "singing"
	SectionSpeech  SectionID = "speech"
	SectionDancing SectionID = "dancing"
)

var AllSectionIDs = []SectionID{SectionActing, SectionSinging, SectionSpeech, SectionDancing}

type SectionID string

func (id SectionID) Valid() bool {
	for _, known := range AllSectionIDs {
		if id == known {
			return true
		}
	}
	return false
}

// Grade is a recorded mark in 1..5. The zero value Ungraded means
// "no grade recorded", which is distinct from a (non-existent) grade of zero;
// grading a date never writes 0, and stored maps only ever hold 0..5.
type Grade int

const Ungraded Grade = 0

func (g Grade) Graded() bool {
	return g != Ungraded
}

func (g Grade) Valid() bool {
	return g >= 1 && g <= 5
}

type (
	Section struct {
		ID          SectionID `json:"id" db:"id"`
		Name        string    `json:"name" db:"name"`
		Description string    `json:"description" db:"description"`
		Schedule    string    `json:"schedule" db:"schedule"`
		Teacher     string    `json:"teacher" db:"teacher"`
	}

	Teacher struct {
		ID       string      `json:"id"`
		Name     string      `json:"name"`
		Email    string      `json:"email"`
		Password string      `json:"-"` // demo-only plaintext seed credential
		Sections []SectionID `json:"sections"`
	}

	Student struct {
		ID         string                        `json:"id"`
		Name       string                        `json:"name"`
		Email      string                        `json:"email,omitempty"`
		Password   string                        `json:"-"` // demo-only plaintext seed credential
		Sections   []SectionID                   `json:"sections"`
		Attendance map[SectionID]map[string]bool `json:"attendance"`
		Grades     map[SectionID]map[string]Grade `json:"grades"`
		Notes      map[SectionID]string          `json:"notes"`
	}

	// Journal is the full domain snapshot handed to readers.
	Journal struct {
		Students []Student             `json:"students"`
		Sections map[SectionID]Section `json:"sections"`
	}
)

func (t Teacher) Authorized(id SectionID) bool {
	for _, sid := range t.Sections {
		if sid == id {
			return true
		}
	}
	return false
}

func (s Student) EnrolledIn(id SectionID) bool {
	for _, sid := range s.Sections {
		if sid == id {
			return true
		}
	}
	return false
}

// Clone deep-copies the student so callers can mutate the copy without the
// stored record observing a partial write.
func (s Student) Clone() Student {
	cp := s
	cp.Sections = append([]SectionID(nil), s.Sections...)
	if s.Attendance != nil {
		cp.Attendance = make(map[SectionID]map[string]bool, len(s.Attendance))
		for sid, dates := range s.Attendance {
			inner := make(map[string]bool, len(dates))
			for date, present := range dates {
				inner[date] = present
			}
			cp.Attendance[sid] = inner
		}
	}
	if s.Grades != nil {
		cp.Grades = make(map[SectionID]map[string]Grade, len(s.Grades))
		for sid, dates := range s.Grades {
			inner := make(map[string]Grade, len(dates))
			for date, grade := range dates {
				inner[date] = grade
			}
			cp.Grades[sid] = inner
		}
	}
	if s.Notes != nil {
		cp.Notes = make(map[SectionID]string, len(s.Notes))
		for sid, note := range s.Notes {
			cp.Notes[sid] = note
		}
	}
	return cp
}

// NewStudent contains information needed to create a new Student.
// Attendance/Grades/Notes may be pre-filled (the enrollment form passes them
// through when re-creating a record); absent maps default to empty.
type NewStudent struct {
	Name       string                         `json:"name" validate:"required"`
	Email      string                         `json:"email" validate:"omitempty,email"`
	Password   string                         `json:"password"`
	Sections   []SectionID                    `json:"sections" validate:"omitempty,dive,sectionid"`
	Attendance map[SectionID]map[string]bool  `json:"attendance"`
	Grades     map[SectionID]map[string]Grade `json:"grades" validate:"omitempty,dive,dive,min=0,max=5"`
	Notes      map[SectionID]string           `json:"notes"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	return validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing
// Student. Empty fields keep their previous value; a supplied map replaces the
// previous map wholesale (callers pass the full previous map back to keep it).
type UpdateStudent struct {
	Name       string                         `json:"name"`
	Email      string                         `json:"email" validate:"omitempty,email"`
	Sections   []SectionID                    `json:"sections" validate:"omitempty,dive,sectionid"`
	Attendance map[SectionID]map[string]bool  `json:"attendance"`
	Grades     map[SectionID]map[string]Grade `json:"grades" validate:"omitempty,dive,dive,min=0,max=5"`
	Notes      map[SectionID]string           `json:"notes"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	us.Name = core.CleanString(us.Name)
	us.Email = core.CleanString(us.Email, true /* lower */)
	return validate.Struct(us)
}

// UpdateSection carries the mutable descriptive fields of a Section.
// Empty fields keep their previous value; the identifier never changes.
type UpdateSection struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Schedule    string `json:"schedule"`
	Teacher     string `json:"teacher"`
}

func (us *UpdateSection) Validate(validate *validator.Validate) error {
	us.Name = core.CleanString(us.Name)
	us.Teacher = core.CleanString(us.Teacher)
	return validate.Struct(us)
}

var (
	sectionIDTag  = "sectionid"
	sectionIDText = "unknown section"
)

// RegisterValidators adds the journal's custom validation tags to the app validator.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(sectionIDTag, func(fl validator.FieldLevel) bool {
		return SectionID(fl.Field().String()).Valid()
	})
	core.RegisterCustomTranslation(validate, translator, sectionIDTag, sectionIDText)
}
