package journal

import (
	"errors"
	"strconv"
	"time"

	"github.com/tkabila/shajara/core"
)

var (
	// errors
	ErrStudentNotFound = errors.New("student not found")
	ErrSectionNotFound = errors.New("section not found")
	ErrTeacherNotFound = errors.New("teacher not found")

	// NowFunc stamps new student identifiers. mockable
	NowFunc = time.Now
)

type (
	Repository interface {
		CreateStudent(student Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id string) (Student, error)
		// UpdateStudent replaces the whole stored record; the swap is atomic so
		// readers observe either the old or the new record, never a partial write.
		UpdateStudent(student Student) (Student, error)
		DeleteStudent(id string) error

		QueryAllSections() (map[SectionID]Section, error)
		GetSectionByID(id SectionID) (Section, error)
		UpdateSection(section Section) (Section, error)

		QueryAllTeachers() ([]Teacher, error)
	}

	// Service is the sole owner of the student/section collections. Mutations
	// are synchronous and total: a missing student id is a silent no-op, and
	// value constraints are rejected before anything reaches the repository.
	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddStudent assigns a fresh time-derived identifier and appends the student.
// There is deliberately no duplicate-name check.
func (svc *Service) AddStudent(ns NewStudent) (Student, error) {
	student := Student{
		ID:         strconv.FormatInt(NowFunc().UnixMilli(), 10),
		Name:       ns.Name,
		Email:      ns.Email,
		Password:   ns.Password,
		Sections:   ns.Sections,
		Attendance: ns.Attendance,
		Grades:     ns.Grades,
		Notes:      ns.Notes,
	}
	if student.Sections == nil {
		student.Sections = []SectionID{}
	}
	if student.Attendance == nil {
		student.Attendance = map[SectionID]map[string]bool{}
	}
	if student.Grades == nil {
		student.Grades = map[SectionID]map[string]Grade{}
	}
	if student.Notes == nil {
		student.Notes = map[SectionID]string{}
	}
	return svc.repo.CreateStudent(student)
}

// UpdateStudent shallow-merges the supplied fields into the matching student.
// Supplied maps replace the previous maps wholesale; nil maps keep them.
func (svc *Service) UpdateStudent(id string, us UpdateStudent) error {
	student, err := svc.repo.GetStudentByID(id)
	if err != nil {
		if err == ErrStudentNotFound {
			return nil
		}
		return err
	}
	if us.Name != "" {
		student.Name = us.Name
	}
	if us.Email != "" {
		student.Email = us.Email
	}
	if us.Sections != nil {
		student.Sections = us.Sections
	}
	if us.Attendance != nil {
		student.Attendance = us.Attendance
	}
	if us.Grades != nil {
		student.Grades = us.Grades
	}
	if us.Notes != nil {
		student.Notes = us.Notes
	}
	_, err = svc.repo.UpdateStudent(student)
	return err
}

// RemoveStudent hard-deletes the student; repeating it is a no-op.
func (svc *Service) RemoveStudent(id string) error {
	if err := svc.repo.DeleteStudent(id); err != nil && err != ErrStudentNotFound {
		return err
	}
	return nil
}

// SetAttendance records presence for one date, preserving every other entry
// for that student/section.
func (svc *Service) SetAttendance(studentID string, sectionID SectionID, date string, present bool) error {
	student, err := svc.repo.GetStudentByID(studentID)
	if err != nil {
		if err == ErrStudentNotFound {
			return nil
		}
		return err
	}
	if student.Attendance == nil {
		student.Attendance = map[SectionID]map[string]bool{}
	}
	if student.Attendance[sectionID] == nil {
		student.Attendance[sectionID] = map[string]bool{}
	}
	student.Attendance[sectionID][date] = present
	_, err = svc.repo.UpdateStudent(student)
	return err
}

// SetGrade records a mark for one date, preserving every other entry for that
// student/section. Only 1..5 is storable; Ungraded (0) can never be written.
func (svc *Service) SetGrade(studentID string, sectionID SectionID, date string, grade Grade) error {
	if !grade.Valid() {
		return core.NewValidationError(nil, core.FieldError{Field: "grade", Error: "grade must be between 1 and 5"})
	}
	student, err := svc.repo.GetStudentByID(studentID)
	if err != nil {
		if err == ErrStudentNotFound {
			return nil
		}
		return err
	}
	if student.Grades == nil {
		student.Grades = map[SectionID]map[string]Grade{}
	}
	if student.Grades[sectionID] == nil {
		student.Grades[sectionID] = map[string]Grade{}
	}
	student.Grades[sectionID][date] = grade
	_, err = svc.repo.UpdateStudent(student)
	return err
}

// SetNote overwrites the single note kept per student/section.
func (svc *Service) SetNote(studentID string, sectionID SectionID, note string) error {
	student, err := svc.repo.GetStudentByID(studentID)
	if err != nil {
		if err == ErrStudentNotFound {
			return nil
		}
		return err
	}
	if student.Notes == nil {
		student.Notes = map[SectionID]string{}
	}
	student.Notes[sectionID] = note
	_, err = svc.repo.UpdateStudent(student)
	return err
}

// UpdateSection shallow-merges descriptive fields into the named section.
func (svc *Service) UpdateSection(id SectionID, us UpdateSection) error {
	section, err := svc.repo.GetSectionByID(id)
	if err != nil {
		if err == ErrSectionNotFound {
			return nil
		}
		return err
	}
	if us.Name != "" {
		section.Name = us.Name
	}
	if us.Description != "" {
		section.Description = us.Description
	}
	if us.Schedule != "" {
		section.Schedule = us.Schedule
	}
	if us.Teacher != "" {
		section.Teacher = us.Teacher
	}
	_, err = svc.repo.UpdateSection(section)
	return err
}

func (svc *Service) Student(id string) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) Students() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) Sections() (map[SectionID]Section, error) {
	return svc.repo.QueryAllSections()
}

func (svc *Service) Section(id SectionID) (Section, error) {
	return svc.repo.GetSectionByID(id)
}

func (svc *Service) Teachers() ([]Teacher, error) {
	return svc.repo.QueryAllTeachers()
}

// Snapshot returns the full journal for readers.
func (svc *Service) Snapshot() (Journal, error) {
	students, err := svc.repo.QueryAllStudents()
	if err != nil {
		return Journal{}, err
	}
	sections, err := svc.repo.QueryAllSections()
	if err != nil {
		return Journal{}, err
	}
	return Journal{Students: students, Sections: sections}, nil
}
