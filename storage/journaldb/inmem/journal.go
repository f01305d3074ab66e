package inmemdb

import (
	"github.com/tkabila/shajara/core/journal"
)

type journalRepository struct {
	db *DB
}

// NewJournalRepository exposes the in-memory DB as a journal.Repository.
func NewJournalRepository(db *DB) journal.Repository {
	return &journalRepository{db: db}
}

// Records cross the repository boundary as deep copies in both directions, so
// a mutation is only observable once UpdateStudent swaps the stored pointer:
// copy-on-write at the granularity of the mutated student/section.

func (r *journalRepository) CreateStudent(student journal.Student) (journal.Student, error) {
	r.db.students.mutex.Lock()
	defer r.db.students.mutex.Unlock()

	cp := student.Clone()
	r.db.students.t[cp.ID] = &cp
	r.db.students.order = append(r.db.students.order, cp.ID)
	return cp.Clone(), nil
}

func (r *journalRepository) QueryAllStudents() ([]journal.Student, error) {
	r.db.students.mutex.RLock()
	defer r.db.students.mutex.RUnlock()

	res := make([]journal.Student, 0, len(r.db.students.t))
	for _, id := range r.db.students.order {
		if student, ok := r.db.students.t[id]; ok {
			res = append(res, student.Clone())
		}
	}
	return res, nil
}

func (r *journalRepository) GetStudentByID(id string) (journal.Student, error) {
	r.db.students.mutex.RLock()
	defer r.db.students.mutex.RUnlock()

	if student, ok := r.db.students.t[id]; ok {
		return student.Clone(), nil
	}
	return journal.Student{}, journal.ErrStudentNotFound
}

func (r *journalRepository) UpdateStudent(student journal.Student) (journal.Student, error) {
	r.db.students.mutex.Lock()
	defer r.db.students.mutex.Unlock()

	if _, ok := r.db.students.t[student.ID]; !ok {
		return journal.Student{}, journal.ErrStudentNotFound
	}
	cp := student.Clone()
	r.db.students.t[cp.ID] = &cp
	return cp.Clone(), nil
}

func (r *journalRepository) DeleteStudent(id string) error {
	r.db.students.mutex.Lock()
	defer r.db.students.mutex.Unlock()

	if _, ok := r.db.students.t[id]; !ok {
		return journal.ErrStudentNotFound
	}
	delete(r.db.students.t, id)
	for i, sid := range r.db.students.order {
		if sid == id {
			r.db.students.order = append(r.db.students.order[:i], r.db.students.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *journalRepository) QueryAllSections() (map[journal.SectionID]journal.Section, error) {
	r.db.sections.mutex.RLock()
	defer r.db.sections.mutex.RUnlock()

	res := make(map[journal.SectionID]journal.Section, len(r.db.sections.t))
	for id, section := range r.db.sections.t {
		res[id] = *section
	}
	return res, nil
}

func (r *journalRepository) GetSectionByID(id journal.SectionID) (journal.Section, error) {
	r.db.sections.mutex.RLock()
	defer r.db.sections.mutex.RUnlock()

	if section, ok := r.db.sections.t[id]; ok {
		return *section, nil
	}
	return journal.Section{}, journal.ErrSectionNotFound
}

func (r *journalRepository) UpdateSection(section journal.Section) (journal.Section, error) {
	r.db.sections.mutex.Lock()
	defer r.db.sections.mutex.Unlock()

	if _, ok := r.db.sections.t[section.ID]; !ok {
		return journal.Section{}, journal.ErrSectionNotFound
	}
	cp := section
	r.db.sections.t[cp.ID] = &cp
	return cp, nil
}

func (r *journalRepository) QueryAllTeachers() ([]journal.Teacher, error) {
	r.db.teachers.mutex.RLock()
	defer r.db.teachers.mutex.RUnlock()

	res := make([]journal.Teacher, len(r.db.teachers.t))
	copy(res, r.db.teachers.t)
	return res, nil
}
