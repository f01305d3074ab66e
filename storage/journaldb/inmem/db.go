package inmemdb

import (
	"sync"

	"github.com/tkabila/shajara/core/journal"
)

type (
	// DB holds the whole journal in memory, seeded once at startup.
	DB struct {
		students *studentTable
		sections *sectionTable
		teachers *teacherTable
	}

	studentTable struct {
		t     map[string]*journal.Student
		order []string // creation order, so roster listings are stable
		mutex sync.RWMutex
	}

	sectionTable struct {
		t     map[journal.SectionID]*journal.Section
		mutex sync.RWMutex
	}

	teacherTable struct {
		t     []journal.Teacher
		mutex sync.RWMutex
	}
)

// Open seeds an in-memory journal database from the fixture.
func Open(fx journal.Fixture) (*DB, error) {
	db := &DB{
		students: &studentTable{t: make(map[string]*journal.Student, len(fx.Students))},
		sections: &sectionTable{t: make(map[journal.SectionID]*journal.Section, len(fx.Sections))},
		teachers: &teacherTable{t: make([]journal.Teacher, 0, len(fx.Teachers))},
	}
	for _, student := range fx.Students {
		cp := student.Clone()
		db.students.t[cp.ID] = &cp
		db.students.order = append(db.students.order, cp.ID)
	}
	for id, section := range fx.Sections {
		cp := section
		db.sections.t[id] = &cp
	}
	db.teachers.t = append(db.teachers.t, fx.Teachers...)
	return db, nil
}
