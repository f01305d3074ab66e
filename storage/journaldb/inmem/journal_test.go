package inmemdb

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tkabila/shajara/core/journal"
)

func setup(t *testing.T) journal.Repository {
	t.Helper()
	db, err := Open(journal.SeedFixture())
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	return NewJournalRepository(db)
}

func TestJournalRepository_students(t *testing.T) {
	repo := setup(t)

	students, err := repo.QueryAllStudents()
	assert.NoError(t, err)
	assert.Len(t, students, 3)
	// creation order is stable
	assert.Equal(t, "1", students[0].ID)
	assert.Equal(t, "2", students[1].ID)
	assert.Equal(t, "3", students[2].ID)

	student, err := repo.GetStudentByID("2")
	assert.NoError(t, err)
	assert.Equal(t, "Ivan Petrov", student.Name)

	_, err = repo.GetStudentByID("nope")
	assert.Equal(t, journal.ErrStudentNotFound, err)

	created, err := repo.CreateStudent(journal.Student{ID: "4", Name: "Petr"})
	assert.NoError(t, err)
	assert.Equal(t, "4", created.ID)

	students, _ = repo.QueryAllStudents()
	assert.Len(t, students, 4)
	assert.Equal(t, "4", students[3].ID)
}

func TestJournalRepository_copyOnWrite(t *testing.T) {
	repo := setup(t)

	// mutating a returned record must not leak into the stored one
	student, err := repo.GetStudentByID("1")
	assert.NoError(t, err)
	student.Name = "Mutated"
	student.Attendance[journal.SectionActing]["2023-10-01"] = false
	student.Notes[journal.SectionActing] = "mutated"

	stored, err := repo.GetStudentByID("1")
	assert.NoError(t, err)
	assert.Equal(t, "Anna Ivanova", stored.Name)
	assert.True(t, stored.Attendance[journal.SectionActing]["2023-10-01"])
	assert.Equal(t, "Handles sketch work very well", stored.Notes[journal.SectionActing])

	// the mutation becomes visible only through UpdateStudent, whole
	_, err = repo.UpdateStudent(student)
	assert.NoError(t, err)
	stored, _ = repo.GetStudentByID("1")
	assert.Equal(t, "Mutated", stored.Name)
	assert.False(t, stored.Attendance[journal.SectionActing]["2023-10-01"])
}

func TestJournalRepository_updateMissing(t *testing.T) {
	repo := setup(t)

	_, err := repo.UpdateStudent(journal.Student{ID: "nope"})
	assert.Equal(t, journal.ErrStudentNotFound, err)

	err = repo.DeleteStudent("nope")
	assert.Equal(t, journal.ErrStudentNotFound, err)
}

func TestJournalRepository_delete(t *testing.T) {
	repo := setup(t)

	assert.NoError(t, repo.DeleteStudent("1"))

	_, err := repo.GetStudentByID("1")
	assert.Equal(t, journal.ErrStudentNotFound, err)

	students, _ := repo.QueryAllStudents()
	assert.Len(t, students, 2)
}

func TestJournalRepository_sections(t *testing.T) {
	repo := setup(t)

	sections, err := repo.QueryAllSections()
	assert.NoError(t, err)
	assert.Len(t, sections, 4)

	section, err := repo.GetSectionByID(journal.SectionActing)
	assert.NoError(t, err)
	assert.Equal(t, "Acting", section.Name)

	_, err = repo.GetSectionByID("chess")
	assert.Equal(t, journal.ErrSectionNotFound, err)

	section.Schedule = "Saturday, 11:00-13:00"
	_, err = repo.UpdateSection(section)
	assert.NoError(t, err)

	section, _ = repo.GetSectionByID(journal.SectionActing)
	assert.Equal(t, "Saturday, 11:00-13:00", section.Schedule)
}

func TestJournalRepository_teachers(t *testing.T) {
	repo := setup(t)

	teachers, err := repo.QueryAllTeachers()
	assert.NoError(t, err)
	assert.Len(t, teachers, 4)
}
