package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tkabila/shajara/core/journal"
)

func TestJournalAPI_requiresLogin(t *testing.T) {
	srv, _, _ := setupServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/journal"},
		{http.MethodGet, "/v1/roster"},
		{http.MethodPost, "/v1/students"},
		{http.MethodGet, "/v1/students/1"},
		{http.MethodGet, "/v1/students/1/report"},
		{http.MethodPut, "/v1/students/1/sections/acting/grade"},
		{http.MethodPut, "/v1/sections/acting"},
	}
	for _, p := range paths {
		rec := doRequest(t, srv, p.method, p.path, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
	}
}

func TestJournalAPI_snapshot(t *testing.T) {
	srv, _, _ := setupServer(t)
	loginAs(t, srv, "alex@example.com", "teacher123")

	rec := doRequest(t, srv, http.MethodGet, "/v1/journal", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var snapshot journal.Journal
	decodeBody(t, rec, &snapshot)
	assert.Len(t, snapshot.Students, 3)
	assert.Len(t, snapshot.Sections, 4)
	// credentials never hit the wire
	assert.NotContains(t, rec.Body.String(), "student123")
}

func TestJournalAPI_roster(t *testing.T) {
	srv, _, _ := setupServer(t)
	loginAs(t, srv, "alex@example.com", "teacher123")

	// only students enrolled in the teacher's sections show up
	rec := doRequest(t, srv, http.MethodGet, "/v1/roster", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var students []journal.Student
	decodeBody(t, rec, &students)
	assert.Len(t, students, 2)
	assert.Equal(t, "1", students[0].ID)
	assert.Equal(t, "3", students[1].ID)

	// case-insensitive name search
	rec = doRequest(t, srv, http.MethodGet, "/v1/roster?search=aNNa", nil)
	decodeBody(t, rec, &students)
	assert.Len(t, students, 1)
	assert.Equal(t, "Anna Ivanova", students[0].Name)

	rec = doRequest(t, srv, http.MethodGet, "/v1/roster?search=ivan", nil)
	decodeBody(t, rec, &students)
	assert.Empty(t, students) // Ivan is not in acting

	// students have no roster
	loginAs(t, srv, "anna@example.com", "student123")
	rec = doRequest(t, srv, http.MethodGet, "/v1/roster", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJournalAPI_studentAccess(t *testing.T) {
	srv, _, _ := setupServer(t)
	loginAs(t, srv, "anna@example.com", "student123")

	// a student reads their own record
	rec := doRequest(t, srv, http.MethodGet, "/v1/students/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// but nobody else's
	rec = doRequest(t, srv, http.MethodGet, "/v1/students/2", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// and never mutates, their own sections included
	rec = doRequest(t, srv, http.MethodPost, "/v1/students", journal.NewStudent{Name: "X"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = doRequest(t, srv, http.MethodPut, "/v1/students/1/sections/acting/note", NoteRequest{Note: "self praise"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJournalAPI_createStudent(t *testing.T) {
	srv, _, _ := setupServer(t)
	loginAs(t, srv, "alex@example.com", "teacher123")

	rec := doRequest(t, srv, http.MethodPost, "/v1/students", journal.NewStudent{
		Name:     "Petr Smirnov",
		Email:    "petr@example.com",
		Sections: []journal.SectionID{journal.SectionActing},
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created journal.Student
	decodeBody(t, rec, &created)
	assert.NotEmpty(t, created.ID)
	assert.NotNil(t, created.Attendance)
	assert.NotNil(t, created.Grades)
	assert.NotNil(t, created.Notes)

	rec = doRequest(t, srv, http.MethodGet, "/v1/students/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	t.Run("name is required", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/v1/students", journal.NewStudent{Email: "x@example.com"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown section is rejected", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/v1/students", map[string]interface{}{
			"name": "X", "sections": []string{"chess"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("out-of-range grades in the carried map are rejected", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/v1/students", journal.NewStudent{
			Name:     "X",
			Sections: []journal.SectionID{journal.SectionActing},
			Grades: map[journal.SectionID]map[string]journal.Grade{
				journal.SectionActing: {"2023-10-01": 9},
			},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ungraded entries in the carried map are kept", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/v1/students", journal.NewStudent{
			Name:     "Y",
			Sections: []journal.SectionID{journal.SectionActing},
			Grades: map[journal.SectionID]map[string]journal.Grade{
				journal.SectionActing: {"2023-10-01": journal.Ungraded},
			},
		})
		assert.Equal(t, http.StatusCreated, rec.Code)

		var created journal.Student
		decodeBody(t, rec, &created)
		assert.Equal(t, journal.Ungraded, created.Grades[journal.SectionActing]["2023-10-01"])
	})
}

func TestJournalAPI_updateStudent(t *testing.T) {
	srv, _, _ := setupServer(t)
	loginAs(t, srv, "alex@example.com", "teacher123")

	rec := doRequest(t, srv, http.MethodPut, "/v1/students/1", journal.UpdateStudent{Name: "Anna Petrova"})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	var student journal.Student
	rec = doRequest(t, srv, http.MethodGet, "/v1/students/1", nil)
	decodeBody(t, rec, &student)
	assert.Equal(t, "Anna Petrova", student.Name)
	// untouched fields survive
	assert.Equal(t, "anna@example.com", student.Email)
	assert.Len(t, student.Sections, 2)

	t.Run("out-of-range grades in the supplied map are rejected", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPut, "/v1/students/1", journal.UpdateStudent{
			Grades: map[journal.SectionID]map[string]journal.Grade{
				journal.SectionActing: {"2023-10-01": 42},
			},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		// the stored record is untouched
		var student journal.Student
		rec = doRequest(t, srv, http.MethodGet, "/v1/students/1", nil)
		decodeBody(t, rec, &student)
		assert.Equal(t, journal.Grade(4), student.Grades[journal.SectionActing]["2023-10-01"])
	})
}

func TestJournalAPI_removeStudent(t *testing.T) {
	srv, _, _ := setupServer(t)
	loginAs(t, srv, "alex@example.com", "teacher123")

	rec := doRequest(t, srv, http.MethodDelete, "/v1/students/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/v1/students/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// removing again stays a no-op
	rec = doRequest(t, srv, http.MethodDelete, "/v1/students/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestJournalAPI_attendance(t *testing.T) {
	srv, _, _ := setupServer(t)
	loginAs(t, srv, "alex@example.com", "teacher123")

	// two writes on new dates merge with the seeded records
	rec := doRequest(t, srv, http.MethodPut, "/v1/students/1/sections/acting/attendance",
		AttendanceRequest{Date: "2023-10-15", Present: true})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = doRequest(t, srv, http.MethodPut, "/v1/students/1/sections/acting/attendance",
		AttendanceRequest{Date: "2023-10-22", Present: false})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	var student journal.Student
	rec = doRequest(t, srv, http.MethodGet, "/v1/students/1", nil)
	decodeBody(t, rec, &student)
	assert.Len(t, student.Attendance[journal.SectionActing], 4)
	assert.True(t, student.Attendance[journal.SectionActing]["2023-10-15"])
	assert.False(t, student.Attendance[journal.SectionActing]["2023-10-22"])
	assert.True(t, student.Attendance[journal.SectionActing]["2023-10-01"]) // seeded record kept

	t.Run("date is required", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPut, "/v1/students/1/sections/acting/attendance",
			AttendanceRequest{Present: true})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown section", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPut, "/v1/students/1/sections/chess/attendance",
			AttendanceRequest{Date: "2023-10-15", Present: true})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("teacher of another section", func(t *testing.T) {
		loginAs(t, srv, "elena@example.com", "teacher123") // singing only
		rec := doRequest(t, srv, http.MethodPut, "/v1/students/1/sections/acting/attendance",
			AttendanceRequest{Date: "2023-10-15", Present: true})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestJournalAPI_grades(t *testing.T) {
	srv, _, _ := setupServer(t)
	loginAs(t, srv, "alex@example.com", "teacher123")

	rec := doRequest(t, srv, http.MethodPut, "/v1/students/1/sections/acting/grade",
		GradeRequest{Date: "2023-10-15", Grade: 3})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	var student journal.Student
	rec = doRequest(t, srv, http.MethodGet, "/v1/students/1", nil)
	decodeBody(t, rec, &student)
	assert.Equal(t, journal.Grade(3), student.Grades[journal.SectionActing]["2023-10-15"])
	assert.Len(t, student.Grades[journal.SectionActing], 3)

	t.Run("out-of-range grades are rejected", func(t *testing.T) {
		for _, grade := range []int{0, -1, 6} {
			rec := doRequest(t, srv, http.MethodPut, "/v1/students/1/sections/acting/grade",
				GradeRequest{Date: "2023-10-16", Grade: grade})
			assert.Equal(t, http.StatusBadRequest, rec.Code, "grade %d", grade)
		}
		// nothing was stored
		var student journal.Student
		rec := doRequest(t, srv, http.MethodGet, "/v1/students/1", nil)
		decodeBody(t, rec, &student)
		_, exists := student.Grades[journal.SectionActing]["2023-10-16"]
		assert.False(t, exists)
	})
}

func TestJournalAPI_notes(t *testing.T) {
	srv, _, _ := setupServer(t)
	loginAs(t, srv, "alex@example.com", "teacher123")

	rec := doRequest(t, srv, http.MethodPut, "/v1/students/1/sections/acting/note",
		NoteRequest{Note: "first impression"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = doRequest(t, srv, http.MethodPut, "/v1/students/1/sections/acting/note",
		NoteRequest{Note: "second impression"})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// one note per section, last write wins
	var student journal.Student
	rec = doRequest(t, srv, http.MethodGet, "/v1/students/1", nil)
	decodeBody(t, rec, &student)
	assert.Equal(t, "second impression", student.Notes[journal.SectionActing])
}

func TestJournalAPI_updateSection(t *testing.T) {
	srv, _, _ := setupServer(t)
	loginAs(t, srv, "alex@example.com", "teacher123")

	rec := doRequest(t, srv, http.MethodPut, "/v1/sections/acting",
		journal.UpdateSection{Schedule: "Saturday, 11:00-13:00"})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	var snapshot journal.Journal
	rec = doRequest(t, srv, http.MethodGet, "/v1/journal", nil)
	decodeBody(t, rec, &snapshot)
	section := snapshot.Sections[journal.SectionActing]
	assert.Equal(t, "Saturday, 11:00-13:00", section.Schedule)
	assert.Equal(t, "Acting", section.Name) // empty fields keep their value

	rec = doRequest(t, srv, http.MethodPut, "/v1/sections/singing",
		journal.UpdateSection{Schedule: "Friday, 09:00-11:00"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, srv, http.MethodPut, "/v1/sections/chess",
		journal.UpdateSection{Schedule: "Friday, 09:00-11:00"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJournalAPI_report(t *testing.T) {
	srv, _, _ := setupServer(t)
	loginAs(t, srv, "anna@example.com", "student123")

	rec := doRequest(t, srv, http.MethodGet, "/v1/students/1/report", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var report ReportResponse
	decodeBody(t, rec, &report)
	assert.Equal(t, 4.5, report.Averages[journal.SectionActing])
	assert.Equal(t, 4.5, report.Averages[journal.SectionSinging])
	assert.Equal(t, journal.AttendanceRatio{Present: 1, Total: 2, Percent: 50}, report.Attendance[journal.SectionActing])
	assert.Equal(t, journal.AttendanceRatio{Present: 2, Total: 2, Percent: 100}, report.Attendance[journal.SectionSinging])
}

func TestJournalAPI_upcoming(t *testing.T) {
	srv, _, _ := setupServer(t)
	loginAs(t, srv, "anna@example.com", "student123")

	rec := doRequest(t, srv, http.MethodGet, "/v1/students/1/upcoming", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var upcoming []journal.UpcomingClass
	decodeBody(t, rec, &upcoming)
	assert.Len(t, upcoming, 2) // one entry per enrolled section
	for _, class := range upcoming {
		assert.GreaterOrEqual(t, class.DaysUntil, 1)
		assert.LessOrEqual(t, class.DaysUntil, 7)
	}
	// soonest first
	assert.LessOrEqual(t, upcoming[0].DaysUntil, upcoming[1].DaysUntil)
}

func TestJournalAPI_recentGrades(t *testing.T) {
	srv, _, _ := setupServer(t)
	loginAs(t, srv, "anna@example.com", "student123")

	rec := doRequest(t, srv, http.MethodGet, "/v1/students/1/grades/recent", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var feed []journal.GradeEntry
	decodeBody(t, rec, &feed)
	assert.Len(t, feed, 3) // default cap
	assert.Equal(t, "2023-10-09", feed[0].Date)
	assert.Equal(t, "2023-10-08", feed[1].Date)

	rec = doRequest(t, srv, http.MethodGet, "/v1/students/1/grades/recent?limit=2", nil)
	decodeBody(t, rec, &feed)
	assert.Len(t, feed, 2)
}
