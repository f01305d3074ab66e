package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tkabila/shajara/core/journal"
	"github.com/tkabila/shajara/core/session"
)

const defaultRecentGrades = 3

type journalApi struct {
	svc      *journal.Service
	validate *validator.Validate
}

func registerJournalAPI(g *echo.Group, authed echo.MiddlewareFunc, svc *journal.Service, validate *validator.Validate) {
	api := journalApi{svc: svc, validate: validate}

	ag := g.Group("", authed)
	ag.GET("/journal", api.snapshot)
	ag.GET("/roster", api.roster, teacherMiddleware())

	sg := ag.Group("/students")
	sg.POST("", api.createStudent, teacherMiddleware())

	// detail endpoints
	dg := sg.Group("/:id", selfOrTeacherMiddleware())
	dg.GET("", api.retrieveStudent)
	dg.PUT("", api.updateStudent, teacherMiddleware())
	dg.DELETE("", api.removeStudent, teacherMiddleware())
	dg.GET("/report", api.report)
	dg.GET("/upcoming", api.upcoming)
	dg.GET("/grades/recent", api.recentGrades)

	// per-section fields, gated by the single authorization predicate
	fg := dg.Group("/sections/:sectionID")
	fg.PUT("/attendance", api.setAttendance)
	fg.PUT("/grade", api.setGrade)
	fg.PUT("/note", api.setNote)

	ag.PUT("/sections/:id", api.updateSection)
}

// Handlers

func (api *journalApi) snapshot(ctx echo.Context) error {
	snapshot, err := api.svc.Snapshot()
	if err != nil {
		return errors.Wrap(err, "reading journal snapshot")
	}
	return ctx.JSON(http.StatusOK, snapshot)
}

func (api *journalApi) roster(ctx echo.Context) error {
	principal, err := contextPrincipal(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context principal")
	}
	teacher, ok := principal.(session.TeacherIdentity)
	if !ok {
		return errHttpForbidden
	}
	students, err := api.svc.Students()
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	visible := journal.VisibleStudents(students, teacher.Sections, ctx.QueryParam("search"))
	return ctx.JSON(http.StatusOK, visible)
}

func (api *journalApi) createStudent(ctx echo.Context) error {
	var data journal.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	student, err := api.svc.AddStudent(data)
	if err != nil {
		return errors.Wrap(err, "adding student")
	}
	return ctx.JSON(http.StatusCreated, student)
}

func (api *journalApi) retrieveStudent(ctx echo.Context) error {
	student, err := api.svc.Student(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == journal.ErrStudentNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting student")
	}
	return ctx.JSON(http.StatusOK, student)
}

func (api *journalApi) updateStudent(ctx echo.Context) error {
	var data journal.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	// a missing id is a silent no-op by contract
	if err := api.svc.UpdateStudent(ctx.Param("id"), data); err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *journalApi) removeStudent(ctx echo.Context) error {
	if err := api.svc.RemoveStudent(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "removing student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *journalApi) setAttendance(ctx echo.Context) error {
	sectionID, err := api.editableSection(ctx)
	if err != nil {
		return err
	}
	var data AttendanceRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AttendanceRequest")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}
	if err = api.svc.SetAttendance(ctx.Param("id"), sectionID, data.Date, data.Present); err != nil {
		return errors.Wrap(err, "setting attendance")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *journalApi) setGrade(ctx echo.Context) error {
	sectionID, err := api.editableSection(ctx)
	if err != nil {
		return err
	}
	var data GradeRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GradeRequest")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}
	if err = api.svc.SetGrade(ctx.Param("id"), sectionID, data.Date, journal.Grade(data.Grade)); err != nil {
		return errors.Wrap(err, "setting grade")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *journalApi) setNote(ctx echo.Context) error {
	sectionID, err := api.editableSection(ctx)
	if err != nil {
		return err
	}
	var data NoteRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NoteRequest")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}
	if err = api.svc.SetNote(ctx.Param("id"), sectionID, data.Note); err != nil {
		return errors.Wrap(err, "setting note")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *journalApi) updateSection(ctx echo.Context) error {
	sectionID := journal.SectionID(ctx.Param("id"))
	if !sectionID.Valid() {
		return errHttpNotFound
	}
	principal, err := contextPrincipal(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context principal")
	}
	if !session.CanEdit(principal, sectionID) {
		return errHttpForbidden
	}
	var data journal.UpdateSection
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSection")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}
	if err = api.svc.UpdateSection(sectionID, data); err != nil {
		return errors.Wrap(err, "updating section")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *journalApi) report(ctx echo.Context) error {
	student, err := api.svc.Student(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == journal.ErrStudentNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting student")
	}
	return ctx.JSON(http.StatusOK, ReportResponse{
		Averages:   journal.AverageGrades(student),
		Attendance: journal.AttendanceRatios(student),
	})
}

func (api *journalApi) upcoming(ctx echo.Context) error {
	student, err := api.svc.Student(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == journal.ErrStudentNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting student")
	}
	sections, err := api.svc.Sections()
	if err != nil {
		return errors.Wrap(err, "querying sections")
	}
	return ctx.JSON(http.StatusOK, journal.UpcomingClasses(student, sections, time.Now()))
}

func (api *journalApi) recentGrades(ctx echo.Context) error {
	student, err := api.svc.Student(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == journal.ErrStudentNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting student")
	}
	sections, err := api.svc.Sections()
	if err != nil {
		return errors.Wrap(err, "querying sections")
	}
	limit := defaultRecentGrades
	if raw := ctx.QueryParam("limit"); raw != "" {
		if n, pErr := strconv.Atoi(raw); pErr == nil && n > 0 {
			limit = n
		}
	}
	return ctx.JSON(http.StatusOK, journal.RecentGrades(student, sections, limit))
}

// editableSection resolves the :sectionID param and applies the section-edit
// authorization predicate to the current principal.
func (api *journalApi) editableSection(ctx echo.Context) (journal.SectionID, error) {
	sectionID := journal.SectionID(ctx.Param("sectionID"))
	if !sectionID.Valid() {
		return "", errHttpNotFound
	}
	principal, err := contextPrincipal(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting context principal")
	}
	if !session.CanEdit(principal, sectionID) {
		return "", errHttpForbidden
	}
	return sectionID, nil
}
