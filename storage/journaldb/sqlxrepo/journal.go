package sqlxrepo

import (
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/tkabila/shajara/core/journal"
)

// Repo is the Postgres implementation of journal.Repository. Enrollment,
// attendance, grade and note maps live in jsonb columns so a student row is
// replaced whole, matching the copy-on-write contract of the in-memory store.
type Repo struct {
	db *sqlx.DB
}

var _ journal.Repository = (*Repo)(nil)

func NewJournalRepository(db *sqlx.DB) *Repo {
	return &Repo{db: db}
}

// Open connects to Postgres and verifies the connection.
func Open(databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to postgres")
	}
	return db, nil
}

type studentRow struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	Email      string `db:"email"`
	Password   string `db:"password"`
	Sections   []byte `db:"sections"`
	Attendance []byte `db:"attendance"`
	Grades     []byte `db:"grades"`
	Notes      []byte `db:"notes"`
}

type teacherRow struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Email    string `db:"email"`
	Password string `db:"password"`
	Sections []byte `db:"sections"`
}

func newStudentRow(student journal.Student) (studentRow, error) {
	row := studentRow{
		ID:       student.ID,
		Name:     student.Name,
		Email:    student.Email,
		Password: student.Password,
	}
	var err error
	if row.Sections, err = json.Marshal(student.Sections); err != nil {
		return row, errors.Wrap(err, "marshaling sections")
	}
	if row.Attendance, err = json.Marshal(student.Attendance); err != nil {
		return row, errors.Wrap(err, "marshaling attendance")
	}
	if row.Grades, err = json.Marshal(student.Grades); err != nil {
		return row, errors.Wrap(err, "marshaling grades")
	}
	if row.Notes, err = json.Marshal(student.Notes); err != nil {
		return row, errors.Wrap(err, "marshaling notes")
	}
	return row, nil
}

func (row studentRow) toStudent() (journal.Student, error) {
	student := journal.Student{
		ID:       row.ID,
		Name:     row.Name,
		Email:    row.Email,
		Password: row.Password,
	}
	if err := json.Unmarshal(row.Sections, &student.Sections); err != nil {
		return student, errors.Wrap(err, "unmarshaling sections")
	}
	if err := json.Unmarshal(row.Attendance, &student.Attendance); err != nil {
		return student, errors.Wrap(err, "unmarshaling attendance")
	}
	if err := json.Unmarshal(row.Grades, &student.Grades); err != nil {
		return student, errors.Wrap(err, "unmarshaling grades")
	}
	if err := json.Unmarshal(row.Notes, &student.Notes); err != nil {
		return student, errors.Wrap(err, "unmarshaling notes")
	}
	return student, nil
}

func (row teacherRow) toTeacher() (journal.Teacher, error) {
	teacher := journal.Teacher{
		ID:       row.ID,
		Name:     row.Name,
		Email:    row.Email,
		Password: row.Password,
	}
	if err := json.Unmarshal(row.Sections, &teacher.Sections); err != nil {
		return teacher, errors.Wrap(err, "unmarshaling sections")
	}
	return teacher, nil
}

func (r *Repo) CreateStudent(student journal.Student) (journal.Student, error) {
	row, err := newStudentRow(student)
	if err != nil {
		return journal.Student{}, err
	}
	_, err = r.db.NamedExec(
		`INSERT INTO students (id, name, email, password, sections, attendance, grades, notes)
		 VALUES (:id, :name, :email, :password, :sections, :attendance, :grades, :notes)`,
		row,
	)
	if err != nil {
		return journal.Student{}, errors.Wrap(err, "inserting student")
	}
	return student, nil
}

func (r *Repo) QueryAllStudents() ([]journal.Student, error) {
	var rows []studentRow
	if err := r.db.Select(&rows, `SELECT id, name, email, password, sections, attendance, grades, notes FROM students ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	students := make([]journal.Student, 0, len(rows))
	for _, row := range rows {
		student, err := row.toStudent()
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, nil
}

func (r *Repo) GetStudentByID(id string) (journal.Student, error) {
	var row studentRow
	err := r.db.Get(&row, `SELECT id, name, email, password, sections, attendance, grades, notes FROM students WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return journal.Student{}, journal.ErrStudentNotFound
	}
	if err != nil {
		return journal.Student{}, errors.Wrap(err, "querying student")
	}
	return row.toStudent()
}

func (r *Repo) UpdateStudent(student journal.Student) (journal.Student, error) {
	row, err := newStudentRow(student)
	if err != nil {
		return journal.Student{}, err
	}
	res, err := r.db.NamedExec(
		`UPDATE students
		 SET name = :name, email = :email, password = :password, sections = :sections,
		     attendance = :attendance, grades = :grades, notes = :notes
		 WHERE id = :id`,
		row,
	)
	if err != nil {
		return journal.Student{}, errors.Wrap(err, "updating student")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return journal.Student{}, journal.ErrStudentNotFound
	}
	return student, nil
}

func (r *Repo) DeleteStudent(id string) error {
	res, err := r.db.Exec(`DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting student")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return journal.ErrStudentNotFound
	}
	return nil
}

func (r *Repo) QueryAllSections() (map[journal.SectionID]journal.Section, error) {
	var rows []journal.Section
	if err := r.db.Select(&rows, `SELECT id, name, description, schedule, teacher FROM sections`); err != nil {
		return nil, errors.Wrap(err, "querying sections")
	}
	sections := make(map[journal.SectionID]journal.Section, len(rows))
	for _, section := range rows {
		sections[section.ID] = section
	}
	return sections, nil
}

func (r *Repo) GetSectionByID(id journal.SectionID) (journal.Section, error) {
	var section journal.Section
	err := r.db.Get(&section, `SELECT id, name, description, schedule, teacher FROM sections WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return journal.Section{}, journal.ErrSectionNotFound
	}
	if err != nil {
		return journal.Section{}, errors.Wrap(err, "querying section")
	}
	return section, nil
}

func (r *Repo) UpdateSection(section journal.Section) (journal.Section, error) {
	res, err := r.db.NamedExec(
		`UPDATE sections SET name = :name, description = :description, schedule = :schedule, teacher = :teacher WHERE id = :id`,
		section,
	)
	if err != nil {
		return journal.Section{}, errors.Wrap(err, "updating section")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return journal.Section{}, journal.ErrSectionNotFound
	}
	return section, nil
}

func (r *Repo) QueryAllTeachers() ([]journal.Teacher, error) {
	var rows []teacherRow
	if err := r.db.Select(&rows, `SELECT id, name, email, password, sections FROM teachers ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}
	teachers := make([]journal.Teacher, 0, len(rows))
	for _, row := range rows {
		teacher, err := row.toTeacher()
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, teacher)
	}
	return teachers, nil
}

// Seed upserts the fixture, so a fresh database starts with the same journal
// the in-memory store is seeded with.
func (r *Repo) Seed(fx journal.Fixture) error {
	for _, section := range fx.Sections {
		_, err := r.db.NamedExec(
			`INSERT INTO sections (id, name, description, schedule, teacher)
			 VALUES (:id, :name, :description, :schedule, :teacher)
			 ON CONFLICT (id) DO UPDATE
			 SET name = EXCLUDED.name, description = EXCLUDED.description,
			     schedule = EXCLUDED.schedule, teacher = EXCLUDED.teacher`,
			section,
		)
		if err != nil {
			return errors.Wrapf(err, "seeding section %s", section.ID)
		}
	}
	for _, teacher := range fx.Teachers {
		sections, err := json.Marshal(teacher.Sections)
		if err != nil {
			return errors.Wrapf(err, "seeding teacher %s", teacher.ID)
		}
		_, err = r.db.Exec(
			`INSERT INTO teachers (id, name, email, password, sections)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE
			 SET name = $2, email = $3, password = $4, sections = $5`,
			teacher.ID, teacher.Name, teacher.Email, teacher.Password, sections,
		)
		if err != nil {
			return errors.Wrapf(err, "seeding teacher %s", teacher.ID)
		}
	}
	for _, student := range fx.Students {
		row, err := newStudentRow(student)
		if err != nil {
			return errors.Wrapf(err, "seeding student %s", student.ID)
		}
		_, err = r.db.NamedExec(
			`INSERT INTO students (id, name, email, password, sections, attendance, grades, notes)
			 VALUES (:id, :name, :email, :password, :sections, :attendance, :grades, :notes)
			 ON CONFLICT (id) DO UPDATE
			 SET name = EXCLUDED.name, email = EXCLUDED.email, password = EXCLUDED.password,
			     sections = EXCLUDED.sections, attendance = EXCLUDED.attendance,
			     grades = EXCLUDED.grades, notes = EXCLUDED.notes`,
			row,
		)
		if err != nil {
			return errors.Wrapf(err, "seeding student %s", student.ID)
		}
	}
	return nil
}
