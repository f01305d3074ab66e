package testutil

import (
	"io"
	"log"
	"testing"

	"github.com/tkabila/shajara/core"
	"github.com/tkabila/shajara/core/journal"
	"github.com/tkabila/shajara/core/session"
	logsvc "github.com/tkabila/shajara/services/logger"
	inmemdb "github.com/tkabila/shajara/storage/journaldb/inmem"
)

// NewConfig returns a config suitable for tests.
func NewConfig() *core.Config {
	conf := &core.Config{
		Debug:     false,
		TestMode:  true,
		Env:       "TEST",
		AppName:   "Shajara",
		SecretKey: "test-secret-key",
	}
	conf.Server.Addr = ":0"
	return conf
}

// NewLogger returns a logger that swallows all output.
func NewLogger() core.Logger {
	return logsvc.NewConsoleLogger(log.New(io.Discard, "", 0))
}

// NewJournalService builds a journal service over a fresh in-memory repository
// seeded with the default fixture.
func NewJournalService(t *testing.T) (*journal.Service, journal.Repository) {
	t.Helper()
	db, err := inmemdb.Open(journal.SeedFixture())
	if err != nil {
		t.Fatalf("NewJournalService() failed: %v", err)
	}
	repo := inmemdb.NewJournalRepository(db)
	return journal.NewService(repo), repo
}

// CreateStudent inserts a student through the repository.
func CreateStudent(t *testing.T, repo journal.Repository, name, email, pwd string, sections ...journal.SectionID) journal.Student {
	t.Helper()
	student := journal.Student{
		ID:         "test-" + name,
		Name:       name,
		Email:      email,
		Password:   pwd,
		Sections:   sections,
		Attendance: map[journal.SectionID]map[string]bool{},
		Grades:     map[journal.SectionID]map[string]journal.Grade{},
		Notes:      map[journal.SectionID]string{},
	}
	student, err := repo.CreateStudent(student)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return student
}

// MemIdentityStore is an in-memory identity side-channel for tests.
type MemIdentityStore struct {
	Token  string
	Stored bool
}

func (s *MemIdentityStore) Save(token string) error {
	s.Token = token
	s.Stored = true
	return nil
}

func (s *MemIdentityStore) Load() (string, error) {
	if !s.Stored {
		return "", session.ErrNoIdentity
	}
	return s.Token, nil
}

func (s *MemIdentityStore) Clear() error {
	s.Token = ""
	s.Stored = false
	return nil
}
