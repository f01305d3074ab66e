package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/tkabila/shajara/core"
	"github.com/tkabila/shajara/core/journal"
	"github.com/tkabila/shajara/storage/journaldb/sqlxrepo"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf *core.Config
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate                 - apply pending database migrations")
	fmt.Println("  seed                    - load the fixture into the database")
	fmt.Println("  roster [-search QUERY]  - print the student roster")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	rosterCmd := flag.NewFlagSet("roster", flag.ExitOnError)
	rosterSearch := rosterCmd.String("search", "", "Case-insensitive substring match on student name.")

	switch args[1] {
	case "migrate":
		return sqlxrepo.Migrate(cli.conf.DatabaseURL)
	case "seed":
		return cli.seed()
	case "roster":
		if err := rosterCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.roster(*rosterSearch)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) seed() error {
	repo, closeFn, err := cli.openRepo()
	if err != nil {
		return err
	}
	defer closeFn()
	return repo.Seed(journal.SeedFixture())
}

func (cli *commandLine) roster(search string) error {
	repo, closeFn, err := cli.openRepo()
	if err != nil {
		return err
	}
	defer closeFn()

	svc := journal.NewService(repo)
	students, err := svc.Students()
	if err != nil {
		return err
	}
	if search != "" {
		students = journal.VisibleStudents(students, journal.AllSectionIDs, search)
	}
	for _, student := range students {
		fmt.Printf("%s\t%s\t%v\n", student.ID, student.Name, student.Sections)
	}
	return nil
}

func (cli *commandLine) openRepo() (*sqlxrepo.Repo, func(), error) {
	db, err := sqlxrepo.Open(cli.conf.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return sqlxrepo.NewJournalRepository(db), func() { _ = db.Close() }, nil
}
