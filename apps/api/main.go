package main

import (
	"log"
	"os"

	echoapi "github.com/tkabila/shajara/apps/api/echo"
	"github.com/tkabila/shajara/core"
	"github.com/tkabila/shajara/core/journal"
	"github.com/tkabila/shajara/core/session"
	logsvc "github.com/tkabila/shajara/services/logger"
	"github.com/tkabila/shajara/storage/identity"
	inmemdb "github.com/tkabila/shajara/storage/journaldb/inmem"
	"github.com/tkabila/shajara/storage/journaldb/sqlxrepo"
)

func main() {
	conf, err := core.NewConfig()
	errAndDie(err)

	std := log.New(os.Stdout, conf.AppName+" - ", log.LstdFlags|log.Lshortfile)

	// set up services
	var logger core.Logger
	if conf.Rollbar.Token != "" && !conf.Debug {
		logger = logsvc.NewRollbarLogger(std, conf)
	} else {
		logger = logsvc.NewConsoleLogger(std)
	}

	validate, translator := core.NewValidator()
	journal.RegisterValidators(validate, translator)

	// set up the journal store
	var repo journal.Repository
	switch conf.Storage {
	case "postgres":
		db, dbErr := sqlxrepo.Open(conf.DatabaseURL)
		errAndDie(dbErr)
		defer db.Close()
		repo = sqlxrepo.NewJournalRepository(db)
	default:
		db, dbErr := inmemdb.Open(journal.SeedFixture())
		errAndDie(dbErr)
		repo = inmemdb.NewJournalRepository(db)
	}
	journalSvc := journal.NewService(repo)

	// set up the identity side-channel
	var idStore session.IdentityStore
	if conf.Identity.Backend == "redis" {
		idStore, err = identity.NewRedisStore(conf.Identity.RedisURL)
		errAndDie(err)
	} else {
		idStore = identity.NewFileStore(conf.Identity.Path)
	}
	sessionSvc := session.NewService(journalSvc, idStore, logger, conf)

	// start API server
	app := echoapi.NewServer(&echoapi.Options{
		Addr:       conf.Server.Addr,
		Conf:       conf,
		Logger:     logger,
		SessionSvc: sessionSvc,
		JournalSvc: journalSvc,
		Validate:   validate,
		Translator: translator,
	})
	app.Start()
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
