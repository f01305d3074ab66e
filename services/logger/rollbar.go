package logsvc

import (
	"log"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/tkabila/shajara/core"
	"github.com/tkabila/shajara/core/session"
)

// RollbarLogger reports to Rollbar, attaching the acting principal to the
// report when one is passed among the args.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.Rollbar.Token)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Addr)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

func (l *RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// expected args: error | map[string]interface{} | session.Principal
func (l *RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	var personSet bool
	newArgs := make([]interface{}, 0, len(args)+1)
	newArgs = append(newArgs, msg)
	for _, arg := range args {
		if p, ok := arg.(session.Principal); ok {
			if !personSet { // only set one principal
				rollbar.SetPerson(p.PrincipalID(), p.PrincipalName(), p.PrincipalEmail())
				personSet = true
			}
			continue
		}
		newArgs = append(newArgs, arg)
	}
	if !personSet {
		rollbar.ClearPerson()
	}
	return newArgs
}

func (l *RollbarLogger) print(msg string, args []interface{}) {
	l.std.Println(msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l *RollbarLogger) Info(msg string, args ...interface{}) {
	l.print("INFO: "+msg, args)
	rollbar.Info(l.prepare(msg, args)...)
}

func (l *RollbarLogger) Error(msg string, args ...interface{}) {
	l.print("ERROR: "+msg, args)
	rollbar.Error(l.prepare(msg, args)...)
}
