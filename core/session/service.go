package session

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/tkabila/shajara/core"
	"github.com/tkabila/shajara/core/journal"
)

// ErrNoIdentity is returned by an IdentityStore when no identity is stored.
var ErrNoIdentity = errors.New("no stored identity")

type (
	// IdentityStore is the durable identity side-channel: a single key holding
	// the serialized principal. Written through on login, erased on logout,
	// read once at startup.
	IdentityStore interface {
		Save(token string) error
		Load() (string, error)
		Clear() error
	}

	// Service authenticates a principal and exposes the current identity.
	// One principal is active per running instance; logging in while logged in
	// simply overwrites the current identity.
	Service struct {
		journal *journal.Service
		store   IdentityStore
		log     core.Logger
		secret  []byte
		issuer  string

		mu      sync.RWMutex
		current Principal
	}
)

// NewService builds the session service and restores any previously stored
// identity. The restored principal is trusted verbatim: it is not re-validated
// against the current roster, so a teacher removed from the seed after logging
// in stays authenticated until an explicit logout. The token signature is
// still checked, which only guards against tampering.
func NewService(journalSvc *journal.Service, store IdentityStore, log core.Logger, conf *core.Config) *Service {
	svc := &Service{
		journal: journalSvc,
		store:   store,
		log:     log,
		secret:  []byte(conf.SecretKey),
		issuer:  conf.AppName,
	}

	token, err := store.Load()
	switch {
	case err == nil:
		principal, dErr := DecodeIdentity(token, svc.secret)
		if dErr != nil {
			log.Error("discarding unreadable stored identity", dErr)
			_ = store.Clear()
			break
		}
		svc.current = principal
	case errors.Cause(err) == ErrNoIdentity:
	default:
		log.Error("loading stored identity", err)
	}
	return svc
}

// Login searches teachers first, then students, for an exact (email, password)
// match against the demo seed credentials. Invalid credentials are a normal
// false outcome, never an error; a failed login leaves any prior identity
// untouched.
func (svc *Service) Login(email, password string) bool {
	email = core.CleanString(email, true /* lower */)

	teachers, err := svc.journal.Teachers()
	if err != nil {
		svc.log.Error("querying teachers", err)
		return false
	}
	for _, teacher := range teachers {
		if teacher.Email == email && teacher.Password == password {
			svc.establish(TeacherIdentity{
				ID:       teacher.ID,
				Name:     teacher.Name,
				Email:    teacher.Email,
				Sections: teacher.Sections,
			})
			return true
		}
	}

	students, err := svc.journal.Students()
	if err != nil {
		svc.log.Error("querying students", err)
		return false
	}
	for _, student := range students {
		if student.Email != "" && student.Email == email && student.Password == password {
			svc.establish(StudentIdentity{
				ID:    student.ID,
				Name:  student.Name,
				Email: student.Email,
			})
			return true
		}
	}
	return false
}

func (svc *Service) establish(p Principal) {
	svc.mu.Lock()
	svc.current = p
	svc.mu.Unlock()

	// The side-channel write is best-effort: the in-memory session is already
	// established, a failed write only costs reload persistence.
	token, err := EncodeIdentity(p, svc.secret, svc.issuer)
	if err != nil {
		svc.log.Error("encoding identity", err, p)
		return
	}
	if err = svc.store.Save(token); err != nil {
		svc.log.Error("persisting identity", err, p)
	}
}

// Logout clears the current identity and erases it from the side-channel.
// Idempotent.
func (svc *Service) Logout() {
	svc.mu.Lock()
	svc.current = nil
	svc.mu.Unlock()

	if err := svc.store.Clear(); err != nil {
		svc.log.Error("clearing stored identity", err)
	}
}

// Current returns the authenticated principal, or nil.
func (svc *Service) Current() Principal {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.current
}
