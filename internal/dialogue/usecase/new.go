package usecase

import (
	"sync"

	"appliance-support-bot/internal/dialogue"
	"appliance-support-bot/internal/nlu"
	"appliance-support-bot/internal/router"
	sessionRepo "appliance-support-bot/internal/session/repository"
	"appliance-support-bot/internal/ticket"
	pkgLog "appliance-support-bot/pkg/log"
)

type implUseCase struct {
	l            pkgLog.Logger
	sessions     sessionRepo.SessionRepository
	tickets      ticket.Synchronizer
	router       router.Router
	troubleshoot nlu.Troubleshooter
	resolver     nlu.TicketResolver

	// userLocks serializes message handling per user. The session record
	// follows read-modify-write semantics with no transactional guard, so
	// concurrent messages from one user would be last-writer-wins without
	// this. Entries are reference counted and dropped on release, so the
	// map only holds users with in-flight messages.
	mu        sync.Mutex
	userLocks map[string]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

var _ dialogue.UseCase = (*implUseCase)(nil)

// New creates a new dialogue UseCase instance.
func New(
	l pkgLog.Logger,
	sessions sessionRepo.SessionRepository,
	tickets ticket.Synchronizer,
	r router.Router,
	troubleshoot nlu.Troubleshooter,
	resolver nlu.TicketResolver,
) *implUseCase {
	return &implUseCase{
		l:            l,
		sessions:     sessions,
		tickets:      tickets,
		router:       r,
		troubleshoot: troubleshoot,
		resolver:     resolver,
		userLocks:    make(map[string]*userLock),
	}
}

// lockUser acquires the per-user lock and returns the release func.
func (uc *implUseCase) lockUser(userID string) func() {
	uc.mu.Lock()
	entry, ok := uc.userLocks[userID]
	if !ok {
		entry = &userLock{}
		uc.userLocks[userID] = entry
	}
	entry.refs++
	uc.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		uc.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(uc.userLocks, userID)
		}
		uc.mu.Unlock()
	}
}
