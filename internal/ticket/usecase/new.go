package usecase

import (
	"appliance-support-bot/internal/nlu"
	"appliance-support-bot/internal/ticket"
	"appliance-support-bot/internal/ticket/repository"
	pkgLog "appliance-support-bot/pkg/log"
)

type implSynchronizer struct {
	l           pkgLog.Logger
	tracker     repository.Tracker
	cache       repository.CacheRepository
	extractor   nlu.FieldExtractor
	closeStatus int
}

var _ ticket.Synchronizer = (*implSynchronizer)(nil)

// New creates a new ticket Synchronizer instance.
func New(
	l pkgLog.Logger,
	tracker repository.Tracker,
	cache repository.CacheRepository,
	extractor nlu.FieldExtractor,
	closeStatus int,
) *implSynchronizer {
	return &implSynchronizer{
		l:           l,
		tracker:     tracker,
		cache:       cache,
		extractor:   extractor,
		closeStatus: closeStatus,
	}
}
