// Package service provides business logic for the contact session service.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nurture-ai/network-agent/internal/model"
	natsclient "github.com/nurture-ai/network-agent/internal/nats"
	"github.com/nurture-ai/network-agent/internal/session"
	"github.com/nurture-ai/network-agent/pkg/logger"
	"github.com/nurture-ai/network-agent/pkg/metrics"
)

var (
	// ErrNoDraft signals a save request with nothing pending. This is a
	// normal condition, not a failure.
	ErrNoDraft = errors.New("no active draft")

	// ErrIncomplete signals a save attempt on a draft without a name.
	ErrIncomplete = errors.New("draft has no name yet")
)

// ContactStore is the external contact-persistence collaborator. The session
// engine never writes to it directly; all saves go through ContactService.
type ContactStore interface {
	Save(ctx context.Context, record *model.ContactRecord) (*model.ContactRecord, error)
}

// ContactService commits finished drafts to the contact store and announces
// them on the event stream.
type ContactService struct {
	sessions      *session.Store
	contacts      ContactStore
	streamManager *natsclient.StreamManager
	logger        *logger.Logger
}

// NewContactService creates a new contact service. streamManager may be nil;
// saved-contact events are then skipped.
func NewContactService(sessions *session.Store, contacts ContactStore, streamManager *natsclient.StreamManager, log *logger.Logger) *ContactService {
	return &ContactService{
		sessions:      sessions,
		contacts:      contacts,
		streamManager: streamManager,
		logger:        log,
	}
}

// SaveDraft commits the user's draft: detach from the session, convert to
// the contact-store shape, persist, publish. The draft stays attached when
// it is not complete yet, and is reattached when persistence fails so the
// user can retry.
func (s *ContactService) SaveDraft(ctx context.Context, userID string) (*model.ContactRecord, error) {
	sess, ok := s.sessions.Get(userID)
	if !ok || sess.Draft == nil {
		return nil, ErrNoDraft
	}
	if !sess.Draft.IsComplete() {
		return nil, ErrIncomplete
	}

	draft := sess.MarkSaved()
	record := draft.ContactRecord()

	stored, err := s.contacts.Save(ctx, record)
	if err != nil {
		draft.Status = model.StatusReady
		sess.Draft = draft
		return nil, fmt.Errorf("failed to save contact: %w", err)
	}

	metrics.RecordContactSaved()
	s.logger.Info("contact saved",
		zap.String("user_id", userID),
		zap.String("contact_id", stored.ID),
		zap.String("name", stored.FullName),
	)

	if s.streamManager != nil {
		_, err := s.streamManager.PublishContactSaved(ctx, userID, stored)
		metrics.RecordEventPublish(err)
		if err != nil {
			// Best effort: the contact is saved, the event is not worth
			// failing the request over.
			s.logger.Warn("failed to publish contact saved event",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
	}

	return stored, nil
}
