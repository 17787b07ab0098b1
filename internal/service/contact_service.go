package service

import (
	"context"
	"fmt"
	"storefront/internal/customerrors"
	"storefront/internal/models"
	"storefront/internal/ports"
	"storefront/internal/validators"
	"storefront/pkg/logger"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContactService validates contact form messages and hands them to a publisher
type ContactService struct {
	publisher ports.ContactPublisher

	now   func() time.Time
	newID func() string
}

// NewContactService creates a new ContactService
func NewContactService(publisher ports.ContactPublisher) *ContactService {
	return &ContactService{
		publisher: publisher,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Submit validates msg, assigns an ID and a timestamp and publishes it keyed by ID
//
// invalid messages return an error wrapping customerrors.ErrInvalidContact, nothing is published then
func (s *ContactService) Submit(ctx context.Context, msg models.ContactMessage) (models.ContactMessage, error) {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Message = strings.TrimSpace(msg.Message)

	// step 1. validate
	if err := validators.ValidateContactMessage(msg); err != nil {
		logger.GetOrCreateLoggerFromCtx(ctx).Warn(ctx, "invalid contact message", zap.Error(err))
		return models.ContactMessage{}, fmt.Errorf("%w: %w", customerrors.ErrInvalidContact, err)
	}

	// step 2. publish
	msg.ID = s.newID()
	msg.ReceivedAt = s.now().UTC()
	if err := s.publisher.Publish(ctx, msg.ID, msg); err != nil {
		logger.GetOrCreateLoggerFromCtx(ctx).Error(ctx, "error publishing contact message",
			zap.String("id", msg.ID), zap.Error(err))
		return models.ContactMessage{}, fmt.Errorf("error publishing contact message: %w", err)
	}

	logger.GetOrCreateLoggerFromCtx(ctx).Info(ctx, "published contact message", zap.String("id", msg.ID))
	return msg, nil
}
