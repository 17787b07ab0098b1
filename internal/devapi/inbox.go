package devapi

import (
	"context"
	"encoding/json"
	"io"
	"storefront/internal/models"
	"storefront/internal/validators"
	"storefront/pkg/linkedlist"
	"storefront/pkg/logger"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// DefaultInboxCapacity is how many contact messages the inbox keeps
const DefaultInboxCapacity = 100

// readRetryDelay is the pause after a failed read before the next one
const readRetryDelay = time.Second

// MessageReader is the part of *kafka.Reader the inbox needs
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Inbox consumes contact messages published by the storefront and keeps the latest ones
type Inbox struct {
	reader     MessageReader
	capacity   int
	retryDelay time.Duration

	mu       sync.Mutex
	messages *linkedlist.LinkedList[models.ContactMessage]
}

// NewInbox creates an inbox reading from reader, keeping at most capacity messages
func NewInbox(reader MessageReader, capacity int) *Inbox {
	if capacity < 1 {
		capacity = DefaultInboxCapacity
	}
	return &Inbox{
		reader:     reader,
		capacity:   capacity,
		retryDelay: readRetryDelay,
		messages:   linkedlist.NewLinkedList[models.ContactMessage](),
	}
}

// Run is the main loop, meant to be run in background until ctx is done or the reader is closed
func (i *Inbox) Run(ctx context.Context) {
	for {
		// step 1: try to consume
		msg, err := i.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return
			}
			logger.GetOrCreateLoggerFromCtx(ctx).Error(ctx, "error while receiving contact messages", zap.Error(err))

			// pause before the next read, ctx ends the pause
			select {
			case <-ctx.Done():
				return
			case <-time.After(i.retryDelay):
			}
			continue
		}

		// step 2: decode and validate, bad messages are skipped
		var contact models.ContactMessage
		if err = json.Unmarshal(msg.Value, &contact); err != nil {
			logger.GetOrCreateLoggerFromCtx(ctx).Warn(ctx, "undecodable contact message",
				zap.String("key", string(msg.Key)), zap.Error(err))
			continue
		}
		if err = validators.ValidateContactMessage(contact); err != nil {
			logger.GetOrCreateLoggerFromCtx(ctx).Warn(ctx, "invalid contact message",
				zap.String("key", string(msg.Key)), zap.Error(err))
			continue
		}

		// step 3: keep it
		i.add(contact)
		logger.GetOrCreateLoggerFromCtx(ctx).Info(ctx, "received contact message",
			zap.String("id", contact.ID), zap.String("email", contact.Email))
	}
}

func (i *Inbox) add(msg models.ContactMessage) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.messages.PushFront(msg)
	for i.messages.Len() > i.capacity {
		_, _ = i.messages.RemoveLast()
	}
}

// Messages returns the kept messages, newest first
func (i *Inbox) Messages() []models.ContactMessage {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.messages.Values()
}

// Close closes the reader, Run returns afterwards
func (i *Inbox) Close() error {
	return i.reader.Close()
}
