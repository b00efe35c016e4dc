package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"purem-oda-shop/services/shop-api/internal/repo"
	"purem-oda-shop/shared/pkg/models"
	"purem-oda-shop/shared/pkg/rabbit"
)

var ErrNotFound = errors.New("item not found")

// EventPublisher is satisfied by *rabbit.Publisher.
type EventPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, v any, headers amqp.Table) error
}

type ItemsService struct {
	Store     repo.ItemStore
	Publisher EventPublisher // optional
	Log       zerolog.Logger
	Now       func() time.Time // optional, defaults to time.Now

	// mu serializes read-modify-write cycles within this process. Events
	// are published after it is released.
	mu sync.Mutex
}

// UpdateItemInput carries the optional fields of an update; nil leaves the
// stored value alone.
type UpdateItemInput struct {
	Title       *string
	Description *string
}

// List fails open: a store that cannot be read looks empty.
func (s *ItemsService) List(ctx context.Context) []models.Item {
	items, err := s.Store.Load(ctx)
	if err != nil {
		s.Log.Warn().Err(err).Msg("load items failed, serving empty list")
		return []models.Item{}
	}
	return items
}

// Create mints an id from the clock in milliseconds. Two creations in the
// same millisecond share an id.
func (s *ItemsService) Create(ctx context.Context, title, description string) (models.Item, error) {
	if title == "" {
		title = models.DefaultItemTitle
	}
	it := models.Item{
		ID:          s.now().UnixMilli(),
		Title:       title,
		Description: description,
	}

	if err := s.appendItem(ctx, it); err != nil {
		return models.Item{}, err
	}

	s.publish(ctx, models.EventItemCreated, it)
	return it, nil
}

func (s *ItemsService) appendItem(ctx context.Context, it models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.Store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}
	items = append(items, it)
	if err := s.Store.Save(ctx, items); err != nil {
		return fmt.Errorf("save items: %w", err)
	}
	return nil
}

// Update changes the first item whose id matches.
func (s *ItemsService) Update(ctx context.Context, id int64, in UpdateItemInput) (models.Item, error) {
	it, err := s.update(ctx, id, in)
	if err != nil {
		return models.Item{}, err
	}

	s.publish(ctx, models.EventItemUpdated, it)
	return it, nil
}

func (s *ItemsService) update(ctx context.Context, id int64, in UpdateItemInput) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.Store.Load(ctx)
	if err != nil {
		return models.Item{}, fmt.Errorf("load items: %w", err)
	}

	idx := -1
	for i := range items {
		if items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Item{}, ErrNotFound
	}

	if in.Title != nil {
		items[idx].Title = *in.Title
	}
	if in.Description != nil {
		items[idx].Description = *in.Description
	}
	if err := s.Store.Save(ctx, items); err != nil {
		return models.Item{}, fmt.Errorf("save items: %w", err)
	}
	return items[idx], nil
}

func (s *ItemsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *ItemsService) publish(ctx context.Context, eventType string, it models.Item) {
	if s.Publisher == nil {
		return
	}
	evt := models.NewItemEvent(eventType, it)

	pubCtx, cancel := rabbit.WithTimeout(ctx)
	defer cancel()

	if err := s.Publisher.PublishJSON(pubCtx, eventType, evt, amqp.Table{
		"x-event-id": evt.ID,
	}); err != nil {
		s.Log.Error().Err(err).Int64("item_id", it.ID).Str("type", eventType).Msg("publish item event failed")
	}
}
