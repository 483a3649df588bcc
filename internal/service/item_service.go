package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/vbonduro/tasklist/internal/domain"
	"github.com/vbonduro/tasklist/internal/flash"
	"github.com/vbonduro/tasklist/internal/store"
)

const (
	MsgCommitFailed = "An error occurred while processing your request. Please try again."
	MsgNoChanges    = "No changes detected in the content."
)

// itemRepository is the subset of store.ItemStore that ItemService requires.
type itemRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	List(ctx context.Context, search string) ([]*domain.Item, error)
	WithTx(ctx context.Context, fn func(store.ItemWriter) error) error
}

type ItemService struct {
	items  itemRepository
	logger *slog.Logger
}

func NewItemService(items itemRepository, logger *slog.Logger) *ItemService {
	return &ItemService{items: items, logger: logger}
}

// ListItems returns all items oldest first, filtered by search when non-empty.
func (s *ItemService) ListItems(ctx context.Context, search string) ([]*domain.Item, error) {
	return s.items.List(ctx, search)
}

// GetItem returns nil without error when no item has the given id.
func (s *ItemService) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	return s.items.GetByID(ctx, id)
}

// AddItem validates content and stores it, trimmed, as a new item.
func (s *ItemService) AddItem(ctx context.Context, content string) flash.Notice {
	content = strings.TrimSpace(content)
	if ok, msg := domain.ValidateContent(content); !ok {
		return flash.Danger(msg)
	}
	return s.commit(ctx, "Item added", func(w store.ItemWriter) error {
		_, err := w.Create(ctx, content)
		return err
	})
}

// UpdateItem replaces the content of item with trimmed content. applied is
// false when nothing was written: the content was unchanged or invalid.
func (s *ItemService) UpdateItem(ctx context.Context, item *domain.Item, content string) (notice flash.Notice, applied bool) {
	content = strings.TrimSpace(content)
	if content == item.Content {
		return flash.Info(MsgNoChanges), false
	}
	if ok, msg := domain.ValidateContent(content); !ok {
		return flash.Danger(msg), false
	}
	return s.commit(ctx, "Item updated", func(w store.ItemWriter) error {
		return w.Update(ctx, item.ID, content)
	}), true
}

func (s *ItemService) DeleteItem(ctx context.Context, item *domain.Item) flash.Notice {
	return s.commit(ctx, "Item deleted", func(w store.ItemWriter) error {
		return w.Delete(ctx, item.ID)
	})
}

// commit applies fn atomically and turns the outcome into a notice. The cause
// of a failure is logged and never shown to the user.
func (s *ItemService) commit(ctx context.Context, action string, fn func(store.ItemWriter) error) flash.Notice {
	if err := s.items.WithTx(ctx, fn); err != nil {
		s.logger.ErrorContext(ctx, "database commit failed", "action", action, "error", err)
		return flash.Danger(MsgCommitFailed)
	}
	return flash.Success(action + " successfully!")
}
