// Package catalog manages the menu: categories and the items sold under them.
package catalog

import (
	"context"

	domain "github.com/usmm07/foodcourt/internal/domain/catalog"
	"github.com/usmm07/foodcourt/internal/schema"
	"github.com/usmm07/foodcourt/internal/storage"
	"github.com/usmm07/foodcourt/pkg/logger"
)

// Service manages categories and menu items.
type Service struct {
	store storage.CatalogStore
	log   *logger.Logger
}

// New constructs a catalog service.
func New(store storage.CatalogStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("catalog")
	}
	return &Service{store: store, log: log}
}

// ListCategories returns every category in display order.
func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.store.ListCategories(ctx)
}

// GetCategory returns one category.
func (s *Service) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	return s.store.GetCategory(ctx, id)
}

// CreateCategory validates and stores a new category.
func (s *Service) CreateCategory(ctx context.Context, in schema.InsertCategory) (domain.Category, error) {
	if err := in.Validate(); err != nil {
		return domain.Category{}, err
	}
	created, err := s.store.CreateCategory(ctx, in)
	if err != nil {
		return domain.Category{}, err
	}
	s.log.Infof("category %d (%s) created", created.ID, created.Name)
	return created, nil
}

// UpdateCategory applies a partial update to a category.
func (s *Service) UpdateCategory(ctx context.Context, id int64, upd domain.CategoryUpdate) (domain.Category, error) {
	if upd.Name != nil && *upd.Name == "" {
		return domain.Category{}, schema.NewValidationError("name", "is required")
	}
	return s.store.UpdateCategory(ctx, id, upd)
}

// DeleteCategory removes a category; a miss is reported, not an error.
func (s *Service) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	return s.store.DeleteCategory(ctx, id)
}

// ListMenuItems returns menu items in display order, optionally scoped to
// one category. categoryID 0 means all.
func (s *Service) ListMenuItems(ctx context.Context, categoryID int64) ([]domain.MenuItem, error) {
	return s.store.ListMenuItems(ctx, categoryID)
}

// GetMenuItem returns one menu item.
func (s *Service) GetMenuItem(ctx context.Context, id int64) (domain.MenuItem, error) {
	return s.store.GetMenuItem(ctx, id)
}

// CreateMenuItem validates and stores a new menu item.
func (s *Service) CreateMenuItem(ctx context.Context, in schema.InsertMenuItem) (domain.MenuItem, error) {
	if err := in.Validate(); err != nil {
		return domain.MenuItem{}, err
	}
	created, err := s.store.CreateMenuItem(ctx, in)
	if err != nil {
		return domain.MenuItem{}, err
	}
	s.log.Infof("menu item %d (%s) created", created.ID, created.Name)
	return created, nil
}

// UpdateMenuItem applies a partial update to a menu item.
func (s *Service) UpdateMenuItem(ctx context.Context, id int64, upd domain.MenuItemUpdate) (domain.MenuItem, error) {
	if upd.Name != nil && *upd.Name == "" {
		return domain.MenuItem{}, schema.NewValidationError("name", "is required")
	}
	if upd.Price != nil && !schema.ValidMoney(*upd.Price) {
		return domain.MenuItem{}, schema.NewValidationError("price", "must be a decimal amount with at most 2 fraction digits")
	}
	return s.store.UpdateMenuItem(ctx, id, upd)
}

// DeleteMenuItem removes a menu item; a miss is reported, not an error.
func (s *Service) DeleteMenuItem(ctx context.Context, id int64) (bool, error) {
	return s.store.DeleteMenuItem(ctx, id)
}
