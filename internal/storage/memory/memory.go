// Package memory is an in-memory implementation of the storage interfaces.
// It is safe for concurrent use and is primarily intended for tests and
// local development.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/usmm07/foodcourt/internal/domain/cart"
	"github.com/usmm07/foodcourt/internal/domain/catalog"
	"github.com/usmm07/foodcourt/internal/domain/order"
	"github.com/usmm07/foodcourt/internal/domain/user"
	"github.com/usmm07/foodcourt/internal/schema"
	"github.com/usmm07/foodcourt/internal/storage"
)

// Store holds every entity in maps guarded by one mutex. Checkout runs
// entirely under the write lock, which gives it the same all-or-nothing
// behavior as the SQL transaction in the postgres store.
type Store struct {
	mu              sync.RWMutex
	nextID          int64
	users           map[int64]user.User
	usersByTelegram map[string]int64
	categories      map[int64]catalog.Category
	menuItems       map[int64]catalog.MenuItem
	cartRows        map[int64]cart.Item
	orders          map[int64]order.Order
	orderItems      map[int64]order.Item
}

var _ storage.UserStore = (*Store)(nil)
var _ storage.CatalogStore = (*Store)(nil)
var _ storage.CartStore = (*Store)(nil)
var _ storage.OrderStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		nextID:          1,
		users:           make(map[int64]user.User),
		usersByTelegram: make(map[string]int64),
		categories:      make(map[int64]catalog.Category),
		menuItems:       make(map[int64]catalog.MenuItem),
		cartRows:        make(map[int64]cart.Item),
		orders:          make(map[int64]order.Order),
		orderItems:      make(map[int64]order.Item),
	}
}

func (s *Store) nextIDLocked() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func cloneMenuItem(m catalog.MenuItem) catalog.MenuItem {
	m.Ingredients = append([]string(nil), m.Ingredients...)
	m.Allergens = append([]string(nil), m.Allergens...)
	m.Tags = append([]string(nil), m.Tags...)
	return m
}

// UserStore implementation ----------------------------------------------------

func (s *Store) GetUser(_ context.Context, id int64) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return user.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (s *Store) GetUserByTelegramID(_ context.Context, telegramID string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByTelegram[telegramID]
	if !ok {
		return user.User{}, storage.ErrNotFound
	}
	return s.users[id], nil
}

func (s *Store) CreateUser(_ context.Context, in schema.InsertUser) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByTelegram[in.TelegramID]; exists {
		return user.User{}, storage.ErrConflict
	}

	u := user.User{
		ID:         s.nextIDLocked(),
		TelegramID: in.TelegramID,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Username:   in.Username,
		Phone:      in.Phone,
		CreatedAt:  time.Now().UTC(),
	}
	s.users[u.ID] = u
	s.usersByTelegram[u.TelegramID] = u.ID
	return u, nil
}

// CatalogStore implementation -------------------------------------------------

func (s *Store) ListCategories(_ context.Context) ([]catalog.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalog.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) GetCategory(_ context.Context, id int64) (catalog.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return catalog.Category{}, storage.ErrNotFound
	}
	return c, nil
}

func (s *Store) CreateCategory(_ context.Context, in schema.InsertCategory) (catalog.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := catalog.Category{
		ID:          s.nextIDLocked(),
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
		IsActive:    in.ActiveOrDefault(),
		SortOrder:   in.SortOrder,
	}
	s.categories[c.ID] = c
	return c, nil
}

func (s *Store) UpdateCategory(_ context.Context, id int64, upd catalog.CategoryUpdate) (catalog.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return catalog.Category{}, storage.ErrNotFound
	}
	upd.Apply(&c)
	s.categories[id] = c
	return c, nil
}

func (s *Store) DeleteCategory(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return false, nil
	}
	delete(s.categories, id)
	return true, nil
}

func (s *Store) ListMenuItems(_ context.Context, categoryID int64) ([]catalog.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalog.MenuItem, 0, len(s.menuItems))
	for _, m := range s.menuItems {
		if categoryID != 0 && m.CategoryID != categoryID {
			continue
		}
		out = append(out, cloneMenuItem(m))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) GetMenuItem(_ context.Context, id int64) (catalog.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.menuItems[id]
	if !ok {
		return catalog.MenuItem{}, storage.ErrNotFound
	}
	return cloneMenuItem(m), nil
}

func (s *Store) CreateMenuItem(_ context.Context, in schema.InsertMenuItem) (catalog.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[in.CategoryID]; !ok {
		return catalog.MenuItem{}, storage.ErrConflict
	}

	m := catalog.MenuItem{
		ID:              s.nextIDLocked(),
		CategoryID:      in.CategoryID,
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price,
		Image:           in.Image,
		IsAvailable:     in.AvailableOrDefault(),
		PreparationTime: in.PreparationTimeOrDefault(),
		Ingredients:     append([]string(nil), in.Ingredients...),
		Allergens:       append([]string(nil), in.Allergens...),
		Tags:            append([]string(nil), in.Tags...),
		SortOrder:       in.SortOrder,
	}
	s.menuItems[m.ID] = m
	return cloneMenuItem(m), nil
}

func (s *Store) UpdateMenuItem(_ context.Context, id int64, upd catalog.MenuItemUpdate) (catalog.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.menuItems[id]
	if !ok {
		return catalog.MenuItem{}, storage.ErrNotFound
	}
	if upd.CategoryID != nil {
		if _, ok := s.categories[*upd.CategoryID]; !ok {
			return catalog.MenuItem{}, storage.ErrConflict
		}
	}
	m = cloneMenuItem(m)
	upd.Apply(&m)
	s.menuItems[id] = m
	return cloneMenuItem(m), nil
}

func (s *Store) DeleteMenuItem(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.menuItems[id]; !ok {
		return false, nil
	}
	delete(s.menuItems, id)
	return true, nil
}

// CartStore implementation ----------------------------------------------------

// cartLinesLocked joins the user's cart rows with their menu items, oldest
// row first. Rows whose menu item has been removed are skipped.
func (s *Store) cartLinesLocked(userID int64) []cart.Line {
	var out []cart.Line
	for _, row := range s.cartRows {
		if row.UserID != userID {
			continue
		}
		m, ok := s.menuItems[row.ItemID]
		if !ok {
			continue
		}
		out = append(out, cart.Line{Item: row, MenuItem: cloneMenuItem(m)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) GetCart(_ context.Context, userID int64) ([]cart.Line, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := s.cartLinesLocked(userID)
	if lines == nil {
		lines = []cart.Line{}
	}
	return lines, nil
}

func (s *Store) AddToCart(_ context.Context, in schema.InsertCart) (cart.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.menuItems[in.ItemID]; !ok {
		return cart.Item{}, storage.ErrConflict
	}

	for id, row := range s.cartRows {
		if row.UserID == in.UserID && row.ItemID == in.ItemID {
			row.Quantity += in.Quantity
			s.cartRows[id] = row
			return row, nil
		}
	}

	row := cart.Item{
		ID:        s.nextIDLocked(),
		UserID:    in.UserID,
		ItemID:    in.ItemID,
		Quantity:  in.Quantity,
		Notes:     in.Notes,
		CreatedAt: time.Now().UTC(),
	}
	s.cartRows[row.ID] = row
	return row, nil
}

func (s *Store) UpdateCartItem(_ context.Context, id int64, quantity int) (cart.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.cartRows[id]
	if !ok {
		return cart.Item{}, storage.ErrNotFound
	}
	row.Quantity = quantity
	s.cartRows[id] = row
	return row, nil
}

func (s *Store) RemoveFromCart(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cartRows[id]; !ok {
		return false, nil
	}
	delete(s.cartRows, id)
	return true, nil
}

func (s *Store) ClearCart(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearCartLocked(userID)
	return nil
}

func (s *Store) clearCartLocked(userID int64) {
	for id, row := range s.cartRows {
		if row.UserID == userID {
			delete(s.cartRows, id)
		}
	}
}

// OrderStore implementation ---------------------------------------------------

func (s *Store) ListOrders(_ context.Context, userID int64) ([]order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]order.Order, 0)
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) GetOrder(_ context.Context, id int64) (order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return order.Order{}, storage.ErrNotFound
	}
	return o, nil
}

func (s *Store) CreateOrder(_ context.Context, in schema.InsertOrder) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.createOrderLocked(in), nil
}

func (s *Store) createOrderLocked(in schema.InsertOrder) order.Order {
	now := time.Now().UTC()
	o := order.Order{
		ID:                    s.nextIDLocked(),
		UserID:                in.UserID,
		Status:                order.StatusPending,
		TotalAmount:           in.TotalAmount,
		DeliveryAddress:       in.DeliveryAddress,
		DeliveryType:          in.DeliveryType,
		PaymentMethod:         in.PaymentMethod,
		Notes:                 in.Notes,
		EstimatedDeliveryTime: in.EstimatedDeliveryTime,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	s.orders[o.ID] = o
	return o
}

func (s *Store) UpdateOrderStatus(_ context.Context, id int64, status order.Status) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return order.Order{}, storage.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	s.orders[id] = o
	return o, nil
}

func (s *Store) ListOrderItems(_ context.Context, orderID int64) ([]order.Line, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]order.Line, 0)
	for _, it := range s.orderItems {
		if it.OrderID != orderID {
			continue
		}
		line := order.Line{Item: it}
		if m, ok := s.menuItems[it.ItemID]; ok {
			line.MenuItem = cloneMenuItem(m)
		}
		out = append(out, line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateOrderItem(_ context.Context, in schema.InsertOrderItem) (order.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[in.OrderID]; !ok {
		return order.Item{}, storage.ErrConflict
	}
	return s.createOrderItemLocked(in), nil
}

func (s *Store) createOrderItemLocked(in schema.InsertOrderItem) order.Item {
	it := order.Item{
		ID:       s.nextIDLocked(),
		OrderID:  in.OrderID,
		ItemID:   in.ItemID,
		Quantity: in.Quantity,
		Price:    in.Price,
		Notes:    in.Notes,
	}
	s.orderItems[it.ID] = it
	return it
}

// Checkout runs entirely under the write lock: cart read, total, order
// insert, line freeze, and cart clear are observed by other goroutines as
// one step.
func (s *Store) Checkout(_ context.Context, userID int64, in order.CheckoutInput) (order.Order, []order.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.cartLinesLocked(userID)
	if len(lines) == 0 {
		return order.Order{}, nil, storage.ErrEmptyCart
	}

	total := decimal.Zero
	for _, l := range lines {
		price, err := decimal.NewFromString(l.MenuItem.Price)
		if err != nil {
			return order.Order{}, nil, storage.WrapError("checkout", "menu_item", err)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	o := s.createOrderLocked(schema.InsertOrder{
		UserID:                userID,
		TotalAmount:           total.StringFixed(2),
		DeliveryType:          in.DeliveryType,
		PaymentMethod:         in.PaymentMethod,
		DeliveryAddress:       in.DeliveryAddress,
		Notes:                 in.Notes,
		EstimatedDeliveryTime: in.EstimatedDeliveryTime,
	})

	items := make([]order.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, s.createOrderItemLocked(schema.InsertOrderItem{
			OrderID:  o.ID,
			ItemID:   l.ItemID,
			Quantity: l.Quantity,
			Price:    l.MenuItem.Price,
			Notes:    l.Notes,
		}))
	}

	s.clearCartLocked(userID)
	return o, items, nil
}
