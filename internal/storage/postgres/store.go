// Package postgres implements the storage interfaces on PostgreSQL via
// sqlx and lib/pq. Monetary columns are NUMERIC(10,2) and are carried in
// and out as strings.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/usmm07/foodcourt/internal/domain/cart"
	"github.com/usmm07/foodcourt/internal/domain/catalog"
	"github.com/usmm07/foodcourt/internal/domain/order"
	"github.com/usmm07/foodcourt/internal/domain/user"
	"github.com/usmm07/foodcourt/internal/schema"
	"github.com/usmm07/foodcourt/internal/storage"
)

// Store implements the storage interfaces backed by PostgreSQL.
type Store struct {
	db *sqlx.DB
}

var _ storage.UserStore = (*Store)(nil)
var _ storage.CatalogStore = (*Store)(nil)
var _ storage.CartStore = (*Store)(nil)
var _ storage.OrderStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// mapError translates driver errors into the storage taxonomy.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505", "23503":
			return storage.ErrConflict
		}
	}
	return err
}

func wrap(op, entity string, err error) error {
	return storage.WrapError(op, entity, mapError(err))
}

// --- UserStore ---------------------------------------------------------------

type userRow struct {
	ID         int64     `db:"id"`
	TelegramID string    `db:"telegram_id"`
	FirstName  string    `db:"first_name"`
	LastName   string    `db:"last_name"`
	Username   string    `db:"username"`
	Phone      string    `db:"phone"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r userRow) toDomain() user.User {
	return user.User{
		ID:         r.ID,
		TelegramID: r.TelegramID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Username:   r.Username,
		Phone:      r.Phone,
		CreatedAt:  r.CreatedAt,
	}
}

const userColumns = `id, telegram_id, first_name, last_name, username, phone, created_at`

func (s *Store) GetUser(ctx context.Context, id int64) (user.User, error) {
	var r userRow
	err := s.db.GetContext(ctx, &r, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id)
	if err != nil {
		return user.User{}, wrap("get", "user", err)
	}
	return r.toDomain(), nil
}

func (s *Store) GetUserByTelegramID(ctx context.Context, telegramID string) (user.User, error) {
	var r userRow
	err := s.db.GetContext(ctx, &r, `
		SELECT `+userColumns+` FROM users WHERE telegram_id = $1
	`, telegramID)
	if err != nil {
		return user.User{}, wrap("get", "user", err)
	}
	return r.toDomain(), nil
}

func (s *Store) CreateUser(ctx context.Context, in schema.InsertUser) (user.User, error) {
	var r userRow
	err := s.db.GetContext(ctx, &r, `
		INSERT INTO users (telegram_id, first_name, last_name, username, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns+`
	`, in.TelegramID, in.FirstName, in.LastName, in.Username, in.Phone)
	if err != nil {
		return user.User{}, wrap("create", "user", err)
	}
	return r.toDomain(), nil
}

// --- CatalogStore ------------------------------------------------------------

type categoryRow struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Image       string `db:"image"`
	IsActive    bool   `db:"is_active"`
	SortOrder   int    `db:"sort_order"`
}

func (r categoryRow) toDomain() catalog.Category {
	return catalog.Category{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Image:       r.Image,
		IsActive:    r.IsActive,
		SortOrder:   r.SortOrder,
	}
}

const categoryColumns = `id, name, description, image, is_active, sort_order`

func (s *Store) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var rows []categoryRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT `+categoryColumns+` FROM categories ORDER BY sort_order, id
	`)
	if err != nil {
		return nil, wrap("list", "category", err)
	}
	out := make([]catalog.Category, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *Store) GetCategory(ctx context.Context, id int64) (catalog.Category, error) {
	var r categoryRow
	err := s.db.GetContext(ctx, &r, `
		SELECT `+categoryColumns+` FROM categories WHERE id = $1
	`, id)
	if err != nil {
		return catalog.Category{}, wrap("get", "category", err)
	}
	return r.toDomain(), nil
}

func (s *Store) CreateCategory(ctx context.Context, in schema.InsertCategory) (catalog.Category, error) {
	var r categoryRow
	err := s.db.GetContext(ctx, &r, `
		INSERT INTO categories (name, description, image, is_active, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+categoryColumns+`
	`, in.Name, in.Description, in.Image, in.ActiveOrDefault(), in.SortOrder)
	if err != nil {
		return catalog.Category{}, wrap("create", "category", err)
	}
	return r.toDomain(), nil
}

// UpdateCategory applies the partial update in one statement, so two
// concurrent updates cannot overwrite each other's columns.
func (s *Store) UpdateCategory(ctx context.Context, id int64, upd catalog.CategoryUpdate) (catalog.Category, error) {
	var r categoryRow
	err := s.db.GetContext(ctx, &r, `
		UPDATE categories
		SET name        = COALESCE($2, name),
		    description = COALESCE($3, description),
		    image       = COALESCE($4, image),
		    is_active   = COALESCE($5, is_active),
		    sort_order  = COALESCE($6, sort_order)
		WHERE id = $1
		RETURNING `+categoryColumns+`
	`, id, upd.Name, upd.Description, upd.Image, upd.IsActive, upd.SortOrder)
	if err != nil {
		return catalog.Category{}, wrap("update", "category", err)
	}
	return r.toDomain(), nil
}

// DeleteCategory removes the category only; its menu items stay behind
// with a dangling category id.
func (s *Store) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM categories WHERE id = $1
	`, id)
	if err != nil {
		return false, wrap("delete", "category", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

type menuItemRow struct {
	ID              int64          `db:"id"`
	CategoryID      int64          `db:"category_id"`
	Name            string         `db:"name"`
	Description     string         `db:"description"`
	Price           string         `db:"price"`
	Image           string         `db:"image"`
	IsAvailable     bool           `db:"is_available"`
	PreparationTime int            `db:"preparation_time"`
	Ingredients     pq.StringArray `db:"ingredients"`
	Allergens       pq.StringArray `db:"allergens"`
	Tags            pq.StringArray `db:"tags"`
	SortOrder       int            `db:"sort_order"`
}

func (r menuItemRow) toDomain() catalog.MenuItem {
	return catalog.MenuItem{
		ID:              r.ID,
		CategoryID:      r.CategoryID,
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		Image:           r.Image,
		IsAvailable:     r.IsAvailable,
		PreparationTime: r.PreparationTime,
		Ingredients:     []string(r.Ingredients),
		Allergens:       []string(r.Allergens),
		Tags:            []string(r.Tags),
		SortOrder:       r.SortOrder,
	}
}

const menuItemColumns = `id, category_id, name, description, price, image, is_available, preparation_time, ingredients, allergens, tags, sort_order`

func (s *Store) ListMenuItems(ctx context.Context, categoryID int64) ([]catalog.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items ORDER BY sort_order, id`
	args := []any{}
	if categoryID != 0 {
		query = `SELECT ` + menuItemColumns + ` FROM menu_items WHERE category_id = $1 ORDER BY sort_order, id`
		args = append(args, categoryID)
	}

	var rows []menuItemRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrap("list", "menu_item", err)
	}
	out := make([]catalog.MenuItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *Store) GetMenuItem(ctx context.Context, id int64) (catalog.MenuItem, error) {
	var r menuItemRow
	err := s.db.GetContext(ctx, &r, `
		SELECT `+menuItemColumns+` FROM menu_items WHERE id = $1
	`, id)
	if err != nil {
		return catalog.MenuItem{}, wrap("get", "menu_item", err)
	}
	return r.toDomain(), nil
}

// CreateMenuItem inserts only when the category exists; there is no
// foreign key on category_id, so the guard lives in the statement.
func (s *Store) CreateMenuItem(ctx context.Context, in schema.InsertMenuItem) (catalog.MenuItem, error) {
	var r menuItemRow
	err := s.db.GetContext(ctx, &r, `
		INSERT INTO menu_items (category_id, name, description, price, image, is_available, preparation_time, ingredients, allergens, tags, sort_order)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		WHERE EXISTS (SELECT 1 FROM categories WHERE id = $1)
		RETURNING `+menuItemColumns+`
	`, in.CategoryID, in.Name, in.Description, in.Price, in.Image,
		in.AvailableOrDefault(), in.PreparationTimeOrDefault(),
		pq.StringArray(in.Ingredients), pq.StringArray(in.Allergens), pq.StringArray(in.Tags),
		in.SortOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.MenuItem{}, storage.WrapError("create", "menu_item", storage.ErrConflict)
	}
	if err != nil {
		return catalog.MenuItem{}, wrap("create", "menu_item", err)
	}
	return r.toDomain(), nil
}

// arrayArg passes a text[] parameter, or NULL when the field is unset.
func arrayArg(p *[]string) any {
	if p == nil {
		return nil
	}
	return pq.StringArray(*p)
}

// UpdateMenuItem applies the partial update in one statement, so two
// concurrent updates cannot overwrite each other's columns. A move to an
// unknown category yields ErrConflict.
func (s *Store) UpdateMenuItem(ctx context.Context, id int64, upd catalog.MenuItemUpdate) (catalog.MenuItem, error) {
	if upd.CategoryID != nil {
		var exists bool
		if err := s.db.GetContext(ctx, &exists, `
			SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)
		`, *upd.CategoryID); err != nil {
			return catalog.MenuItem{}, wrap("update", "menu_item", err)
		}
		if !exists {
			return catalog.MenuItem{}, storage.WrapError("update", "menu_item", storage.ErrConflict)
		}
	}

	var r menuItemRow
	err := s.db.GetContext(ctx, &r, `
		UPDATE menu_items
		SET category_id      = COALESCE($2, category_id),
		    name             = COALESCE($3, name),
		    description      = COALESCE($4, description),
		    price            = COALESCE($5, price),
		    image            = COALESCE($6, image),
		    is_available     = COALESCE($7, is_available),
		    preparation_time = COALESCE($8, preparation_time),
		    ingredients      = COALESCE($9, ingredients),
		    allergens        = COALESCE($10, allergens),
		    tags             = COALESCE($11, tags),
		    sort_order       = COALESCE($12, sort_order)
		WHERE id = $1
		RETURNING `+menuItemColumns+`
	`, id, upd.CategoryID, upd.Name, upd.Description, upd.Price, upd.Image,
		upd.IsAvailable, upd.PreparationTime,
		arrayArg(upd.Ingredients), arrayArg(upd.Allergens), arrayArg(upd.Tags),
		upd.SortOrder)
	if err != nil {
		return catalog.MenuItem{}, wrap("update", "menu_item", err)
	}
	return r.toDomain(), nil
}

func (s *Store) DeleteMenuItem(ctx context.Context, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM menu_items WHERE id = $1
	`, id)
	if err != nil {
		return false, wrap("delete", "menu_item", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// --- CartStore ---------------------------------------------------------------

type cartRow struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	ItemID    int64     `db:"item_id"`
	Quantity  int       `db:"quantity"`
	Notes     string    `db:"notes"`
	CreatedAt time.Time `db:"created_at"`
}

func (r cartRow) toDomain() cart.Item {
	return cart.Item{
		ID:        r.ID,
		UserID:    r.UserID,
		ItemID:    r.ItemID,
		Quantity:  r.Quantity,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
	}
}

const cartColumns = `id, user_id, item_id, quantity, notes, created_at`

type cartLineRow struct {
	cartRow
	Item menuItemRow `db:"item"`
}

const cartLineQuery = `
	SELECT c.id, c.user_id, c.item_id, c.quantity, c.notes, c.created_at,
	       m.id AS "item.id", m.category_id AS "item.category_id", m.name AS "item.name",
	       m.description AS "item.description", m.price AS "item.price", m.image AS "item.image",
	       m.is_available AS "item.is_available", m.preparation_time AS "item.preparation_time",
	       m.ingredients AS "item.ingredients", m.allergens AS "item.allergens",
	       m.tags AS "item.tags", m.sort_order AS "item.sort_order"
	FROM carts c
	JOIN menu_items m ON m.id = c.item_id
	WHERE c.user_id = $1
	ORDER BY c.id`

func (s *Store) GetCart(ctx context.Context, userID int64) ([]cart.Line, error) {
	var rows []cartLineRow
	if err := s.db.SelectContext(ctx, &rows, cartLineQuery, userID); err != nil {
		return nil, wrap("list", "cart", err)
	}
	out := make([]cart.Line, 0, len(rows))
	for _, r := range rows {
		out = append(out, cart.Line{Item: r.cartRow.toDomain(), MenuItem: r.Item.toDomain()})
	}
	return out, nil
}

// AddToCart merges concurrent adds of the same (user, item) pair in the
// database: the upsert increments the existing row atomically, so no
// read-modify-write race can lose a quantity.
func (s *Store) AddToCart(ctx context.Context, in schema.InsertCart) (cart.Item, error) {
	var r cartRow
	err := s.db.GetContext(ctx, &r, `
		INSERT INTO carts (user_id, item_id, quantity, notes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, item_id)
		DO UPDATE SET quantity = carts.quantity + EXCLUDED.quantity
		RETURNING `+cartColumns+`
	`, in.UserID, in.ItemID, in.Quantity, in.Notes)
	if err != nil {
		return cart.Item{}, wrap("add", "cart", err)
	}
	return r.toDomain(), nil
}

func (s *Store) UpdateCartItem(ctx context.Context, id int64, quantity int) (cart.Item, error) {
	var r cartRow
	err := s.db.GetContext(ctx, &r, `
		UPDATE carts SET quantity = $2 WHERE id = $1
		RETURNING `+cartColumns+`
	`, id, quantity)
	if err != nil {
		return cart.Item{}, wrap("update", "cart", err)
	}
	return r.toDomain(), nil
}

func (s *Store) RemoveFromCart(ctx context.Context, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM carts WHERE id = $1
	`, id)
	if err != nil {
		return false, wrap("delete", "cart", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (s *Store) ClearCart(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM carts WHERE user_id = $1
	`, userID)
	if err != nil {
		return wrap("clear", "cart", err)
	}
	return nil
}

// --- OrderStore --------------------------------------------------------------

type orderRow struct {
	ID                    int64      `db:"id"`
	UserID                int64      `db:"user_id"`
	Status                string     `db:"status"`
	TotalAmount           string     `db:"total_amount"`
	DeliveryAddress       string     `db:"delivery_address"`
	DeliveryType          string     `db:"delivery_type"`
	PaymentMethod         string     `db:"payment_method"`
	Notes                 string     `db:"notes"`
	EstimatedDeliveryTime *time.Time `db:"estimated_delivery_time"`
	CreatedAt             time.Time  `db:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at"`
}

func (r orderRow) toDomain() order.Order {
	return order.Order{
		ID:                    r.ID,
		UserID:                r.UserID,
		Status:                order.Status(r.Status),
		TotalAmount:           r.TotalAmount,
		DeliveryAddress:       r.DeliveryAddress,
		DeliveryType:          r.DeliveryType,
		PaymentMethod:         r.PaymentMethod,
		Notes:                 r.Notes,
		EstimatedDeliveryTime: r.EstimatedDeliveryTime,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
}

const orderColumns = `id, user_id, status, total_amount, delivery_address, delivery_type, payment_method, notes, estimated_delivery_time, created_at, updated_at`

func (s *Store) ListOrders(ctx context.Context, userID int64) ([]order.Order, error) {
	var rows []orderRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT `+orderColumns+` FROM orders
		WHERE user_id = $1
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, wrap("list", "order", err)
	}
	out := make([]order.Order, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *Store) GetOrder(ctx context.Context, id int64) (order.Order, error) {
	var r orderRow
	err := s.db.GetContext(ctx, &r, `
		SELECT `+orderColumns+` FROM orders WHERE id = $1
	`, id)
	if err != nil {
		return order.Order{}, wrap("get", "order", err)
	}
	return r.toDomain(), nil
}

func (s *Store) CreateOrder(ctx context.Context, in schema.InsertOrder) (order.Order, error) {
	var r orderRow
	err := s.db.GetContext(ctx, &r, `
		INSERT INTO orders (user_id, status, total_amount, delivery_address, delivery_type, payment_method, notes, estimated_delivery_time)
		VALUES ($1, 'pending', $2, $3, $4, $5, $6, $7)
		RETURNING `+orderColumns+`
	`, in.UserID, in.TotalAmount, in.DeliveryAddress, in.DeliveryType, in.PaymentMethod, in.Notes, in.EstimatedDeliveryTime)
	if err != nil {
		return order.Order{}, wrap("create", "order", err)
	}
	return r.toDomain(), nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id int64, status order.Status) (order.Order, error) {
	var r orderRow
	err := s.db.GetContext(ctx, &r, `
		UPDATE orders SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+orderColumns+`
	`, id, string(status))
	if err != nil {
		return order.Order{}, wrap("update", "order", err)
	}
	return r.toDomain(), nil
}

type orderItemRow struct {
	ID       int64  `db:"id"`
	OrderID  int64  `db:"order_id"`
	ItemID   int64  `db:"item_id"`
	Quantity int    `db:"quantity"`
	Price    string `db:"price"`
	Notes    string `db:"notes"`
}

func (r orderItemRow) toDomain() order.Item {
	return order.Item{
		ID:       r.ID,
		OrderID:  r.OrderID,
		ItemID:   r.ItemID,
		Quantity: r.Quantity,
		Price:    r.Price,
		Notes:    r.Notes,
	}
}

const orderItemColumns = `id, order_id, item_id, quantity, price, notes`

func (s *Store) ListOrderItems(ctx context.Context, orderID int64) ([]order.Line, error) {
	var rows []struct {
		orderItemRow
		Item menuItemRow `db:"item"`
	}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT oi.id, oi.order_id, oi.item_id, oi.quantity, oi.price, oi.notes,
		       COALESCE(m.id, 0) AS "item.id", COALESCE(m.category_id, 0) AS "item.category_id",
		       COALESCE(m.name, '') AS "item.name", COALESCE(m.description, '') AS "item.description",
		       COALESCE(m.price, 0) AS "item.price", COALESCE(m.image, '') AS "item.image",
		       COALESCE(m.is_available, FALSE) AS "item.is_available",
		       COALESCE(m.preparation_time, 0) AS "item.preparation_time",
		       COALESCE(m.ingredients, '{}') AS "item.ingredients",
		       COALESCE(m.allergens, '{}') AS "item.allergens",
		       COALESCE(m.tags, '{}') AS "item.tags",
		       COALESCE(m.sort_order, 0) AS "item.sort_order"
		FROM order_items oi
		LEFT JOIN menu_items m ON m.id = oi.item_id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`, orderID)
	if err != nil {
		return nil, wrap("list", "order_item", err)
	}
	out := make([]order.Line, 0, len(rows))
	for _, r := range rows {
		out = append(out, order.Line{Item: r.orderItemRow.toDomain(), MenuItem: r.Item.toDomain()})
	}
	return out, nil
}

func (s *Store) CreateOrderItem(ctx context.Context, in schema.InsertOrderItem) (order.Item, error) {
	var r orderItemRow
	err := s.db.GetContext(ctx, &r, `
		INSERT INTO order_items (order_id, item_id, quantity, price, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+orderItemColumns+`
	`, in.OrderID, in.ItemID, in.Quantity, in.Price, in.Notes)
	if err != nil {
		return order.Item{}, wrap("create", "order_item", err)
	}
	return r.toDomain(), nil
}

// Checkout converts the cart into an order in one transaction. The cart
// rows are locked for the duration, so a concurrent add lands either
// before the snapshot or in the next, fresh cart.
func (s *Store) Checkout(ctx context.Context, userID int64, in order.CheckoutInput) (order.Order, []order.Item, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return order.Order{}, nil, wrap("checkout", "order", err)
	}
	defer tx.Rollback()

	var lines []struct {
		ItemID   int64  `db:"item_id"`
		Quantity int    `db:"quantity"`
		Notes    string `db:"notes"`
		Price    string `db:"price"`
	}
	err = tx.SelectContext(ctx, &lines, `
		SELECT c.item_id, c.quantity, c.notes, m.price
		FROM carts c
		JOIN menu_items m ON m.id = c.item_id
		WHERE c.user_id = $1
		ORDER BY c.id
		FOR UPDATE OF c
	`, userID)
	if err != nil {
		return order.Order{}, nil, wrap("checkout", "cart", err)
	}
	if len(lines) == 0 {
		return order.Order{}, nil, storage.ErrEmptyCart
	}

	total := decimal.Zero
	for _, l := range lines {
		price, err := decimal.NewFromString(l.Price)
		if err != nil {
			return order.Order{}, nil, wrap("checkout", "menu_item", err)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	var ord orderRow
	err = tx.GetContext(ctx, &ord, `
		INSERT INTO orders (user_id, status, total_amount, delivery_address, delivery_type, payment_method, notes, estimated_delivery_time)
		VALUES ($1, 'pending', $2, $3, $4, $5, $6, $7)
		RETURNING `+orderColumns+`
	`, userID, total.StringFixed(2), in.DeliveryAddress, in.DeliveryType, in.PaymentMethod, in.Notes, in.EstimatedDeliveryTime)
	if err != nil {
		return order.Order{}, nil, wrap("checkout", "order", err)
	}

	items := make([]order.Item, 0, len(lines))
	for _, l := range lines {
		var it orderItemRow
		err = tx.GetContext(ctx, &it, `
			INSERT INTO order_items (order_id, item_id, quantity, price, notes)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+orderItemColumns+`
		`, ord.ID, l.ItemID, l.Quantity, l.Price, l.Notes)
		if err != nil {
			return order.Order{}, nil, wrap("checkout", "order_item", err)
		}
		items = append(items, it.toDomain())
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID); err != nil {
		return order.Order{}, nil, wrap("checkout", "cart", err)
	}

	if err := tx.Commit(); err != nil {
		return order.Order{}, nil, wrap("checkout", "order", err)
	}
	return ord.toDomain(), items, nil
}
