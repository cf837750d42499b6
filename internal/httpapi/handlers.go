package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/usmm07/foodcourt/internal/domain/catalog"
	"github.com/usmm07/foodcourt/internal/domain/order"
	"github.com/usmm07/foodcourt/internal/metrics"
	"github.com/usmm07/foodcourt/internal/schema"
	"github.com/usmm07/foodcourt/internal/storage"
)

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": []schema.FieldError{{Field: "id", Message: "must be a positive integer"}}})
		return 0, false
	}
	return id, true
}

// --- users -------------------------------------------------------------------

func (s *Server) resolveUser(c *gin.Context) {
	u, ok := s.currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, u)
}

// --- catalog -----------------------------------------------------------------

func (s *Server) listCategories(c *gin.Context) {
	cats, err := s.catalog.ListCategories(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

func (s *Server) getCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	cat, err := s.catalog.GetCategory(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (s *Server) createCategory(c *gin.Context) {
	var in schema.InsertCategory
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}
	created, err := s.catalog.CreateCategory(c.Request.Context(), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var upd catalog.CategoryUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}
	updated, err := s.catalog.UpdateCategory(c.Request.Context(), id, upd)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	deleted, err := s.catalog.DeleteCategory(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (s *Server) listMenuItems(c *gin.Context) {
	var categoryID int64
	raw := c.Query("categoryId")
	if raw == "" {
		raw = c.Query("category_id")
	}
	if raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": []schema.FieldError{{Field: "categoryId", Message: "must be a positive integer"}}})
			return
		}
		categoryID = parsed
	}
	items, err := s.catalog.ListMenuItems(c.Request.Context(), categoryID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	// The storage layer never filters by availability; hiding sold-out
	// items is a client choice.
	if c.Query("available") == "true" {
		visible := items[:0]
		for _, it := range items {
			if it.IsAvailable {
				visible = append(visible, it)
			}
		}
		items = visible
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) getMenuItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	item, err := s.catalog.GetMenuItem(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) createMenuItem(c *gin.Context) {
	var in schema.InsertMenuItem
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}
	created, err := s.catalog.CreateMenuItem(c.Request.Context(), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateMenuItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var upd catalog.MenuItemUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}
	updated, err := s.catalog.UpdateMenuItem(c.Request.Context(), id, upd)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteMenuItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	deleted, err := s.catalog.DeleteMenuItem(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// --- cart --------------------------------------------------------------------

func (s *Server) getCart(c *gin.Context) {
	u, ok := s.currentUser(c)
	if !ok {
		return
	}
	sum, err := s.carts.View(c.Request.Context(), u.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

type addToCartRequest struct {
	ItemID   int64  `json:"itemId"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

func (s *Server) addToCart(c *gin.Context) {
	u, ok := s.currentUser(c)
	if !ok {
		return
	}
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}
	row, err := s.carts.Add(c.Request.Context(), schema.InsertCart{
		UserID:   u.ID,
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
		Notes:    req.Notes,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	metrics.ObserveCartAdd()
	c.JSON(http.StatusCreated, row)
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

func (s *Server) updateCartItem(c *gin.Context) {
	if _, ok := s.currentUser(c); !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}
	row, err := s.carts.UpdateQuantity(c.Request.Context(), id, req.Quantity)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (s *Server) removeFromCart(c *gin.Context) {
	if _, ok := s.currentUser(c); !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	removed, err := s.carts.Remove(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": removed})
}

func (s *Server) clearCart(c *gin.Context) {
	u, ok := s.currentUser(c)
	if !ok {
		return
	}
	if err := s.carts.Clear(c.Request.Context(), u.ID); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

// --- orders ------------------------------------------------------------------

func (s *Server) listOrders(c *gin.Context) {
	u, ok := s.currentUser(c)
	if !ok {
		return
	}
	history, err := s.orders.History(c.Request.Context(), u.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (s *Server) checkout(c *gin.Context) {
	u, ok := s.currentUser(c)
	if !ok {
		return
	}
	var in order.CheckoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}
	o, items, err := s.orders.PlaceOrder(c.Request.Context(), u.ID, in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if total, err := decimal.NewFromString(o.TotalAmount); err == nil {
		metrics.ObserveOrderPlaced(total.InexactFloat64())
	}
	c.JSON(http.StatusCreated, gin.H{"order": o, "items": items})
}

// ownedOrder loads the order from the :id parameter and checks it belongs
// to the authenticated user. Someone else's order reads as missing.
func (s *Server) ownedOrder(c *gin.Context) (order.Order, bool) {
	u, ok := s.currentUser(c)
	if !ok {
		return order.Order{}, false
	}
	id, ok := idParam(c)
	if !ok {
		return order.Order{}, false
	}
	o, err := s.orders.Get(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return order.Order{}, false
	}
	if o.UserID != u.ID {
		s.respondError(c, storage.ErrNotFound)
		return order.Order{}, false
	}
	return o, true
}

func (s *Server) getOrder(c *gin.Context) {
	o, ok := s.ownedOrder(c)
	if !ok {
		return
	}
	items, err := s.orders.Items(c.Request.Context(), o.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o, "items": items})
}

func (s *Server) listOrderItems(c *gin.Context) {
	o, ok := s.ownedOrder(c)
	if !ok {
		return
	}
	items, err := s.orders.Items(c.Request.Context(), o.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	o, ok := s.ownedOrder(c)
	if !ok {
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}
	updated, err := s.orders.UpdateStatus(c.Request.Context(), o.ID, order.Status(req.Status))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
