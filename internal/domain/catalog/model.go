package catalog

// Category groups menu items for display. Deleting a category does not
// cascade to its items.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	IsActive    bool   `json:"isActive"`
	SortOrder   int    `json:"sortOrder"`
}

// MenuItem is a sellable unit. Price is a fixed-scale decimal carried as a
// string; no floating-point currency arithmetic anywhere.
type MenuItem struct {
	ID              int64    `json:"id"`
	CategoryID      int64    `json:"categoryId"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Price           string   `json:"price"`
	Image           string   `json:"image,omitempty"`
	IsAvailable     bool     `json:"isAvailable"`
	PreparationTime int      `json:"preparationTime"`
	Ingredients     []string `json:"ingredients"`
	Allergens       []string `json:"allergens"`
	Tags            []string `json:"tags"`
	SortOrder       int      `json:"sortOrder"`
}

// CategoryUpdate carries a partial update; nil fields are left untouched.
type CategoryUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	IsActive    *bool   `json:"isActive"`
	SortOrder   *int    `json:"sortOrder"`
}

// MenuItemUpdate carries a partial update; nil fields are left untouched.
type MenuItemUpdate struct {
	CategoryID      *int64    `json:"categoryId"`
	Name            *string   `json:"name"`
	Description     *string   `json:"description"`
	Price           *string   `json:"price"`
	Image           *string   `json:"image"`
	IsAvailable     *bool     `json:"isAvailable"`
	PreparationTime *int      `json:"preparationTime"`
	Ingredients     *[]string `json:"ingredients"`
	Allergens       *[]string `json:"allergens"`
	Tags            *[]string `json:"tags"`
	SortOrder       *int      `json:"sortOrder"`
}

// Apply folds the update into a category and reports whether anything changed.
func (u CategoryUpdate) Apply(c *Category) bool {
	changed := false
	if u.Name != nil {
		c.Name = *u.Name
		changed = true
	}
	if u.Description != nil {
		c.Description = *u.Description
		changed = true
	}
	if u.Image != nil {
		c.Image = *u.Image
		changed = true
	}
	if u.IsActive != nil {
		c.IsActive = *u.IsActive
		changed = true
	}
	if u.SortOrder != nil {
		c.SortOrder = *u.SortOrder
		changed = true
	}
	return changed
}

// Apply folds the update into a menu item and reports whether anything changed.
func (u MenuItemUpdate) Apply(m *MenuItem) bool {
	changed := false
	if u.CategoryID != nil {
		m.CategoryID = *u.CategoryID
		changed = true
	}
	if u.Name != nil {
		m.Name = *u.Name
		changed = true
	}
	if u.Description != nil {
		m.Description = *u.Description
		changed = true
	}
	if u.Price != nil {
		m.Price = *u.Price
		changed = true
	}
	if u.Image != nil {
		m.Image = *u.Image
		changed = true
	}
	if u.IsAvailable != nil {
		m.IsAvailable = *u.IsAvailable
		changed = true
	}
	if u.PreparationTime != nil {
		m.PreparationTime = *u.PreparationTime
		changed = true
	}
	if u.Ingredients != nil {
		m.Ingredients = append([]string(nil), (*u.Ingredients)...)
		changed = true
	}
	if u.Allergens != nil {
		m.Allergens = append([]string(nil), (*u.Allergens)...)
		changed = true
	}
	if u.Tags != nil {
		m.Tags = append([]string(nil), (*u.Tags)...)
		changed = true
	}
	if u.SortOrder != nil {
		m.SortOrder = *u.SortOrder
		changed = true
	}
	return changed
}
