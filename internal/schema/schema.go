// Package schema declares the canonical write shapes for every entity and
// validates inbound payloads before they reach storage. Validation has no
// side effects and reports every offending field, not just the first.
package schema

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// moneyPattern accepts fixed-scale decimal strings: digits with at most two
// fraction digits. Monetary values never travel as floats.
var moneyPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]{1,2})?$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their wire names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if !moneyPattern.MatchString(s) {
			return false
		}
		_, err := decimal.NewFromString(s)
		return err == nil
	})

	return v
}

// ValidMoney reports whether s is an acceptable monetary amount.
func ValidMoney(s string) bool {
	if !moneyPattern.MatchString(s) {
		return false
	}
	_, err := decimal.NewFromString(s)
	return err == nil
}

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError enumerates every offending field of a payload.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func check(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	ve := &ValidationError{}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return ve
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "money":
		return "must be a decimal amount with at most 2 fraction digits"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// InsertUser is the caller-supplied subset of a user record.
type InsertUser struct {
	TelegramID string `json:"telegramId" validate:"required"`
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName"`
	Username   string `json:"username"`
	Phone      string `json:"phone"`
}

// Validate reports every invalid field or returns nil.
func (in InsertUser) Validate() error { return check(in) }

// InsertCategory is the caller-supplied subset of a category record.
type InsertCategory struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsActive    *bool  `json:"isActive"`
	SortOrder   int    `json:"sortOrder" validate:"gte=0"`
}

// Validate reports every invalid field or returns nil.
func (in InsertCategory) Validate() error { return check(in) }

// ActiveOrDefault resolves the isActive flag; new categories default to active.
func (in InsertCategory) ActiveOrDefault() bool {
	if in.IsActive == nil {
		return true
	}
	return *in.IsActive
}

// InsertMenuItem is the caller-supplied subset of a menu item record.
type InsertMenuItem struct {
	CategoryID      int64    `json:"categoryId" validate:"required,gt=0"`
	Name            string   `json:"name" validate:"required"`
	Description     string   `json:"description"`
	Price           string   `json:"price" validate:"required,money"`
	Image           string   `json:"image"`
	IsAvailable     *bool    `json:"isAvailable"`
	PreparationTime *int     `json:"preparationTime" validate:"omitempty,gte=0"`
	Ingredients     []string `json:"ingredients"`
	Allergens       []string `json:"allergens"`
	Tags            []string `json:"tags"`
	SortOrder       int      `json:"sortOrder" validate:"gte=0"`
}

// Validate reports every invalid field or returns nil.
func (in InsertMenuItem) Validate() error { return check(in) }

// AvailableOrDefault resolves the availability flag; new items default to available.
func (in InsertMenuItem) AvailableOrDefault() bool {
	if in.IsAvailable == nil {
		return true
	}
	return *in.IsAvailable
}

// PreparationTimeOrDefault resolves the preparation estimate; 15 minutes if unset.
func (in InsertMenuItem) PreparationTimeOrDefault() int {
	if in.PreparationTime == nil {
		return 15
	}
	return *in.PreparationTime
}

// InsertCart is the caller-supplied shape of a cart row. Merge semantics for
// an existing (user, item) pair are owned by the storage layer.
type InsertCart struct {
	UserID   int64  `json:"userId" validate:"required,gt=0"`
	ItemID   int64  `json:"itemId" validate:"required,gt=0"`
	Quantity int    `json:"quantity" validate:"required,gte=1"`
	Notes    string `json:"notes"`
}

// Validate reports every invalid field or returns nil.
func (in InsertCart) Validate() error { return check(in) }

// InsertOrder is the caller-supplied subset of an order record. Status is
// deliberately absent: the storage layer forces every new order to pending.
type InsertOrder struct {
	UserID                int64      `json:"userId" validate:"required,gt=0"`
	TotalAmount           string     `json:"totalAmount" validate:"required,money"`
	DeliveryType          string     `json:"deliveryType" validate:"required,oneof=delivery pickup"`
	PaymentMethod         string     `json:"paymentMethod" validate:"required,oneof=cash card telegram_wallet"`
	DeliveryAddress       string     `json:"deliveryAddress"`
	Notes                 string     `json:"notes"`
	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime"`
}

// Validate reports every invalid field or returns nil.
func (in InsertOrder) Validate() error { return check(in) }

// InsertOrderItem freezes one purchased line: quantity and unit price at the
// moment of checkout.
type InsertOrderItem struct {
	OrderID  int64  `json:"orderId" validate:"required,gt=0"`
	ItemID   int64  `json:"itemId" validate:"required,gt=0"`
	Quantity int    `json:"quantity" validate:"required,gte=1"`
	Price    string `json:"price" validate:"required,money"`
	Notes    string `json:"notes"`
}

// Validate reports every invalid field or returns nil.
func (in InsertOrderItem) Validate() error { return check(in) }
