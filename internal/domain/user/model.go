package user

import "time"

// User is an identity imported from Telegram. It is created once per
// telegram id and immutable afterwards.
type User struct {
	ID         int64     `json:"id"`
	TelegramID string    `json:"telegramId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName,omitempty"`
	Username   string    `json:"username,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
