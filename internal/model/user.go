package model

import "time"

// User maps login credentials to the store holding that user's data.
// Users are reference data: the API reads them but never changes them.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	StoreID      string    `json:"storeId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Store is the data-store identifier that scopes every table of one user.
type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is the authenticated identity attached to a request.
type Session struct {
	Username string `json:"u"`
	StoreID  string `json:"s"`
}
