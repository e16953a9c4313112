package user

import "time"

// Repository defines the contract for user storage operations
type Repository interface {
	Create(user *User) error
	GetByID(id string) (*User, error)
	GetByUsername(username string) (*User, error)
	GetActiveByUsername(username string) (*User, error)
	TouchLastLogin(id string, at time.Time) error
	SetActive(id string, active bool) error
	List() ([]User, error)
	Count() (int, error)
}
