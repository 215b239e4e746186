// Package models holds the persisted record types of the service.
package models

import "time"

// User is a registered account. Email is unique at the store level.
type User struct {
	ID             string    `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	HashedPassword string    `db:"hashed_password" json:"-"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	IsSuperuser    bool      `db:"is_superuser" json:"is_superuser"`
	IsVerified     bool      `db:"is_verified" json:"is_verified"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
