// Package models contains the domain entities stored in the database.
package models

import "time"

type User struct {
	ID             string
	Username       string
	PasswordDigest []byte
	CreatedAt      time.Time
}
