package models

import "time"

// Session is a login session. One row per login; deleting the row logs the
// user out everywhere the corresponding token is presented.
type Session struct {
	ID        string
	UserID    string
	Username  string
	CreatedAt time.Time
}
