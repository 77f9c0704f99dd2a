package model

import (
	"time"
)

// Activity is a recurring practice a user tracks. Its goal, when one is
// configured, describes how often the activity should recur.
type Activity struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
