package model

import "time"

// Task is an earning action a user can complete once for a fixed reward.
type Task struct {
	ID        int64
	Title     string
	Reward    int64
	Active    bool
	CreatedAt time.Time
}
