package dto

// TaskResponse describes an earning task.
type TaskResponse struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Reward int64  `json:"reward"`
}

// RewardResponse reports points just earned.
type RewardResponse struct {
	Earned int64 `json:"earned"`
}
