package dto

// NewCodeRequest describes one voucher code in a bulk-add payload.
type NewCodeRequest struct {
	Code        string `json:"code,omitempty"`
	Points      int64  `json:"points"`
	VoucherType string `json:"voucher_type"`
}

// AddCodesRequest is the bulk-add payload.
type AddCodesRequest struct {
	Codes []NewCodeRequest `json:"codes"`
}

// AddCodesResponse reports how many codes entered the inventory.
type AddCodesResponse struct {
	Added int `json:"added"`
}

// ResolutionRequest is one operator decision in a resolve batch.
type ResolutionRequest struct {
	RequestID int64  `json:"request_id"`
	Status    string `json:"status"`
	Code      string `json:"code,omitempty"`
}

// ResolveBatchRequest is the bulk gate payload.
type ResolveBatchRequest struct {
	Items []ResolutionRequest `json:"items"`
}

// ResolutionResultResponse reports the per-item outcome of a resolve batch.
type ResolutionResultResponse struct {
	RequestID int64  `json:"request_id"`
	Outcome   string `json:"outcome"`
	Reason    string `json:"reason,omitempty"`
}

// StandingRequest sets a user's standing.
type StandingRequest struct {
	Standing string `json:"standing"`
}

// RedemptionPauseRequest toggles the global redemption pause flag.
type RedemptionPauseRequest struct {
	Paused bool `json:"paused"`
}

// CreateTaskRequest publishes a new earning task.
type CreateTaskRequest struct {
	Title  string `json:"title"`
	Reward int64  `json:"reward"`
}
