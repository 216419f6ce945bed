package dto

// ConfirmQuery carries the explicit confirmation required by destructive endpoints
type ConfirmQuery struct {
	Confirm *bool `form:"confirm" binding:"required"`
}

// Confirmed reports whether confirm=true was supplied
func (q ConfirmQuery) Confirmed() bool {
	return q.Confirm != nil && *q.Confirm
}
