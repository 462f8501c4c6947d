package leave

import "errors"

var (
	ErrNotFound            = errors.New("leave request not found")
	ErrBalanceNotFound     = errors.New("leave balance not found")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrOverlapConflict     = errors.New("leave dates overlap an existing request")
	ErrInvalidState        = errors.New("leave request already processed")
	ErrForbidden           = errors.New("forbidden")
)
