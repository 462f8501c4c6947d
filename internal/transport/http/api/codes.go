package api

// Stable error codes surfaced in the response envelope. Internal error detail
// never leaks past these.
const (
	CodeLeaveNotFound       = "LEAVE_001"
	CodeInsufficientBalance = "LEAVE_002"
	CodeOverlapConflict     = "LEAVE_003"
	CodeBalanceNotFound     = "LEAVE_004"
	CodeLeaveForbidden      = "LEAVE_005"
	CodeAlreadyProcessed    = "LEAVE_006"

	CodeAttendanceNotFound = "ATT_001"
	CodeAlreadyCheckedIn   = "ATT_002"
	CodeMustCheckInFirst   = "ATT_003"
	CodeAlreadyCheckedOut  = "ATT_004"

	CodeEmployeeNotFound  = "EMP_001"
	CodeEmployeeDuplicate = "EMP_002"

	CodeInvalidCredentials = "AUTH_001"
	CodeUnauthorized       = "AUTH_002"
	CodeForbidden          = "AUTH_003"

	CodeSalaryNotFound = "SAL_001"

	CodeValidation  = "VAL_001"
	CodeInternal    = "SRV_001"
	CodeRateLimited = "SRV_002"
)
