package leave

import "time"

const (
	TypePaid = "paid"
	TypeSick = "sick"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

func ValidType(leaveType string) bool {
	return leaveType == TypePaid || leaveType == TypeSick
}

type Balance struct {
	ID             string    `json:"id"`
	EmployeeID     string    `json:"employeeId"`
	LeaveType      string    `json:"leaveType"`
	Year           int       `json:"year"`
	TotalAllocated float64   `json:"totalAllocated"`
	Used           float64   `json:"used"`
	Remaining      float64   `json:"remaining"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type Request struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	LeaveType    string     `json:"leaveType"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	NumberOfDays int        `json:"numberOfDays"`
	Reason       string     `json:"reason"`
	Status       string     `json:"status"`
	AdminRemarks string     `json:"adminRemarks,omitempty"`
	ApprovedBy   *string    `json:"approvedBy,omitempty"`
	ApprovedAt   *time.Time `json:"approvedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type HistoryFilter struct {
	EmployeeID string
	Year       int
	Limit      int
	Offset     int
}

type HistoryResult struct {
	Requests []Request `json:"requests"`
	Total    int       `json:"total"`
}
