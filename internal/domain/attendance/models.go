package attendance

import "time"

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLeave   = "leave"
	StatusHalfDay = "half_day"
)

// Record is one employee-day. CheckOutTime and the derived hour fields stay
// nil until check-out.
type Record struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employeeId"`
	AttendanceDate time.Time  `json:"attendanceDate"`
	CheckInTime    *time.Time `json:"checkInTime"`
	CheckOutTime   *time.Time `json:"checkOutTime"`
	WorkHours      *float64   `json:"workHours"`
	ExtraHours     *float64   `json:"extraHours"`
	Status         string     `json:"status"`
	Remarks        string     `json:"remarks"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type CheckInResult struct {
	AttendanceID string    `json:"attendanceId"`
	CheckInTime  time.Time `json:"checkInTime"`
	IsLate       bool      `json:"isLate"`
	Status       string    `json:"status"`
}

type CheckOutResult struct {
	CheckInTime  time.Time `json:"checkInTime"`
	CheckOutTime time.Time `json:"checkOutTime"`
	WorkHours    float64   `json:"workHours"`
	ExtraHours   float64   `json:"extraHours"`
}

type ListFilter struct {
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Limit      int
	Offset     int
}

type ListResult struct {
	Records []Record `json:"records"`
	Total   int      `json:"total"`
	Summary Summary  `json:"summary"`
}

// Summary is a pure reduction over a record set; it carries no invariants
// beyond the sum of per-record derived hours.
type Summary struct {
	TotalDays       int     `json:"totalDays"`
	PresentDays     int     `json:"presentDays"`
	AbsentDays      int     `json:"absentDays"`
	LeaveDays       int     `json:"leaveDays"`
	HalfDays        int     `json:"halfDays"`
	LateDays        int     `json:"lateDays"`
	TotalWorkHours  float64 `json:"totalWorkHours"`
	TotalExtraHours float64 `json:"totalExtraHours"`
}
