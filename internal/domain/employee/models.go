package employee

import "time"

type Employee struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Department  string    `json:"department"`
	Designation string    `json:"designation"`
	JoinDate    time.Time `json:"joinDate"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateParams struct {
	Code        string
	FirstName   string
	LastName    string
	Department  string
	Designation string
	JoinDate    time.Time

	// Optional login account for the new employee.
	Email    string
	Password string
}

type UpdateParams struct {
	FirstName   string
	LastName    string
	Department  string
	Designation string
}

type ListFilter struct {
	Department string
	ActiveOnly bool
	Limit      int
	Offset     int
}
