package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

type Structure struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employeeId"`
	BasicSalary   decimal.Decimal `json:"basicSalary"`
	Allowances    decimal.Decimal `json:"allowances"`
	Deductions    decimal.Decimal `json:"deductions"`
	EffectiveFrom time.Time       `json:"effectiveFrom"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type UpsertParams struct {
	EmployeeID    string
	BasicSalary   decimal.Decimal
	Allowances    decimal.Decimal
	Deductions    decimal.Decimal
	EffectiveFrom time.Time
}

// Payslip is the rendered monthly view: the structure plus that month's
// attendance reduction.
type Payslip struct {
	EmployeeID   string          `json:"employeeId"`
	EmployeeName string          `json:"employeeName"`
	EmployeeCode string          `json:"employeeCode"`
	Year         int             `json:"year"`
	Month        time.Month      `json:"month"`
	BasicSalary  decimal.Decimal `json:"basicSalary"`
	Allowances   decimal.Decimal `json:"allowances"`
	Deductions   decimal.Decimal `json:"deductions"`
	NetPay       decimal.Decimal `json:"netPay"`
	PresentDays  int             `json:"presentDays"`
	WorkHours    float64         `json:"workHours"`
	ExtraHours   float64         `json:"extraHours"`
}
