package salary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jung-kurt/gofpdf"

	"github.com/KHILANO5/HRMS-sub001/internal/domain/attendance"
	"github.com/KHILANO5/HRMS-sub001/internal/domain/employee"
)

var ErrNotFound = errors.New("salary structure not found")

type Service struct {
	Store      *Store
	Employees  *employee.Service
	Attendance *attendance.Service
}

func NewService(store *Store, employees *employee.Service, att *attendance.Service) *Service {
	return &Service{Store: store, Employees: employees, Attendance: att}
}

func (s *Service) Get(ctx context.Context, employeeID string) (Structure, error) {
	st, err := s.Store.GetByEmployee(ctx, employeeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Structure{}, ErrNotFound
	}
	return st, err
}

func (s *Service) Upsert(ctx context.Context, params UpsertParams) (Structure, error) {
	if _, err := s.Employees.Get(ctx, params.EmployeeID); err != nil {
		return Structure{}, err
	}
	return s.Store.Upsert(ctx, params)
}

// BuildPayslip joins the salary structure with the month's attendance
// summary.
func (s *Service) BuildPayslip(ctx context.Context, employeeID string, year int, month time.Month) (Payslip, error) {
	emp, err := s.Employees.Get(ctx, employeeID)
	if err != nil {
		return Payslip{}, err
	}
	st, err := s.Get(ctx, employeeID)
	if err != nil {
		return Payslip{}, err
	}
	summary, err := s.Attendance.MonthSummary(ctx, employeeID, year, month)
	if err != nil {
		return Payslip{}, err
	}

	return Payslip{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FirstName + " " + emp.LastName,
		EmployeeCode: emp.Code,
		Year:         year,
		Month:        month,
		BasicSalary:  st.BasicSalary,
		Allowances:   st.Allowances,
		Deductions:   st.Deductions,
		NetPay:       NetPay(st.BasicSalary, st.Allowances, st.Deductions),
		PresentDays:  summary.PresentDays,
		WorkHours:    summary.TotalWorkHours,
		ExtraHours:   summary.TotalExtraHours,
	}, nil
}

// RenderPayslipPDF writes the payslip as a single-page PDF.
func RenderPayslipPDF(slip Payslip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", slip.EmployeeName, slip.EmployeeCode))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s %d", slip.Month.String(), slip.Year))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Basic salary: %s", slip.BasicSalary.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Allowances: %s", slip.Allowances.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %s", slip.Deductions.StringFixed(2)))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net pay: %s", slip.NetPay.StringFixed(2)))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Days present: %d", slip.PresentDays))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Work hours: %.2f (extra %.2f)", slip.WorkHours, slip.ExtraHours))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
