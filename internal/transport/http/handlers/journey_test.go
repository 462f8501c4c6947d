package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/KHILANO5/HRMS-sub001/internal/app/server"
	"github.com/KHILANO5/HRMS-sub001/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	return config.Config{
		Addr:               ":0",
		DatabaseURL:        dbURL,
		JWTSecret:          "test-secret",
		JWTTTL:             time.Hour,
		Environment:        "test",
		SeedAdminEmail:     "admin@test.local",
		SeedAdminPassword:  "ChangeMe123!",
		RunMigrations:      true,
		RunSeed:            true,
		MigrationsDir:      "../../../../migrations",
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 10000,
		PaidLeaveDefault:   15,
		SickLeaveDefault:   10,
		LateCutoff:         "09:30",
		StandardHours:      9,
		MetricsEnabled:     true,
	}
}

func startServer(t *testing.T) (*httptest.Server, *server.App) {
	t.Helper()
	app, err := server.New(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	t.Cleanup(app.Close)

	ts := httptest.NewServer(app.Router)
	t.Cleanup(ts.Close)
	return ts, app
}

func TestLeaveRequestLifecycle(t *testing.T) {
	ts, _ := startServer(t)
	client := ts.Client()

	adminToken := login(t, client, ts.URL, "admin@test.local", "ChangeMe123!")

	suffix := time.Now().UnixNano()
	employeeEmail := fmt.Sprintf("leave-%d@example.com", suffix)
	createEmployee(t, client, ts.URL, adminToken, fmt.Sprintf("EMP-L%d", suffix), employeeEmail, "Emp1234!")
	employeeToken := login(t, client, ts.URL, employeeEmail, "Emp1234!")

	// Onboarding seeds this year's ledger: 15 paid, 10 sick.
	balances := leaveBalances(t, client, ts.URL, employeeToken)
	if got := balances["paid"].Remaining; got != 15 {
		t.Fatalf("expected 15 paid days remaining, got %v", got)
	}
	if got := balances["sick"].Remaining; got != 10 {
		t.Fatalf("expected 10 sick days remaining, got %v", got)
	}

	year := time.Now().UTC().Year()

	// Three-day paid request.
	resp := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/leaves/requests", employeeToken, map[string]any{
		"leaveType": "paid",
		"startDate": fmt.Sprintf("%d-06-10", year),
		"endDate":   fmt.Sprintf("%d-06-12", year),
		"reason":    "family visit",
	}, http.StatusCreated)
	var created struct {
		ID           string `json:"id"`
		NumberOfDays int    `json:"numberOfDays"`
		Status       string `json:"status"`
	}
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		t.Fatalf("failed to decode leave request: %v", err)
	}
	if created.NumberOfDays != 3 {
		t.Fatalf("expected 3 days, got %d", created.NumberOfDays)
	}
	if created.Status != "pending" {
		t.Fatalf("expected pending status, got %s", created.Status)
	}

	// A request sharing days with the pending one is rejected.
	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/leaves/requests", employeeToken, map[string]any{
		"leaveType": "paid",
		"startDate": fmt.Sprintf("%d-06-11", year),
		"endDate":   fmt.Sprintf("%d-06-13", year),
	}, http.StatusBadRequest)
	if resp.Error == nil || resp.Error.Code != "LEAVE_003" {
		t.Fatalf("expected LEAVE_003, got %+v", resp.Error)
	}

	// Admin approves; the ledger commits in the same transaction.
	resp = doJSON(t, client, http.MethodPatch, ts.URL+"/api/v1/leaves/requests/"+created.ID, adminToken, map[string]any{
		"status":       "approved",
		"adminRemarks": "enjoy",
	}, http.StatusOK)
	var decided struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(resp.Data, &decided); err != nil {
		t.Fatalf("failed to decode decision: %v", err)
	}
	if decided.Status != "approved" {
		t.Fatalf("expected approved status, got %s", decided.Status)
	}

	balances = leaveBalances(t, client, ts.URL, employeeToken)
	if got := balances["paid"].Used; got != 3 {
		t.Fatalf("expected 3 paid days used, got %v", got)
	}
	if got := balances["paid"].Remaining; got != 12 {
		t.Fatalf("expected 12 paid days remaining, got %v", got)
	}

	// A second decision on the same request fails.
	resp = doJSON(t, client, http.MethodPatch, ts.URL+"/api/v1/leaves/requests/"+created.ID, adminToken, map[string]any{
		"status": "rejected",
	}, http.StatusBadRequest)
	if resp.Error == nil || resp.Error.Code != "LEAVE_006" {
		t.Fatalf("expected LEAVE_006, got %+v", resp.Error)
	}

	// Eleven sick days against a ten-day allocation.
	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/leaves/requests", employeeToken, map[string]any{
		"leaveType": "sick",
		"startDate": fmt.Sprintf("%d-07-01", year),
		"endDate":   fmt.Sprintf("%d-07-11", year),
	}, http.StatusBadRequest)
	if resp.Error == nil || resp.Error.Code != "LEAVE_002" {
		t.Fatalf("expected LEAVE_002, got %+v", resp.Error)
	}
}

func TestSecondApprovalCannotOverdrawBalance(t *testing.T) {
	ts, _ := startServer(t)
	client := ts.Client()

	adminToken := login(t, client, ts.URL, "admin@test.local", "ChangeMe123!")

	suffix := time.Now().UnixNano()
	employeeEmail := fmt.Sprintf("drain-%d@example.com", suffix)
	createEmployee(t, client, ts.URL, adminToken, fmt.Sprintf("EMP-B%d", suffix), employeeEmail, "Drn1234!")
	employeeToken := login(t, client, ts.URL, employeeEmail, "Drn1234!")

	year := time.Now().UTC().Year()

	// Two eight-day requests against a fifteen-day allocation. Each fits on
	// its own; submission reserves nothing, so both go in as pending.
	submit := func(start, end string) string {
		resp := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/leaves/requests", employeeToken, map[string]any{
			"leaveType": "paid",
			"startDate": start,
			"endDate":   end,
		}, http.StatusCreated)
		var created struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(resp.Data, &created); err != nil {
			t.Fatalf("failed to decode leave request: %v", err)
		}
		return created.ID
	}
	firstID := submit(fmt.Sprintf("%d-03-02", year), fmt.Sprintf("%d-03-09", year))
	secondID := submit(fmt.Sprintf("%d-04-01", year), fmt.Sprintf("%d-04-08", year))

	doJSON(t, client, http.MethodPatch, ts.URL+"/api/v1/leaves/requests/"+firstID, adminToken, map[string]any{
		"status": "approved",
	}, http.StatusOK)

	balances := leaveBalances(t, client, ts.URL, employeeToken)
	if got := balances["paid"].Remaining; got != 7 {
		t.Fatalf("expected 7 paid days remaining after first approval, got %v", got)
	}

	// The first approval drained the ledger below eight days; the decision-time
	// re-check rejects the second approval even though submission passed.
	resp := doJSON(t, client, http.MethodPatch, ts.URL+"/api/v1/leaves/requests/"+secondID, adminToken, map[string]any{
		"status": "approved",
	}, http.StatusBadRequest)
	if resp.Error == nil || resp.Error.Code != "LEAVE_002" {
		t.Fatalf("expected LEAVE_002, got %+v", resp.Error)
	}

	// The failed approval rolled back whole: ledger untouched, request still
	// pending and decidable.
	balances = leaveBalances(t, client, ts.URL, employeeToken)
	if got := balances["paid"].Used; got != 8 {
		t.Fatalf("expected 8 paid days used, got %v", got)
	}
	if got := balances["paid"].Remaining; got != 7 {
		t.Fatalf("expected 7 paid days remaining, got %v", got)
	}

	resp = doJSON(t, client, http.MethodPatch, ts.URL+"/api/v1/leaves/requests/"+secondID, adminToken, map[string]any{
		"status": "rejected",
	}, http.StatusOK)
	var decided struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(resp.Data, &decided); err != nil {
		t.Fatalf("failed to decode decision: %v", err)
	}
	if decided.Status != "rejected" {
		t.Fatalf("expected rejected status, got %s", decided.Status)
	}
}

func TestLeaveCancellation(t *testing.T) {
	ts, _ := startServer(t)
	client := ts.Client()

	adminToken := login(t, client, ts.URL, "admin@test.local", "ChangeMe123!")

	suffix := time.Now().UnixNano()
	ownerEmail := fmt.Sprintf("owner-%d@example.com", suffix)
	createEmployee(t, client, ts.URL, adminToken, fmt.Sprintf("EMP-O%d", suffix), ownerEmail, "Own1234!")
	otherEmail := fmt.Sprintf("other-%d@example.com", suffix)
	createEmployee(t, client, ts.URL, adminToken, fmt.Sprintf("EMP-X%d", suffix), otherEmail, "Oth1234!")

	ownerToken := login(t, client, ts.URL, ownerEmail, "Own1234!")
	otherToken := login(t, client, ts.URL, otherEmail, "Oth1234!")

	year := time.Now().UTC().Year()
	resp := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/leaves/requests", ownerToken, map[string]any{
		"leaveType": "paid",
		"startDate": fmt.Sprintf("%d-08-01", year),
		"endDate":   fmt.Sprintf("%d-08-02", year),
	}, http.StatusCreated)
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		t.Fatalf("failed to decode leave request: %v", err)
	}

	// Someone else's token cannot cancel it.
	resp = doJSON(t, client, http.MethodDelete, ts.URL+"/api/v1/leaves/requests/"+created.ID, otherToken, nil, http.StatusForbidden)
	if resp.Error == nil || resp.Error.Code != "LEAVE_005" {
		t.Fatalf("expected LEAVE_005, got %+v", resp.Error)
	}

	// The owner can, while it is still pending.
	doJSON(t, client, http.MethodDelete, ts.URL+"/api/v1/leaves/requests/"+created.ID, ownerToken, nil, http.StatusOK)

	// Cancelled requests are gone, not archived.
	resp = doJSON(t, client, http.MethodDelete, ts.URL+"/api/v1/leaves/requests/"+created.ID, ownerToken, nil, http.StatusNotFound)
	if resp.Error == nil || resp.Error.Code != "LEAVE_001" {
		t.Fatalf("expected LEAVE_001, got %+v", resp.Error)
	}
}

func TestAttendanceDay(t *testing.T) {
	ts, _ := startServer(t)
	client := ts.Client()

	adminToken := login(t, client, ts.URL, "admin@test.local", "ChangeMe123!")

	suffix := time.Now().UnixNano()
	employeeEmail := fmt.Sprintf("att-%d@example.com", suffix)
	createEmployee(t, client, ts.URL, adminToken, fmt.Sprintf("EMP-A%d", suffix), employeeEmail, "Att1234!")
	employeeToken := login(t, client, ts.URL, employeeEmail, "Att1234!")

	year := time.Now().UTC().Year()
	day := fmt.Sprintf("%d-06-10", year)

	// Check-out with no record for the day.
	resp := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/attendance/check-out", employeeToken, map[string]any{
		"checkOutTime": day + "T18:00:00Z",
	}, http.StatusBadRequest)
	if resp.Error == nil || resp.Error.Code != "ATT_003" {
		t.Fatalf("expected ATT_003, got %+v", resp.Error)
	}

	// 09:45 is past the 09:30 cutoff.
	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/attendance/check-in", employeeToken, map[string]any{
		"checkInTime": day + "T09:45:00Z",
	}, http.StatusCreated)
	var checkIn struct {
		IsLate bool   `json:"isLate"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(resp.Data, &checkIn); err != nil {
		t.Fatalf("failed to decode check-in: %v", err)
	}
	if !checkIn.IsLate {
		t.Fatal("expected late check-in")
	}

	// Second check-in on the same day.
	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/attendance/check-in", employeeToken, map[string]any{
		"checkInTime": day + "T10:00:00Z",
	}, http.StatusBadRequest)
	if resp.Error == nil || resp.Error.Code != "ATT_002" {
		t.Fatalf("expected ATT_002, got %+v", resp.Error)
	}

	// A check-out earlier than the stored check-in would persist a negative
	// span; it is rejected instead.
	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/attendance/check-out", employeeToken, map[string]any{
		"checkOutTime": day + "T09:00:00Z",
	}, http.StatusBadRequest)
	if resp.Error == nil || resp.Error.Code != "VAL_001" {
		t.Fatalf("expected VAL_001, got %+v", resp.Error)
	}

	// 09:45 to 21:15 is 11.5 hours, 2.5 past the standard 9.
	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/attendance/check-out", employeeToken, map[string]any{
		"checkOutTime": day + "T21:15:00Z",
	}, http.StatusOK)
	var checkOut struct {
		WorkHours  float64 `json:"workHours"`
		ExtraHours float64 `json:"extraHours"`
	}
	if err := json.Unmarshal(resp.Data, &checkOut); err != nil {
		t.Fatalf("failed to decode check-out: %v", err)
	}
	if checkOut.WorkHours != 11.5 {
		t.Fatalf("expected 11.50 work hours, got %v", checkOut.WorkHours)
	}
	if checkOut.ExtraHours != 2.5 {
		t.Fatalf("expected 2.50 extra hours, got %v", checkOut.ExtraHours)
	}

	// Second check-out on the same day.
	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/attendance/check-out", employeeToken, map[string]any{
		"checkOutTime": day + "T22:00:00Z",
	}, http.StatusBadRequest)
	if resp.Error == nil || resp.Error.Code != "ATT_004" {
		t.Fatalf("expected ATT_004, got %+v", resp.Error)
	}

	resp = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/attendance/?startDate="+day+"&endDate="+day, employeeToken, nil, http.StatusOK)
	var list struct {
		Total   int `json:"total"`
		Summary struct {
			LateDays       int     `json:"lateDays"`
			TotalWorkHours float64 `json:"totalWorkHours"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(resp.Data, &list); err != nil {
		t.Fatalf("failed to decode attendance list: %v", err)
	}
	if list.Total != 1 || list.Summary.LateDays != 1 {
		t.Fatalf("unexpected attendance list: %+v", list)
	}
	if list.Summary.TotalWorkHours != 11.5 {
		t.Fatalf("expected 11.50 total work hours, got %v", list.Summary.TotalWorkHours)
	}
}

func TestSalaryAndPayslip(t *testing.T) {
	ts, _ := startServer(t)
	client := ts.Client()

	adminToken := login(t, client, ts.URL, "admin@test.local", "ChangeMe123!")

	suffix := time.Now().UnixNano()
	employeeEmail := fmt.Sprintf("sal-%d@example.com", suffix)
	employeeID := createEmployee(t, client, ts.URL, adminToken, fmt.Sprintf("EMP-S%d", suffix), employeeEmail, "Sal1234!")

	year := time.Now().UTC().Year()
	doJSON(t, client, http.MethodPut, ts.URL+"/api/v1/salary/"+employeeID, adminToken, map[string]any{
		"basicSalary":   "50000",
		"allowances":    "7500.50",
		"deductions":    "2300.25",
		"effectiveFrom": fmt.Sprintf("%d-01-01", year),
	}, http.StatusOK)

	resp := doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/salary/"+employeeID+"/payslip", adminToken, nil, http.StatusOK)
	var slip struct {
		NetPay string `json:"netPay"`
	}
	if err := json.Unmarshal(resp.Data, &slip); err != nil {
		t.Fatalf("failed to decode payslip: %v", err)
	}
	if slip.NetPay != "55200.25" {
		t.Fatalf("expected net pay 55200.25, got %s", slip.NetPay)
	}

	// PDF variant.
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/salary/"+employeeID+"/payslip?format=pdf", nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+adminToken)
	pdfResp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer pdfResp.Body.Close()
	if pdfResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for PDF payslip, got %d", pdfResp.StatusCode)
	}
	if ct := pdfResp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %s", ct)
	}
	raw, err := io.ReadAll(pdfResp.Body)
	if err != nil {
		t.Fatalf("failed to read PDF: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF")) {
		t.Fatal("expected PDF payload")
	}
}

func TestEmployeeCannotReachAdminSurfaces(t *testing.T) {
	ts, _ := startServer(t)
	client := ts.Client()

	adminToken := login(t, client, ts.URL, "admin@test.local", "ChangeMe123!")

	suffix := time.Now().UnixNano()
	employeeEmail := fmt.Sprintf("rbac-%d@example.com", suffix)
	employeeID := createEmployee(t, client, ts.URL, adminToken, fmt.Sprintf("EMP-R%d", suffix), employeeEmail, "Rbc1234!")
	employeeToken := login(t, client, ts.URL, employeeEmail, "Rbc1234!")

	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/employees/", employeeToken, map[string]any{
		"code": "EMP-NOPE", "firstName": "Nope",
	}, http.StatusForbidden)

	doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/reports/dashboard", employeeToken, nil, http.StatusForbidden)

	doJSON(t, client, http.MethodPut, ts.URL+"/api/v1/salary/"+employeeID, employeeToken, map[string]any{
		"basicSalary": "1", "effectiveFrom": "2024-01-01",
	}, http.StatusForbidden)

	// And no token at all.
	doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/leaves/balance", "", nil, http.StatusUnauthorized)

	// Admin dashboard works.
	doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/reports/dashboard", adminToken, nil, http.StatusOK)
}

func TestEmployeeSoftDelete(t *testing.T) {
	ts, app := startServer(t)
	client := ts.Client()

	adminToken := login(t, client, ts.URL, "admin@test.local", "ChangeMe123!")

	suffix := time.Now().UnixNano()
	employeeID := createEmployee(t, client, ts.URL, adminToken, fmt.Sprintf("EMP-D%d", suffix), "", "")

	doJSON(t, client, http.MethodDelete, ts.URL+"/api/v1/employees/"+employeeID, adminToken, nil, http.StatusOK)

	// The row survives with is_active cleared.
	var isActive bool
	if err := app.DB.QueryRow(context.Background(),
		"SELECT is_active FROM employees WHERE id = $1", employeeID).Scan(&isActive); err != nil {
		t.Fatalf("failed to load employee row: %v", err)
	}
	if isActive {
		t.Fatal("expected employee to be deactivated")
	}

	resp := doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/employees/"+employeeID, adminToken, nil, http.StatusOK)
	var emp struct {
		IsActive bool `json:"isActive"`
	}
	if err := json.Unmarshal(resp.Data, &emp); err != nil {
		t.Fatalf("failed to decode employee: %v", err)
	}
	if emp.IsActive {
		t.Fatal("expected inactive employee in API view")
	}
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	resp := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	}, http.StatusOK)
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if payload.Token == "" {
		t.Fatal("expected token")
	}
	return payload.Token
}

func createEmployee(t *testing.T, client *http.Client, baseURL, token, code, email, password string) string {
	t.Helper()
	body := map[string]any{
		"code":        code,
		"firstName":   "Journey",
		"lastName":    "Tester",
		"department":  "Engineering",
		"designation": "Engineer",
		"joinDate":    "2024-01-15",
	}
	if email != "" {
		body["email"] = email
		body["password"] = password
	}
	resp := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/employees/", token, body, http.StatusCreated)
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode employee response: %v", err)
	}
	if payload.ID == "" {
		t.Fatal("expected employee id")
	}
	return payload.ID
}

type balanceView struct {
	LeaveType string  `json:"leaveType"`
	Used      float64 `json:"used"`
	Remaining float64 `json:"remaining"`
}

func leaveBalances(t *testing.T, client *http.Client, baseURL, token string) map[string]balanceView {
	t.Helper()
	resp := doJSON(t, client, http.MethodGet, baseURL+"/api/v1/leaves/balance", token, nil, http.StatusOK)
	var payload []balanceView
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode balances: %v", err)
	}
	out := make(map[string]balanceView, len(payload))
	for _, b := range payload {
		out[b.LeaveType] = b
	}
	return out
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, body any, wantStatus int) envelope {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected status %d, got %d: %s", method, url, wantStatus, resp.StatusCode, string(raw))
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return env
}
