package salary

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNetPay(t *testing.T) {
	basic := decimal.NewFromFloat(50000)
	allowances := decimal.NewFromFloat(7500.50)
	deductions := decimal.NewFromFloat(2300.25)

	got := NetPay(basic, allowances, deductions)
	want := decimal.NewFromFloat(55200.25)
	if !got.Equal(want) {
		t.Fatalf("NetPay = %s, want %s", got, want)
	}
}

func TestNetPayRoundsToCents(t *testing.T) {
	got := NetPay(decimal.NewFromFloat(100), decimal.RequireFromString("0.005"), decimal.Zero)
	want := decimal.RequireFromString("100.01")
	if !got.Equal(want) {
		t.Fatalf("NetPay = %s, want %s", got, want)
	}
}

func TestNetPayCanGoNegative(t *testing.T) {
	got := NetPay(decimal.NewFromFloat(100), decimal.Zero, decimal.NewFromFloat(150))
	if !got.Equal(decimal.NewFromFloat(-50)) {
		t.Fatalf("NetPay = %s, want -50", got)
	}
}
