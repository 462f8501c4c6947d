package salary

import "github.com/shopspring/decimal"

// NetPay is basic plus allowances minus deductions, rounded to cents. Flat
// subtraction only; no tax schedule applies here.
func NetPay(basic, allowances, deductions decimal.Decimal) decimal.Decimal {
	return basic.Add(allowances).Sub(deductions).Round(2)
}
