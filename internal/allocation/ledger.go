package allocation

import "github.com/shopspring/decimal"

// Monetary arithmetic uses shopspring decimal values throughout so that
// repeated add/update/remove cycles never accumulate binary rounding
// drift. Unit prices are snapshotted onto line items when they are
// created; subtotals and totals are always derived from those snapshots,
// never from a live catalog lookup.

// ValidateQuantity rejects line item quantities below one.
func ValidateQuantity(q int) error {
	if q < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

// Subtotal computes quantity times the snapshotted unit price.
func Subtotal(unitPrice decimal.Decimal, quantity uint32) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// Total sums line item subtotals. Addition over decimals is commutative,
// so the order of the inputs does not matter.
func Total(subtotals ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, s := range subtotals {
		total = total.Add(s)
	}
	return total
}
