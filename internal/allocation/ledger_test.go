package allocation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestValidateQuantity(t *testing.T) {
	assert.NoError(t, ValidateQuantity(1))
	assert.NoError(t, ValidateQuantity(40))
	assert.ErrorIs(t, ValidateQuantity(0), ErrInvalidQuantity)
	assert.ErrorIs(t, ValidateQuantity(-3), ErrInvalidQuantity)
}

func TestSubtotal(t *testing.T) {
	assert.True(t, Subtotal(dec("850.00"), 2).Equal(dec("1700.00")))
	assert.True(t, Subtotal(dec("350.00"), 1).Equal(dec("350.00")))
	assert.True(t, Subtotal(dec("9.99"), 3).Equal(dec("29.97")))
}

// The worked example from the order scenario: item A (850 x 2) plus item B
// (350 x 1) totals 2050; bumping A to 3 gives 2900; dropping B gives 2550.
func TestTotalTracksItemMutations(t *testing.T) {
	a := Subtotal(dec("850.00"), 2)
	b := Subtotal(dec("350.00"), 1)
	require.True(t, Total(a, b).Equal(dec("2050.00")))

	a = Subtotal(dec("850.00"), 3)
	require.True(t, Total(a, b).Equal(dec("2900.00")))

	require.True(t, Total(a).Equal(dec("2550.00")))
}

func TestTotalOrderIndependent(t *testing.T) {
	subs := []decimal.Decimal{dec("0.10"), dec("0.20"), dec("0.30")}
	forward := Total(subs[0], subs[1], subs[2])
	backward := Total(subs[2], subs[1], subs[0])
	assert.True(t, forward.Equal(backward))
	assert.True(t, forward.Equal(dec("0.60")))
}

func TestTotalOfNothingIsZero(t *testing.T) {
	assert.True(t, Total().Equal(decimal.Zero))
}

// Repeated add/remove cycles over cent-denominated prices must not drift,
// which is the reason money is decimal rather than float64.
func TestNoRoundingDriftAcrossCycles(t *testing.T) {
	total := decimal.Zero
	price := dec("0.10")
	for i := 0; i < 1000; i++ {
		total = total.Add(Subtotal(price, 1))
	}
	for i := 0; i < 1000; i++ {
		total = total.Sub(Subtotal(price, 1))
	}
	assert.True(t, total.Equal(decimal.Zero))
}
