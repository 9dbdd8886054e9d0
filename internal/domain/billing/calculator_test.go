package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmwaura/malipo-api/internal/domain"
	"github.com/kmwaura/malipo-api/internal/domain/billing"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func line(desc, qty, price, vat string) billing.LineInput {
	return billing.LineInput{Description: desc, Qty: d(qty), UnitPrice: d(price), VATPercent: d(vat)}
}

func TestComputeTotals_TwoLinesWithVAT(t *testing.T) {
	items := []billing.LineInput{
		line("Consulting", "1", "1000", "16"),
		line("Hosting", "1", "1000", "16"),
	}

	totals, err := billing.ComputeTotals(items)
	require.NoError(t, err)

	assert.True(t, d("2000").Equal(totals.Subtotal), "subtotal = %s", totals.Subtotal)
	assert.True(t, d("320").Equal(totals.VATTotal), "vat = %s", totals.VATTotal)
	assert.True(t, d("2320").Equal(totals.GrandTotal), "grand = %s", totals.GrandTotal)
}

func TestComputeTotals_GrandTotalIsSubtotalPlusVAT(t *testing.T) {
	items := []billing.LineInput{
		line("A", "3", "149.99", "16"),
		line("B", "0.5", "1999.95", "8"),
		line("C", "12", "75", "0"),
	}

	totals, err := billing.ComputeTotals(items)
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Add(totals.VATTotal).Equal(totals.GrandTotal))
}

func TestComputeTotals_OrderInvariant(t *testing.T) {
	items := []billing.LineInput{
		line("A", "2", "333.33", "16"),
		line("B", "7", "12.5", "8"),
		line("C", "1", "0.01", "16"),
	}
	reversed := []billing.LineInput{items[2], items[1], items[0]}

	a, err := billing.ComputeTotals(items)
	require.NoError(t, err)
	b, err := billing.ComputeTotals(reversed)
	require.NoError(t, err)

	assert.True(t, a.Subtotal.Equal(b.Subtotal))
	assert.True(t, a.VATTotal.Equal(b.VATTotal))
	assert.True(t, a.GrandTotal.Equal(b.GrandTotal))
}

func TestComputeTotals_ZeroQtyContributesZero(t *testing.T) {
	items := []billing.LineInput{
		line("Free sample", "0", "500", "16"),
		line("Billed", "1", "100", "0"),
	}

	totals, err := billing.ComputeTotals(items)
	require.NoError(t, err)

	assert.True(t, d("100").Equal(totals.GrandTotal))
}

func TestComputeTotals_RepeatedCentsStayExact(t *testing.T) {
	// 0.1 summed ten times must be exactly 1, not 0.9999...
	items := make([]billing.LineInput, 0, 10)
	for i := 0; i < 10; i++ {
		items = append(items, line("tick", "1", "0.1", "0"))
	}

	totals, err := billing.ComputeTotals(items)
	require.NoError(t, err)

	assert.True(t, d("1").Equal(totals.GrandTotal), "grand = %s", totals.GrandTotal)
}

func TestLineTotal(t *testing.T) {
	got := billing.LineTotal(line("X", "2", "1000", "16"))
	assert.True(t, d("2320").Equal(got), "line total = %s", got)
}

func TestValidateItems_Rejections(t *testing.T) {
	cases := map[string][]billing.LineInput{
		"empty set":       {},
		"blank desc":      {line("   ", "1", "10", "0")},
		"negative qty":    {line("A", "-1", "10", "0")},
		"negative price":  {line("A", "1", "-10", "0")},
		"negative vat":    {line("A", "1", "10", "-1")},
		"vat above range": {line("A", "1", "10", "100.01")},
	}

	for name, items := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := billing.ComputeTotals(items)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestValidateItems_BoundaryVATAccepted(t *testing.T) {
	assert.NoError(t, billing.ValidateItems([]billing.LineInput{line("A", "1", "10", "0")}))
	assert.NoError(t, billing.ValidateItems([]billing.LineInput{line("A", "1", "10", "100")}))
}
