package accounting_test

import (
	"testing"
	"time"

	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	"github.com/SscSPs/pos_shift_app/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyAccumulator_EmitsDaysInOrder(t *testing.T) {
	manila := time.FixedZone("PHT", 8*60*60)
	acc := accounting.NewDailyAccumulator(nil, manila)

	// 2024-03-01 23:30 PHT is still 15:30 UTC on the same day; 16:30 UTC is the next local day.
	d1 := time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 1, 16, 30, 0, 0, time.UTC)

	assert.Nil(t, acc.Add(domain.Transaction{Item: "Printing", Total: dec("100"), Timestamp: d1}))
	assert.Nil(t, acc.Add(domain.Transaction{Item: domain.ItemExpenses, ExpenseType: "Supplies", Total: dec("30"), Timestamp: d1}))
	assert.Nil(t, acc.Add(domain.Transaction{Item: domain.ItemExpenses, ExpenseType: "Equipment", Total: dec("5000"), Timestamp: d1}))
	assert.Nil(t, acc.Add(domain.Transaction{Item: "Printing", Total: dec("1"), Timestamp: d1, IsDeleted: true}))
	assert.Nil(t, acc.Add(domain.Transaction{Item: domain.ItemNewDebt, Total: dec("80"), Timestamp: d1}))

	day1 := acc.Add(domain.Transaction{Item: "Scanning", Total: dec("20"), Timestamp: d2})
	require.NotNil(t, day1)
	assert.Equal(t, "2024-03-01", day1.Date)
	assertDec(t, "100", day1.Sales, "sales")
	assertDec(t, "30", day1.Expenses, "expenses")
	assert.Equal(t, 4, day1.TxCount)

	day2 := acc.Flush()
	require.NotNil(t, day2)
	assert.Equal(t, "2024-03-02", day2.Date)
	assertDec(t, "20", day2.Sales, "sales")
	assert.Nil(t, acc.Flush())
}
