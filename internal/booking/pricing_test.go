package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

func TestPriceOnlineNoDiscount(t *testing.T) {
	// price 1000.00, 1 room, 2 nights: 2 * 100000 * 1.12 = 224000 cents.
	in := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	out := in.AddDate(0, 0, 2)

	q := Price(100000, in, out, 1, model.PayOnline, nil)

	require.EqualValues(t, 2, q.Nights)
	require.EqualValues(t, 224000, q.OriginalAmountCents)
	require.EqualValues(t, 0, q.DiscountTotalCents)
	require.EqualValues(t, 224000, q.FinalAmountCents)
	require.EqualValues(t, 224000, q.AmountPaidCents)
	require.Equal(t, model.PaymentPaid, q.PaymentStatus)
}

func TestPriceCashDeposit(t *testing.T) {
	// Cash collects a 5% deposit: 224000 * 5% = 11200 cents.
	in := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	out := in.AddDate(0, 0, 2)

	q := Price(100000, in, out, 1, model.PayCash, nil)

	require.EqualValues(t, 224000, q.FinalAmountCents)
	require.EqualValues(t, 11200, q.AmountPaidCents)
	require.Equal(t, model.PaymentPartial, q.PaymentStatus)
}

func TestPriceAppliesDiscountSnapshot(t *testing.T) {
	in := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	out := in.AddDate(0, 0, 2)

	q := Price(100000, in, out, 1, model.PayOnline, []DiscountInput{
		{DiscountID: 7, Name: "Weekend", Percentage: 10},
		{DiscountID: 9, Name: "Season", Percentage: 5},
	})

	require.EqualValues(t, 224000, q.OriginalAmountCents)
	require.EqualValues(t, 22400+11200, q.DiscountTotalCents)
	require.EqualValues(t, 224000-33600, q.FinalAmountCents)
	require.EqualValues(t, q.FinalAmountCents, q.AmountPaidCents)

	require.Len(t, q.Discounts, 2)
	require.Equal(t, model.AppliedDiscount{DiscountID: 7, Name: "Weekend", Percentage: 10, AmountCents: 22400}, q.Discounts[0])
	require.Equal(t, model.AppliedDiscount{DiscountID: 9, Name: "Season", Percentage: 5, AmountCents: 11200}, q.Discounts[1])
}

func TestPriceRoomQuantityMultiplies(t *testing.T) {
	in := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	out := in.AddDate(0, 0, 2)

	q := Price(100000, in, out, 3, model.PayOnline, nil)

	require.EqualValues(t, 3*224000, q.OriginalAmountCents)
}
