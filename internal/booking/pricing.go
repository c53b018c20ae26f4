package booking

import (
	"math"
	"time"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

// taxRatePercent is the fixed tax applied on top of the room rate.
const taxRatePercent = 12

// cashDepositPercent is collected up front on Cash bookings; the
// remainder is settled at checkout.
const cashDepositPercent = 5

// DiscountInput is one active discount to freeze onto a booking.  The
// caller (admin tooling or the discounts collaborator service) decides
// applicability; pricing only computes the amounts.
type DiscountInput struct {
	DiscountID uint64
	Name       string
	Percentage float64
}

// Quote is the fully computed price breakdown for a booking.
type Quote struct {
	Nights              int64
	OriginalAmountCents int64
	DiscountTotalCents  int64
	FinalAmountCents    int64
	AmountPaidCents     int64
	PaymentStatus       model.PaymentStatus
	Discounts           []model.AppliedDiscount
}

// Price computes the full amount breakdown for a stay.  All money is
// integer cents: originalAmount = nights * rate * quantity plus 12%
// tax, discounts are percentages of the original amount, and Cash
// bookings collect a 5% deposit (PARTIAL) while Online bookings are
// paid in full (PAID).
func Price(priceCents int64, checkIn, checkOut time.Time, quantity uint32, method model.PaymentMethod, discounts []DiscountInput) Quote {
	nights := Nights(checkIn, checkOut)
	base := nights * priceCents * int64(quantity)
	original := base * (100 + taxRatePercent) / 100

	var discountTotal int64
	applied := make([]model.AppliedDiscount, 0, len(discounts))
	for _, d := range discounts {
		amount := int64(math.Round(float64(original) * d.Percentage / 100))
		discountTotal += amount
		applied = append(applied, model.AppliedDiscount{
			DiscountID:  d.DiscountID,
			Name:        d.Name,
			Percentage:  d.Percentage,
			AmountCents: amount,
		})
	}

	final := original - discountTotal
	paid := final
	status := model.PaymentPaid
	if method == model.PayCash {
		paid = final * cashDepositPercent / 100
		status = model.PaymentPartial
	}
	return Quote{
		Nights:              nights,
		OriginalAmountCents: original,
		DiscountTotalCents:  discountTotal,
		FinalAmountCents:    final,
		AmountPaidCents:     paid,
		PaymentStatus:       status,
		Discounts:           applied,
	}
}
