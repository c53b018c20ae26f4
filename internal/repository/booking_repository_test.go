package repository

import (
	"testing"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

func TestSumRevenue(t *testing.T) {
	list := []BookingDetail{
		{Booking: model.Booking{FinalAmountCents: 224000, AmountPaidCents: 224000}},
		{Booking: model.Booking{FinalAmountCents: 112000, AmountPaidCents: 5600}},
		{Booking: model.Booking{FinalAmountCents: 50000, AmountPaidCents: 0}},
	}
	revenue, collected := sumRevenue(list)
	if revenue != 386000 {
		t.Fatalf("revenue = %d, want 386000", revenue)
	}
	if collected != 229600 {
		t.Fatalf("collected = %d, want 229600", collected)
	}

	revenue, collected = sumRevenue(nil)
	if revenue != 0 || collected != 0 {
		t.Fatalf("empty listing totals = %d/%d, want 0/0", revenue, collected)
	}
}
