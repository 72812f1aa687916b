package booking

import (
	"math"
	"testing"
)

func TestDeriveFinancials(t *testing.T) {
	cases := []struct {
		name          string
		quantity      int
		unitPrice     float64
		transportFee  float64
		deposit       float64
		wantSubtotal  float64
		wantTotal     float64
		wantRemaining float64
	}{
		{"plain", 3, 1500, 0, 0, 4500, 4500, 4500},
		{"with transport", 2, 1000, 500, 0, 2000, 2500, 2500},
		{"partial deposit", 2, 1000, 500, 1000, 2000, 2500, 1500},
		{"deposit covers total", 1, 800, 200, 1000, 800, 1000, 0},
		{"overpaid clamps to zero", 1, 800, 0, 5000, 800, 800, 0},
		{"zero quantity price", 4, 0, 0, 0, 0, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveFinancials(tc.quantity, tc.unitPrice, tc.transportFee, tc.deposit)
			if got.Subtotal != tc.wantSubtotal {
				t.Errorf("subtotal: expected %v got %v", tc.wantSubtotal, got.Subtotal)
			}
			if got.TotalAmount != tc.wantTotal {
				t.Errorf("total: expected %v got %v", tc.wantTotal, got.TotalAmount)
			}
			if got.RemainingAmount != tc.wantRemaining {
				t.Errorf("remaining: expected %v got %v", tc.wantRemaining, got.RemainingAmount)
			}
		})
	}
}

func TestDeriveFinancialsIdentity(t *testing.T) {
	// remaining == max(0, quantity*unitPrice + transportFee - deposit)
	// must hold across a spread of non-negative inputs.
	for _, q := range []int{1, 2, 7, 30} {
		for _, price := range []float64{0, 99.5, 1500} {
			for _, fee := range []float64{0, 250} {
				for _, dep := range []float64{0, 100, 5000, 100000} {
					got := DeriveFinancials(q, price, fee, dep)
					want := math.Max(0, float64(q)*price+fee-dep)
					if got.RemainingAmount != want {
						t.Fatalf("q=%d price=%v fee=%v dep=%v: remaining %v, want %v",
							q, price, fee, dep, got.RemainingAmount, want)
					}
				}
			}
		}
	}
}

func TestDeriveTransportFee(t *testing.T) {
	fees := TransportFees{PickupFee: 300, DropoffFee: 450}

	cases := []struct {
		name            string
		pickup, dropoff bool
		fees            TransportFees
		want            float64
	}{
		{"neither", false, false, fees, 0},
		{"pickup only", true, false, fees, 300},
		{"dropoff only", false, true, fees, 450},
		{"both legs", true, true, fees, 750},
		{"unloaded config is free", true, true, TransportFees{}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveTransportFee(tc.pickup, tc.dropoff, tc.fees); got != tc.want {
				t.Errorf("expected %v got %v", tc.want, got)
			}
		})
	}
}
