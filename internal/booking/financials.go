package booking

import "math"

// Financials is the money breakdown derived from a draft.
// The damage deposit is a separately tracked refundable hold and is never
// folded into TotalAmount.
type Financials struct {
	Subtotal        float64 `json:"subtotal"`
	TotalAmount     float64 `json:"totalAmount"`
	RemainingAmount float64 `json:"remainingAmount"`
}

// DeriveFinancials computes subtotal, total and remaining amounts.
// Pure; recomputed on every change to any of its inputs.
func DeriveFinancials(quantity int, unitPrice, transportFee, depositAmount float64) Financials {
	subtotal := float64(quantity) * unitPrice
	total := subtotal + transportFee
	return Financials{
		Subtotal:        subtotal,
		TotalAmount:     total,
		RemainingAmount: math.Max(0, total-depositAmount),
	}
}

// DeriveTransportFee sums the per-leg fees for the selected transport legs.
// An unloaded fee config behaves as zero fees.
func DeriveTransportFee(pickup, dropoff bool, fees TransportFees) float64 {
	var fee float64
	if pickup {
		fee += fees.PickupFee
	}
	if dropoff {
		fee += fees.DropoffFee
	}
	return fee
}
