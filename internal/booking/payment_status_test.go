package booking

import "testing"

func TestDerivePaymentStatus(t *testing.T) {
	cases := []struct {
		name    string
		deposit float64
		total   float64
		current PaymentStatus
		manual  *PaymentStatus
		want    PaymentStatus
	}{
		{"zero total", 0, 0, PaymentStatusUnpaid, nil, PaymentStatusUnpaid},
		{"no deposit", 0, 1000, PaymentStatusUnpaid, nil, PaymentStatusUnpaid},
		{"partial deposit", 400, 1000, PaymentStatusUnpaid, nil, PaymentStatusPartial},
		{"deposit equals total", 1000, 1000, PaymentStatusPartial, nil, PaymentStatusPaid},
		{"deposit above total", 1200, 1000, PaymentStatusPartial, nil, PaymentStatusPaid},
		{"overdue is sticky", 1000, 1000, PaymentStatusOverdue, nil, PaymentStatusOverdue},
		{"manual clears overdue", 0, 1000, PaymentStatusOverdue, statusPtr(PaymentStatusUnpaid), PaymentStatusUnpaid},
		{"manual wins over inference", 1000, 1000, PaymentStatusPartial, statusPtr(PaymentStatusUnpaid), PaymentStatusUnpaid},
		{"manual can set overdue", 500, 1000, PaymentStatusPartial, statusPtr(PaymentStatusOverdue), PaymentStatusOverdue},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DerivePaymentStatus(tc.deposit, tc.total, tc.current, tc.manual)
			if got != tc.want {
				t.Errorf("expected %s got %s", tc.want, got)
			}
		})
	}
}

func TestPaymentStatusMonotonic(t *testing.T) {
	// Growing the deposit from 0 to beyond the total must walk
	// unpaid -> partial -> paid without ever regressing.
	const total = 1000.0
	rank := map[PaymentStatus]int{
		PaymentStatusUnpaid:  0,
		PaymentStatusPartial: 1,
		PaymentStatusPaid:    2,
	}

	current := PaymentStatusUnpaid
	prev := -1
	for dep := 0.0; dep <= total+200; dep += 50 {
		current = DerivePaymentStatus(dep, total, current, nil)
		r, ok := rank[current]
		if !ok {
			t.Fatalf("deposit %v produced unexpected status %s", dep, current)
		}
		if r < prev {
			t.Fatalf("status regressed at deposit %v: %s", dep, current)
		}
		prev = r
	}
	if current != PaymentStatusPaid {
		t.Errorf("expected paid after full deposit, got %s", current)
	}
}

func TestOverdueStickyAcrossRecomputes(t *testing.T) {
	current := PaymentStatusOverdue
	for _, dep := range []float64{0, 500, 1000, 2000} {
		current = DerivePaymentStatus(dep, 1000, current, nil)
		if current != PaymentStatusOverdue {
			t.Fatalf("deposit %v moved status off overdue: %s", dep, current)
		}
	}
}

func statusPtr(s PaymentStatus) *PaymentStatus { return &s }
