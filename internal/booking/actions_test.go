package booking

import "testing"

func staffEnv() Env {
	return Env{Role: RoleEmployee, Fees: TransportFees{PickupFee: 300, DropoffFee: 450}}
}

func draftWithVehicle(t *testing.T, env Env) Draft {
	t.Helper()
	d := NewDraft(RentalTypeDaily)
	d, _ = Apply(d, SetVehicle{ID: 7, AutoUnitPrice: 1500}, env)
	d, _ = Apply(d, SetDates{StartDate: "2024-03-01", EndDate: "2024-03-04"}, env)
	return d
}

func TestApplyDerivesFinancials(t *testing.T) {
	env := staffEnv()
	d := draftWithVehicle(t, env)

	if d.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", d.Quantity)
	}
	if d.TotalAmount != 4500 {
		t.Fatalf("expected total 4500, got %v", d.TotalAmount)
	}

	d, _ = Apply(d, SetTransportOptions{Pickup: true, Dropoff: true}, env)
	if d.TransportFee != 750 {
		t.Errorf("expected transport fee 750, got %v", d.TransportFee)
	}
	if d.TotalAmount != 5250 {
		t.Errorf("expected total 5250, got %v", d.TotalAmount)
	}

	d, _ = Apply(d, SetDeposit{Value: 2000}, env)
	if d.RemainingAmount != 3250 {
		t.Errorf("expected remaining 3250, got %v", d.RemainingAmount)
	}
	if d.PaymentStatus != PaymentStatusPartial {
		t.Errorf("expected partial, got %s", d.PaymentStatus)
	}
}

func TestApplyDamageDepositStaysOutOfTotal(t *testing.T) {
	env := staffEnv()
	d := draftWithVehicle(t, env)

	before := d.TotalAmount
	d, _ = Apply(d, SetDamageDeposit{Value: 10000}, env)
	if d.TotalAmount != before {
		t.Errorf("damage deposit leaked into total: %v -> %v", before, d.TotalAmount)
	}
	if d.DamageDeposit != 10000 {
		t.Errorf("expected damage deposit 10000, got %v", d.DamageDeposit)
	}
}

func TestApplyManualStatusIsOneShot(t *testing.T) {
	env := staffEnv()
	d := draftWithVehicle(t, env)

	// Manual action applies verbatim even when inference disagrees.
	d, _ = Apply(d, SetPaymentStatus{Value: PaymentStatusOverdue}, env)
	if d.PaymentStatus != PaymentStatusOverdue {
		t.Fatalf("expected overdue, got %s", d.PaymentStatus)
	}

	// Subsequent automatic recomputes must not clear it.
	d, _ = Apply(d, SetDeposit{Value: 99999}, env)
	if d.PaymentStatus != PaymentStatusOverdue {
		t.Errorf("deposit change cleared sticky overdue: %s", d.PaymentStatus)
	}

	// Only another manual action can.
	d, _ = Apply(d, SetPaymentStatus{Value: PaymentStatusPaid}, env)
	if d.PaymentStatus != PaymentStatusPaid {
		t.Errorf("expected paid after manual action, got %s", d.PaymentStatus)
	}
}

func TestApplyStaffOverrideHeldBack(t *testing.T) {
	env := staffEnv()
	d := draftWithVehicle(t, env)

	d, _ = Apply(d, SetUnitPrice{Value: 1200}, env)
	if d.ApprovalStatus != ApprovalStatusPending {
		t.Fatalf("expected pending, got %s", d.ApprovalStatus)
	}
	// Charged now from the auto price; requested total parked for review.
	if d.TotalAmount != 4500 {
		t.Errorf("expected total 4500 from auto price, got %v", d.TotalAmount)
	}
	if d.PendingTotalRequest == nil || *d.PendingTotalRequest != 3600 {
		t.Errorf("expected pending total 3600, got %v", d.PendingTotalRequest)
	}

	// Reverting the price does not silently drop the pending review.
	d, _ = Apply(d, SetUnitPrice{Value: 1500}, env)
	if d.ApprovalStatus != ApprovalStatusPending {
		t.Errorf("pending regressed to %s", d.ApprovalStatus)
	}
}

func TestApplyStaffEditOnApprovedKeepsManualPrice(t *testing.T) {
	env := staffEnv()
	d := NewDraft(RentalTypeDaily)
	d, _ = Apply(d, SetVehicle{ID: 7, AutoUnitPrice: 1500}, env)
	d, _ = Apply(d, SetDates{StartDate: "2024-03-01", EndDate: "2024-03-03"}, env)
	d.ApprovalStatus = ApprovalStatusApproved

	// A staff edit cannot regress approved and must not revert the
	// charged price to the auto rate while the status says approved.
	d, _ = Apply(d, SetUnitPrice{Value: 1200}, env)

	if d.ApprovalStatus != ApprovalStatusApproved {
		t.Fatalf("expected approved, got %s", d.ApprovalStatus)
	}
	if d.TotalAmount != 2400 {
		t.Errorf("expected total 2400 from the approved manual price, got %v", d.TotalAmount)
	}
	if d.PendingTotalRequest != nil {
		t.Errorf("expected no pending total, got %v", *d.PendingTotalRequest)
	}

	// Other edits recompute from the manual price too.
	d, _ = Apply(d, SetDates{StartDate: "2024-03-01", EndDate: "2024-03-04"}, env)
	if d.TotalAmount != 3600 {
		t.Errorf("expected total 3600 after extending, got %v", d.TotalAmount)
	}
}

func TestApplyAdminOverrideApplies(t *testing.T) {
	env := Env{Role: RoleOwner, Fees: TransportFees{}}
	d := draftWithVehicle(t, env)

	d, _ = Apply(d, SetUnitPrice{Value: 1200}, env)
	if d.ApprovalStatus != ApprovalStatusApproved {
		t.Fatalf("expected approved, got %s", d.ApprovalStatus)
	}
	if d.TotalAmount != 3600 {
		t.Errorf("expected total 3600 from manual price, got %v", d.TotalAmount)
	}
	if d.PendingTotalRequest != nil {
		t.Errorf("expected no pending total, got %v", *d.PendingTotalRequest)
	}
}

func TestApplyAdjustsStartWhenEndPrecedes(t *testing.T) {
	env := staffEnv()
	d := NewDraft(RentalTypeDaily)
	d, _ = Apply(d, SetVehicle{ID: 7, AutoUnitPrice: 1000}, env)

	d, advisories := Apply(d, SetDates{StartDate: "2024-03-10", EndDate: "2024-03-05"}, env)
	if len(advisories) == 0 {
		t.Fatal("expected an advisory about the adjusted start")
	}
	if d.StartDate != "2024-03-04" {
		t.Errorf("expected start pulled to 2024-03-04, got %s", d.StartDate)
	}
	if d.Quantity != 1 {
		t.Errorf("expected quantity 1 after adjustment, got %d", d.Quantity)
	}
}

func TestApplyHourlyOvernightRollsEndDate(t *testing.T) {
	env := staffEnv()
	d := NewDraft(RentalTypeHourly)
	d, _ = Apply(d, SetVehicle{ID: 3, AutoUnitPrice: 200}, env)

	d, _ = Apply(d, SetDates{
		StartDate: "2024-01-01", StartTime: "23:00",
		EndDate: "2024-01-01", EndTime: "00:30",
	}, env)

	if d.EndDate != "2024-01-02" {
		t.Errorf("expected end date rolled to 2024-01-02, got %s", d.EndDate)
	}
	if !d.Overnight {
		t.Error("expected overnight flag")
	}
	if d.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", d.Quantity)
	}
}

func TestApplySetVehicleSyncsPrices(t *testing.T) {
	env := staffEnv()
	d := NewDraft(RentalTypeDaily)
	d, _ = Apply(d, SetVehicle{ID: 9, AutoUnitPrice: 2500}, env)

	if d.UnitPrice != 2500 || d.AutoUnitPrice != 2500 {
		t.Errorf("expected both prices 2500, got manual=%v auto=%v", d.UnitPrice, d.AutoUnitPrice)
	}
	if d.ApprovalStatus != ApprovalStatusAuto {
		t.Errorf("expected auto, got %s", d.ApprovalStatus)
	}
}
