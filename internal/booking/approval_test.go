package booking

import "testing"

func TestDeriveApprovalNoOverride(t *testing.T) {
	// Equal prices mean auto for every role, known or not.
	for _, role := range []Role{RoleEmployee, RoleGuide, RoleAdmin, RoleOwner, Role("intern")} {
		got := DeriveApproval(1500, 1500, role, 2, 0)
		if got.Status != ApprovalStatusAuto {
			t.Errorf("role %s: expected auto, got %s", role, got.Status)
		}
		if got.EffectiveTotal != 3000 {
			t.Errorf("role %s: expected effective total 3000, got %v", role, got.EffectiveTotal)
		}
		if got.PendingTotalRequest != nil {
			t.Errorf("role %s: expected no pending total", role)
		}
	}
}

func TestDeriveApprovalStaffOverride(t *testing.T) {
	got := DeriveApproval(1200, 1500, RoleEmployee, 2, 0)

	if got.Status != ApprovalStatusPending {
		t.Fatalf("expected pending, got %s", got.Status)
	}
	// The override is held back: the auto price is charged now.
	if got.EffectiveTotal != 3000 {
		t.Errorf("expected effective total 3000, got %v", got.EffectiveTotal)
	}
	if got.EffectiveUnitPrice != 1500 {
		t.Errorf("expected effective unit price 1500, got %v", got.EffectiveUnitPrice)
	}
	if got.PendingTotalRequest == nil || *got.PendingTotalRequest != 2400 {
		t.Errorf("expected pending total 2400, got %v", got.PendingTotalRequest)
	}
}

func TestDeriveApprovalAdminOverride(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleOwner} {
		got := DeriveApproval(1200, 1500, role, 2, 0)
		if got.Status != ApprovalStatusApproved {
			t.Errorf("role %s: expected approved, got %s", role, got.Status)
		}
		if got.EffectiveTotal != 2400 {
			t.Errorf("role %s: expected effective total 2400, got %v", role, got.EffectiveTotal)
		}
		if got.PendingTotalRequest != nil {
			t.Errorf("role %s: expected no pending total", role)
		}
	}
}

func TestDeriveApprovalUnknownRole(t *testing.T) {
	// Unrecognized roles are gated like staff.
	got := DeriveApproval(900, 1000, Role("contractor"), 1, 100)
	if got.Status != ApprovalStatusPending {
		t.Fatalf("expected pending, got %s", got.Status)
	}
	if got.EffectiveTotal != 1100 {
		t.Errorf("expected effective total 1100, got %v", got.EffectiveTotal)
	}
	if got.PendingTotalRequest == nil || *got.PendingTotalRequest != 1000 {
		t.Errorf("expected pending total 1000, got %v", got.PendingTotalRequest)
	}
}

func TestDeriveApprovalTransportFeeIncluded(t *testing.T) {
	got := DeriveApproval(1200, 1500, RoleGuide, 2, 500)
	if got.EffectiveTotal != 3500 {
		t.Errorf("expected effective total 3500, got %v", got.EffectiveTotal)
	}
	if got.PendingTotalRequest == nil || *got.PendingTotalRequest != 2900 {
		t.Errorf("expected pending total 2900, got %v", got.PendingTotalRequest)
	}
}

func TestCanTransitionApproval(t *testing.T) {
	cases := []struct {
		from, to ApprovalStatus
		want     bool
	}{
		{ApprovalStatusAuto, ApprovalStatusAuto, true},
		{ApprovalStatusAuto, ApprovalStatusPending, true},
		{ApprovalStatusAuto, ApprovalStatusApproved, true},
		{ApprovalStatusPending, ApprovalStatusApproved, true},
		{ApprovalStatusPending, ApprovalStatusAuto, false},
		{ApprovalStatusApproved, ApprovalStatusAuto, false},
		{ApprovalStatusApproved, ApprovalStatusPending, false},
	}
	for _, tc := range cases {
		if got := CanTransitionApproval(tc.from, tc.to); got != tc.want {
			t.Errorf("%s -> %s: expected %v got %v", tc.from, tc.to, tc.want, got)
		}
	}
}
