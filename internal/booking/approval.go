package booking

// Approval is the result of the price-override gate.
type Approval struct {
	Status ApprovalStatus `json:"approvalStatus"`

	// EffectiveUnitPrice is the unit price actually charged now. For a
	// staff override held back pending review this is the auto price.
	EffectiveUnitPrice float64 `json:"effectiveUnitPrice"`
	EffectiveTotal     float64 `json:"effectiveTotal"`

	// PendingTotalRequest is the total that would result from the manual
	// price, stored for admin review. Nil unless Status is pending.
	PendingTotalRequest *float64 `json:"pendingTotalRequest,omitempty"`
}

// DeriveApproval decides whether a manually entered unit price needs admin
// approval. Override detection uses exact numeric inequality, matching the
// behavior this replaces; see DESIGN.md for the epsilon question.
//
// Staff roles (and unrecognized roles, conservatively) get the override held
// back: the effective total is recomputed from the auto price and the manual
// total is parked in PendingTotalRequest. Admins and owners apply the
// override immediately.
func DeriveApproval(manualUnitPrice, autoUnitPrice float64, role Role, quantity int, transportFee float64) Approval {
	if manualUnitPrice == autoUnitPrice {
		return Approval{
			Status:             ApprovalStatusAuto,
			EffectiveUnitPrice: manualUnitPrice,
			EffectiveTotal:     float64(quantity)*manualUnitPrice + transportFee,
		}
	}

	if role.CanApprove() {
		return Approval{
			Status:             ApprovalStatusApproved,
			EffectiveUnitPrice: manualUnitPrice,
			EffectiveTotal:     float64(quantity)*manualUnitPrice + transportFee,
		}
	}

	pending := float64(quantity)*manualUnitPrice + transportFee
	return Approval{
		Status:              ApprovalStatusPending,
		EffectiveUnitPrice:  autoUnitPrice,
		EffectiveTotal:      float64(quantity)*autoUnitPrice + transportFee,
		PendingTotalRequest: &pending,
	}
}

// approvalTransitions enumerates the legal approval status moves. Pending
// and approved never regress automatically; a separate review workflow
// resolves pending rentals.
var approvalTransitions = map[ApprovalStatus]map[ApprovalStatus]struct{}{
	ApprovalStatusAuto: {
		ApprovalStatusAuto:     {},
		ApprovalStatusPending:  {},
		ApprovalStatusApproved: {},
	},
	ApprovalStatusPending: {
		ApprovalStatusPending:  {},
		ApprovalStatusApproved: {},
	},
	ApprovalStatusApproved: {
		ApprovalStatusApproved: {},
	},
}

// CanTransitionApproval reports whether moving between the two approval
// statuses is allowed.
func CanTransitionApproval(from, to ApprovalStatus) bool {
	next, ok := approvalTransitions[from]
	if !ok {
		return false
	}
	_, ok = next[to]
	return ok
}
