package booking

// Env carries the ambient inputs a recompute needs: who is editing and the
// configured transport fees. Fees left zero behave as an unloaded config.
type Env struct {
	Role Role
	Fees TransportFees
}

// Advisory is a non-fatal notice surfaced to the user after an action,
// such as an automatic start-time adjustment.
type Advisory string

// Action is a tagged user command against a draft. Modeling commands as
// types lets the reducer decide one-shot suppression (manual payment status)
// from the action itself rather than an out-of-band flag.
type Action interface{ isAction() }

// SetRentalType switches between hourly and daily billing.
type SetRentalType struct{ Value RentalType }

// SetDates replaces the rental period. Empty times keep their defaults.
type SetDates struct {
	StartDate, StartTime string
	EndDate, EndTime     string
}

// SetVehicle selects a vehicle and the system-computed unit price derived
// from its rate. The manual unit price follows the auto price until the
// user edits it.
type SetVehicle struct {
	ID            uint
	AutoUnitPrice float64
}

// SetUnitPrice is a manual price edit by the user.
type SetUnitPrice struct{ Value float64 }

// SetDeposit changes the payment deposit.
type SetDeposit struct{ Value float64 }

// SetDamageDeposit changes the separately tracked damage deposit hold.
type SetDamageDeposit struct{ Value float64 }

// SetTransportOptions toggles the pickup/dropoff transport legs.
type SetTransportOptions struct{ Pickup, Dropoff bool }

// SetPaymentStatus is the explicit status button: the chosen status is
// applied verbatim and automatic inference is suppressed for this change.
type SetPaymentStatus struct{ Value PaymentStatus }

// SetCustomer attaches the resolved customer identity.
type SetCustomer struct{ ID uint }

func (SetRentalType) isAction()       {}
func (SetDates) isAction()            {}
func (SetVehicle) isAction()          {}
func (SetUnitPrice) isAction()        {}
func (SetDeposit) isAction()          {}
func (SetDamageDeposit) isAction()    {}
func (SetTransportOptions) isAction() {}
func (SetPaymentStatus) isAction()    {}
func (SetCustomer) isAction()         {}

// Apply runs one user action against a draft and recomputes every dependent
// field. The input draft is not mutated.
func Apply(d Draft, a Action, env Env) (Draft, []Advisory) {
	var manual *PaymentStatus

	switch act := a.(type) {
	case SetRentalType:
		d.RentalType = act.Value
	case SetDates:
		d.StartDate, d.StartTime = act.StartDate, act.StartTime
		d.EndDate, d.EndTime = act.EndDate, act.EndTime
	case SetVehicle:
		d.VehicleID = act.ID
		d.AutoUnitPrice = act.AutoUnitPrice
		d.UnitPrice = act.AutoUnitPrice
	case SetUnitPrice:
		d.UnitPrice = act.Value
	case SetDeposit:
		d.DepositAmount = act.Value
	case SetDamageDeposit:
		d.DamageDeposit = act.Value
	case SetTransportOptions:
		d.TransportPickup, d.TransportDropoff = act.Pickup, act.Dropoff
	case SetPaymentStatus:
		v := act.Value
		manual = &v
	case SetCustomer:
		d.CustomerID = act.ID
	}

	return recompute(d, env, manual)
}

// Recompute re-derives every dependent field without applying an action.
// Used when a persisted rental is loaded back into a draft for editing.
func Recompute(d Draft, env Env) (Draft, []Advisory) {
	return recompute(d, env, nil)
}

func recompute(d Draft, env Env, manual *PaymentStatus) (Draft, []Advisory) {
	var advisories []Advisory

	if d.StartDate != "" && d.EndDate != "" {
		sched, ok := DeriveSchedule(d.RentalType, d.StartDate, d.StartTime, d.EndDate, d.EndTime)
		if !ok {
			// End precedes start outside the same-day overnight case:
			// pull the start back one unit and retry once.
			if sd, st, err := AdjustStartBackward(d.RentalType, d.EndDate, d.EndTime); err == nil {
				d.StartDate, d.StartTime = sd, st
				advisories = append(advisories, "start time was automatically adjusted")
				sched, ok = DeriveSchedule(d.RentalType, d.StartDate, d.StartTime, d.EndDate, d.EndTime)
			}
		}
		if ok {
			d.Quantity = sched.Quantity
			d.EndDate = sched.EndDate
			d.Overnight = sched.Overnight
		}
	}
	if d.Quantity < 1 {
		d.Quantity = 1
	}

	d.TransportFee = DeriveTransportFee(d.TransportPickup, d.TransportDropoff, env.Fees)

	approval := DeriveApproval(d.UnitPrice, d.AutoUnitPrice, env.Role, d.Quantity, d.TransportFee)
	if CanTransitionApproval(d.ApprovalStatus, approval.Status) {
		d.ApprovalStatus = approval.Status
		d.PendingTotalRequest = approval.PendingTotalRequest
	} else {
		// The derived status was refused, so the retained status decides
		// which price is charged: approved keeps the manual price in
		// effect, pending keeps charging the auto price with the parked
		// request untouched.
		switch d.ApprovalStatus {
		case ApprovalStatusApproved:
			approval.EffectiveUnitPrice = d.UnitPrice
		case ApprovalStatusPending:
			approval.EffectiveUnitPrice = d.AutoUnitPrice
		}
	}

	fin := DeriveFinancials(d.Quantity, approval.EffectiveUnitPrice, d.TransportFee, d.DepositAmount)
	d.Subtotal = fin.Subtotal
	d.TotalAmount = fin.TotalAmount
	d.RemainingAmount = fin.RemainingAmount

	d.PaymentStatus = DerivePaymentStatus(d.DepositAmount, d.TotalAmount, d.PaymentStatus, manual)

	return d, advisories
}
