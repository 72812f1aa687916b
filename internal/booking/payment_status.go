package booking

// DerivePaymentStatus infers the payment status from the deposit and total.
//
// A non-nil manual value comes from an explicit status button press and is
// returned verbatim, suppressing the automatic inference exactly once.
// An existing overdue status is sticky: only a manual action clears it.
func DerivePaymentStatus(depositAmount, totalAmount float64, current PaymentStatus, manual *PaymentStatus) PaymentStatus {
	if manual != nil {
		return *manual
	}
	if current == PaymentStatusOverdue {
		return PaymentStatusOverdue
	}
	switch {
	case totalAmount <= 0:
		return PaymentStatusUnpaid
	case depositAmount <= 0:
		return PaymentStatusUnpaid
	case depositAmount >= totalAmount:
		return PaymentStatusPaid
	default:
		return PaymentStatusPartial
	}
}
