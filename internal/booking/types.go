package booking

// RentalType determines whether quantity counts hours or days.
type RentalType string

const (
	RentalTypeHourly RentalType = "hourly"
	RentalTypeDaily  RentalType = "daily"
)

// PaymentStatus constants
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// ApprovalStatus constants
type ApprovalStatus string

const (
	ApprovalStatusAuto     ApprovalStatus = "auto"
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
)

// Role is the staff role of the user editing a draft.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleGuide    Role = "guide"
	RoleAdmin    Role = "admin"
	RoleOwner    Role = "owner"
)

// IsStaff reports whether the role is subject to price-override approval gating.
func (r Role) IsStaff() bool {
	return r == RoleEmployee || r == RoleGuide
}

// CanApprove reports whether the role may approve price overrides directly.
func (r Role) CanApprove() bool {
	return r == RoleAdmin || r == RoleOwner
}

// TransportFees holds the configured per-leg transport fees.
// A zero value (config not loaded) means free transport, not an error.
type TransportFees struct {
	PickupFee  float64 `json:"pickupFee"`
	DropoffFee float64 `json:"dropoffFee"`
}

// Draft is an in-progress, not-yet-persisted rental booking.
// Derived fields (Quantity, TransportFee, Subtotal, TotalAmount,
// RemainingAmount, PaymentStatus, ApprovalStatus, PendingTotalRequest)
// are only ever written by Apply; handlers must not set them directly.
type Draft struct {
	RentalType RentalType `json:"rentalType"`

	StartDate string `json:"startDate"` // 2006-01-02, local
	StartTime string `json:"startTime"` // 15:04, empty means 00:00
	EndDate   string `json:"endDate"`
	EndTime   string `json:"endTime"`

	VehicleID  uint `json:"vehicleId"`
	CustomerID uint `json:"customerId"`

	// UnitPrice is the manually editable price; AutoUnitPrice is the
	// system-computed price from the vehicle's rate.
	UnitPrice     float64 `json:"unitPrice"`
	AutoUnitPrice float64 `json:"autoUnitPrice"`

	Quantity  int  `json:"quantity"`
	Overnight bool `json:"overnight"`

	TransportPickup  bool    `json:"transportPickup"`
	TransportDropoff bool    `json:"transportDropoff"`
	TransportFee     float64 `json:"transportFee"`

	DepositAmount float64 `json:"depositAmount"`
	DamageDeposit float64 `json:"damageDeposit"`

	Subtotal        float64 `json:"subtotal"`
	TotalAmount     float64 `json:"totalAmount"`
	RemainingAmount float64 `json:"remainingAmount"`

	PaymentStatus       PaymentStatus  `json:"paymentStatus"`
	ApprovalStatus      ApprovalStatus `json:"approvalStatus"`
	PendingTotalRequest *float64       `json:"pendingTotalRequest,omitempty"`
}

// NewDraft returns an empty draft with the initial statuses set.
func NewDraft(rt RentalType) Draft {
	return Draft{
		RentalType:     rt,
		Quantity:       1,
		PaymentStatus:  PaymentStatusUnpaid,
		ApprovalStatus: ApprovalStatusAuto,
	}
}
