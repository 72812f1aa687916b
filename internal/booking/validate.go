package booking

// FieldError is a per-field validation failure surfaced inline in the form.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateForSubmit checks the fields a rental cannot be persisted without.
// Validation errors block submission and are never retried automatically.
func ValidateForSubmit(d Draft) []FieldError {
	var errs []FieldError

	if d.CustomerID == 0 {
		errs = append(errs, FieldError{"customerId", "customer is required"})
	}
	if d.VehicleID == 0 {
		errs = append(errs, FieldError{"vehicleId", "vehicle is required"})
	}
	if d.StartDate == "" {
		errs = append(errs, FieldError{"startDate", "start date is required"})
	} else if _, err := ComposeDateTime(d.StartDate, d.StartTime); err != nil {
		errs = append(errs, FieldError{"startDate", "invalid start date"})
	}
	if d.EndDate != "" {
		start, err1 := ComposeDateTime(d.StartDate, d.StartTime)
		end, err2 := ComposeDateTime(d.EndDate, d.EndTime)
		if err2 != nil {
			errs = append(errs, FieldError{"endDate", "invalid end date"})
		} else if err1 == nil && !start.Before(end) {
			errs = append(errs, FieldError{"endDate", "end date must be after start date"})
		}
	}
	if d.UnitPrice < 0 {
		errs = append(errs, FieldError{"unitPrice", "unit price must be non-negative"})
	}
	if d.DepositAmount < 0 {
		errs = append(errs, FieldError{"depositAmount", "deposit must be non-negative"})
	}

	return errs
}
