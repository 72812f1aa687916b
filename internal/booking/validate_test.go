package booking

import "testing"

func TestValidateForSubmit(t *testing.T) {
	valid := Draft{
		RentalType: RentalTypeDaily,
		CustomerID: 1,
		VehicleID:  2,
		StartDate:  "2024-03-01",
		EndDate:    "2024-03-04",
		UnitPrice:  1500,
	}

	if errs := ValidateForSubmit(valid); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}

	cases := []struct {
		name      string
		mutate    func(d Draft) Draft
		wantField string
	}{
		{"missing customer", func(d Draft) Draft { d.CustomerID = 0; return d }, "customerId"},
		{"missing vehicle", func(d Draft) Draft { d.VehicleID = 0; return d }, "vehicleId"},
		{"missing start date", func(d Draft) Draft { d.StartDate = ""; return d }, "startDate"},
		{"garbage start date", func(d Draft) Draft { d.StartDate = "03/01/2024"; return d }, "startDate"},
		{"end before start", func(d Draft) Draft { d.EndDate = "2024-02-28"; return d }, "endDate"},
		{"negative price", func(d Draft) Draft { d.UnitPrice = -1; return d }, "unitPrice"},
		{"negative deposit", func(d Draft) Draft { d.DepositAmount = -50; return d }, "depositAmount"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidateForSubmit(tc.mutate(valid))
			if len(errs) == 0 {
				t.Fatal("expected a validation error")
			}
			found := false
			for _, e := range errs {
				if e.Field == tc.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on %s, got %v", tc.wantField, errs)
			}
		})
	}
}
