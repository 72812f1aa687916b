package booking

import "testing"

func TestDeriveSchedule(t *testing.T) {
	cases := []struct {
		name       string
		rt         RentalType
		startDate  string
		startTime  string
		endDate    string
		endTime    string
		wantQty    int
		wantEnd    string
		wantOvnt   bool
		wantNoCalc bool
	}{
		{
			name: "daily three nights",
			rt:   RentalTypeDaily, startDate: "2024-03-01", endDate: "2024-03-04",
			wantQty: 3, wantEnd: "2024-03-04",
		},
		{
			name: "daily same day floors to one",
			rt:   RentalTypeDaily, startDate: "2024-03-01", startTime: "09:00", endDate: "2024-03-01", endTime: "18:00",
			wantQty: 1, wantEnd: "2024-03-01",
		},
		{
			name: "daily ignores time of day",
			rt:   RentalTypeDaily, startDate: "2024-03-01", startTime: "23:00", endDate: "2024-03-02", endTime: "01:00",
			wantQty: 1, wantEnd: "2024-03-02",
		},
		{
			name: "hourly partial hour rounds up",
			rt:   RentalTypeHourly, startDate: "2024-01-01", startTime: "10:00", endDate: "2024-01-01", endTime: "11:30",
			wantQty: 2, wantEnd: "2024-01-01",
		},
		{
			name: "hourly half hour floors to one",
			rt:   RentalTypeHourly, startDate: "2024-01-01", startTime: "10:00", endDate: "2024-01-01", endTime: "10:30",
			wantQty: 1, wantEnd: "2024-01-01",
		},
		{
			name: "hourly overnight wrap",
			rt:   RentalTypeHourly, startDate: "2024-01-01", startTime: "23:00", endDate: "2024-01-01", endTime: "00:30",
			wantQty: 2, wantEnd: "2024-01-02", wantOvnt: true,
		},
		{
			name: "hourly equal times rolls a full day",
			rt:   RentalTypeHourly, startDate: "2024-01-01", startTime: "09:00", endDate: "2024-01-01", endTime: "09:00",
			wantQty: 24, wantEnd: "2024-01-02", wantOvnt: true,
		},
		{
			name: "daily end before start yields no update",
			rt:   RentalTypeDaily, startDate: "2024-03-04", endDate: "2024-03-01",
			wantNoCalc: true,
		},
		{
			name: "hourly end on earlier day yields no update",
			rt:   RentalTypeHourly, startDate: "2024-01-02", startTime: "10:00", endDate: "2024-01-01", endTime: "12:00",
			wantNoCalc: true,
		},
		{
			name: "empty time defaults to midnight",
			rt:   RentalTypeHourly, startDate: "2024-01-01", endDate: "2024-01-01", endTime: "02:30",
			wantQty: 3, wantEnd: "2024-01-01",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := DeriveSchedule(tc.rt, tc.startDate, tc.startTime, tc.endDate, tc.endTime)
			if tc.wantNoCalc {
				if ok {
					t.Fatalf("expected no update, got %+v", got)
				}
				return
			}
			if !ok {
				t.Fatal("expected a schedule, got no update")
			}
			if got.Quantity != tc.wantQty {
				t.Errorf("quantity: expected %d got %d", tc.wantQty, got.Quantity)
			}
			if got.EndDate != tc.wantEnd {
				t.Errorf("end date: expected %s got %s", tc.wantEnd, got.EndDate)
			}
			if got.Overnight != tc.wantOvnt {
				t.Errorf("overnight: expected %v got %v", tc.wantOvnt, got.Overnight)
			}
		})
	}
}

func TestDeriveScheduleQuantityFloor(t *testing.T) {
	// Quantity must never drop below 1 for any start <= end.
	spans := []struct {
		rt                   RentalType
		startDate, startTime string
		endDate, endTime     string
	}{
		{RentalTypeHourly, "2024-06-01", "12:00", "2024-06-01", "12:01"},
		{RentalTypeHourly, "2024-06-01", "12:00", "2024-06-01", "13:00"},
		{RentalTypeDaily, "2024-06-01", "", "2024-06-01", ""},
		{RentalTypeDaily, "2024-06-01", "08:00", "2024-06-01", "20:00"},
	}
	for _, s := range spans {
		got, ok := DeriveSchedule(s.rt, s.startDate, s.startTime, s.endDate, s.endTime)
		if ok && got.Quantity < 1 {
			t.Errorf("%s %s-%s: quantity %d < 1", s.rt, s.startTime, s.endTime, got.Quantity)
		}
	}
}

func TestAdjustStartBackward(t *testing.T) {
	sd, st, err := AdjustStartBackward(RentalTypeHourly, "2024-01-01", "10:00")
	if err != nil {
		t.Fatal(err)
	}
	if sd != "2024-01-01" || st != "09:00" {
		t.Errorf("hourly: expected 2024-01-01 09:00, got %s %s", sd, st)
	}

	sd, st, err = AdjustStartBackward(RentalTypeDaily, "2024-01-01", "09:00")
	if err != nil {
		t.Fatal(err)
	}
	if sd != "2023-12-31" || st != "09:00" {
		t.Errorf("daily: expected 2023-12-31 09:00, got %s %s", sd, st)
	}

	// Hourly adjustment across midnight moves the date too.
	sd, st, err = AdjustStartBackward(RentalTypeHourly, "2024-01-01", "00:30")
	if err != nil {
		t.Fatal(err)
	}
	if sd != "2023-12-31" || st != "23:30" {
		t.Errorf("midnight wrap: expected 2023-12-31 23:30, got %s %s", sd, st)
	}
}
