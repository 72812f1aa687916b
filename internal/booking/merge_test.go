package booking

import "testing"

func TestMergeField(t *testing.T) {
	cases := []struct {
		name       string
		current    string
		incoming   string
		userEdited bool
		confidence float64
		want       string
	}{
		{"fills empty field", "", "MUSTERMANN", false, 0.93, "MUSTERMANN"},
		{"user edit always wins", "Smith", "MUSTERMANN", true, 0.99, "Smith"},
		{"low confidence discarded", "", "MUSTERMANN", false, 0.79, ""},
		{"threshold is inclusive", "", "MUSTERMANN", false, 0.8, "MUSTERMANN"},
		{"empty extraction keeps current", "Smith", "", false, 0.95, "Smith"},
		{"untouched prefill may be replaced", "placeholder", "MUSTERMANN", false, 0.9, "MUSTERMANN"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MergeField(tc.current, tc.incoming, tc.userEdited, tc.confidence)
			if got != tc.want {
				t.Errorf("expected %q got %q", tc.want, got)
			}
		})
	}
}

func TestMergeFields(t *testing.T) {
	current := map[string]string{
		"fullName":       "Jane Traveler",
		"documentNumber": "",
		"nationality":    "",
	}
	incoming := map[string]string{
		"fullName":       "JANE A TRAVELER",
		"documentNumber": "P1234567",
		"nationality":    "DE",
	}
	edited := map[string]bool{"fullName": true}

	got := MergeFields(current, incoming, edited, 0.91)

	if got["fullName"] != "Jane Traveler" {
		t.Errorf("user-edited name overwritten: %q", got["fullName"])
	}
	if got["documentNumber"] != "P1234567" {
		t.Errorf("expected document number filled, got %q", got["documentNumber"])
	}
	if got["nationality"] != "DE" {
		t.Errorf("expected nationality filled, got %q", got["nationality"])
	}
}
