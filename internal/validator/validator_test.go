package validator

import (
	"errors"
	"slices"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestNewDefaultsToSupportedStates(t *testing.T) {
	t.Parallel()

	v := New(nil)

	want := []string{"maharashtra", "karnataka"}
	if got := v.AllowedStates(); !slices.Equal(got, want) {
		t.Fatalf("expected default states %v, got %v", want, got)
	}
}

func TestNewNormalizesAllowedStates(t *testing.T) {
	t.Parallel()

	v := New([]string{" Tamil Nadu ", "KERALA"})

	want := []string{"tamil nadu", "kerala"}
	if got := v.AllowedStates(); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestValidateLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		location string
		want     string
		wantErr  error
	}{
		{name: "Lowercase", location: "maharashtra", want: "maharashtra"},
		{name: "Capitalized", location: "Maharashtra", want: "maharashtra"},
		{name: "Uppercase", location: "KARNATAKA", want: "karnataka"},
		{name: "SurroundingWhitespace", location: "  karnataka  ", want: "karnataka"},
		{name: "UnknownState", location: "delhi", wantErr: ErrUnknownState},
		{name: "EmptyLocation", location: "", wantErr: ErrUnknownState},
	}

	v := New(nil)
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := v.ValidateLocation(tc.location)

			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr != nil {
				return
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestValidateLocationCustomStates(t *testing.T) {
	t.Parallel()

	v := New([]string{"goa"})

	if _, err := v.ValidateLocation("goa"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := v.ValidateLocation("maharashtra"); !errors.Is(err, ErrUnknownState) {
		t.Fatalf("expected ErrUnknownState, got %v", err)
	}
}

func TestValidateSalary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ctc      float64
		base     float64
		benefits map[string]float64
		wantErr  error
	}{
		{
			name:     "Valid",
			ctc:      300000,
			base:     15000,
			benefits: map[string]float64{"hra": 6000, "conveyance": 1000},
		},
		{
			name: "ValidWithoutBenefits",
			ctc:  240000,
			base: 18000,
		},
		{
			name:    "ZeroCTC",
			ctc:     0,
			base:    15000,
			wantErr: ErrInvalidSalary,
		},
		{
			name:    "NegativeCTC",
			ctc:     -300000,
			base:    15000,
			wantErr: ErrInvalidSalary,
		},
		{
			name:    "ZeroBaseSalary",
			ctc:     300000,
			base:    0,
			wantErr: ErrInvalidSalary,
		},
		{
			name:     "NegativeBenefit",
			ctc:      300000,
			base:     15000,
			benefits: map[string]float64{"hra": -100},
			wantErr:  ErrInvalidSalary,
		},
		{
			name:     "GrossExceedsMonthlyCTC",
			ctc:      300000,
			base:     24000,
			benefits: map[string]float64{"hra": 2000},
			wantErr:  ErrInvalidSalary,
		},
		{
			// One rupee of rounding headroom above the monthly CTC.
			name: "GrossWithinTolerance",
			ctc:  300000,
			base: 25001,
		},
		{
			name:    "GrossJustOverTolerance",
			ctc:     300000,
			base:    25002,
			wantErr: ErrInvalidSalary,
		},
	}

	v := New(nil)
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateSalary(tc.ctc, tc.base, tc.benefits)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestValidateEmployee(t *testing.T) {
	t.Parallel()

	v := New(nil)
	employee, err := v.ValidateEmployee(EmployeeInput{
		EmployeeID: "  EMP001  ",
		CTC:        floatPtr(300000),
		BaseSalary: floatPtr(15000),
		Location:   "Maharashtra",
		Benefits:   map[string]float64{"hra": 6000},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if employee.EmployeeID != "EMP001" {
		t.Errorf("expected trimmed employee id EMP001, got %q", employee.EmployeeID)
	}
	if employee.Location != "maharashtra" {
		t.Errorf("expected normalized location maharashtra, got %q", employee.Location)
	}
	if employee.CTC != 300000 || employee.BaseSalary != 15000 {
		t.Errorf("unexpected salary components: ctc %v base %v", employee.CTC, employee.BaseSalary)
	}
	if employee.Benefits["hra"] != 6000 {
		t.Errorf("expected hra benefit 6000, got %v", employee.Benefits)
	}
}

func TestValidateEmployeeMissingFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input EmployeeInput
	}{
		{
			name: "MissingCTC",
			input: EmployeeInput{
				BaseSalary: floatPtr(15000),
				Location:   "maharashtra",
			},
		},
		{
			name: "MissingBaseSalary",
			input: EmployeeInput{
				CTC:      floatPtr(300000),
				Location: "maharashtra",
			},
		},
		{
			name: "MissingLocation",
			input: EmployeeInput{
				CTC:        floatPtr(300000),
				BaseSalary: floatPtr(15000),
			},
		},
	}

	v := New(nil)
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if _, err := v.ValidateEmployee(tc.input); !errors.Is(err, ErrMissingField) {
				t.Fatalf("expected ErrMissingField, got %v", err)
			}
		})
	}
}

func TestValidateEmployeePropagatesComponentErrors(t *testing.T) {
	t.Parallel()

	v := New(nil)

	if _, err := v.ValidateEmployee(EmployeeInput{
		CTC:        floatPtr(300000),
		BaseSalary: floatPtr(15000),
		Location:   "delhi",
	}); !errors.Is(err, ErrUnknownState) {
		t.Fatalf("expected ErrUnknownState, got %v", err)
	}

	if _, err := v.ValidateEmployee(EmployeeInput{
		CTC:        floatPtr(-1),
		BaseSalary: floatPtr(15000),
		Location:   "maharashtra",
	}); !errors.Is(err, ErrInvalidSalary) {
		t.Fatalf("expected ErrInvalidSalary, got %v", err)
	}
}

func TestValidateEmployeeNilBenefits(t *testing.T) {
	t.Parallel()

	v := New(nil)
	employee, err := v.ValidateEmployee(EmployeeInput{
		CTC:        floatPtr(240000),
		BaseSalary: floatPtr(18000),
		Location:   "karnataka",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if employee.Benefits == nil || len(employee.Benefits) != 0 {
		t.Fatalf("expected empty benefits map, got %v", employee.Benefits)
	}
}
