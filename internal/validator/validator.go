package validator

import (
	"fmt"
	"strings"

	"github.com/Singhutkarsh-tech/pdfpayroll/internal/storage"
)

// EmployeeInput is the raw payload submitted for a payroll calculation.
// CTC and BaseSalary are pointers so absent fields can be told apart from
// zero values.
type EmployeeInput struct {
	EmployeeID string             `json:"employee_id"`
	CTC        *float64           `json:"ctc"`
	BaseSalary *float64           `json:"base_salary"`
	Location   string             `json:"location"`
	Benefits   map[string]float64 `json:"benefits"`
}

// Employee is a validated and normalized employee record. Location is
// lowercased and Benefits is never nil.
type Employee struct {
	EmployeeID string             `json:"employee_id"`
	CTC        float64            `json:"ctc"`
	BaseSalary float64            `json:"base_salary"`
	Location   string             `json:"location"`
	Benefits   map[string]float64 `json:"benefits"`
}

// Validator validates employee payroll inputs against the set of allowed
// states.
type Validator struct {
	allowedStates []string
}

// New creates a Validator for the given states. An empty list falls back to
// the default supported states.
func New(allowedStates []string) *Validator {
	if len(allowedStates) == 0 {
		allowedStates = storage.DefaultStates()
	}

	normalized := make([]string, len(allowedStates))
	for i, state := range allowedStates {
		normalized[i] = strings.ToLower(strings.TrimSpace(state))
	}
	return &Validator{allowedStates: normalized}
}

// AllowedStates returns a copy of the allowed state names.
func (v *Validator) AllowedStates() []string {
	out := make([]string, len(v.allowedStates))
	copy(out, v.allowedStates)
	return out
}

// ValidateLocation checks the location against the allowed states and
// returns it lowercased.
func (v *Validator) ValidateLocation(location string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(location))

	for _, state := range v.allowedStates {
		if normalized == state {
			return normalized, nil
		}
	}
	return "", fmt.Errorf("%w: %q (allowed states: %s)",
		ErrUnknownState, location, strings.Join(v.allowedStates, ", "))
}

// ValidateSalary checks salary components and their relationship to the
// annual CTC. Gross salary may exceed one twelfth of the CTC by at most one
// rupee to absorb rounding.
func (v *Validator) ValidateSalary(ctc, baseSalary float64, benefits map[string]float64) error {
	if ctc <= 0 {
		return fmt.Errorf("%w: ctc must be positive", ErrInvalidSalary)
	}
	if baseSalary <= 0 {
		return fmt.Errorf("%w: base salary must be positive", ErrInvalidSalary)
	}

	totalBenefits := 0.0
	for name, amount := range benefits {
		if amount < 0 {
			return fmt.Errorf("%w: benefit %q cannot be negative", ErrInvalidSalary, name)
		}
		totalBenefits += amount
	}

	monthlyCTC := ctc / 12
	grossSalary := baseSalary + totalBenefits
	if grossSalary > monthlyCTC+1 {
		return fmt.Errorf("%w: monthly gross salary (%.2f) exceeds monthly ctc (%.2f)",
			ErrInvalidSalary, grossSalary, monthlyCTC)
	}
	return nil
}

// ValidateEmployee checks the presence of required fields, then validates
// the location and salary components. The returned Employee carries the
// normalized location and a non-nil benefits map.
func (v *Validator) ValidateEmployee(input EmployeeInput) (Employee, error) {
	if input.CTC == nil {
		return Employee{}, fmt.Errorf("%w: ctc", ErrMissingField)
	}
	if input.BaseSalary == nil {
		return Employee{}, fmt.Errorf("%w: base_salary", ErrMissingField)
	}
	if strings.TrimSpace(input.Location) == "" {
		return Employee{}, fmt.Errorf("%w: location", ErrMissingField)
	}

	location, err := v.ValidateLocation(input.Location)
	if err != nil {
		return Employee{}, err
	}
	if err := v.ValidateSalary(*input.CTC, *input.BaseSalary, input.Benefits); err != nil {
		return Employee{}, err
	}

	benefits := make(map[string]float64, len(input.Benefits))
	for name, amount := range input.Benefits {
		benefits[name] = amount
	}

	return Employee{
		EmployeeID: strings.TrimSpace(input.EmployeeID),
		CTC:        *input.CTC,
		BaseSalary: *input.BaseSalary,
		Location:   location,
		Benefits:   benefits,
	}, nil
}
