package storage

import (
	"fmt"

	"github.com/Singhutkarsh-tech/pdfpayroll/internal/calculator"
)

// DefaultStates returns the states that ship with bundled compliance rules.
func DefaultStates() []string {
	return []string{"maharashtra", "karnataka"}
}

// DefaultStateRules returns the bundled rules for the given state and reports
// whether the state has any.
func DefaultStateRules(state string) (calculator.StateRules, bool) {
	switch normalizeState(state) {
	case "maharashtra":
		return maharashtraDefaults(), true
	case "karnataka":
		return karnatakaDefaults(), true
	}
	return calculator.StateRules{}, false
}

// SeedDefaults stores the bundled rules for every default state, overwriting
// whatever was there before.
func SeedDefaults(s Storage) error {
	for _, state := range DefaultStates() {
		rules, _ := DefaultStateRules(state)
		if err := s.SetStateRules(state, rules); err != nil {
			return fmt.Errorf("seed %s: %w", state, err)
		}
	}
	return nil
}

func maharashtraDefaults() calculator.StateRules {
	return calculator.StateRules{
		StateName: "Maharashtra",
		ProfessionalTax: calculator.ProfessionalTaxRules{
			MonthlySlabs: []calculator.TaxSlab{
				{Min: 0, Max: slabMax(10000), Tax: 0},
				{Min: 10001, Max: slabMax(15000), Tax: 175},
				{Min: 15001, Max: slabMax(20000), Tax: 200},
				{Min: 20001, Max: nil, Tax: 300},
			},
			AnnualCeiling: 2500,
		},
		ProvidentFund: calculator.ProvidentFundRules{
			EmployeeContributionRate: 12.0,
			EmployerContributionRate: 12.0,
			EmployerPensionRate:      8.33,
			EmployerEPFRate:          3.67,
			SalaryCeiling:            15000,
			AdminChargesRate:         0.5,
			EDLIRate:                 0.5,
		},
		ESI: calculator.ESIRules{
			EmployeeContributionRate: 0.75,
			EmployerContributionRate: 3.25,
			IncomeThreshold:          21000,
			MinimumWageThreshold:     137,
		},
		LabourWelfareFund: calculator.LabourWelfareFundRules{
			EmployeeContribution: 6,
			EmployerContribution: 12,
			PaymentFrequency:     "semi-annual",
		},
	}
}

func karnatakaDefaults() calculator.StateRules {
	return calculator.StateRules{
		StateName: "Karnataka",
		ProfessionalTax: calculator.ProfessionalTaxRules{
			MonthlySlabs: []calculator.TaxSlab{
				{Min: 0, Max: slabMax(15000), Tax: 0},
				{Min: 15001, Max: slabMax(25000), Tax: 200},
				{Min: 25001, Max: nil, Tax: 300},
			},
			AnnualCeiling: 2400,
		},
		ProvidentFund: calculator.ProvidentFundRules{
			EmployeeContributionRate: 12.0,
			EmployerContributionRate: 12.0,
			EmployerPensionRate:      8.33,
			EmployerEPFRate:          3.67,
			SalaryCeiling:            15000,
			AdminChargesRate:         0.5,
			EDLIRate:                 0.5,
		},
		ESI: calculator.ESIRules{
			EmployeeContributionRate: 0.75,
			EmployerContributionRate: 3.25,
			IncomeThreshold:          21000,
			MinimumWageThreshold:     142,
		},
		LabourWelfareFund: calculator.LabourWelfareFundRules{
			EmployeeContribution: 20,
			EmployerContribution: 40,
			PaymentFrequency:     "annual",
		},
	}
}

func slabMax(v float64) *float64 {
	return &v
}
