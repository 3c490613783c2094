package calculator

// StateRules captures a single state's payroll compliance rules, in the shape
// stored in the per-state JSON data files.
type StateRules struct {
	StateName         string                 `json:"state_name"`
	ProfessionalTax   ProfessionalTaxRules   `json:"professional_tax"`
	ProvidentFund     ProvidentFundRules     `json:"provident_fund"`
	ESI               ESIRules               `json:"esi"`
	LabourWelfareFund LabourWelfareFundRules `json:"labour_welfare_fund"`
}

// Clone returns a deep copy of the rules so callers can hold a snapshot that
// later updates cannot mutate.
func (r StateRules) Clone() StateRules {
	out := r
	if r.ProfessionalTax.MonthlySlabs != nil {
		slabs := make([]TaxSlab, len(r.ProfessionalTax.MonthlySlabs))
		for i, slab := range r.ProfessionalTax.MonthlySlabs {
			slabs[i] = slab
			if slab.Max != nil {
				max := *slab.Max
				slabs[i].Max = &max
			}
		}
		out.ProfessionalTax.MonthlySlabs = slabs
	}
	return out
}

// ProfessionalTaxRules holds the ordered monthly tax slabs and the annual
// deduction ceiling.
type ProfessionalTaxRules struct {
	MonthlySlabs  []TaxSlab `json:"monthly_slabs"`
	AnnualCeiling float64   `json:"annual_ceiling"`
}

// TaxSlab is a single professional tax bracket. A nil Max marks the open-ended
// top slab.
type TaxSlab struct {
	Min float64  `json:"min"`
	Max *float64 `json:"max"`
	Tax float64  `json:"tax"`
}

// ProvidentFundRules holds the PF contribution rates. Rates are percentages
// applied to the base salary capped at SalaryCeiling.
type ProvidentFundRules struct {
	EmployeeContributionRate float64 `json:"employee_contribution_rate"`
	EmployerContributionRate float64 `json:"employer_contribution_rate"`
	EmployerPensionRate      float64 `json:"employer_pension_rate"`
	EmployerEPFRate          float64 `json:"employer_epf_rate"`
	SalaryCeiling            float64 `json:"salary_ceiling"`
	AdminChargesRate         float64 `json:"admin_charges_rate"`
	EDLIRate                 float64 `json:"edli_rate"`
}

// ESIRules holds the ESI contribution rates and the gross salary threshold
// above which ESI no longer applies.
type ESIRules struct {
	EmployeeContributionRate float64 `json:"employee_contribution_rate"`
	EmployerContributionRate float64 `json:"employer_contribution_rate"`
	IncomeThreshold          float64 `json:"income_threshold"`
	MinimumWageThreshold     float64 `json:"minimum_wage_threshold"`
}

// LabourWelfareFundRules holds the fixed LWF contributions and how often they
// are collected ("monthly", "semi-annual", or "annual").
type LabourWelfareFundRules struct {
	EmployeeContribution float64 `json:"employee_contribution"`
	EmployerContribution float64 `json:"employer_contribution"`
	PaymentFrequency     string  `json:"payment_frequency"`
}

// PFBreakdown is the monthly provident fund contribution split.
type PFBreakdown struct {
	EmployeeContribution        float64 `json:"employee_contribution"`
	EmployerEPFContribution     float64 `json:"employer_epf_contribution"`
	EmployerPensionContribution float64 `json:"employer_pension_contribution"`
	AdminCharges                float64 `json:"admin_charges"`
	EDLICharges                 float64 `json:"edli_charges"`
	TotalEmployerContribution   float64 `json:"total_employer_contribution"`
	TotalPFContribution         float64 `json:"total_pf_contribution"`
}

// ESIBreakdown is the monthly ESI contribution split. All amounts are zero
// when Applicable is false.
type ESIBreakdown struct {
	Applicable           bool    `json:"applicable"`
	EmployeeContribution float64 `json:"employee_contribution"`
	EmployerContribution float64 `json:"employer_contribution"`
	TotalContribution    float64 `json:"total_contribution"`
}

// LWFBreakdown is the monthly-equivalent labour welfare fund contribution
// split.
type LWFBreakdown struct {
	EmployeeContribution float64 `json:"employee_contribution"`
	EmployerContribution float64 `json:"employer_contribution"`
	TotalContribution    float64 `json:"total_contribution"`
	PaymentFrequency     string  `json:"payment_frequency"`
}

// SalaryBreakdown is the complete result of a net salary calculation.
type SalaryBreakdown struct {
	EmployeeDetails       EmployeeDetails       `json:"employee_details"`
	EmployerContributions EmployerContributions `json:"employer_contributions"`
	CTC                   CTCSummary            `json:"ctc"`
	Compliance            Compliance            `json:"compliance"`
}

// EmployeeDetails groups the employee-side breakdown by period.
type EmployeeDetails struct {
	Monthly PeriodDetails `json:"monthly"`
	Annual  PeriodDetails `json:"annual"`
}

// PeriodDetails is the employee-side salary breakdown for one period.
type PeriodDetails struct {
	BaseSalary  float64            `json:"base_salary"`
	Benefits    map[string]float64 `json:"benefits"`
	GrossSalary float64            `json:"gross_salary"`
	Deductions  Deductions         `json:"deductions"`
	NetSalary   float64            `json:"net_salary"`
}

// Deductions itemizes the statutory deductions taken from gross salary.
type Deductions struct {
	ProfessionalTax   float64 `json:"professional_tax"`
	PFContribution    float64 `json:"pf_contribution"`
	ESIContribution   float64 `json:"esi_contribution"`
	LabourWelfareFund float64 `json:"labour_welfare_fund"`
	TotalDeductions   float64 `json:"total_deductions"`
}

// EmployerContributions groups the employer-side contributions by period.
type EmployerContributions struct {
	Monthly EmployerPeriod `json:"monthly"`
	Annual  EmployerPeriod `json:"annual"`
}

// EmployerPeriod is the employer-side contribution breakdown for one period.
type EmployerPeriod struct {
	PFDetails          EmployerPFDetails `json:"pf_details"`
	ESIContribution    float64           `json:"esi_contribution"`
	LabourWelfareFund  float64           `json:"labour_welfare_fund"`
	TotalContributions float64           `json:"total_contributions"`
}

// EmployerPFDetails itemizes the employer's provident fund contribution.
type EmployerPFDetails struct {
	EPFContribution     float64 `json:"epf_contribution"`
	PensionContribution float64 `json:"pension_contribution"`
	AdminCharges        float64 `json:"admin_charges"`
	EDLICharges         float64 `json:"edli_charges"`
}

// CTCSummary compares the CTC implied by the calculated components against
// the CTC the employer provided.
type CTCSummary struct {
	Provided   float64 `json:"provided"`
	Calculated float64 `json:"calculated"`
	Difference float64 `json:"difference"`
}

// Compliance records which statutory deductions applied to the calculation.
type Compliance struct {
	State                     string `json:"state"`
	ESIApplicable             bool   `json:"esi_applicable"`
	ProfessionalTaxApplicable bool   `json:"professional_tax_applicable"`
}
