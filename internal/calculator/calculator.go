package calculator

import (
	"math"
)

// Calculator performs payroll calculations against a single state's
// compliance rules. It is pure computation: no I/O, and inputs are assumed to
// have been validated upstream.
type Calculator struct {
	rules StateRules
}

// New creates a Calculator bound to the provided state rules.
func New(rules StateRules) *Calculator {
	return &Calculator{rules: rules}
}

// StateName returns the display name of the state the rules belong to.
func (c *Calculator) StateName() string {
	return c.rules.StateName
}

// ProfessionalTax returns the monthly professional tax for the given monthly
// salary. Slabs are evaluated in order and the first match wins; a slab with
// a nil upper bound is open-ended. A salary matching no slab is untaxed.
func (c *Calculator) ProfessionalTax(monthlySalary float64) float64 {
	for _, slab := range c.rules.ProfessionalTax.MonthlySlabs {
		if slab.Max == nil {
			if monthlySalary >= slab.Min {
				return slab.Tax
			}
			continue
		}
		if monthlySalary >= slab.Min && monthlySalary <= *slab.Max {
			return slab.Tax
		}
	}
	return 0
}

// ProvidentFund returns the monthly PF contribution split for the given base
// salary. All rates apply to the base salary capped at the state's ceiling;
// the employer share is split across EPF, pension, admin, and EDLI charges.
func (c *Calculator) ProvidentFund(baseSalary float64) PFBreakdown {
	pf := c.rules.ProvidentFund

	applicableSalary := math.Min(baseSalary, pf.SalaryCeiling)

	employee := applicableSalary * (pf.EmployeeContributionRate / 100)
	employerEPF := applicableSalary * (pf.EmployerEPFRate / 100)
	employerPension := applicableSalary * (pf.EmployerPensionRate / 100)
	adminCharges := applicableSalary * (pf.AdminChargesRate / 100)
	edliCharges := applicableSalary * (pf.EDLIRate / 100)

	return PFBreakdown{
		EmployeeContribution:        round2(employee),
		EmployerEPFContribution:     round2(employerEPF),
		EmployerPensionContribution: round2(employerPension),
		AdminCharges:                round2(adminCharges),
		EDLICharges:                 round2(edliCharges),
		TotalEmployerContribution:   round2(employerEPF + employerPension + adminCharges + edliCharges),
		TotalPFContribution:         round2(employee + employerEPF + employerPension + adminCharges + edliCharges),
	}
}

// ESI returns the monthly ESI contribution split for the given gross salary.
// ESI applies only while gross salary stays at or below the state's income
// threshold; above it all amounts are zero and Applicable is false.
func (c *Calculator) ESI(grossSalary float64) ESIBreakdown {
	esi := c.rules.ESI

	if grossSalary > esi.IncomeThreshold {
		return ESIBreakdown{}
	}

	employee := grossSalary * (esi.EmployeeContributionRate / 100)
	employer := grossSalary * (esi.EmployerContributionRate / 100)

	return ESIBreakdown{
		Applicable:           true,
		EmployeeContribution: round2(employee),
		EmployerContribution: round2(employer),
		TotalContribution:    round2(employee + employer),
	}
}

// LabourWelfareFund returns the monthly-equivalent LWF contribution split.
// Semi-annual amounts are spread across six months, annual across twelve.
func (c *Calculator) LabourWelfareFund() LWFBreakdown {
	lwf := c.rules.LabourWelfareFund

	employee := lwf.EmployeeContribution
	employer := lwf.EmployerContribution

	switch lwf.PaymentFrequency {
	case "semi-annual":
		employee /= 6
		employer /= 6
	case "annual":
		employee /= 12
		employer /= 12
	}

	return LWFBreakdown{
		EmployeeContribution: round2(employee),
		EmployerContribution: round2(employer),
		TotalContribution:    round2(employee + employer),
		PaymentFrequency:     lwf.PaymentFrequency,
	}
}

// NetSalary computes the complete monthly and annual salary breakdown for an
// annual CTC, a monthly base salary, and a set of monthly benefits. The
// annual professional tax deduction is capped at the state's annual ceiling.
func (c *Calculator) NetSalary(ctc, baseSalary float64, benefits map[string]float64) SalaryBreakdown {
	if benefits == nil {
		benefits = map[string]float64{}
	}

	totalBenefits := 0.0
	for _, amount := range benefits {
		totalBenefits += amount
	}
	grossSalary := baseSalary + totalBenefits

	professionalTax := c.ProfessionalTax(grossSalary)
	pf := c.ProvidentFund(baseSalary)
	esi := c.ESI(grossSalary)
	lwf := c.LabourWelfareFund()

	totalDeductions := professionalTax +
		pf.EmployeeContribution +
		esi.EmployeeContribution +
		lwf.EmployeeContribution
	netSalary := grossSalary - totalDeductions

	employerContributions := pf.TotalEmployerContribution +
		esi.EmployerContribution +
		lwf.EmployerContribution

	calculatedCTC := (grossSalary + employerContributions) * 12
	ctcDifference := math.Abs(calculatedCTC - ctc)

	annualBenefits := make(map[string]float64, len(benefits))
	for name, amount := range benefits {
		annualBenefits[name] = amount * 12
	}

	annualProfessionalTax := math.Min(professionalTax*12, c.rules.ProfessionalTax.AnnualCeiling)
	annualDeductions := annualProfessionalTax +
		pf.EmployeeContribution*12 +
		esi.EmployeeContribution*12 +
		lwf.EmployeeContribution*12

	return SalaryBreakdown{
		EmployeeDetails: EmployeeDetails{
			Monthly: PeriodDetails{
				BaseSalary:  baseSalary,
				Benefits:    benefits,
				GrossSalary: grossSalary,
				Deductions: Deductions{
					ProfessionalTax:   professionalTax,
					PFContribution:    pf.EmployeeContribution,
					ESIContribution:   esi.EmployeeContribution,
					LabourWelfareFund: lwf.EmployeeContribution,
					TotalDeductions:   totalDeductions,
				},
				NetSalary: netSalary,
			},
			Annual: PeriodDetails{
				BaseSalary:  baseSalary * 12,
				Benefits:    annualBenefits,
				GrossSalary: grossSalary * 12,
				Deductions: Deductions{
					ProfessionalTax:   annualProfessionalTax,
					PFContribution:    pf.EmployeeContribution * 12,
					ESIContribution:   esi.EmployeeContribution * 12,
					LabourWelfareFund: lwf.EmployeeContribution * 12,
					TotalDeductions:   annualDeductions,
				},
				NetSalary: grossSalary*12 - annualDeductions,
			},
		},
		EmployerContributions: EmployerContributions{
			Monthly: EmployerPeriod{
				PFDetails: EmployerPFDetails{
					EPFContribution:     pf.EmployerEPFContribution,
					PensionContribution: pf.EmployerPensionContribution,
					AdminCharges:        pf.AdminCharges,
					EDLICharges:         pf.EDLICharges,
				},
				ESIContribution:    esi.EmployerContribution,
				LabourWelfareFund:  lwf.EmployerContribution,
				TotalContributions: employerContributions,
			},
			Annual: EmployerPeriod{
				PFDetails: EmployerPFDetails{
					EPFContribution:     pf.EmployerEPFContribution * 12,
					PensionContribution: pf.EmployerPensionContribution * 12,
					AdminCharges:        pf.AdminCharges * 12,
					EDLICharges:         pf.EDLICharges * 12,
				},
				ESIContribution:    esi.EmployerContribution * 12,
				LabourWelfareFund:  lwf.EmployerContribution * 12,
				TotalContributions: employerContributions * 12,
			},
		},
		CTC: CTCSummary{
			Provided:   ctc,
			Calculated: calculatedCTC,
			Difference: ctcDifference,
		},
		Compliance: Compliance{
			State:                     c.rules.StateName,
			ESIApplicable:             esi.Applicable,
			ProfessionalTaxApplicable: professionalTax > 0,
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
