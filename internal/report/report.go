package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Singhutkarsh-tech/pdfpayroll/internal/calculator"
)

// Report is the full payroll report document written to disk.
type Report struct {
	ReportID      string                     `json:"report_id"`
	GeneratedAt   string                     `json:"generated_at"`
	EmployeeID    string                     `json:"employee_id"`
	SalaryDetails calculator.SalaryBreakdown `json:"salary_details"`
}

// Summary is a condensed view of a salary breakdown for quick reference.
type Summary struct {
	EmployeeID            string        `json:"employee_id"`
	State                 string        `json:"state"`
	MonthlySummary        PeriodSummary `json:"monthly_summary"`
	AnnualSummary         AnnualSummary `json:"annual_summary"`
	KeyDeductions         KeyDeductions `json:"key_deductions"`
	EmployerContributions float64       `json:"employer_contributions"`
	GeneratedAt           string        `json:"generated_at"`
}

// PeriodSummary carries the headline monthly amounts.
type PeriodSummary struct {
	GrossSalary     float64 `json:"gross_salary"`
	TotalDeductions float64 `json:"total_deductions"`
	NetSalary       float64 `json:"net_salary"`
}

// AnnualSummary carries the headline annual amounts.
type AnnualSummary struct {
	CTC             float64 `json:"ctc"`
	GrossSalary     float64 `json:"gross_salary"`
	TotalDeductions float64 `json:"total_deductions"`
	NetSalary       float64 `json:"net_salary"`
}

// KeyDeductions highlights the main monthly deductions.
type KeyDeductions struct {
	PF              float64 `json:"pf"`
	ProfessionalTax float64 `json:"professional_tax"`
	ESI             float64 `json:"esi"`
}

// Generator writes payroll reports into an output directory.
type Generator struct {
	outputDir string
	clock     func() time.Time
}

// Option configures Generator behaviour.
type Option func(*Generator)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) {
		g.clock = clock
	}
}

// NewGenerator creates the output directory if needed and returns a
// Generator writing into it.
func NewGenerator(outputDir string, opts ...Option) (*Generator, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create reports directory: %w", err)
	}

	g := &Generator{
		outputDir: outputDir,
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// WriteJSON writes the full report document for an employee and returns the
// path of the generated file. File names follow
// <employee>_<YYYYMMDD_HHMMSS>_payroll.json.
func (g *Generator) WriteJSON(employeeID string, details calculator.SalaryBreakdown) (string, error) {
	if strings.ContainsAny(employeeID, `/\`) {
		return "", fmt.Errorf("employee id %q must not contain path separators", employeeID)
	}

	now := g.clock()
	stamp := now.Format("20060102_150405")

	doc := Report{
		ReportID:      fmt.Sprintf("PR_%s_%s", employeeID, stamp),
		GeneratedAt:   now.Format(time.RFC3339),
		EmployeeID:    employeeID,
		SalaryDetails: details,
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	path := filepath.Join(g.outputDir, fmt.Sprintf("%s_%s_payroll.json", employeeID, stamp))
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// Summarize condenses a salary breakdown into the summary document.
func (g *Generator) Summarize(employeeID string, details calculator.SalaryBreakdown) Summary {
	monthly := details.EmployeeDetails.Monthly
	annual := details.EmployeeDetails.Annual

	return Summary{
		EmployeeID: employeeID,
		State:      details.Compliance.State,
		MonthlySummary: PeriodSummary{
			GrossSalary:     monthly.GrossSalary,
			TotalDeductions: monthly.Deductions.TotalDeductions,
			NetSalary:       monthly.NetSalary,
		},
		AnnualSummary: AnnualSummary{
			CTC:             details.CTC.Provided,
			GrossSalary:     annual.GrossSalary,
			TotalDeductions: annual.Deductions.TotalDeductions,
			NetSalary:       annual.NetSalary,
		},
		KeyDeductions: KeyDeductions{
			PF:              monthly.Deductions.PFContribution,
			ProfessionalTax: monthly.Deductions.ProfessionalTax,
			ESI:             monthly.Deductions.ESIContribution,
		},
		EmployerContributions: details.EmployerContributions.Monthly.TotalContributions,
		GeneratedAt:           g.clock().Format(time.RFC3339),
	}
}
