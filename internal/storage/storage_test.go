package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/Singhutkarsh-tech/pdfpayroll/internal/calculator"
)

func TestNewFileStorageEmptyDirectory(t *testing.T) {
	t.Parallel()

	store, err := NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	states, err := store.States()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(states) != 0 {
		t.Fatalf("expected no states, got %v", states)
	}

	if _, err := store.GetStateRules("maharashtra"); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound, got %v", err)
	}
}

func TestNewFileStorageCreatesDataDirectory(t *testing.T) {
	t.Parallel()

	dataDir := filepath.Join(t.TempDir(), "nested", "data")
	if _, err := NewFileStorage(dataDir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(dataDir)
	if err != nil {
		t.Fatalf("expected data directory to exist: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected %s to be a directory", dataDir)
	}
}

func TestSetStateRulesPersistsToDisk(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	store, err := NewFileStorage(dataDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rules, _ := DefaultStateRules("maharashtra")
	if err := store.SetStateRules("Maharashtra", rules); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The file name is the lowercased state.
	if _, err := os.Stat(filepath.Join(dataDir, "maharashtra.json")); err != nil {
		t.Fatalf("expected state file on disk: %v", err)
	}

	// A fresh storage over the same directory sees the persisted rules.
	reopened, err := NewFileStorage(dataDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := reopened.GetStateRules("MAHARASHTRA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.StateName != "Maharashtra" {
		t.Fatalf("expected state name Maharashtra, got %q", got.StateName)
	}
	if got.ProfessionalTax.AnnualCeiling != 2500 {
		t.Fatalf("expected annual ceiling 2500, got %v", got.ProfessionalTax.AnnualCeiling)
	}
	if len(got.ProfessionalTax.MonthlySlabs) != 4 {
		t.Fatalf("expected 4 slabs, got %d", len(got.ProfessionalTax.MonthlySlabs))
	}
	if got.ProfessionalTax.MonthlySlabs[3].Max != nil {
		t.Fatalf("expected open-ended last slab, got max %v", *got.ProfessionalTax.MonthlySlabs[3].Max)
	}
}

func TestGetStateRulesReturnsDefensiveCopy(t *testing.T) {
	t.Parallel()

	store, err := NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rules, _ := DefaultStateRules("maharashtra")
	if err := store.SetStateRules("maharashtra", rules); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.GetStateRules("maharashtra")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// ensure mutation safety
	got.ProfessionalTax.MonthlySlabs[0].Tax = 999
	*got.ProfessionalTax.MonthlySlabs[0].Max = 1

	again, err := store.GetStateRules("maharashtra")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.ProfessionalTax.MonthlySlabs[0].Tax != 0 {
		t.Fatalf("expected stored slab tax 0, got %v", again.ProfessionalTax.MonthlySlabs[0].Tax)
	}
	if *again.ProfessionalTax.MonthlySlabs[0].Max != 10000 {
		t.Fatalf("expected stored slab max 10000, got %v", *again.ProfessionalTax.MonthlySlabs[0].Max)
	}
}

func TestSetStateRulesRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		state  string
		mutate func(*calculator.StateRules)
	}{
		{name: "EmptyStateName", state: "   "},
		{name: "MissingRuleStateName", state: "maharashtra", mutate: func(r *calculator.StateRules) { r.StateName = "" }},
		{name: "NoSlabs", state: "maharashtra", mutate: func(r *calculator.StateRules) { r.ProfessionalTax.MonthlySlabs = nil }},
		{name: "NegativeSlabTax", state: "maharashtra", mutate: func(r *calculator.StateRules) { r.ProfessionalTax.MonthlySlabs[1].Tax = -1 }},
		{name: "SlabMaxBelowMin", state: "maharashtra", mutate: func(r *calculator.StateRules) { *r.ProfessionalTax.MonthlySlabs[1].Max = 1 }},
		{name: "NegativeAnnualCeiling", state: "maharashtra", mutate: func(r *calculator.StateRules) { r.ProfessionalTax.AnnualCeiling = -1 }},
		{name: "NegativePFRate", state: "maharashtra", mutate: func(r *calculator.StateRules) { r.ProvidentFund.EmployeeContributionRate = -12 }},
		{name: "NegativeESIThreshold", state: "maharashtra", mutate: func(r *calculator.StateRules) { r.ESI.IncomeThreshold = -21000 }},
		{name: "NegativeLWFContribution", state: "maharashtra", mutate: func(r *calculator.StateRules) { r.LabourWelfareFund.EmployeeContribution = -6 }},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			store, err := NewFileStorage(t.TempDir())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			rules, _ := DefaultStateRules("maharashtra")
			if tc.mutate != nil {
				tc.mutate(&rules)
			}

			if err := store.SetStateRules(tc.state, rules); !errors.Is(err, ErrInvalidRules) {
				t.Fatalf("expected ErrInvalidRules, got %v", err)
			}
		})
	}
}

func TestStatesSortedAlphabetically(t *testing.T) {
	t.Parallel()

	store, err := NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Insert in reverse alphabetical order.
	maharashtra, _ := DefaultStateRules("maharashtra")
	karnataka, _ := DefaultStateRules("karnataka")
	if err := store.SetStateRules("maharashtra", maharashtra); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.SetStateRules("karnataka", karnataka); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.States()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"karnataka", "maharashtra"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSeedDefaults(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	store, err := NewFileStorage(dataDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := SeedDefaults(store); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, state := range DefaultStates() {
		if _, err := os.Stat(filepath.Join(dataDir, state+".json")); err != nil {
			t.Fatalf("expected seeded file for %s: %v", state, err)
		}
	}

	maharashtra, err := store.GetStateRules("maharashtra")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if maharashtra.ESI.MinimumWageThreshold != 137 {
		t.Fatalf("expected maharashtra minimum wage threshold 137, got %v", maharashtra.ESI.MinimumWageThreshold)
	}
	if maharashtra.LabourWelfareFund.PaymentFrequency != "semi-annual" {
		t.Fatalf("expected maharashtra semi-annual lwf, got %q", maharashtra.LabourWelfareFund.PaymentFrequency)
	}

	karnataka, err := store.GetStateRules("karnataka")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if karnataka.ProfessionalTax.AnnualCeiling != 2400 {
		t.Fatalf("expected karnataka annual ceiling 2400, got %v", karnataka.ProfessionalTax.AnnualCeiling)
	}
	if karnataka.LabourWelfareFund.PaymentFrequency != "annual" {
		t.Fatalf("expected karnataka annual lwf, got %q", karnataka.LabourWelfareFund.PaymentFrequency)
	}
}

func TestDefaultStateRulesUnknownState(t *testing.T) {
	t.Parallel()

	if _, ok := DefaultStateRules("goa"); ok {
		t.Fatal("expected no bundled rules for goa")
	}
	if _, ok := DefaultStateRules("  Karnataka "); !ok {
		t.Fatal("expected bundled rules for Karnataka regardless of case")
	}
}

func TestNewFileStorageSkipsNonJSONEntries(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dataDir, "README.txt"), []byte("notes"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dataDir, "archive"), 0o755); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store, err := NewFileStorage(dataDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	states, err := store.States()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(states) != 0 {
		t.Fatalf("expected no states, got %v", states)
	}
}

func TestNewFileStorageRejectsCorruptFile(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dataDir, "maharashtra.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := NewFileStorage(dataDir); err == nil {
		t.Fatal("expected error for corrupt state file")
	}
}

func TestFileStorageConcurrentAccess(t *testing.T) {
	store, err := NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rules, _ := DefaultStateRules("maharashtra")
	var wg sync.WaitGroup

	for i := 0; i < 32; i++ {
		wg.Add(2)

		go func(n int) {
			defer wg.Done()
			if err := store.SetStateRules(fmt.Sprintf("state%d", n), rules); err != nil {
				t.Errorf("SetStateRules failed: %v", err)
			}
		}(i)

		go func() {
			defer wg.Done()
			if _, err := store.States(); err != nil {
				t.Errorf("States failed: %v", err)
			}
		}()
	}

	wg.Wait()

	states, err := store.States()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(states) != 32 {
		t.Fatalf("expected 32 states, got %d", len(states))
	}
}
