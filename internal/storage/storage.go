package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Singhutkarsh-tech/pdfpayroll/internal/calculator"
)

var (
	// ErrStateNotFound indicates no rules have been stored for the requested state.
	ErrStateNotFound = errors.New("state rules not found")
	// ErrInvalidRules indicates the provided state rules violate validation rules.
	ErrInvalidRules = errors.New("invalid state rules")
)

// Storage provides access to the per-state compliance rules used by the
// calculator. States are identified case-insensitively.
type Storage interface {
	GetStateRules(state string) (calculator.StateRules, error)
	SetStateRules(state string, rules calculator.StateRules) error
	States() ([]string, error)
}

// FileStorage keeps state rules in-memory, persists every update as a JSON
// file under the data directory, and guards access with a RWMutex.
type FileStorage struct {
	mu      sync.RWMutex
	dataDir string
	states  map[string]calculator.StateRules
}

// NewFileStorage creates the data directory if needed and loads every
// existing state rules file into memory.
func NewFileStorage(dataDir string) (*FileStorage, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	s := &FileStorage{
		dataDir: dataDir,
		states:  make(map[string]calculator.StateRules),
	}
	if err := s.loadAll(); err != nil {
		return nil, err
	}
	return s, nil
}

// GetStateRules returns a defensive copy of the rules stored for the state.
func (s *FileStorage) GetStateRules(state string) (calculator.StateRules, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rules, ok := s.states[normalizeState(state)]
	if !ok {
		return calculator.StateRules{}, ErrStateNotFound
	}
	return rules.Clone(), nil
}

// SetStateRules validates the rules, writes them to the state's JSON file,
// and updates the in-memory copy. The in-memory copy is left untouched when
// the write fails.
func (s *FileStorage) SetStateRules(state string, rules calculator.StateRules) error {
	key := normalizeState(state)
	if key == "" {
		return fmt.Errorf("%w: state name is empty", ErrInvalidRules)
	}
	if err := validateRules(rules); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(key, rules); err != nil {
		return err
	}
	s.states[key] = rules.Clone()
	return nil
}

// States returns the states with stored rules, sorted alphabetically.
func (s *FileStorage) States() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.states))
	for state := range s.states {
		out = append(out, state)
	}
	sort.Strings(out)
	return out, nil
}

func (s *FileStorage) loadAll() error {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return fmt.Errorf("read data directory: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(s.dataDir, name))
		if err != nil {
			return fmt.Errorf("read state file %s: %w", name, err)
		}

		var rules calculator.StateRules
		if err := json.Unmarshal(raw, &rules); err != nil {
			return fmt.Errorf("parse state file %s: %w", name, err)
		}

		s.states[strings.TrimSuffix(name, ".json")] = rules
	}
	return nil
}

func (s *FileStorage) persist(key string, rules calculator.StateRules) error {
	raw, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state rules: %w", err)
	}

	path := filepath.Join(s.dataDir, key+".json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

func normalizeState(state string) string {
	return strings.ToLower(strings.TrimSpace(state))
}

func validateRules(rules calculator.StateRules) error {
	if strings.TrimSpace(rules.StateName) == "" {
		return fmt.Errorf("%w: state_name is required", ErrInvalidRules)
	}
	if len(rules.ProfessionalTax.MonthlySlabs) == 0 {
		return fmt.Errorf("%w: professional_tax.monthly_slabs must not be empty", ErrInvalidRules)
	}
	for i, slab := range rules.ProfessionalTax.MonthlySlabs {
		if slab.Min < 0 || slab.Tax < 0 {
			return fmt.Errorf("%w: professional_tax.monthly_slabs[%d] has negative amounts", ErrInvalidRules, i)
		}
		if slab.Max != nil && *slab.Max < slab.Min {
			return fmt.Errorf("%w: professional_tax.monthly_slabs[%d] has max below min", ErrInvalidRules, i)
		}
	}
	if rules.ProfessionalTax.AnnualCeiling < 0 {
		return fmt.Errorf("%w: professional_tax.annual_ceiling must not be negative", ErrInvalidRules)
	}

	pf := rules.ProvidentFund
	if pf.EmployeeContributionRate < 0 || pf.EmployerContributionRate < 0 ||
		pf.EmployerPensionRate < 0 || pf.EmployerEPFRate < 0 ||
		pf.SalaryCeiling < 0 || pf.AdminChargesRate < 0 || pf.EDLIRate < 0 {
		return fmt.Errorf("%w: provident_fund amounts must not be negative", ErrInvalidRules)
	}

	esi := rules.ESI
	if esi.EmployeeContributionRate < 0 || esi.EmployerContributionRate < 0 ||
		esi.IncomeThreshold < 0 || esi.MinimumWageThreshold < 0 {
		return fmt.Errorf("%w: esi amounts must not be negative", ErrInvalidRules)
	}

	lwf := rules.LabourWelfareFund
	if lwf.EmployeeContribution < 0 || lwf.EmployerContribution < 0 {
		return fmt.Errorf("%w: labour_welfare_fund contributions must not be negative", ErrInvalidRules)
	}
	return nil
}
