package storage

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Singhutkarsh-tech/pdfpayroll/internal/calculator"
)

// MemoryStorage keeps state rules in-memory and guards access with a RWMutex.
// It is used where persistence is not needed, primarily in tests.
type MemoryStorage struct {
	mu     sync.RWMutex
	states map[string]calculator.StateRules
}

// NewMemoryStorage initialises storage with a copy of the default state rules.
func NewMemoryStorage() *MemoryStorage {
	states := make(map[string]calculator.StateRules)
	for _, state := range DefaultStates() {
		if rules, ok := DefaultStateRules(state); ok {
			states[state] = rules
		}
	}
	return &MemoryStorage{states: states}
}

// GetStateRules returns a defensive copy of the rules stored for the state.
func (s *MemoryStorage) GetStateRules(state string) (calculator.StateRules, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rules, ok := s.states[normalizeState(state)]
	if !ok {
		return calculator.StateRules{}, ErrStateNotFound
	}
	return rules.Clone(), nil
}

// SetStateRules validates and stores the provided rules.
func (s *MemoryStorage) SetStateRules(state string, rules calculator.StateRules) error {
	key := normalizeState(state)
	if key == "" {
		return fmt.Errorf("%w: state name is empty", ErrInvalidRules)
	}
	if err := validateRules(rules); err != nil {
		return err
	}

	s.mu.Lock()
	s.states[key] = rules.Clone()
	s.mu.Unlock()

	return nil
}

// States returns the states with stored rules, sorted alphabetically.
func (s *MemoryStorage) States() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.states))
	for state := range s.states {
		out = append(out, state)
	}
	sort.Strings(out)
	return out, nil
}
