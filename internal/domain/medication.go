package domain

import "fmt"

// Medication mirrors the entity owned by the medication store. The engine
// never persists it; the store supplies it per user on every regeneration.
type Medication struct {
	ID           string
	Name         string
	Dosage       string
	Instructions string
	Rules        []FrequencyRule
}

// Validate checks that the medication is schedulable: a non-empty name, at
// least one rule, and every rule internally consistent.
func (m Medication) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("%w: medication %s has no name", ErrInvalidMedication, m.ID)
	}
	if len(m.Rules) == 0 {
		return fmt.Errorf("%w: medication %q has no frequency rules", ErrInvalidFrequency, m.Name)
	}
	for _, rule := range m.Rules {
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("medication %q: %w", m.Name, err)
		}
	}
	return nil
}
