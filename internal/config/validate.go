package config

import "errors"

func ValidateForRun(cfg *Config) error {
	if cfg.MedicationStoreURL == "" {
		return errors.New("MEDICATION_STORE_URL environment variable is required")
	}
	return nil
}
