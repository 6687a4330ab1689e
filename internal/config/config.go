// Package config loads the account bundle a conversion needs from a
// YAML file, so recurring conversions don't repeat a dozen flags.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Account describes the financial institution and account a statement
// belongs to. Fields left empty default to UNKNOWN at conversion time.
type Account struct {
	FID      string `yaml:"fid,omitempty"`
	Org      string `yaml:"org,omitempty"`
	BankID   string `yaml:"bank_id,omitempty"`
	AcctID   string `yaml:"account_id,omitempty"`
	AcctType string `yaml:"account_type,omitempty"`
	Balance  string `yaml:"balance,omitempty"`
	Currency string `yaml:"currency,omitempty"`
	Language string `yaml:"language,omitempty"`
	DayFirst bool   `yaml:"day_first,omitempty"`
}

// Load reads an account bundle from a YAML file.
func Load(path string) (*Account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var acct Account
	if err := yaml.Unmarshal(data, &acct); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &acct, nil
}

// Save writes an account bundle to a YAML file.
func Save(path string, acct *Account) error {
	data, err := yaml.Marshal(acct)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns an account bundle with the converter's defaults made
// explicit.
func Default() *Account {
	return &Account{
		AcctType: "CHECKING",
		Language: "ENG",
	}
}
