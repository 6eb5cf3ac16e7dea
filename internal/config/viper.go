// Package config reads csvsync settings that come from viper: the config
// file, environment variables and .env files.
package config

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"

	"github.com/agentstation/csvsync/pkg/constants"
	"github.com/agentstation/csvsync/pkg/keys"
)

// Viper keys for reconciliation defaults.
const (
	KeyColumn       = "key_column"
	Trim            = "trim"
	CaseInsensitive = "case_insensitive"
	Schema          = "schema"
	Duplicates      = "duplicates"
	Comma           = "comma"
)

// Defaults are the reconciliation settings commands fall back to when a flag
// is not given.
type Defaults struct {
	KeyColumn  string      `json:"key_column" yaml:"key_column"`
	Keys       keys.Config `json:"keys" yaml:"keys"`
	Schema     string      `json:"schema" yaml:"schema"`
	Duplicates string      `json:"duplicates" yaml:"duplicates"`
	Comma      rune        `json:"comma" yaml:"comma"`
}

// SetDefaults registers the built-in values with viper.
func SetDefaults() {
	viper.SetDefault(Schema, constants.DefaultSchemaMode)
	viper.SetDefault(Duplicates, constants.DefaultDuplicatePolicy)
	viper.SetDefault(Comma, string(constants.DefaultComma))
}

// LoadDefaults reads the reconciliation defaults from viper.
func LoadDefaults() Defaults {
	return Defaults{
		KeyColumn: GetString(KeyColumn),
		Keys: keys.Config{
			Trim:            viper.GetBool(Trim),
			CaseInsensitive: viper.GetBool(CaseInsensitive),
		},
		Schema:     GetString(Schema),
		Duplicates: GetString(Duplicates),
		Comma:      ParseComma(GetString(Comma)),
	}
}

// ParseComma turns a separator setting into a rune. "tab" and `\t` name the
// tab character; anything else uses its first character. Empty means ','.
func ParseComma(s string) rune {
	switch strings.ToLower(s) {
	case "":
		return constants.DefaultComma
	case "tab", `\t`:
		return '\t'
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	// Check OS env directly first
	osValue := os.Getenv(strings.ToUpper(key))
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}
