// Package config provides small helpers over Viper for values that may live
// in either the Viper instance or the raw process environment.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// GetString returns key from v, falling back to the OS environment variable
// of the same name when Viper has no value. A nil v uses the global instance.
func GetString(v *viper.Viper, key string) string {
	if v == nil {
		v = viper.GetViper()
	}
	if value := v.GetString(key); value != "" {
		return value
	}
	return os.Getenv(key)
}

// GetStringOr is GetString with a default for empty results.
func GetStringOr(v *viper.Viper, key, def string) string {
	if value := strings.TrimSpace(GetString(v, key)); value != "" {
		return value
	}
	return def
}

// EnvName converts a dotted config key to its prefixed environment variable
// name, e.g. ("UNITMAP", "resolver.threshold") -> UNITMAP_RESOLVER_THRESHOLD.
func EnvName(prefix, key string) string {
	name := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
	if prefix == "" {
		return name
	}
	return strings.ToUpper(prefix) + "_" + name
}
