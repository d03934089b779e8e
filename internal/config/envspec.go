package config

import (
	"reflect"
	"strings"
)

type EnvVar struct {
	Name        string // short name under the CYPHERNODE_ prefix (e.g., "HOST")
	FullName    string // e.g., "CYPHERNODE_HOST"
	Type        string // human-readable type
	Default     string // default value as a string ("" if none)
	Description string // one-liner for docs
	Notes       string // optional: constraints, examples, etc.
}

var envNotes = map[string]string{
	"SECRET":   "Never logged. Keep it out of shell history.",
	"TLS_MODE": "insecure disables certificate verification and logs a warning.",
	"NETWORK":  "Empty leaves all validation to the gateway.",
}

// EnvSpecs describes every variable read by LoadConfig, in declaration
// order.
func EnvSpecs() []EnvVar {
	const p = envPrefix + "_"

	t := reflect.TypeOf(Config{})
	specs := make([]EnvVar, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := f.Tag.Get("mapstructure")
		if name == "" {
			continue
		}
		specs = append(specs, EnvVar{
			Name:        name,
			FullName:    p + name,
			Type:        envType(f),
			Default:     f.Tag.Get("envDefault"),
			Description: f.Tag.Get("envInfo"),
			Notes:       envNotes[name],
		})
	}
	return specs
}

func envType(f reflect.StructField) string {
	switch {
	case f.Name == "Datadir" || f.Name == "CACert":
		return "string (path)"
	case f.Name == "Host":
		return "string (host:port)"
	case strings.HasSuffix(f.Name, "Port"):
		return "uint32 (port)"
	case f.Name == "LogLevel":
		return "uint32 (0–6)"
	case f.Name == "Timeout":
		return "uint32 (seconds)"
	default:
		return f.Type.Kind().String()
	}
}

//go:generate go run ../../tools/gen-env-doc/main.go
