//go:build ignore
// +build ignore

// Writes docs/environment.md, the reference of the CYPHERNODE_* variables
// read by cnctl.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ArkLabsHQ/cyphernode/internal/config"
)

const out = "../../docs/environment.md"

func main() {
	var b strings.Builder

	b.WriteString("# cnctl environment\n\n")
	b.WriteString("Generated from `config.EnvSpecs()`, do not edit by hand.\n\n")
	b.WriteString("| Variable | Type | Default | Description |\n")
	b.WriteString("|---|---|---|---|\n")

	var example []string
	for _, s := range config.EnvSpecs() {
		def := s.Default
		if def == "" {
			def = "-"
		} else {
			example = append(example, fmt.Sprintf("export %s=%s", s.FullName, s.Default))
		}
		desc := s.Description
		if s.Notes != "" {
			desc += "<br/>" + s.Notes
		}
		fmt.Fprintf(&b, "| `%s` | %s | `%s` | %s |\n", s.FullName, s.Type, def, desc)
	}

	if len(example) > 0 {
		b.WriteString("\nDefaults, as shell exports:\n\n```sh\n")
		b.WriteString(strings.Join(example, "\n"))
		b.WriteString("\n```\n")
	}

	if err := os.MkdirAll("../../docs", 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := os.WriteFile(out, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
