package main

import (
	"os"
	"strings"

	"github.com/posener/complete"
)

// predictAdocFiles suggests *.adoc/*.asciidoc files in the current
// directory. main registers it with kong-completion as the "adocfile"
// predictor; no command argument carries a `predictor:"adocfile"` tag,
// so the `file` argument of parse/inspect does not use it.
func predictAdocFiles() complete.Predictor {
	return complete.PredictFunc(func(complete.Args) []string {
		entries, err := os.ReadDir(".")
		if err != nil {
			return nil
		}

		var out []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			name := e.Name()
			if strings.HasSuffix(name, ".adoc") || strings.HasSuffix(name, ".asciidoc") {
				out = append(out, name)
			}
		}

		return out
	})
}

// predictThemes suggests the names internal/theme registers.
func predictThemes() complete.Predictor {
	return complete.PredictSet("default", "dark", "light")
}
