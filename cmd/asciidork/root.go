// Package main implements the asciidork command-line tool: parse an
// AsciiDoc document and print its diagnostics, or browse the parsed
// tree interactively.
package main

import (
	kongcompletion "github.com/jotaen/kong-completion"
)

// CLI is the root Kong command structure.
type CLI struct {
	Strict   bool   `help:"Treat the first error-severity diagnostic as fatal" name:"strict"`
	SafeMode string `help:"Include safe mode: unsafe, safe, server, secure" name:"safe-mode" default:"${safemode_default}" enum:"unsafe,safe,server,secure"`
	Doctype  string `help:"Document type: article, book, manpage, inline" name:"doctype" default:"${doctype_default}" enum:"article,book,manpage,inline"`
	Theme    string `help:"Color theme: default, dark, light" name:"theme" default:"${theme_default}" enum:"default,dark,light"`

	Parse      ParseCmd                  `cmd:"" help:"Parse an AsciiDoc file and print its diagnostics"`
	Inspect    InspectCmd                `cmd:"" help:"Interactively browse a parsed document's tree"`
	Completion kongcompletion.Completion `cmd:"" help:"Generate shell completion scripts"`
}
