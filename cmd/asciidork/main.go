// Package main implements the asciidork command-line tool: parse an
// AsciiDoc document and print its diagnostics, or browse the parsed
// tree interactively.
package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/connerohnesorge/asciidork/internal/jobconfig"
	"github.com/connerohnesorge/asciidork/internal/theme"
	kongcompletion "github.com/jotaen/kong-completion"
)

func main() {
	cli := &CLI{}

	themeDefault := "default"
	doctypeDefault := "article"
	safeModeDefault := "safe"
	if cfg, err := jobconfig.Load(); err == nil {
		if cfg.Theme != "" {
			themeDefault = cfg.Theme
		}
		if cfg.Doctype != "" {
			doctypeDefault = cfg.Doctype
		}
		if cfg.SafeMode != "" {
			safeModeDefault = cfg.SafeMode
		}
	}

	parser := kong.Must(cli,
		kong.Name("asciidork"),
		kong.Description("Parse and explore AsciiDoc documents"),
		kong.UsageOnError(),
		kong.Vars{
			"theme_default":    themeDefault,
			"doctype_default":  doctypeDefault,
			"safemode_default": safeModeDefault,
		},
	)

	kongcompletion.Register(parser,
		kongcompletion.WithPredictor("adocfile", predictAdocFiles()),
		kongcompletion.WithPredictor("theme", predictThemes()),
	)

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := theme.Load(cli.Theme); err != nil {
		_ = theme.Load("default")
	}

	err = ctx.Run(cli)
	ctx.FatalIfErrorf(err)
}
