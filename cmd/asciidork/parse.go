package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/connerohnesorge/asciidork/internal/asciidoc"
	"github.com/connerohnesorge/asciidork/internal/asciidocerrs"
	"github.com/connerohnesorge/asciidork/internal/jobconfig"
	"github.com/connerohnesorge/asciidork/internal/resolver"
	"github.com/connerohnesorge/asciidork/internal/theme"
	"github.com/fsnotify/fsnotify"
)

// ParseCmd parses one AsciiDoc file and prints its diagnostics to
// stdout, optionally re-parsing on every filesystem change when Watch
// is set.
type ParseCmd struct {
	File  string `arg:"" help:"AsciiDoc file to parse" type:"existingfile"`
	Watch bool   `help:"Re-parse whenever the file itself changes (changes to files it includes do not trigger a re-parse)" name:"watch"`
}

func (cmd *ParseCmd) Run(cli *CLI) error {
	if cmd.Watch {
		return cmd.runWatch(cli)
	}

	_, diags, err := cmd.runOnce(cli)
	if err != nil {
		return err
	}

	if cli.Strict {
		for _, d := range diags {
			if d.Severity == asciidoc.SeverityError {
				return &asciidocerrs.ParseFailedError{Path: cmd.File, Diagnostics: diags, Err: fmt.Errorf("%s", d.Message)}
			}
		}
	}

	return nil
}

func (cmd *ParseCmd) runOnce(cli *CLI) ([]byte, []asciidoc.Diagnostic, error) {
	src, err := os.ReadFile(cmd.File)
	if err != nil {
		return nil, nil, &asciidocerrs.ConfigError{Path: cmd.File, Err: err}
	}

	cfg, err := jobconfig.Load()
	if err != nil {
		return nil, nil, err
	}

	th, err := theme.Get(cli.Theme)
	if err != nil {
		return nil, nil, err
	}

	doctype, _ := asciidoc.ParseDoctype(cli.Doctype)
	safeMode, _ := asciidoc.ParseSafeMode(cli.SafeMode)

	settings := asciidoc.NewSettings()
	settings.Resolver = resolver.NewFileResolver(fileDir(cmd.File))
	settings.Doctype = doctype
	settings.SafeMode = safeMode
	settings.JobAttributes = cfg.Attributes
	settings.Strict = cli.Strict
	settings.PrimaryName = cmd.File

	result := asciidoc.Parse(src, settings)
	if result.Err != nil {
		return src, result.Warnings, &asciidocerrs.ParseFailedError{Path: cmd.File, Diagnostics: result.Warnings, Err: result.Err}
	}

	color := colorEnabled(os.Stdout)
	printDiagnostics(os.Stdout, src, result.Warnings, th, color)
	if len(result.Warnings) == 0 {
		fmt.Fprintf(os.Stdout, "%s: no diagnostics\n", cmd.File)
	}

	return src, result.Warnings, nil
}

// runWatch re-parses cmd.File whenever fsnotify reports a write, so a
// document being edited gets live diagnostic feedback without rerunning
// the command by hand.
func (cmd *ParseCmd) runWatch(cli *CLI) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return &asciidocerrs.WatchError{Path: cmd.File, Err: err}
	}
	defer watcher.Close()

	dir := filepath.Dir(cmd.File)
	if err := watcher.Add(dir); err != nil {
		return &asciidocerrs.WatchError{Path: dir, Err: err}
	}

	if _, _, err := cmd.runOnce(cli); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(cmd.File) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			fmt.Fprintf(os.Stdout, "\n--- %s changed, re-parsing ---\n", cmd.File)
			if _, _, err := cmd.runOnce(cli); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			return &asciidocerrs.WatchError{Path: cmd.File, Err: err}
		}
	}
}
