package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/designpreview/internal/design"
	"git.home.luguber.info/inful/designpreview/internal/htmlmeta"
	"git.home.luguber.info/inful/designpreview/internal/logfields"
)

// ListCmd implements the 'list' command.
type ListCmd struct {
	Root       string `short:"r" help:"Directory to scan (overrides config root)"`
	HTMLTitles bool   `name:"html-titles" help:"Also show each document's <title> element"`
}

func (l *ListCmd) Run(global *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	scanRoot := override(cfg.Root, l.Root)

	versions, err := design.NewDiscovery(design.WithLogger(global.logger())).DiscoverVersions(scanRoot)
	if err != nil {
		return design.Classify(err, scanRoot)
	}

	out := global.out()
	if len(versions) == 0 {
		_, err = fmt.Fprintf(out, "No design documents found under %s\n", scanRoot)
		return err
	}
	for _, v := range versions {
		for _, g := range v.Groups {
			if _, err := fmt.Fprintf(out, "%s (%s)\n", g.Label, g.Key); err != nil {
				return err
			}
			for _, it := range g.Items {
				line := fmt.Sprintf("  %s  %s", it.Title, it.Path)
				if l.HTMLTitles {
					line += "  " + l.documentTitle(global, scanRoot, it.Path)
				}
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// documentTitle reads the <title> of the item at relPath, quoted, or "-" when unavailable.
func (l *ListCmd) documentTitle(global *Global, scanRoot, relPath string) string {
	full := filepath.Join(scanRoot, filepath.FromSlash(strings.TrimPrefix(relPath, "./")))
	meta, err := htmlmeta.ReadFile(full)
	if err != nil {
		global.logger().Warn("Failed to read HTML title", logfields.File(full), logfields.Error(err))
		return "-"
	}
	if meta.Title == "" {
		return "-"
	}
	return fmt.Sprintf("%q", meta.Title)
}
