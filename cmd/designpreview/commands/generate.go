package commands

import (
	"fmt"

	"git.home.luguber.info/inful/designpreview/internal/design"
	ferrors "git.home.luguber.info/inful/designpreview/internal/foundation/errors"
	"git.home.luguber.info/inful/designpreview/internal/publish"
)

// stdoutOutput selects standard output instead of a manifest file.
const stdoutOutput = "-"

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Root        string `short:"r" help:"Directory to scan (overrides config root)"`
	Output      string `short:"o" help:"Manifest output path, '-' for stdout (overrides config output)"`
	Title       string `help:"Manifest title (overrides config title)"`
	Description string `help:"Manifest description (overrides config description)"`
}

func (g *GenerateCmd) Run(global *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	source := publish.Source{
		Root:        override(cfg.Root, g.Root),
		Title:       override(cfg.Title, g.Title),
		Description: override(cfg.Description, g.Description),
	}
	output := override(cfg.Output, g.Output)
	builder := design.NewBuilder(design.WithLogger(global.logger()))

	if output == stdoutOutput {
		m, err := builder.Build(source.Root, source.Title, source.Description)
		if err != nil {
			return design.Classify(err, source.Root)
		}
		data, err := m.ToJSON()
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode manifest").Build()
		}
		_, err = fmt.Fprintln(global.out(), string(data))
		return err
	}

	m, err := publish.NewPublisher(builder, source, output, global.logger()).Publish()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(global.out(), "Wrote %d design documents to %s\n", m.ItemCount(), output)
	return err
}
