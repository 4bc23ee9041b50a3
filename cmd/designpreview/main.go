package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/designpreview/cmd/designpreview/commands"
	ferrors "git.home.luguber.info/inful/designpreview/internal/foundation/errors"
	"git.home.luguber.info/inful/designpreview/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("designpreview"),
		kong.Description("Scan a directory of HTML design documents and publish a grouped manifest."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	global := commands.NewGlobal()
	if err := parser.Run(global, cli); err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
	}
}
