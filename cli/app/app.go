package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/nspcc-dev/syrup/cli/codec"
	"github.com/nspcc-dev/syrup/pkg/config"
	"github.com/urfave/cli"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "Syrup\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates a syrup instance of [cli.App] with all commands included.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "syrup"
	ctl.Version = config.Version
	ctl.Usage = "Syrup serialization format tool"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, codec.NewCommands()...)
	return ctl
}
