package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/simplecontainer/deployer/pkg/command"
	"github.com/simplecontainer/deployer/pkg/commands"
	"github.com/simplecontainer/deployer/pkg/logger"
	"github.com/simplecontainer/deployer/pkg/static"
	"github.com/simplecontainer/deployer/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := &command.App{
		Out:     os.Stdout,
		Confirm: utils.Confirm,
	}

	commands.PreloadCommands()
	err := commands.Run(ctx, app, command.New(), os.Args[1:])

	stop()
	logger.Log.Sync()

	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString(err.Error()))
		os.Exit(static.ExitCode(err))
	}
}
