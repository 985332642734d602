package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/simplecontainer/deployer/pkg/command"
	"github.com/simplecontainer/deployer/pkg/logger"
	"github.com/simplecontainer/deployer/pkg/metrics"
	"github.com/simplecontainer/deployer/pkg/startup"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const PARENT = "deployer"

var ERROR_ABORTED = errors.New("aborted by operator")

var Commands []command.Command

func PreloadCommands() {
	Commands = []command.Command{}

	Deploy()
	Stop()
	List()
	DryRun()
	Plan()
}

// Run executes args against root. The logger is created from --log unless
// app already carries one.
func Run(ctx context.Context, app *command.App, root *cobra.Command, args []string) error {
	root.SetHelpCommand(&cobra.Command{
		Use:    "help",
		Hidden: true,
	})

	root.SetArgs(args)

	root.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		v, err := startup.Bind(root.PersistentFlags())
		if err != nil {
			return err
		}

		app.Viper = v
		app.Flags = startup.Read(v)

		if app.Logger == nil {
			app.Logger, err = logger.NewLogger(app.Flags.Log, []string{"stderr"}, []string{"stderr"})
			if err != nil {
				return errors.Wrapf(err, "log level %s", app.Flags.Log)
			}

			logger.Log = app.Logger
		}

		return nil
	}

	for _, cmd := range Commands {
		root.AddCommand(cmd.Cobra(app))
	}

	return root.ExecuteContext(ctx)
}

func loadEnvironment(ctx context.Context, app *command.App, args []string) error {
	environment, err := startup.Load(app.Flags)
	if err != nil {
		return err
	}

	app.Environment = environment
	return nil
}

func confirm(app *command.App, message string) error {
	if app.Flags.Yes {
		return nil
	}

	ok, err := app.Confirm(message)
	if err != nil {
		return err
	}

	if !ok {
		return ERROR_ABORTED
	}

	return nil
}

// push sends the run metrics when a pushgateway is configured. Failures
// only warn, the deployment already happened.
func push(ctx context.Context, app *command.App) {
	url := app.Environment.Settings.Pushgateway
	if url == "" {
		return
	}

	if err := metrics.Push(ctx, url, PARENT); err != nil {
		app.Logger.Warn("pushing metrics failed", zap.String("url", url), zap.Error(err))
	}
}

func done(app *command.App, format string, args ...interface{}) {
	color.New(color.FgGreen).Fprintln(app.Out, fmt.Sprintf(format, args...))
}
