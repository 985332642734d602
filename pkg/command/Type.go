package command

import (
	"context"
	"io"

	"github.com/simplecontainer/deployer/pkg/configuration"
	"github.com/simplecontainer/deployer/pkg/engine"
	"github.com/simplecontainer/deployer/pkg/startup"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Function func(ctx context.Context, app *App, args []string) error

// App is shared by every command of one process.
type App struct {
	Viper       *viper.Viper
	Flags       startup.Flags
	Environment *configuration.Environment
	Logger      *zap.Logger
	Out         io.Writer

	// Factory creates engine clients, nil means the docker binding.
	Factory engine.Factory

	// Confirm asks the operator before changing hosts.
	Confirm func(message string) (bool, error)
}

type Command struct {
	Parent    string
	Name      string
	Short     string
	Args      func(*cobra.Command, []string) error
	Flags     func(command *cobra.Command)
	Condition func(*App) bool
	Command   Function
	DependsOn []Function
}
