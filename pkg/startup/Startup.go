package startup

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/simplecontainer/deployer/pkg/configuration"
	"github.com/simplecontainer/deployer/pkg/static"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const ENV_PREFIX = "DEPLOYER"

var ERROR_NO_PROJECT = errors.New("no project file found")

func SetFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "Project file (default ./deploy.yaml, then ~/.deployer/config/deploy.yaml)")
	flags.StringP("environment", "e", "", "Environment of the project file to deploy to")
	flags.String("log", static.DEFAULT_LOG_LEVEL, "Log level: debug, info, warn, error")
	flags.StringP("tag", "t", "", "Image tag overriding the project file")
	flags.StringSlice("hosts", []string{}, "Target hosts overriding the project file")
	flags.Bool("parallel", false, "Deploy to every host at once")
	flags.BoolP("yes", "y", false, "Do not ask for confirmation")
	flags.String("pushgateway", "", "Prometheus pushgateway receiving run metrics")
}

// Bind returns a viper instance reading the flags and DEPLOYER_* variables.
func Bind(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	return v, nil
}

func Read(v *viper.Viper) Flags {
	return Flags{
		Config:      v.GetString("config"),
		Environment: v.GetString("environment"),
		Log:         v.GetString("log"),
		Tag:         v.GetString("tag"),
		Hosts:       hosts(v.GetStringSlice("hosts")),
		Parallel:    v.GetBool("parallel"),
		Yes:         v.GetBool("yes"),
		Pushgateway: v.GetString("pushgateway"),
	}
}

// Load reads the project file named by flags and resolves the environment.
func Load(flags Flags) (*configuration.Environment, error) {
	path, err := ProjectPath(flags.Config)
	if err != nil {
		return nil, err
	}

	project, err := configuration.Load(path)
	if err != nil {
		return nil, err
	}

	return project.Resolve(flags.Environment, configuration.Overrides{
		Tag:         flags.Tag,
		Hosts:       flags.Hosts,
		Parallel:    flags.Parallel,
		Pushgateway: flags.Pushgateway,
	})
}

// ProjectPath returns the explicit path, or the first project file found in
// the working directory and the user configuration directory.
func ProjectPath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	candidates := []string{static.PROJECT_FILE}

	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, static.ROOTDIR, static.CONFIGDIR, static.PROJECT_FILE))
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", errors.Wrapf(ERROR_NO_PROJECT, "looked in %s", strings.Join(candidates, ", "))
}

// hosts accepts comma or whitespace separated lists from the environment.
func hosts(values []string) []string {
	result := []string{}

	for _, value := range values {
		for _, field := range strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == ' ' }) {
			result = append(result, field)
		}
	}

	return result
}
