package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type Builder struct {
	parent    string
	name      string
	short     string
	flags     func(cmd *cobra.Command)
	args      func(*cobra.Command, []string) error
	condition func(*App) bool
	command   Function
	dependsOn []Function
}

func NewBuilder() *Builder {
	return &Builder{
		args:      cobra.NoArgs,
		flags:     EmptyFlag,
		condition: EmptyCondition,
		dependsOn: EmptyDepend,
		command:   EmptyFunction,
	}
}

func (cb *Builder) Parent(parent string) *Builder {
	cb.parent = parent
	return cb
}

func (cb *Builder) Name(name string) *Builder {
	cb.name = name
	return cb
}

func (cb *Builder) Short(short string) *Builder {
	cb.short = short
	return cb
}

func (cb *Builder) Flags(flags func(cmd *cobra.Command)) *Builder {
	cb.flags = flags
	return cb
}

func (cb *Builder) Args(args func(*cobra.Command, []string) error) *Builder {
	cb.args = args
	return cb
}

func (cb *Builder) Function(fn Function) *Builder {
	cb.command = fn
	return cb
}

func (cb *Builder) Condition(fn func(*App) bool) *Builder {
	cb.condition = fn
	return cb
}

func (cb *Builder) DependsOn(fns ...Function) *Builder {
	cb.dependsOn = append(cb.dependsOn, fns...)
	return cb
}

func (cb *Builder) Build() Command {
	return Command{
		Parent:    cb.parent,
		Name:      cb.name,
		Short:     cb.short,
		Args:      cb.args,
		Flags:     cb.flags,
		Command:   cb.command,
		Condition: cb.condition,
		DependsOn: cb.dependsOn,
	}
}

func (cb *Builder) Validate() error {
	if cb.name == "" {
		return fmt.Errorf("command name is required")
	}
	if cb.parent == "" {
		return fmt.Errorf("command parent is required")
	}
	return nil
}

func (cb *Builder) BuildWithValidation() Command {
	if err := cb.Validate(); err != nil {
		panic(err)
	}

	return cb.Build()
}

func EmptyFlag(cmd *cobra.Command) {}

func EmptyCondition(*App) bool { return true }

func EmptyFunction(context.Context, *App, []string) error { return nil }

var EmptyDepend = []Function{}
