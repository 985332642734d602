package v1

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
	"github.com/simplecontainer/deployer/pkg/static"
	"gopkg.in/yaml.v3"
)

type ServiceDefinition struct {
	Name        string            `json:"name" yaml:"name" validate:"required"`
	Image       string            `json:"image" yaml:"image" validate:"required"`
	Tag         string            `json:"tag,omitempty" yaml:"tag,omitempty"`
	Hostname    string            `json:"hostname,omitempty" yaml:"hostname,omitempty" validate:"omitempty,hostname_rfc1123"`
	Command     Command           `json:"command,omitempty" yaml:"command,omitempty"`
	Memory      interface{}       `json:"memory,omitempty" yaml:"memory,omitempty"`
	CpuShares   interface{}       `json:"cpuShares,omitempty" yaml:"cpuShares,omitempty"`
	Env         map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
	EnvFile     string            `json:"envFile,omitempty" yaml:"envFile,omitempty"`
	Labels      map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
	Volumes     []ServiceVolume   `json:"volumes,omitempty" yaml:"volumes,omitempty" validate:"dive"`
	Ports       []ServicePort     `json:"ports,omitempty" yaml:"ports,omitempty" validate:"dive"`
	NetworkMode string            `json:"networkMode,omitempty" yaml:"networkMode,omitempty" validate:"omitempty,networkmode"`
	CapAdd      []string          `json:"capAdd,omitempty" yaml:"capAdd,omitempty" validate:"dive,capability"`
	CapDrop     []string          `json:"capDrop,omitempty" yaml:"capDrop,omitempty" validate:"dive,capability"`
	Dns         []string          `json:"dns,omitempty" yaml:"dns,omitempty" validate:"dive,ip"`
	ExtraHosts  []string          `json:"extraHosts,omitempty" yaml:"extraHosts,omitempty" validate:"dive,extrahost"`
}

type ServiceVolume struct {
	HostVolume      string `json:"hostVolume" yaml:"hostVolume" validate:"required"`
	ContainerVolume string `json:"containerVolume" yaml:"containerVolume" validate:"required"`
}

type ServicePort struct {
	HostPort      uint16 `json:"hostPort" yaml:"hostPort" validate:"required"`
	ContainerPort uint16 `json:"containerPort" yaml:"containerPort" validate:"required"`
	Type          string `json:"type,omitempty" yaml:"type,omitempty" validate:"omitempty,oneof=tcp udp sctp"`
	HostIP        string `json:"hostIp,omitempty" yaml:"hostIp,omitempty" validate:"omitempty,ip"`
}

// Command accepts either a YAML sequence or a single shell style string.
type Command []string

func (command *Command) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		args, err := shellwords.Parse(node.Value)
		if err != nil {
			return errors.Wrapf(err, "parsing command %q", node.Value)
		}

		*command = args
		return nil
	case yaml.SequenceNode:
		var args []string

		if err := node.Decode(&args); err != nil {
			return err
		}

		*command = args
		return nil
	default:
		return errors.Errorf("line %d: command must be a string or a list of strings", node.Line)
	}
}

func NewService() *ServiceDefinition {
	return &ServiceDefinition{
		Env:    map[string]string{},
		Labels: map[string]string{},
	}
}

func (service *ServiceDefinition) FromYAML(bytes []byte) error {
	return yaml.Unmarshal(bytes, service)
}

func (service *ServiceDefinition) ToYAML() ([]byte, error) {
	return yaml.Marshal(service)
}

func (service *ServiceDefinition) Validate() (bool, error) {
	validate := NewValidator()

	err := validate.Struct(service)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			messages := make([]string, 0, len(validationErrors))

			for _, fieldError := range validationErrors {
				messages = append(messages, describe(fieldError))
			}

			return false, errors.Errorf("invalid service definition: %s", strings.Join(messages, "; "))
		}

		return false, err
	}

	return true, nil
}

func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterValidation("networkmode", func(fl validator.FieldLevel) bool {
		return static.NETWORK_MODE.MatchString(fl.Field().String())
	})

	validate.RegisterValidation("capability", func(fl validator.FieldLevel) bool {
		return static.IsCapability(fl.Field().String())
	})

	validate.RegisterValidation("extrahost", func(fl validator.FieldLevel) bool {
		host, ip, found := strings.Cut(fl.Field().String(), ":")
		return found && host != "" && ip != ""
	})

	return validate
}

func describe(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return fieldError.Namespace() + " is required"
	case "networkmode":
		return fieldError.Namespace() + " must be bridge, host or container:<id>, got " + quote(fieldError.Value())
	case "capability":
		return fieldError.Namespace() + " is not a known capability: " + quote(fieldError.Value())
	default:
		return fieldError.Namespace() + " failed " + fieldError.Tag() + " check: " + quote(fieldError.Value())
	}
}

func quote(value interface{}) string {
	return fmt.Sprintf("'%v'", value)
}
