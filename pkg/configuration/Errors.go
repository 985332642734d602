package configuration

import "github.com/pkg/errors"

var ERROR_UNKNOWN_ENVIRONMENT = errors.New("unknown environment")
var ERROR_WEBHOOK_URL = errors.New("webhook callbacks need an url")
var ERROR_HEALTH_CHECK = errors.New("unknown health check type")
