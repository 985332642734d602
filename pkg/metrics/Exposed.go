package metrics

var Deployments = NewCounter("deployments_total", "Finished host deployments", []string{"service", "result"})
var HealthChecks = NewCounter("health_check_attempts_total", "Health check polling iterations", []string{"host", "port"})
var ContainersStopped = NewCounter("containers_stopped_total", "Containers stopped before a new start", []string{"service", "host"})
var ContainersStarted = NewCounter("containers_started_total", "Containers created and started", []string{"service", "host"})
var ContainersRemoved = NewCounter("containers_removed_total", "Exited containers removed by cleanup", []string{"service", "host"})
var PhaseDuration = NewHistogram("phase_duration_seconds", "Duration of deployment phases", []string{"phase"})
var DeployedTag = NewGauge("deployed_tag_info", "Tag running on a host after a deployment", []string{"service", "host", "tag"})
