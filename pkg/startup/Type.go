package startup

// Flags are the command line and DEPLOYER_* environment values of one run.
type Flags struct {
	Config      string
	Environment string
	Log         string
	Tag         string
	Hosts       []string
	Parallel    bool
	Yes         bool
	Pushgateway string
}
