package logging

// Environment selects log output conventions.
type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// ServiceInfo identifies the running service in every log record.
type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

// Module labels a log record with the subsystem it came from.
type Module string

func (m Module) String() string {
	return string(m)
}
