package resolver

import "os"

// Environment variables the parent shell wrapper exports after a switch.
// They are the only channel through which a past switch is visible to a
// later invocation.
const (
	// EnvName declares the context the parent shell considers active.
	EnvName = "KUBESWITCH_NAME"

	// EnvNamespace overrides the declared context's namespace.
	EnvNamespace = "KUBESWITCH_NAMESPACE"
)

// Environ is an explicit snapshot of the shell-declared state, threaded
// into the resolver so resolution stays a pure function of its inputs.
type Environ struct {
	Name      string
	Namespace string
}

// EnvironFromOS snapshots the process environment.
func EnvironFromOS() Environ {
	return Environ{
		Name:      os.Getenv(EnvName),
		Namespace: os.Getenv(EnvNamespace),
	}
}
