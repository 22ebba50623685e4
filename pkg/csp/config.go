package csp

import "github.com/sirupsen/logrus"

// SolverConfig holds the solver's tunables.
type SolverConfig struct {
	// ReorderInterval is the number of candidates between constraint
	// reorderings. At 1 the table is resorted after every candidate,
	// maximizing adaptivity; larger values trade adaptivity for a little
	// speed on problems with many constraints. Values below 1 are
	// treated as 1.
	ReorderInterval int

	// Logger receives search diagnostics at Debug and Trace levels.
	// Defaults to the standard logrus logger.
	Logger logrus.FieldLogger
}

// DefaultSolverConfig returns the configuration used by NewSolver.
func DefaultSolverConfig() *SolverConfig {
	return &SolverConfig{
		ReorderInterval: 1,
		Logger:          logrus.StandardLogger(),
	}
}

func (c *SolverConfig) normalized() *SolverConfig {
	out := &SolverConfig{
		ReorderInterval: c.ReorderInterval,
		Logger:          c.Logger,
	}
	if out.ReorderInterval < 1 {
		out.ReorderInterval = 1
	}
	if out.Logger == nil {
		out.Logger = logrus.StandardLogger()
	}
	return out
}
