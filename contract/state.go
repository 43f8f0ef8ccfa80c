// SPDX-License-Identifier: MIT
package contract

import (
	"sync"

	"github.com/fieldmesh/hypercore/backend"
	"github.com/fieldmesh/hypercore/graph"
	"go.uber.org/zap"
)

// ProcessState is the single encapsulation of process-wide mutable state:
// the graph cache and the trained yield-residual coefficients, guarded by
// one coarse lock. Entry points take a *ProcessState explicitly rather than
// reaching for package-level globals.
type ProcessState struct {
	mu sync.Mutex

	cache        map[string]*graph.LayeredHyperGraph
	residualBeta []float64

	backendCfg backend.Config
	graphCfg   graph.Config

	logger *zap.Logger
}

// StateOption mutates a ProcessState during construction.
type StateOption func(*ProcessState)

// WithLogger overrides the default zap.NewProduction() logger.
func WithLogger(l *zap.Logger) StateOption {
	return func(s *ProcessState) { s.logger = l }
}

// WithBackendConfig overrides the environment-derived backend.Config.
func WithBackendConfig(cfg backend.Config) StateOption {
	return func(s *ProcessState) { s.backendCfg = cfg }
}

// WithGraphConfig overrides the environment-derived graph.Config.
func WithGraphConfig(cfg graph.Config) StateOption {
	return func(s *ProcessState) { s.graphCfg = cfg }
}

// NewProcessState constructs a ProcessState, reading FORCE_HOST_BACKEND and
// HISTORY_SIZE from the environment unless overridden by opts.
func NewProcessState(opts ...StateOption) (*ProcessState, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	s := &ProcessState{
		cache:      make(map[string]*graph.LayeredHyperGraph),
		backendCfg: backend.LoadConfig(),
		graphCfg:   graph.LoadConfig(),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger.Info("process state initialized",
		zap.Stringer("backend", backend.Select(s.backendCfg)),
		zap.Int("history_depth", s.graphCfg.HistoryDepth),
	)

	return s, nil
}

// ResidualBeta returns the currently trained yield-residual coefficients,
// and whether training has happened yet.
func (s *ProcessState) ResidualBeta() ([]float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.residualBeta == nil {
		return nil, false
	}

	return append([]float64(nil), s.residualBeta...), true
}

// SetResidualBeta installs a freshly trained coefficient vector.
func (s *ProcessState) SetResidualBeta(beta []float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.residualBeta = append([]float64(nil), beta...)
}
