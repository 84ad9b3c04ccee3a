package vector

import (
	"fmt"

	"github.com/hyperjump/finsight/internal/config"
	"go.uber.org/zap"
)

// Backend names a Collection implementation.
type Backend string

const (
	// BackendQdrant stores vectors in a Qdrant server.
	BackendQdrant Backend = "qdrant"
	// BackendMemory keeps vectors in process memory; contents are lost on restart.
	BackendMemory Backend = "memory"
)

// NewCollection creates the collection selected by cfg.Backend.
func NewCollection(cfg config.VectorConfig, logger *zap.Logger) (Collection, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch Backend(cfg.Backend) {
	case BackendQdrant, "":
		return NewQdrantCollection(cfg.URL, cfg.APIKey, cfg.Collection, cfg.Dimensions, WithLogger(logger))
	case BackendMemory:
		return NewMemoryCollection(cfg.Collection, cfg.Dimensions)
	default:
		return nil, fmt.Errorf("unknown vector backend: %s (supported: qdrant, memory)", cfg.Backend)
	}
}
