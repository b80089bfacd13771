package ports

import (
	"context"

	"github.com/lbatista/espalier/pkg/domain"
)

// DefinitionLoader defines how the engine retrieves the static questionnaire
// definition. It is called once at startup; a load failure is fatal.
// This decouples the source format (file, memory, remote) from the engine.
type DefinitionLoader interface {
	// Load returns the full questionnaire definition.
	Load(ctx context.Context) (*domain.Questionnaire, error)
}
