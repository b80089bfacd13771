package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lbatista/espalier/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.DefinitionLoader from a questionnaire file.
// JSON is the reference format; YAML is accepted for hand-written
// definitions (.yaml/.yml extension).
type Loader struct {
	path string
}

// NewLoader creates a loader for the given definition file.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and parses the definition. Called once at startup; any error
// here is fatal to the process.
func (l *Loader) Load(ctx context.Context) (*domain.Questionnaire, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read questionnaire definition: %w", err)
	}

	var q domain.Questionnaire
	switch strings.ToLower(filepath.Ext(l.path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &q); err != nil {
			return nil, fmt.Errorf("failed to parse YAML definition %s: %w", l.path, err)
		}
	default:
		if err := json.Unmarshal(data, &q); err != nil {
			return nil, fmt.Errorf("failed to parse JSON definition %s: %w", l.path, err)
		}
	}

	if len(q.Questions) == 0 {
		return nil, fmt.Errorf("definition %s contains no questions", l.path)
	}
	return &q, nil
}
