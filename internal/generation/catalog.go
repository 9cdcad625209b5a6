package generation

import (
	"fmt"
	"slices"
	"strings"
)

// DefaultModel is used when no default is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultModels is the allow-list used when none is configured.
var DefaultModels = []string{
	"gemini-2.5-flash",
	"gemini-1.5-flash",
	"gemini-1.5-pro",
}

// ModelCatalog is the static allow-list of model identifiers.
// It is immutable after construction and safe for concurrent use.
type ModelCatalog struct {
	defaultModel string
	models       []string
}

// NewModelCatalog builds a catalog. The default model must be in the list.
func NewModelCatalog(defaultModel string, models []string) (*ModelCatalog, error) {
	cleaned := make([]string, 0, len(models))
	for _, m := range models {
		m = strings.TrimSpace(m)
		if m == "" || slices.Contains(cleaned, m) {
			continue
		}
		cleaned = append(cleaned, m)
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: model allow-list cannot be empty", ErrInvalidConfig)
	}

	defaultModel = strings.TrimSpace(defaultModel)
	if defaultModel == "" {
		defaultModel = cleaned[0]
	}
	if !slices.Contains(cleaned, defaultModel) {
		return nil, fmt.Errorf("%w: default model %q is not in the allow-list",
			ErrInvalidConfig, defaultModel)
	}

	return &ModelCatalog{defaultModel: defaultModel, models: cleaned}, nil
}

// DefaultCatalog returns the catalog of DefaultModels.
func DefaultCatalog() *ModelCatalog {
	return &ModelCatalog{defaultModel: DefaultModel, models: slices.Clone(DefaultModels)}
}

// Default returns the default model identifier.
func (c *ModelCatalog) Default() string {
	return c.defaultModel
}

// Models returns a copy of the allow-list.
func (c *ModelCatalog) Models() []string {
	return slices.Clone(c.models)
}

// Contains reports whether model is allowed.
func (c *ModelCatalog) Contains(model string) bool {
	return slices.Contains(c.models, model)
}

// Resolve returns model, or the default model when model is empty.
func (c *ModelCatalog) Resolve(model string) string {
	if strings.TrimSpace(model) == "" {
		return c.defaultModel
	}
	return model
}

// Validate checks that model is allowed.
func (c *ModelCatalog) Validate(model string) error {
	if !c.Contains(model) {
		return newClassifiedError(KindInvalidRequest,
			fmt.Sprintf("Invalid model. Supported models: %s", strings.Join(c.models, ", ")), nil)
	}
	return nil
}
