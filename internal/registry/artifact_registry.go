// Package registry holds the artifacts produced during one generation pass.
package registry

import (
	stderrors "errors"
	"path/filepath"
	"strings"

	"github.com/qian-o/CodeGenerator/internal/errors"
	"github.com/qian-o/CodeGenerator/internal/models"
)

// ArtifactRegistry maps artifact ids to payloads for a single pass
type ArtifactRegistry struct {
	base *BaseRegistry[string, models.Artifact]
}

// NewArtifactRegistry creates an empty artifact registry
func NewArtifactRegistry() *ArtifactRegistry {
	base := NewBaseRegistry[string, models.Artifact]("artifact", "artifact id")
	base.SetValidator(validateArtifact)
	return &ArtifactRegistry{base: base}
}

func validateArtifact(id string, a models.Artifact, _ map[string]models.Artifact) error {
	if id == "" || filepath.Base(id) != id || !strings.HasSuffix(id, ".go") {
		return errors.NewValidationError("artifact id", "a .go file name", id)
	}
	return nil
}

func samePayload(a, b models.Artifact) bool {
	return a.Content == b.Content
}

// Register stores the artifact under its id. Re-registering identical
// content is a no-op; different content under the same id fails with a
// DuplicateArtifactError.
func (r *ArtifactRegistry) Register(artifact models.Artifact) error {
	_, err := r.base.Register(artifact.ID, artifact, samePayload)
	if stderrors.Is(err, ErrKeyConflict) {
		dup := errors.NewDuplicateArtifactError(artifact.ID)
		dup.WithContext("type", artifact.Type.String())
		return dup
	}
	return err
}

// Artifacts returns the registered artifacts in registration order
func (r *ArtifactRegistry) Artifacts() []models.Artifact {
	return r.base.Values()
}
