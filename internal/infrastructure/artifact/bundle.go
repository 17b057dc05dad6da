package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bibbank/loanrisk/internal/domain/model"
	"github.com/bibbank/loanrisk/internal/domain/service"
)

// Default artifact file names inside the artifact directory.
const (
	DefaultFeatureNamesFile = "feature_names.json"
	DefaultScalerFile       = "scaler.json"
	DefaultModelFile        = "model.json"
)

// Paths locates the three artifacts produced by the training process.
type Paths struct {
	FeatureNames string
	Scaler       string
	Model        string
}

// DefaultPaths returns the default file locations under dir.
func DefaultPaths(dir string) Paths {
	return Paths{
		FeatureNames: filepath.Join(dir, DefaultFeatureNamesFile),
		Scaler:       filepath.Join(dir, DefaultScalerFile),
		Model:        filepath.Join(dir, DefaultModelFile),
	}
}

// Bundle holds the artifacts loaded once at startup. It is read-only for the
// process lifetime and safe to share between requests.
type Bundle struct {
	Scaler   *StandardScaler
	Model    *LogisticModel
	Features model.FeatureList
}

// LoadFeatureList reads the ordered feature names from a JSON array.
func LoadFeatureList(path string) (model.FeatureList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.FeatureList{}, fmt.Errorf("feature names: read %s: %w", path, err)
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return model.FeatureList{}, fmt.Errorf("feature names: decode %s: %w", path, err)
	}

	features, err := model.NewFeatureList(names)
	if err != nil {
		return model.FeatureList{}, fmt.Errorf("feature names: %s: %w", path, err)
	}
	return features, nil
}

// Load reads every artifact and validates that they agree with each other.
func Load(paths Paths) (*Bundle, error) {
	features, err := LoadFeatureList(paths.FeatureNames)
	if err != nil {
		return nil, err
	}

	scaler, err := LoadScaler(paths.Scaler)
	if err != nil {
		return nil, err
	}

	clf, err := LoadLogisticModel(paths.Model)
	if err != nil {
		return nil, err
	}

	bundle := &Bundle{Features: features, Scaler: scaler, Model: clf}
	if err := Validate(bundle); err != nil {
		return nil, err
	}
	return bundle, nil
}

// Validate checks that the scaler and model were fit on the feature list's
// width and order, and that the default applicant can be assembled against
// the list. Assembly failures surface as model.ErrSchemaMismatch.
func Validate(b *Bundle) error {
	var errs []error

	width := b.Features.Len()
	if b.Scaler.Width() != width {
		errs = append(errs, fmt.Errorf("%w: scaler fit on %d columns, feature list has %d",
			model.ErrWidthMismatch, b.Scaler.Width(), width))
	}
	if b.Model.Width() != width {
		errs = append(errs, fmt.Errorf("%w: model fit on %d columns, feature list has %d",
			model.ErrWidthMismatch, b.Model.Width(), width))
	}
	if names := b.Scaler.FeatureNames(); len(names) > 0 && !b.Features.Equal(names) {
		errs = append(errs, fmt.Errorf("%w: scaler feature names differ from feature list", model.ErrSchemaMismatch))
	}

	if _, err := service.NewFeatureAssembler().Assemble(model.DefaultLoanApplicant(), b.Features); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("artifact validation: %w", errors.Join(errs...))
	}
	return nil
}
