// Package schema validates decoded dataset documents against embedded CUE
// schemas before they are turned into domain values. Validation failures on
// individual entries become skips in the dataset loader rather than fatal
// errors.
package schema

import (
	"embed"
	"fmt"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schemas/*.cue
var schemaFS embed.FS

// Validator compiles the embedded CUE schemas once and checks raw dataset
// entries against them.
type Validator struct {
	ctx     *cue.Context
	schemas map[string]cue.Value
}

// NewValidator loads every embedded schema. A schema file that fails to
// compile is a build defect, not a runtime condition, so it errors out.
func NewValidator() (*Validator, error) {
	v := &Validator{
		ctx:     cuecontext.New(),
		schemas: make(map[string]cue.Value),
	}

	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("reading embedded schemas: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".cue" {
			continue
		}
		content, err := schemaFS.ReadFile(filepath.Join("schemas", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading schema %s: %w", entry.Name(), err)
		}
		inst := v.ctx.CompileBytes(content, cue.Filename(entry.Name()))
		if instErr := inst.Err(); instErr != nil {
			return nil, fmt.Errorf("compiling schema %s: %w", entry.Name(), instErr)
		}
		name := entry.Name()[:len(entry.Name())-len(".cue")]
		v.schemas[name] = inst.Value()
	}

	if len(v.schemas) == 0 {
		return nil, fmt.Errorf("no CUE schemas embedded")
	}
	return v, nil
}

// ValidateProfile checks a raw pokedex entry.
func (v *Validator) ValidateProfile(data map[string]any) error {
	return v.validate("profile", "#Profile", data)
}

// ValidateMove checks a raw move-catalog entry.
func (v *Validator) ValidateMove(data map[string]any) error {
	return v.validate("move", "#Move", data)
}

// ValidateItem checks a raw item-catalog entry.
func (v *Validator) ValidateItem(data map[string]any) error {
	return v.validate("item", "#Item", data)
}

// validate unifies the decoded data with the named definition and requires
// the result to be concrete, which makes missing required fields an error.
func (v *Validator) validate(schemaName, defName string, data map[string]any) error {
	sch, ok := v.schemas[schemaName]
	if !ok {
		return fmt.Errorf("schema %q not loaded", schemaName)
	}

	def := sch.LookupPath(cue.ParsePath(defName))
	if !def.Exists() {
		return fmt.Errorf("schema %q has no definition %s", schemaName, defName)
	}

	dataValue := v.ctx.Encode(data)
	if encErr := dataValue.Err(); encErr != nil {
		return fmt.Errorf("encoding data: %w", encErr)
	}

	unified := def.Unify(dataValue)
	if err := unified.Err(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
