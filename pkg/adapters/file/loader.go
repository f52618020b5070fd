package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/nocap-placify/placify/pkg/domain"
	"gopkg.in/yaml.v3"
)

// wizardSpec is the on-disk shape of a wizard definition:
//
//	id: mentor-session
//	title: Mentor session
//	target: mentor_sessions
//	reset_delay: 3s
//	steps:
//	  - id: student
//	    title: Student
//	    fields:
//	      - {name: mentor, label: Mentor Name, kind: text, param: mentor_name}
//	      - {name: srn, label: SRN, kind: srn}
//	  - id: review
//	    title: Review
//	    review: true
type wizardSpec struct {
	ID          string        `mapstructure:"id"`
	Title       string        `mapstructure:"title"`
	Description string        `mapstructure:"description"`
	Target      string        `mapstructure:"target"`
	ResetDelay  time.Duration `mapstructure:"reset_delay"`
	Steps       []stepSpec    `mapstructure:"steps"`
}

type stepSpec struct {
	ID       string      `mapstructure:"id"`
	Title    string      `mapstructure:"title"`
	Subtitle string      `mapstructure:"subtitle"`
	Review   bool        `mapstructure:"review"`
	Fields   []fieldSpec `mapstructure:"fields"`
}

type fieldSpec struct {
	Name        string `mapstructure:"name"`
	Label       string `mapstructure:"label"`
	Kind        string `mapstructure:"kind"`
	Param       string `mapstructure:"param"`
	Placeholder string `mapstructure:"placeholder"`
	Multiline   bool   `mapstructure:"multiline"`
}

// Loader implements ports.DefinitionLoader and ports.Watchable over a
// directory of YAML wizard files (*.yaml, *.yml).
type Loader struct {
	Dir string

	// Debounce coalesces bursts of filesystem events into one reload signal.
	Debounce time.Duration
}

// NewLoader creates a loader for dir.
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir, Debounce: 200 * time.Millisecond}
}

// Load parses every wizard file in the directory, in file name order.
func (l *Loader) Load(ctx context.Context) ([]*domain.Definition, error) {
	files, err := l.files()
	if err != nil {
		return nil, err
	}

	defs := make([]*domain.Definition, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		def, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func (l *Loader) files() ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read wizard directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !isWizardFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(l.Dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func isWizardFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return (ext == ".yaml" || ext == ".yml") && !strings.HasPrefix(name, ".")
}

// Parse decodes one YAML wizard document into a validated Definition.
func Parse(data []byte) (*domain.Definition, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	var spec wizardSpec
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &spec,
		ErrorUnused: true,
		DecodeHook:  mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid wizard definition: %w", err)
	}

	def := &domain.Definition{
		ID:          spec.ID,
		Title:       spec.Title,
		Description: spec.Description,
		Target:      spec.Target,
		ResetDelay:  spec.ResetDelay,
	}
	for _, st := range spec.Steps {
		step := domain.Step{
			ID:       st.ID,
			Title:    st.Title,
			Subtitle: st.Subtitle,
			Review:   st.Review,
		}
		for _, f := range st.Fields {
			def.Fields = append(def.Fields, domain.Field{
				Name:        f.Name,
				Label:       f.Label,
				Kind:        domain.FieldKind(f.Kind),
				Param:       f.Param,
				Placeholder: f.Placeholder,
				Multiline:   f.Multiline,
			})
			step.Fields = append(step.Fields, f.Name)
		}
		def.Steps = append(def.Steps, step)
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

// Marshal renders a definition in the YAML shape Parse accepts.
func Marshal(def *domain.Definition) ([]byte, error) {
	doc := map[string]any{
		"id":     def.ID,
		"title":  def.Title,
		"target": def.Target,
	}
	if def.Description != "" {
		doc["description"] = def.Description
	}
	if def.ResetDelay > 0 {
		doc["reset_delay"] = def.ResetDelay.String()
	}

	steps := make([]map[string]any, 0, len(def.Steps))
	for _, st := range def.Steps {
		step := map[string]any{"id": st.ID, "title": st.Title}
		if st.Subtitle != "" {
			step["subtitle"] = st.Subtitle
		}
		if st.Review {
			step["review"] = true
		}
		var fields []map[string]any
		for _, name := range st.Fields {
			f, _ := def.Field(name)
			field := map[string]any{"name": f.Name, "label": f.Label, "kind": string(f.Kind)}
			if f.Param != "" {
				field["param"] = f.Param
			}
			if f.Placeholder != "" {
				field["placeholder"] = f.Placeholder
			}
			if f.Multiline {
				field["multiline"] = true
			}
			fields = append(fields, field)
		}
		if len(fields) > 0 {
			step["fields"] = fields
		}
		steps = append(steps, step)
	}
	doc["steps"] = steps
	return yaml.Marshal(doc)
}
