package graph

import (
	"fmt"
	"strings"

	"github.com/nocap-placify/placify/pkg/domain"
)

// Overlay contains session state to visualize on the graph.
type Overlay struct {
	CurrentStep int
	Submitted   bool
}

// GenerateMermaid produces a Mermaid flowchart of a wizard.
//
// Steps are chained left to right with forward ("next") and backward
// ("back") edges. Shapes are semantic:
//   - Input step: [/Parallelogram/] listing its fields
//   - Review step: [[Subroutine]]
//   - Submission target: [(Database)]
//
// With an overlay, steps before the current one are styled as visited and
// the current one (or the target, once submitted) as current.
func GenerateMermaid(def *domain.Definition, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, step := range def.Steps {
		safeID := sanitizeMermaidID(step.ID)
		label := escapeLabel(step.Title)
		if len(step.Fields) > 0 {
			label = fmt.Sprintf("%s <br/> <small>%s</small>", label, strings.Join(step.Fields, ", "))
		}
		if step.Review {
			fmt.Fprintf(&sb, "    %s[[\"%s\"]]\n", safeID, label)
		} else {
			fmt.Fprintf(&sb, "    %s[/\"%s\"/]\n", safeID, label)
		}
	}

	target := targetID(def)
	fmt.Fprintf(&sb, "    %s[(\"%s\")]\n", target, escapeLabel(def.Target))

	for i := 0; i < len(def.Steps)-1; i++ {
		from := sanitizeMermaidID(def.Steps[i].ID)
		to := sanitizeMermaidID(def.Steps[i+1].ID)
		fmt.Fprintf(&sb, "    %s -- next --> %s\n", from, to)
		fmt.Fprintf(&sb, "    %s -. back .-> %s\n", to, from)
	}
	last := sanitizeMermaidID(def.Steps[def.LastIndex()].ID)
	fmt.Fprintf(&sb, "    %s == submit ==> %s\n", last, target)

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on both light and dark themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		for i, step := range def.Steps {
			if i < overlay.CurrentStep || (overlay.Submitted && i == overlay.CurrentStep) {
				fmt.Fprintf(&sb, "    class %s visited;\n", sanitizeMermaidID(step.ID))
			}
		}
		current := target
		if !overlay.Submitted {
			if step, ok := def.Step(overlay.CurrentStep); ok {
				current = sanitizeMermaidID(step.ID)
			}
		}
		fmt.Fprintf(&sb, "    class %s current;\n", current)
	}

	return sb.String()
}

func targetID(def *domain.Definition) string {
	return "target_" + sanitizeMermaidID(def.Target)
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_")
	return r.Replace(id)
}
