package analysis

import (
	"fmt"

	"github.com/san-kum/physics3/internal/physics3"
)

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding is one observation about a document.
type Finding struct {
	Path     string
	Severity Severity
	Message  string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s: %s", f.Severity, f.Path, f.Message)
}

// Audit reports inconsistencies the decoder leaves unchecked. Findings come
// in document order; a clean document yields none.
func Audit(doc *physics3.Physics3) []Finding {
	var out []Finding
	add := func(sev Severity, path, format string, args ...any) {
		out = append(out, Finding{Path: path, Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	var inputs, outputs, vertices int
	for _, s := range doc.Settings {
		inputs += len(s.Inputs)
		outputs += len(s.Outputs)
		vertices += len(s.Vertices)
	}

	counts := []struct {
		key      string
		declared int
		actual   int
	}{
		{"Meta.TotalInputCount", doc.Meta.TotalInputCount, inputs},
		{"Meta.TotalOutputCount", doc.Meta.TotalOutputCount, outputs},
		{"Meta.VertexCount", doc.Meta.TotalVertices, vertices},
		{"Meta.PhysicsSettingCount", doc.Meta.SettingCount, len(doc.Settings)},
	}
	for _, c := range counts {
		if c.declared != c.actual {
			add(SeverityWarning, c.key, "declares %d, document has %d", c.declared, c.actual)
		}
	}

	named := make(map[string]bool, len(doc.Meta.Dictionary))
	for i, e := range doc.Meta.Dictionary {
		if named[e.ID] {
			add(SeverityWarning, fmt.Sprintf("Meta.PhysicsDictionary[%d]", i), "duplicate id %q", e.ID)
		}
		named[e.ID] = true
	}

	seen := make(map[string]bool, len(doc.Settings))
	for i, s := range doc.Settings {
		path := fmt.Sprintf("PhysicsSettings[%d]", i)

		if seen[s.ID] {
			add(SeverityWarning, path, "duplicate setting id %q", s.ID)
		}
		seen[s.ID] = true

		if len(doc.Meta.Dictionary) > 0 && !named[s.ID] {
			add(SeverityInfo, path, "setting %q has no dictionary name", s.ID)
		}

		for j, o := range s.Outputs {
			if _, ok := s.Vertex(o); !ok {
				add(SeverityWarning, fmt.Sprintf("%s.Output[%d].VertexIndex", path, j),
					"index %d out of range for %d vertices", o.VertexIndex, len(s.Vertices))
			}
		}

		if len(s.Outputs) > 0 && len(s.Vertices) == 0 {
			add(SeverityInfo, path, "outputs declared without vertices")
		}

		if n := s.Normalization; n != nil {
			auditRange(add, path+".Normalization.Position", n.Position)
			auditRange(add, path+".Normalization.Angle", n.Angle)
		}
	}

	return out
}

func auditRange(add func(Severity, string, string, ...any), path string, r physics3.RangeParam) {
	if !r.Valid() {
		add(SeverityWarning, path, "minimum %g exceeds maximum %g", r.Minimum, r.Maximum)
		return
	}
	if !r.Contains(r.Default) {
		add(SeverityInfo, path, "default %g outside [%g, %g]", r.Default, r.Minimum, r.Maximum)
	}
}
