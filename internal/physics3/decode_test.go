package physics3

import (
	"errors"
	"os"
	"strings"
	"testing"
	"testing/iotest"
)

const minimalDoc = `{
	"Version": 3,
	"Meta": {
		"TotalInputCount": 1, "TotalOutputCount": 0,
		"VertexCount": 0, "PhysicsSettingCount": 1,
		"EffectiveForces": {},
		"PhysicsDictionary": []
	},
	"PhysicsSettings": [
		{
			"Id": "PhysicsSetting1",
			"Input": [
				{"Source": {"Target": "Parameter", "Id": "Param1"}, "Weight": 1.0, "Type": "X", "Reflect": false}
			]
		}
	]
}`

// withSetting embeds a single setting object into an otherwise valid document.
func withSetting(setting string) string {
	return `{"Version": 3, "Meta": {"TotalInputCount": 0, "TotalOutputCount": 0, "VertexCount": 0,
		"PhysicsSettingCount": 1, "EffectiveForces": {}, "PhysicsDictionary": []},
		"PhysicsSettings": [` + setting + `]}`
}

func TestParse_Minimal(t *testing.T) {
	doc, err := Parse(minimalDoc)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if doc.Version != 3 {
		t.Errorf("expected version 3, got %d", doc.Version)
	}
	if len(doc.Settings) != 1 {
		t.Fatalf("expected 1 setting, got %d", len(doc.Settings))
	}

	s := doc.Settings[0]
	if len(s.Inputs) != 1 {
		t.Fatalf("expected 1 input, got %d", len(s.Inputs))
	}
	if s.Normalization != nil {
		t.Errorf("expected no normalization, got %+v", s.Normalization)
	}

	in := s.Inputs[0]
	if in.Type != TypeX {
		t.Errorf("expected type X, got %v", in.Type)
	}
	if in.Weight != 1.0 {
		t.Errorf("expected weight 1.0, got %f", in.Weight)
	}
	if in.Reflect {
		t.Error("expected reflect false")
	}
	src, ok := in.Source.(ParameterTarget)
	if !ok {
		t.Fatalf("expected ParameterTarget, got %T", in.Source)
	}
	if src.ID != "Param1" {
		t.Errorf("expected source Param1, got %s", src.ID)
	}
}

func TestParse_SettingDefaults(t *testing.T) {
	doc, err := Parse(withSetting(`{"Id": "S"}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	s := doc.Settings[0]
	if s.Inputs == nil || len(s.Inputs) != 0 {
		t.Errorf("expected empty inputs, got %#v", s.Inputs)
	}
	if s.Outputs == nil || len(s.Outputs) != 0 {
		t.Errorf("expected empty outputs, got %#v", s.Outputs)
	}
	if s.Vertices == nil || len(s.Vertices) != 0 {
		t.Errorf("expected empty vertices, got %#v", s.Vertices)
	}
	if s.Normalization != nil {
		t.Error("expected nil normalization")
	}
}

func TestParse_EffectiveForcesDefaults(t *testing.T) {
	tests := []struct {
		name    string
		forces  string
		gravity Vector2
		wind    Vector2
	}{
		{"empty", `{}`, Vector2{}, Vector2{}},
		{"gravity only", `{"Gravity": {"X": 0, "Y": -1}}`, Vec(0, -1), Vector2{}},
		{"wind only", `{"Wind": {"X": 0.5, "Y": 0}}`, Vector2{}, Vec(0.5, 0)},
		{"partial vector", `{"Gravity": {"Y": -1}}`, Vec(0, -1), Vector2{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := `{"Version": 3, "Meta": {"TotalInputCount": 0, "TotalOutputCount": 0, "VertexCount": 0,
				"PhysicsSettingCount": 0, "EffectiveForces": ` + tt.forces + `, "PhysicsDictionary": []},
				"PhysicsSettings": []}`
			doc, err := Parse(src)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if got := doc.Meta.EffectiveForces.Gravity; got != tt.gravity {
				t.Errorf("gravity = %v, want %v", got, tt.gravity)
			}
			if got := doc.Meta.EffectiveForces.Wind; got != tt.wind {
				t.Errorf("wind = %v, want %v", got, tt.wind)
			}
		})
	}
}

func TestParse_NullNormalizationIsAbsent(t *testing.T) {
	doc, err := Parse(withSetting(`{"Id": "S", "Normalization": null}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Settings[0].Normalization != nil {
		t.Error("expected nil normalization")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind error
		path string
	}{
		{"empty input", ``, ErrSyntax, ""},
		{"truncated", `{"Version": 3`, ErrSyntax, ""},
		{"bad token", `{"Version": 3,}`, ErrSyntax, ""},
		{"trailing data", minimalDoc + ` {}`, ErrSyntax, ""},
		{"invalid utf-8", withSetting("{\"Id\": \"a\xffb\"}"), ErrSyntax, ""},
		{"duplicate key", withSetting(`{"Id": "x", "Id": "y"}`), ErrSchema, "PhysicsSettings[0]"},
		{"duplicate top level key", `{"Version": 3, "Version": 4}`, ErrSchema, ""},
		{"not an object", `[]`, ErrSchema, ""},
		{"missing version", `{"Meta": {}, "PhysicsSettings": []}`, ErrSchema, ""},
		{"missing meta", `{"Version": 3, "PhysicsSettings": []}`, ErrSchema, ""},
		{"version as string", `{"Version": "3", "Meta": {}, "PhysicsSettings": []}`, ErrSchema, "Version"},
		{"negative version", `{"Version": -1, "Meta": {}, "PhysicsSettings": []}`, ErrSchema, "Version"},
		{"fractional version", `{"Version": 3.5, "Meta": {}, "PhysicsSettings": []}`, ErrSchema, "Version"},
		{"null inputs", withSetting(`{"Id": "S", "Input": null}`), ErrSchema, "PhysicsSettings[0].Input"},
		{"missing setting id", withSetting(`{}`), ErrSchema, "PhysicsSettings[0]"},
		{
			"weight as string",
			withSetting(`{"Id": "S", "Input": [{"Source": {"Target": "Parameter", "Id": "P"}, "Weight": "1", "Type": "X", "Reflect": false}]}`),
			ErrSchema, "PhysicsSettings[0].Input[0].Weight",
		},
		{
			"reflect as number",
			withSetting(`{"Id": "S", "Input": [{"Source": {"Target": "Parameter", "Id": "P"}, "Weight": 1, "Type": "X", "Reflect": 0}]}`),
			ErrSchema, "PhysicsSettings[0].Input[0].Reflect",
		},
		{
			"missing target tag",
			withSetting(`{"Id": "S", "Input": [{"Source": {"Id": "P"}, "Weight": 1, "Type": "X", "Reflect": false}]}`),
			ErrSchema, "PhysicsSettings[0].Input[0].Source",
		},
		{
			"unknown input type",
			withSetting(`{"Id": "S", "Input": [{"Source": {"Target": "Parameter", "Id": "P"}, "Weight": 1, "Type": "Z", "Reflect": false}]}`),
			ErrUnknownVariant, "PhysicsSettings[0].Input[0].Type",
		},
		{
			"unknown output type",
			withSetting(`{"Id": "S", "Output": [{"Destination": {"Target": "Parameter", "Id": "P"}, "VertexIndex": 0, "Scale": 1, "Weight": 1, "Type": "x", "Reflect": false}]}`),
			ErrUnknownVariant, "PhysicsSettings[0].Output[0].Type",
		},
		{
			"unknown target",
			withSetting(`{"Id": "S", "Input": [{"Source": {"Target": "Part", "Id": "P"}, "Weight": 1, "Type": "X", "Reflect": false}]}`),
			ErrUnknownVariant, "PhysicsSettings[0].Input[0].Source.Target",
		},
		{
			"negative vertex index",
			withSetting(`{"Id": "S", "Output": [{"Destination": {"Target": "Parameter", "Id": "P"}, "VertexIndex": -1, "Scale": 1, "Weight": 1, "Type": "X", "Reflect": false}]}`),
			ErrSchema, "PhysicsSettings[0].Output[0].VertexIndex",
		},
		{
			"normalization missing angle",
			withSetting(`{"Id": "S", "Normalization": {"Position": {"Minimum": 0, "Maximum": 1, "Default": 0}}}`),
			ErrSchema, "PhysicsSettings[0].Normalization",
		},
		{
			"float out of range",
			withSetting(`{"Id": "S", "Vertices": [{"Position": {"X": 0, "Y": 0}, "Mobility": 1e999, "Delay": 1, "Acceleration": 1, "Radius": 0}]}`),
			ErrSchema, "PhysicsSettings[0].Vertices[0].Mobility",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.src)
			if err == nil {
				t.Fatalf("expected error, got document %+v", doc)
			}
			if doc != nil {
				t.Error("expected no document on error")
			}
			if !errors.Is(err, tt.kind) {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}

			var path string
			var schema *SchemaError
			var variant *UnknownVariantError
			switch {
			case errors.As(err, &schema):
				path = schema.Path
			case errors.As(err, &variant):
				path = variant.Path
			}
			if path != tt.path {
				t.Errorf("expected path %q, got %q (%v)", tt.path, path, err)
			}
		})
	}
}

func TestParse_InvalidUTF8(t *testing.T) {
	src := withSetting("{\"Id\": \"a\xffb\"}")
	doc, err := Parse(src)
	if doc != nil {
		t.Fatalf("expected no document, got ID %q", doc.Settings[0].ID)
	}

	var syn *SyntaxError
	if !errors.As(err, &syn) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
	if want := int64(strings.Index(src, "\xff")); syn.Offset != want {
		t.Errorf("expected offset %d, got %d", want, syn.Offset)
	}
	if !strings.Contains(err.Error(), "invalid UTF-8") {
		t.Errorf("unexpected message: %s", err)
	}

	if _, err := Parse(withSetting(`{"Id": "a\ufffdb"}`)); err != nil {
		t.Errorf("escaped replacement character should decode: %v", err)
	}
}

func TestParse_DuplicateKey(t *testing.T) {
	_, err := Parse(withSetting(`{"Id": "x", "Id": "y"}`))

	var schema *SchemaError
	if !errors.As(err, &schema) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if !schema.Duplicate || schema.Field != "Id" || schema.Path != "PhysicsSettings[0]" {
		t.Errorf("expected duplicate Id in PhysicsSettings[0], got %+v", schema)
	}
	if !strings.Contains(err.Error(), `duplicate field "Id"`) {
		t.Errorf("unexpected message: %s", err)
	}
}

func TestParse_ShallowestErrorWins(t *testing.T) {
	_, err := Parse(`{"Version": "3", "Meta": {}, "PhysicsSettings": [{}]}`)

	var schema *SchemaError
	if !errors.As(err, &schema) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schema.Path != "Version" || schema.Expected != "non-negative integer" || schema.Got != "string" {
		t.Errorf("expected Version type error, got %+v", schema)
	}
}

func TestParse_MissingVersionReportsField(t *testing.T) {
	_, err := Parse(`{"Meta": {}, "PhysicsSettings": []}`)

	var schema *SchemaError
	if !errors.As(err, &schema) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if !schema.Missing || schema.Field != "Version" {
		t.Errorf("expected missing Version, got %+v", schema)
	}
	if !strings.Contains(err.Error(), `missing field "Version"`) {
		t.Errorf("unexpected message: %s", err)
	}
}

func TestParse_UnknownVariantListsKnown(t *testing.T) {
	_, err := Parse(withSetting(`{"Id": "S", "Input": [{"Source": {"Target": "Parameter", "Id": "P"}, "Weight": 1, "Type": "Z", "Reflect": false}]}`))

	var variant *UnknownVariantError
	if !errors.As(err, &variant) {
		t.Fatalf("expected UnknownVariantError, got %v", err)
	}
	if variant.Value != "Z" {
		t.Errorf("expected value Z, got %s", variant.Value)
	}
	if strings.Join(variant.Known, ",") != "X,Y,Angle" {
		t.Errorf("unexpected known set: %v", variant.Known)
	}
}

func TestParse_UnknownFields(t *testing.T) {
	src := withSetting(`{"Id": "S", "Comment": "left lock"}`)

	if _, err := Parse(src); err != nil {
		t.Fatalf("default decode should ignore unknown fields: %v", err)
	}

	_, err := Parse(src, WithStrict())
	var schema *SchemaError
	if !errors.As(err, &schema) {
		t.Fatalf("expected SchemaError in strict mode, got %v", err)
	}
	if !schema.Unknown || schema.Field != "Comment" {
		t.Errorf("expected unknown Comment, got %+v", schema)
	}
}

func TestParse_StrictAcceptsTargetTag(t *testing.T) {
	if _, err := Parse(minimalDoc, WithStrict()); err != nil {
		t.Fatalf("strict decode failed: %v", err)
	}
}

func TestParse_AdvisoryCountsNotChecked(t *testing.T) {
	src := `{"Version": 99, "Meta": {"TotalInputCount": 42, "TotalOutputCount": 7, "VertexCount": 3,
		"PhysicsSettingCount": 5, "EffectiveForces": {}, "PhysicsDictionary": []},
		"PhysicsSettings": [{"Id": "S", "Output": [{"Destination": {"Target": "Parameter", "Id": "P"},
		"VertexIndex": 12, "Scale": 1, "Weight": 1, "Type": "Angle", "Reflect": true}],
		"Normalization": {"Position": {"Minimum": 5, "Maximum": -5, "Default": 0},
		"Angle": {"Minimum": 0, "Maximum": 1, "Default": 0}}}]}`

	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Version != 99 {
		t.Errorf("expected version 99, got %d", doc.Version)
	}
	if doc.Meta.TotalInputCount != 42 || doc.Meta.SettingCount != 5 || doc.Meta.TotalVertices != 3 {
		t.Errorf("counts not preserved: %+v", doc.Meta)
	}
	if doc.Settings[0].Outputs[0].VertexIndex != 12 {
		t.Errorf("expected vertex index 12, got %d", doc.Settings[0].Outputs[0].VertexIndex)
	}
	if _, ok := doc.Settings[0].Vertex(doc.Settings[0].Outputs[0]); ok {
		t.Error("expected out of range vertex lookup to fail")
	}
}

func TestDecodeFile(t *testing.T) {
	f, err := os.Open("testdata/hair.physics3.json")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if len(doc.Settings) != 2 {
		t.Fatalf("expected 2 settings, got %d", len(doc.Settings))
	}
	if doc.Meta.TotalVertices != 5 {
		t.Errorf("expected VertexCount 5, got %d", doc.Meta.TotalVertices)
	}
	if doc.Meta.EffectiveForces.Gravity != Vec(0, -1) {
		t.Errorf("unexpected gravity %v", doc.Meta.EffectiveForces.Gravity)
	}
	if name, ok := doc.Name("PhysicsSetting2"); !ok || name != "Side hair" {
		t.Errorf("expected dictionary name 'Side hair', got %q", name)
	}

	side, ok := doc.Setting("PhysicsSetting2")
	if !ok {
		t.Fatal("PhysicsSetting2 not found")
	}
	if len(side.Vertices) != 3 {
		t.Errorf("expected 3 vertices, got %d", len(side.Vertices))
	}
	if !side.Inputs[1].Reflect || side.Inputs[1].Type != TypeAngle {
		t.Errorf("unexpected second input %+v", side.Inputs[1])
	}
	if side.Outputs[1].Destination != Parameter("ParamHairSide2") {
		t.Errorf("unexpected destination %v", side.Outputs[1].Destination)
	}
	v, ok := side.Vertex(side.Outputs[1])
	if !ok || v.Radius != 7 {
		t.Errorf("unexpected output vertex %+v", v)
	}
	if side.Normalization == nil || side.Normalization.Angle.Maximum != 10 {
		t.Errorf("unexpected normalization %+v", side.Normalization)
	}
}

func TestDecode_ReadError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Decode(iotest.ErrReader(boom))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped read error, got %v", err)
	}
	if errors.Is(err, ErrSyntax) || errors.Is(err, ErrSchema) {
		t.Errorf("read error misclassified: %v", err)
	}
}

func TestUnmarshalJSON(t *testing.T) {
	var doc Physics3
	if err := doc.UnmarshalJSON([]byte(minimalDoc)); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(doc.Settings) != 1 {
		t.Errorf("expected 1 setting, got %d", len(doc.Settings))
	}
}

func TestSchema_Renames(t *testing.T) {
	renames := map[string]string{}
	for _, f := range Schema() {
		renames[f.Record+"."+f.Key] = f.Name
	}

	want := map[string]string{
		"Meta.VertexCount":         "total_vertices",
		"Meta.PhysicsSettingCount": "setting_count",
		"Meta.PhysicsDictionary":   "dictionary",
		"Setting.Input":            "inputs",
		"Setting.Output":           "outputs",
		"Input.Type":               "input_type",
		"Output.Type":              "output_type",
		"Physics3.PhysicsSettings": "settings",
	}
	for key, name := range want {
		if renames[key] != name {
			t.Errorf("%s maps to %q, want %q", key, renames[key], name)
		}
	}
}

func TestType_String(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{TypeX, "X"},
		{TypeY, "Y"},
		{TypeAngle, "Angle"},
		{Type(9), "Type(9)"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %s, want %s", got, tt.want)
		}
	}
}

func TestParseType(t *testing.T) {
	for _, name := range []string{"X", "Y", "Angle"} {
		typ, ok := ParseType(name)
		if !ok || typ.String() != name {
			t.Errorf("ParseType(%q) = %v, %v", name, typ, ok)
		}
	}
	for _, name := range []string{"", "x", "angle", "Z"} {
		if _, ok := ParseType(name); ok {
			t.Errorf("ParseType(%q) should fail", name)
		}
	}
}
