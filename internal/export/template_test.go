package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/swatch/internal/colour"
)

func TestExecuteWithFuncs(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{name: "hex no hash", tmpl: `{{ range .Colours }}{{ .Colour | hexNoHash }} {{ end }}`, want: "ff0000 00ff00 "},
		{name: "rgb decimal", tmpl: `{{ (index .Colours 0).Colour | rgbDecimal }}`, want: "255,0,0"},
		{name: "rgb spaces", tmpl: `{{ (index .Colours 1).Colour | rgbSpaces }}`, want: "0 255 0"},
		{name: "rgb", tmpl: `{{ (index .Colours 0).Colour | rgb }}`, want: "rgb(255, 0, 0)"},
		{name: "hsl", tmpl: `{{ (index .Colours 1).Colour | hsl }}`, want: "hsl(120, 100%, 50%)"},
		{name: "readable on", tmpl: `{{ (index .Colours 1).Colour | readableOn | hex }}`, want: "#000000"},
		{name: "trim prefix", tmpl: `{{ (index .Colours 0).Hex | trimPrefix "#" | toUpper }}`, want: "FF0000"},
		{name: "replace", tmpl: `{{ "a b" | replace " " "_" }}`, want: "a_b"},
		{name: "metadata", tmpl: `{{ .Kind }}:{{ range .Colours }}{{ .Index }}={{ .Count }};{{ end }}`, want: "palette:1=4;2=2;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Execute(tt.name, []byte(tt.tmpl), PaletteData(testPalette()))
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Execute() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSchemeData(t *testing.T) {
	data := SchemeData(colour.SchemeMonochromatic, testScheme(t))

	if data.Kind != "monochromatic" {
		t.Errorf("Kind = %q", data.Kind)
	}
	if got := data.Colours[1]; got.Name != "medium-dark" || got.Role != "Medium Dark" || got.Index != 2 {
		t.Errorf("Colours[1] = %+v", got)
	}
}

func TestExecuteErrors(t *testing.T) {
	if _, err := Execute("bad", []byte(`{{ .Nope`), TemplateData{}); err == nil {
		t.Error("expected parse error")
	}
	if _, err := Execute("bad", []byte(`{{ .Nope }}`), TemplateData{}); err == nil {
		t.Error("expected execution error for unknown field")
	}
}

func TestTemplateLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	loader := NewTemplateLoader(dir)

	content, custom, err := loader.Load("css")
	if err != nil {
		t.Fatalf("Load(css) error = %v", err)
	}
	if custom || !strings.HasPrefix(string(content), ":root {") {
		t.Errorf("Load(css) = %q, custom %v; want embedded template", content, custom)
	}

	override := "/* mine */"
	if err := os.WriteFile(filepath.Join(dir, "css.tmpl"), []byte(override), 0o600); err != nil {
		t.Fatal(err)
	}
	content, custom, err = loader.Load("css.tmpl")
	if err != nil || !custom || string(content) != override {
		t.Errorf("Load(css.tmpl) = %q, %v, %v; want custom override", content, custom, err)
	}

	direct := filepath.Join(t.TempDir(), "tokens.txt")
	if err := os.WriteFile(direct, []byte("{{ .Kind }}"), 0o600); err != nil {
		t.Fatal(err)
	}
	content, custom, err = loader.Load(direct)
	if err != nil || !custom || string(content) != "{{ .Kind }}" {
		t.Errorf("Load(path) = %q, %v, %v", content, custom, err)
	}

	if _, _, err := loader.Load("missing"); err == nil {
		t.Error("Load(missing) expected error")
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	names, err := EmbeddedTemplates()
	if err != nil {
		t.Fatalf("EmbeddedTemplates() error = %v", err)
	}
	if strings.Join(names, ",") != "css.tmpl,scss.tmpl" {
		t.Errorf("EmbeddedTemplates() = %v", names)
	}
}

func TestDumpTemplates(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "templates")
	loader := NewTemplateLoader(dir)

	dumped, err := loader.DumpAllTemplates(false)
	if err != nil {
		t.Fatalf("DumpAllTemplates() error = %v", err)
	}
	if len(dumped) != 2 || !loader.HasCustomTemplate("scss") {
		t.Fatalf("dumped = %v", dumped)
	}

	// A dumped template renders exactly like the built-in one.
	content, custom, err := loader.Load("scss")
	if err != nil || !custom {
		t.Fatalf("Load(scss) = %v, %v", custom, err)
	}
	got, err := Execute("scss", content, PaletteData(testPalette()))
	if err != nil {
		t.Fatal(err)
	}
	want, _ := PaletteSCSS(testPalette())
	if string(got) != string(want) {
		t.Errorf("dumped template output %q, built-in %q", got, want)
	}

	if _, err := loader.DumpTemplate("css", false); !errors.Is(err, ErrTemplateExists) {
		t.Errorf("DumpTemplate() error = %v, want ErrTemplateExists", err)
	}
	dumped, err = loader.DumpAllTemplates(false)
	if !errors.Is(err, ErrTemplateExists) || len(dumped) != 0 {
		t.Errorf("DumpAllTemplates() = %v, %v; want all skipped", dumped, err)
	}
	if _, err := loader.DumpAllTemplates(true); err != nil {
		t.Errorf("DumpAllTemplates(force) error = %v", err)
	}
}
