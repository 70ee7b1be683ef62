package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrTemplateExists is returned when dumping would overwrite a custom template.
var ErrTemplateExists = errors.New("custom template already exists")

// TemplateLoader finds export templates. A name that points at an existing
// file is read directly; otherwise it is looked up in the custom template
// directory and then among the embedded defaults.
type TemplateLoader struct {
	dir string
}

// NewTemplateLoader creates a loader using dir for custom templates.
func NewTemplateLoader(dir string) *TemplateLoader {
	return &TemplateLoader{dir: dir}
}

// DefaultTemplateDir returns $XDG_CONFIG_HOME/swatch/templates, or the
// platform equivalent.
func DefaultTemplateDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "swatch", "templates")
}

// Dir returns the custom template directory.
func (l *TemplateLoader) Dir() string {
	return l.dir
}

// Load reads a template and reports whether it came from outside the
// embedded defaults. A bare name such as "css" also matches "css.tmpl".
func (l *TemplateLoader) Load(name string) (content []byte, custom bool, err error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		content, err := os.ReadFile(name) // #nosec G304 - user-selected template
		if err != nil {
			return nil, false, fmt.Errorf("failed to read template %s: %w", name, err)
		}
		return content, true, nil
	}

	file := templateFile(name)
	if content, err := os.ReadFile(l.CustomPath(file)); err == nil {
		return content, true, nil
	}

	content, err = templates.ReadFile(file)
	if err != nil {
		return nil, false, fmt.Errorf("template %q not found in %s or the built-in templates", name, l.dir)
	}
	return content, false, nil
}

// CustomPath returns where a custom copy of the named template lives.
func (l *TemplateLoader) CustomPath(name string) string {
	return filepath.Join(l.dir, templateFile(name))
}

// HasCustomTemplate reports whether a custom copy of the template exists.
func (l *TemplateLoader) HasCustomTemplate(name string) bool {
	_, err := os.Stat(l.CustomPath(name))
	return err == nil
}

// EmbeddedTemplates lists the built-in template files.
func EmbeddedTemplates() ([]string, error) {
	var names []string
	err := fs.WalkDir(templates, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".tmpl" {
			names = append(names, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded templates: %w", err)
	}
	return names, nil
}

// DumpTemplate copies a built-in template into the custom directory so it
// can be edited. Existing files are only replaced when force is set.
func (l *TemplateLoader) DumpTemplate(name string, force bool) (string, error) {
	file := templateFile(name)
	content, err := templates.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read embedded template %q: %w", file, err)
	}

	path := l.CustomPath(file)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%w: %s (use --force to overwrite)", ErrTemplateExists, path)
		}
	}

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %q: %w", l.dir, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil { // #nosec G306 - templates are not sensitive
		return "", fmt.Errorf("failed to write template to %q: %w", path, err)
	}
	return path, nil
}

// DumpAllTemplates dumps every built-in template. Without force, existing
// files are skipped and reported together in the returned error.
func (l *TemplateLoader) DumpAllTemplates(force bool) ([]string, error) {
	names, err := EmbeddedTemplates()
	if err != nil {
		return nil, err
	}

	var dumped []string
	var skipped []error
	for _, name := range names {
		path, err := l.DumpTemplate(name, force)
		if errors.Is(err, ErrTemplateExists) {
			skipped = append(skipped, err)
			continue
		}
		if err != nil {
			return dumped, err
		}
		dumped = append(dumped, path)
	}
	return dumped, errors.Join(skipped...)
}

func templateFile(name string) string {
	if strings.HasSuffix(name, ".tmpl") {
		return name
	}
	return name + ".tmpl"
}
