// Package bundle precompiles template manifests: YAML documents that name
// templates living outside Go source and the constant arguments to resolve
// them with. The result is one generated Go file of string constants, so
// manifest templates cost nothing at runtime, exactly like folded calls.
//
// A manifest looks like:
//
//	package: assets
//	output: templates_gen.go
//	templates:
//	  - name: GreetingCard
//	    content: '<div class="user">{{name}}</div>'
//	    args:
//	      name: Ahmed
//	  - name: Layout
//	    file: layout.html
//
// content holds the template inline; file reads it verbatim from disk,
// relative to the manifest. Exactly one of the two must be set.
package bundle

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/webiokit/diag"
	"github.com/randalmurphal/webiokit/template"
)

// DefaultOutput is the generated file name used when a manifest does not
// set output.
const DefaultOutput = "templates_gen.go"

// Manifest is a parsed template manifest.
type Manifest struct {
	// Package is the package clause of the generated file.
	Package string `yaml:"package"`

	// Output is the generated file name, relative to the manifest.
	Output string `yaml:"output"`

	// Templates are the named templates to precompile.
	Templates []Template `yaml:"templates"`

	path string
	dir  string
}

// Template is one manifest entry. Name becomes the generated constant.
type Template struct {
	Name    string         `yaml:"name"`
	Content string         `yaml:"content"`
	File    string         `yaml:"file"`
	Args    map[string]any `yaml:"args"`

	line int
}

// UnmarshalYAML records the entry's line for diagnostics alongside the
// plain decode.
func (t *Template) UnmarshalYAML(node *yaml.Node) error {
	type plain Template
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*t = Template(p)
	t.line = node.Line
	return nil
}

// Load reads and parses the manifest at path. I/O and YAML syntax problems
// come back as err; validation findings come back as diagnostics, in which
// case the manifest is nil.
func Load(path string) (*Manifest, diag.List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read manifest: %w", err)
	}
	return load(data, path, filepath.Dir(path))
}

// LoadBytes parses an in-memory manifest. File references resolve against
// the current directory.
func LoadBytes(data []byte) (*Manifest, diag.List, error) {
	return load(data, "manifest", ".")
}

func load(data []byte, path, dir string) (*Manifest, diag.List, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, nil, fmt.Errorf("parse manifest: %w", err)
	}
	m.path = path
	m.dir = dir
	if m.Output == "" {
		m.Output = DefaultOutput
	}

	if diags := m.validate(); len(diags) > 0 {
		diags.Sort()
		return nil, diags, nil
	}
	return &m, nil, nil
}

// validate checks the manifest structure. Template resolution errors are
// left to Generate, which has the template content in hand.
func (m *Manifest) validate() diag.List {
	var diags diag.List
	pos := func(line int) token.Position {
		return token.Position{Filename: m.path, Line: line}
	}

	if !token.IsIdentifier(m.Package) {
		diags.Add(diag.ManifestInvalid, pos(0), "package %q is not a valid Go identifier", m.Package)
	}
	if len(m.Templates) == 0 {
		diags.Add(diag.ManifestInvalid, pos(0), "manifest declares no templates")
	}

	seen := make(map[string]int, len(m.Templates))
	for _, t := range m.Templates {
		if !token.IsIdentifier(t.Name) {
			diags.Add(diag.ManifestInvalid, pos(t.line), "template name %q is not a valid Go identifier", t.Name)
		}
		if prev, dup := seen[t.Name]; dup {
			diags.Add(diag.ManifestInvalid, pos(t.line), "template %q already declared on line %d", t.Name, prev)
		} else {
			seen[t.Name] = t.line
		}
		if (t.Content == "") == (t.File == "") {
			diags.Add(diag.ManifestInvalid, pos(t.line), "template %q needs exactly one of content or file", t.Name)
		}
	}
	return diags
}

// OutputPath returns the absolute location of the generated file.
func (m *Manifest) OutputPath() string {
	return filepath.Join(m.dir, m.Output)
}

// Generate resolves every template and renders the generated Go file.
// Resolution failures come back as diagnostics carrying manifest lines; a
// manifest with any failing template produces no output.
func (m *Manifest) Generate() ([]byte, diag.List) {
	var diags diag.List
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "// Code generated by webiogen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\nconst (\n", m.Package)

	for _, t := range m.Templates {
		pos := token.Position{Filename: m.path, Line: t.line}

		content := t.Content
		if t.File != "" {
			data, err := os.ReadFile(filepath.Join(m.dir, t.File))
			if err != nil {
				diags.Add(diag.ManifestInvalid, pos, "template %q: %v", t.Name, err)
				continue
			}
			content = string(data)
		}

		out, err := template.Replace(content, orderedArgs(t.Args)...)
		if err != nil {
			code := diag.UnknownPlaceholder
			if errors.Is(err, template.ErrUnterminated) {
				code = diag.UnterminatedPlaceholder
			}
			diags.Add(code, pos, "template %q: %v", t.Name, err)
			continue
		}

		fmt.Fprintf(&buf, "\t%s = %s\n", t.Name, strconv.Quote(out))
	}
	fmt.Fprintf(&buf, ")\n")

	if len(diags) > 0 {
		diags.Sort()
		return nil, diags
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		// The emitted source is built from validated identifiers and
		// quoted strings; a format failure means a bug here.
		panic(fmt.Sprintf("bundle: generated invalid source: %v", err))
	}
	return src, nil
}

// orderedArgs converts the YAML argument map into a deterministic argument
// list. Names in a YAML map are unique, so ordering cannot change the
// substitution result; sorting just keeps behavior reproducible.
func orderedArgs(args map[string]any) []template.Argument {
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]template.Argument, 0, len(names))
	for _, name := range names {
		out = append(out, template.Arg(name, args[name]))
	}
	return out
}
