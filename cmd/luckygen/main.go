// cmd/luckygen/main.go
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// This binary is a code-generation tool.
//
// It reads a provider specification (JSON or YAML) and generates one function
// that registers every provider on a *di.Registry.
//
// Key behaviors:
// - Reads the spec; the file extension picks the decoder (.yaml/.yml or JSON)
// - Validates required fields and rejects duplicate (type, name) providers
// - Always imports the di runtime package; user imports are kept as given
// - Formats the output with go/format and writes it atomically (temp file + rename)

// DefaultDIImport is the import path of the runtime package used by generated code.
const DefaultDIImport = "github.com/sghaida/luckydep/di"

// DefaultFunc is the generated function name when the spec does not set one.
const DefaultFunc = "RegisterProviders"

// Dep is a dependency resolved from the registry and passed to a constructor,
// in declaration order.
type Dep struct {
	// Type is the Go type requested from the registry (di.Invoke[Type]).
	Type string `json:"type" yaml:"type"`

	// Name selects a named registration; empty means di.DefaultName.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Provider describes one registration.
type Provider struct {
	// Type is the key type the constructor's result is registered under.
	Type string `json:"type" yaml:"type"`

	// Name is the registration name; empty means di.DefaultName.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Constructor is a function expression called with the resolved deps.
	Constructor string `json:"constructor" yaml:"constructor"`

	// ReturnsError is set when Constructor returns (Type, error).
	ReturnsError bool `json:"returnsError,omitempty" yaml:"returnsError,omitempty"`

	Deps []Dep `json:"deps,omitempty" yaml:"deps,omitempty"`
}

// ImportSpec models one Go import: optional alias and full import path.
type ImportSpec struct {
	Alias string `json:"alias,omitempty" yaml:"alias,omitempty"`
	Path  string `json:"path" yaml:"path"`
}

// Spec is the full input schema consumed by the generator.
type Spec struct {
	Package   string       `json:"package" yaml:"package"`
	Func      string       `json:"func,omitempty" yaml:"func,omitempty"`
	DIImport  string       `json:"diImport,omitempty" yaml:"diImport,omitempty"`
	Imports   []ImportSpec `json:"imports,omitempty" yaml:"imports,omitempty"`
	Providers []Provider   `json:"providers" yaml:"providers"`
}

// templateData is the input passed to the Go template.
type templateData struct {
	Spec        Spec
	ImportsList []ImportSpec
}

// run executes the generator logic and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(args []string, stderr io.Writer) int {
	flags := flag.NewFlagSet("luckygen", flag.ContinueOnError)
	flags.SetOutput(stderr)

	specPath := flags.String("spec", "", "path to providers spec (.json, .yaml, .yml)")
	outPath := flags.String("out", "", "output .gen.go file path")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	if strings.TrimSpace(*specPath) == "" || strings.TrimSpace(*outPath) == "" {
		_, _ = fmt.Fprintln(stderr, "usage: luckygen -spec <providers.yaml|providers.json> -out <file.gen.go>")
		return 2
	}

	if err := generate(*specPath, filepath.Clean(*outPath)); err != nil {
		_, _ = fmt.Fprintln(stderr, "luckygen:", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// generate reads, validates and renders the spec at specPath into outPath.
func generate(specPath, outPath string) error {
	specBytes, err := os.ReadFile(specPath)
	if err != nil {
		return err
	}

	spec, err := decodeSpec(specPath, specBytes)
	if err != nil {
		return fmt.Errorf("decode %s: %w", specPath, err)
	}

	applyDefaults(&spec)
	if err := validateSpec(&spec); err != nil {
		return err
	}

	src, err := render(spec)
	if err != nil {
		return err
	}
	return writeFileAtomic(outPath, src, 0o644)
}

// decodeSpec picks the decoder from the file extension.
func decodeSpec(specPath string, data []byte) (Spec, error) {
	var spec Spec
	switch strings.ToLower(filepath.Ext(specPath)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&spec); err != nil {
			return Spec{}, err
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&spec); err != nil {
			return Spec{}, err
		}
	}
	return spec, nil
}

func applyDefaults(spec *Spec) {
	if strings.TrimSpace(spec.Func) == "" {
		spec.Func = DefaultFunc
	}
	if strings.TrimSpace(spec.DIImport) == "" {
		spec.DIImport = DefaultDIImport
	}
}

// validateSpec validates semantic correctness of the input specification.
func validateSpec(spec *Spec) error {
	var missingFields []string

	requireNonEmpty := func(fieldName, value string) {
		if strings.TrimSpace(value) == "" {
			missingFields = append(missingFields, fieldName)
		}
	}

	requireNonEmpty("package", spec.Package)
	requireNonEmpty("func", spec.Func)

	if len(spec.Providers) == 0 {
		missingFields = append(missingFields, "providers (must have at least 1)")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("spec missing required fields: %v", missingFields)
	}

	for _, imp := range spec.Imports {
		if strings.TrimSpace(imp.Path) == "" {
			return fmt.Errorf("import with alias %q has empty path", imp.Alias)
		}
	}

	seen := make(map[string]struct{}, len(spec.Providers))
	for i, p := range spec.Providers {
		if p.Type == "" || p.Constructor == "" {
			return fmt.Errorf("provider %d must have type/constructor; got: %+v", i, p)
		}
		id := p.Type + "[" + registrationName(p.Name) + "]"
		if _, ok := seen[id]; ok {
			return fmt.Errorf("duplicate provider: %s", id)
		}
		seen[id] = struct{}{}

		for j, d := range p.Deps {
			if d.Type == "" {
				return fmt.Errorf("provider %s: dep %d has empty type", id, j)
			}
		}
	}
	return nil
}

func registrationName(name string) string {
	if name == "" {
		return "default"
	}
	return name
}

// importsFor returns the di runtime import followed by the spec's imports,
// without duplicating the runtime path.
func importsFor(spec Spec) []ImportSpec {
	out := []ImportSpec{{Path: spec.DIImport}}
	for _, imp := range spec.Imports {
		if imp.Path == spec.DIImport {
			continue
		}
		out = append(out, imp)
	}
	return out
}

// render executes the template and formats the result.
//
// On a format failure the unformatted source is part of the error so a bad
// type or constructor expression in the spec is easy to find.
func render(spec Spec) ([]byte, error) {
	var out bytes.Buffer
	data := templateData{Spec: spec, ImportsList: importsFor(spec)}
	if err := genTemplate.Execute(&out, data); err != nil {
		return nil, err
	}

	formatted, err := format.Source(out.Bytes())
	if err != nil {
		return nil, errors.Join(fmt.Errorf("format generated source: %w", err), errors.New(out.String()))
	}
	return formatted, nil
}

// genTemplate is the Go source template for the registration function.
var genTemplate = template.Must(
	template.New("luckygen").Parse(`// Code generated by luckygen; DO NOT EDIT.

package {{.Spec.Package}}

import (
{{- range .ImportsList}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)

// {{.Spec.Func}} registers every generated provider on r.
func {{.Spec.Func}}(r *di.Registry) {
{{- range .Spec.Providers}}
	di.Provide[{{.Type}}](r, func(r *di.Registry) ({{.Type}}, error) {
		{{- if .Deps}}
		var zero {{.Type}}
		{{- end}}
		{{- range $i, $d := .Deps}}
		dep{{$i}}, err := di.Invoke[{{$d.Type}}](r{{if $d.Name}}, {{printf "%q" $d.Name}}{{end}})
		if err != nil {
			return zero, err
		}
		{{- end}}
		return {{.Constructor}}({{range $i, $d := .Deps}}{{if $i}}, {{end}}dep{{$i}}{{end}}){{if not .ReturnsError}}, nil{{end}}
	}{{if .Name}}, {{printf "%q" .Name}}{{end}})
{{- end}}
}
`),
)

// tempFile abstracts an os.File for testability.
type tempFile interface {
	Name() string
	Write([]byte) (int, error)
	Close() error
}

// File operation hooks, overridden in tests.
var (
	createTempFile = func(dir, pattern string) (tempFile, error) { return os.CreateTemp(dir, pattern) }
	chmodFile      = os.Chmod
	renameFile     = os.Rename
	removeFile     = os.Remove
)

// writeFileAtomic writes a file atomically.
//
// It writes to a temporary file in the same directory and then renames it
// over the target path, so readers never observe partial writes.
func writeFileAtomic(targetPath string, data []byte, perm os.FileMode) (err error) {
	targetDir := filepath.Dir(targetPath)

	tmpFile, err := createTempFile(targetDir, filepath.Base(targetPath)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if err != nil {
			_ = removeFile(tmpPath)
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err = tmpFile.Close(); err != nil {
		return err
	}
	if err = chmodFile(tmpPath, perm); err != nil {
		return err
	}
	return renameFile(tmpPath, targetPath)
}
