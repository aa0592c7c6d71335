/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package processor

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"io"
	"os"
	"regexp"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/fstranieri/cloudchat/errors"
	"github.com/fstranieri/cloudchat/objecttype"
)

// DefaultPackage is used when a schema does not name one.
const DefaultPackage = "models"

var typeNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)

// Schema is the YAML declaration of an application's object types.
type Schema struct {
	Package           string   `yaml:"package"`
	FormatVersion     int      `yaml:"formatVersion"`
	ObjectTypeVersion int      `yaml:"objectTypeVersion"`
	Types             []string `yaml:"types"`
}

// ParseSchema decodes a schema. Unknown keys are rejected.
func ParseSchema(r io.Reader) (*Schema, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Schema
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			return nil, errors.NewValidationError("schema", "empty schema")
		}
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	if s.Package == "" {
		s.Package = DefaultPackage
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadSchema reads and decodes a schema file.
func LoadSchema(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schema: %w", err)
	}
	defer f.Close()

	s, err := ParseSchema(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Info returns the descriptor the schema declares.
func (s *Schema) Info() objecttype.Info {
	ids := make([]objecttype.TypeID, len(s.Types))
	for i, t := range s.Types {
		ids[i] = objecttype.TypeID(t)
	}
	return objecttype.Info{
		FormatVersion:     s.FormatVersion,
		ObjectTypeVersion: s.ObjectTypeVersion,
		ObjectTypes:       ids,
	}
}

// Validate checks the schema.
func (s *Schema) Validate() error {
	if !token.IsIdentifier(s.Package) {
		return errors.NewValidationError("package", fmt.Sprintf("%q is not a Go identifier", s.Package))
	}
	if err := s.Info().Validate(); err != nil {
		return err
	}
	for _, t := range s.Types {
		if !typeNamePattern.MatchString(t) {
			return errors.NewValidationError("types", fmt.Sprintf("%q is not lower snake case", t))
		}
	}
	return nil
}

// ConstName returns the Go constant generated for an object type name,
// e.g. "user_push_tokens" -> "TypeUserPushTokens".
func ConstName(typeName string) string {
	var b strings.Builder
	b.WriteString("Type")
	for _, part := range strings.Split(typeName, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

type constant struct {
	Name  string
	Value string
}

var registrarTemplate = template.Must(template.New("registrar").Parse(`// Code generated by the cloudchat object type compiler. DO NOT EDIT.

package {{.Package}}

import "github.com/fstranieri/cloudchat/objecttype"

const (
	FormatVersion = {{.FormatVersion}}
	ObjectTypeVersion = {{.ObjectTypeVersion}}
)

const (
{{- range .Constants}}
	{{.Name}} objecttype.TypeID = {{printf "%q" .Value}}
{{- end}}
)

// GetObjectTypeInfo returns the object type descriptor for this application.
func GetObjectTypeInfo() objecttype.Info {
	return objecttype.Info{
		FormatVersion: FormatVersion,
		ObjectTypeVersion: ObjectTypeVersion,
		ObjectTypes: []objecttype.TypeID{
{{- range .Constants}}
			{{.Name}},
{{- end}}
		},
	}
}

func init() {
	GetObjectTypeInfo().MustValidate()
}
`))

// Generate renders the gofmt-ed Go source of the registrar for s.
func Generate(s *Schema) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	consts := make([]constant, len(s.Types))
	seen := make(map[string]string, len(s.Types))
	for i, t := range s.Types {
		name := ConstName(t)
		if other, dup := seen[name]; dup {
			return nil, errors.NewValidationError("types",
				fmt.Sprintf("%q and %q both map to %s", other, t, name))
		}
		seen[name] = t
		consts[i] = constant{Name: name, Value: t}
	}

	var buf bytes.Buffer
	err := registrarTemplate.Execute(&buf, struct {
		*Schema
		Constants []constant
	}{s, consts})
	if err != nil {
		return nil, fmt.Errorf("render registrar: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format registrar: %w", err)
	}
	return src, nil
}

// GenerateFile compiles the schema at schemaPath into outPath.
func GenerateFile(schemaPath, outPath string) error {
	s, err := LoadSchema(schemaPath)
	if err != nil {
		return err
	}
	src, err := Generate(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, src, 0o644); err != nil {
		return fmt.Errorf("write registrar: %w", err)
	}
	return nil
}
