// Package schemas holds the JSON Schema documents that describe every response body the service
// can return, both for successful calls and for errors.
//
// The documents are plain Draft-4 JSON files embedded in the binary. They are compiled once, the
// first time any of them is requested, and are read-only after that; a *Schema is safe to use
// from any number of goroutines.
package schemas

import (
	"embed"
	"path"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

// Name identifies one schema document.
type Name string

const (
	CompaniesList      Name = "CompaniesList"
	CompanyByID        Name = "CompanyById"
	UsersList          Name = "UsersList"
	UserByID           Name = "UserById"
	UserCreated        Name = "UserCreated"
	ValidationError422 Name = "ValidationError422"
	NotFound404        Name = "NotFound404"
	BadRequest400      Name = "BadRequest400"
)

var fileNames = map[Name]string{
	CompaniesList:      "companies_list.json",
	CompanyByID:        "company_by_id.json",
	UsersList:          "users_list.json",
	UserByID:           "user_by_id.json",
	UserCreated:        "user_created.json",
	ValidationError422: "validation_error_422.json",
	NotFound404:        "not_found_404.json",
	BadRequest400:      "bad_request_400.json",
}

//go:embed json/*.json
var documents embed.FS

// Schema is a compiled schema document.
type Schema struct {
	name     Name
	compiled *gojsonschema.Schema
}

func (s *Schema) Name() Name { return s.name }

// Validate checks a response body against the schema. It returns one description per violation,
// or an empty slice if the body conforms. The error is non-nil only if the body is not JSON at all.
func (s *Schema) Validate(body []byte) ([]string, error) {
	result, err := s.compiled.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, errors.Wrap(err, "response body is not valid JSON")
	}
	if result.Valid() {
		return nil, nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return problems, nil
}

// Registry is a set of compiled schemas, keyed by name.
type Registry struct {
	schemas map[Name]*Schema
}

// Load compiles every embedded schema document.
func Load() (*Registry, error) {
	r := &Registry{schemas: make(map[Name]*Schema, len(fileNames))}
	for name, file := range fileNames {
		data, err := documents.ReadFile(path.Join("json", file))
		if err != nil {
			return nil, errors.Wrapf(err, "schema %s", name)
		}
		s, err := compile(name, data)
		if err != nil {
			return nil, err
		}
		r.schemas[name] = s
	}
	return r, nil
}

func compile(name Name, data []byte) (*Schema, error) {
	loader := gojsonschema.NewSchemaLoader()
	loader.Draft = gojsonschema.Draft4
	loader.AutoDetect = false
	loader.Validate = true
	compiled, err := loader.Compile(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "schema %s could not be compiled", name)
	}
	return &Schema{name: name, compiled: compiled}, nil
}

// Get returns the schema with the given name, or an error if there is none.
func (r *Registry) Get(name Name) (*Schema, error) {
	s, ok := r.schemas[name]
	if !ok {
		return nil, errors.Errorf("unknown schema %q", name)
	}
	return s, nil
}

// Names returns the names of all schemas in the registry, sorted.
func (r *Registry) Names() []Name {
	ret := make([]Name, 0, len(r.schemas))
	for name := range r.schemas {
		ret = append(ret, name)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

var (
	defaultRegistry     *Registry
	defaultRegistryErr  error
	defaultRegistryOnce sync.Once
)

// Default returns the registry of embedded schemas, compiling it on first use.
func Default() (*Registry, error) {
	defaultRegistryOnce.Do(func() {
		defaultRegistry, defaultRegistryErr = Load()
	})
	return defaultRegistry, defaultRegistryErr
}

// Get returns a schema from the default registry. The embedded documents are fixed at build
// time, so an unknown name or a document that does not compile is a programming error and
// causes a panic.
func Get(name Name) *Schema {
	r, err := Default()
	if err != nil {
		panic(err)
	}
	s, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return s
}
