package content

import (
	"embed"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.schema.json
var schemaFiles embed.FS

var (
	schemasOnce sync.Once
	schemas     map[string]*gojsonschema.Schema
	schemasErr  error
)

func compiledSchemas() (map[string]*gojsonschema.Schema, error) {
	schemasOnce.Do(func() {
		schemas = make(map[string]*gojsonschema.Schema, len(documents))
		for _, name := range documents {
			raw, err := schemaFiles.ReadFile("schemas/" + name + ".schema.json")
			if err != nil {
				schemasErr = fmt.Errorf("read %s schema: %w", name, err)
				return
			}
			compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
			if err != nil {
				schemasErr = fmt.Errorf("compile %s schema: %w", name, err)
				return
			}
			schemas[name] = compiled
		}
	})
	return schemas, schemasErr
}

// validateDocument checks a decoded document against the named schema and
// returns one message per violation.
func validateDocument(name string, doc any) ([]string, error) {
	all, err := compiledSchemas()
	if err != nil {
		return nil, err
	}
	schema, ok := all[name]
	if !ok {
		return nil, fmt.Errorf("no schema registered for %s", name)
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, err
	}
	if result.Valid() {
		return nil, nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return problems, nil
}
