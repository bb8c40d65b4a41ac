package dataset

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed data/diseases.json data/syndromes.json
var embedded embed.FS

const (
	diseasesFile  = "diseases.json"
	syndromesFile = "syndromes.json"
)

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// Load reads diseases.json and syndromes.json from dir, validates both
// against their schemas and the structural rules, and returns the indexed
// dataset.
func Load(dir string) (*Dataset, error) {
	diseasesRaw, err := os.ReadFile(filepath.Join(dir, diseasesFile))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", diseasesFile, err)
	}
	syndromesRaw, err := os.ReadFile(filepath.Join(dir, syndromesFile))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", syndromesFile, err)
	}
	return Parse(diseasesRaw, syndromesRaw)
}

// LoadEmbedded returns the starter dataset compiled into the binary.
func LoadEmbedded() (*Dataset, error) {
	diseasesRaw, err := embedded.ReadFile("data/" + diseasesFile)
	if err != nil {
		return nil, fmt.Errorf("read embedded %s: %w", diseasesFile, err)
	}
	syndromesRaw, err := embedded.ReadFile("data/" + syndromesFile)
	if err != nil {
		return nil, fmt.Errorf("read embedded %s: %w", syndromesFile, err)
	}
	return Parse(diseasesRaw, syndromesRaw)
}

// Parse validates and decodes the two raw JSON documents.
func Parse(diseasesRaw, syndromesRaw []byte) (*Dataset, error) {
	if err := validateAgainstSchema("diseases", diseasesSchema, diseasesRaw); err != nil {
		return nil, fmt.Errorf("%s: %w", diseasesFile, err)
	}
	if err := validateAgainstSchema("syndromes", syndromesSchema, syndromesRaw); err != nil {
		return nil, fmt.Errorf("%s: %w", syndromesFile, err)
	}

	var diseases []Disease
	if err := json.Unmarshal(diseasesRaw, &diseases); err != nil {
		return nil, fmt.Errorf("decode %s: %w", diseasesFile, err)
	}
	var syndromes []Syndrome
	if err := json.Unmarshal(syndromesRaw, &syndromes); err != nil {
		return nil, fmt.Errorf("decode %s: %w", syndromesFile, err)
	}

	ds := New(diseases, syndromes)
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// validateAgainstSchema validates raw JSON against a schema definition.
func validateAgainstSchema(name string, definition map[string]any, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := getCompiledSchema(name, definition)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(name string, definition map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value, not raw bytes.
	defBytes, err := json.Marshal(definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
