package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "path to write the JSON schema (stdout when empty)")
	flag.Parse()

	data, err := json.MarshalIndent(buildSchema(), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal schema: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if outPath == "" {
		_, _ = os.Stdout.Write(data)
		return
	}
	if err := writeSchema(outPath, data); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		Mapper: namedValues,
	}
	schema := reflector.Reflect(new(ability.FileDefinitions))
	schema.Title = "Ability Definitions"
	schema.Description = "Authored ability data loaded by the ability engine"
	return schema
}

var abilityPkg = reflect.TypeOf(ability.Definition{}).PkgPath()

// namedValues describes enums and bitmasks by their authored names
func namedValues(t reflect.Type) *jsonschema.Schema {
	if t.PkgPath() != abilityPkg {
		return nil
	}
	if names, ok := ability.EnumNames()[t.Name()]; ok {
		return &jsonschema.Schema{Type: "string", Enum: enumOf(names)}
	}
	if names, ok := ability.BitmaskNames()[t.Name()]; ok {
		return &jsonschema.Schema{
			Type:        "array",
			Items:       &jsonschema.Schema{Type: "string", Enum: enumOf(names)},
			UniqueItems: true,
		}
	}
	return nil
}

func enumOf(names []string) []interface{} {
	out := make([]interface{}, len(names))
	for i, name := range names {
		out[i] = name
	}
	return out
}

func writeSchema(outPath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}
	return nil
}
