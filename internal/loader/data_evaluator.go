package loader

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"luxos/internal/logger"
)

// ErrInvalidData is returned for data modules that do not parse.
var ErrInvalidData = errors.New("invalid data module")

// JSONEvaluator loads declarative data modules:
//
//	{"name": "greetings", "commands": {"hello": "Hello, {args}!"}}
//
// Each command replies with its template; {args} expands to all arguments
// and {0}, {1}... to single ones.
type JSONEvaluator struct{}

// Evaluate parses source and builds template commands in document order.
func (JSONEvaluator) Evaluate(_ string, source []byte) (*Module, error) {
	if !gjson.ValidBytes(source) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrInvalidData)
	}
	doc := gjson.ParseBytes(source)

	module := &Module{
		Name:        doc.Get("name").String(),
		Version:     doc.Get("version").String(),
		Description: doc.Get("description").String(),
	}
	if err := validateVersion(module.Version); err != nil {
		return nil, err
	}

	cmds := doc.Get("commands")
	if !cmds.IsObject() {
		return nil, ErrNoCommands
	}

	var bad error
	cmds.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			bad = fmt.Errorf("%w: command %q must map to a string", ErrNoCommands, key.String())
			return false
		}
		module.Commands = append(module.Commands, Export{
			Name:    key.String(),
			Handler: templateHandler(value.String()),
		})
		return true
	})
	if bad != nil {
		return nil, bad
	}
	return module, nil
}

// YAMLEvaluator loads the YAML form of a data module.
type YAMLEvaluator struct{}

type yamlModule struct {
	Name        string            `yaml:"name"`
	Version     string            `yaml:"version"`
	Description string            `yaml:"description"`
	Commands    map[string]string `yaml:"commands"`
}

// Evaluate parses source and builds template commands sorted by name.
func (YAMLEvaluator) Evaluate(_ string, source []byte) (*Module, error) {
	var doc yamlModule
	if err := yaml.Unmarshal(source, &doc); err != nil {
		// parser errors quote the document, so only the log sees them
		logger.Debug("YAML module rejected", "error", err)
		return nil, ErrInvalidData
	}
	if err := validateVersion(doc.Version); err != nil {
		return nil, err
	}
	if doc.Commands == nil {
		return nil, ErrNoCommands
	}

	names := make([]string, 0, len(doc.Commands))
	for name := range doc.Commands {
		names = append(names, name)
	}
	sort.Strings(names)

	module := &Module{Name: doc.Name, Version: doc.Version, Description: doc.Description}
	for _, name := range names {
		module.Commands = append(module.Commands, Export{
			Name:    name,
			Handler: templateHandler(doc.Commands[name]),
		})
	}
	return module, nil
}
