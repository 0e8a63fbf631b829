package loader

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"luxos/pkg/luxtypes"
)

// ErrNoCommands is returned when a module does not export a usable
// commands mapping.
var ErrNoCommands = errors.New("module does not export commands")

// Export is one command exported by a module.
type Export struct {
	Name        string
	Description string
	Handler     luxtypes.HandlerFunc
}

// Module is the result of evaluating a module source.
type Module struct {
	Name        string
	Version     string
	Description string
	Commands    []Export
}

// Evaluator turns module source into exported commands. Evaluators never
// touch the registry; the loader merges their result.
type Evaluator interface {
	Evaluate(fileName string, source []byte) (*Module, error)
}

func validateVersion(version string) error {
	if version == "" {
		return nil
	}
	if _, err := semver.NewVersion(version); err != nil {
		return fmt.Errorf("invalid module version %q: %w", version, err)
	}
	return nil
}

// templateHandler expands {args} and positional {0}, {1}... placeholders.
func templateHandler(tmpl string) luxtypes.HandlerFunc {
	return func(args ...string) string {
		pairs := []string{"{args}", strings.Join(args, " ")}
		for i, arg := range args {
			pairs = append(pairs, "{"+strconv.Itoa(i)+"}", arg)
		}
		return strings.NewReplacer(pairs...).Replace(tmpl)
	}
}

// inertEvaluator accepts markup and style disks, which never carry commands.
type inertEvaluator struct {
	kind string
}

func (e inertEvaluator) Evaluate(fileName string, _ []byte) (*Module, error) {
	return nil, fmt.Errorf("%w: %s is a %s file", ErrNoCommands, fileName, e.kind)
}
