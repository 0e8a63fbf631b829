package loader

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"luxos/internal/logger"
	"luxos/pkg/luxtypes"
)

// DefaultMaxSteps bounds the work a single module evaluation or handler
// call may perform.
const DefaultMaxSteps = 1_000_000

// StarlarkEvaluator runs .star modules in a Starlark interpreter. The
// interpreter has no filesystem, network or host access, and every thread
// is bounded by MaxSteps.
//
// A module defines a global dict named commands mapping names to callables,
// and may define name, version and description strings:
//
//	def greet(*args):
//	    return "Hello, " + " ".join(args)
//
//	commands = {"greet": greet}
type StarlarkEvaluator struct {
	MaxSteps uint64
}

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
}

func (e *StarlarkEvaluator) newThread(name string) *starlark.Thread {
	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			logger.ModuleOperation(name, "print", msg)
		},
	}
	steps := e.MaxSteps
	if steps == 0 {
		steps = DefaultMaxSteps
	}
	thread.SetMaxExecutionSteps(steps)
	return thread
}

// Evaluate executes the module top level and collects its exports.
func (e *StarlarkEvaluator) Evaluate(fileName string, source []byte) (*Module, error) {
	thread := e.newThread(fileName)
	globals, err := starlark.ExecFileOptions(fileOptions, thread, fileName, source, nil)
	if err != nil {
		return nil, err
	}

	module := &Module{}
	for key, dst := range map[string]*string{
		"name":        &module.Name,
		"version":     &module.Version,
		"description": &module.Description,
	} {
		v, ok := globals[key]
		if !ok {
			continue
		}
		s, ok := starlark.AsString(v)
		if !ok {
			return nil, fmt.Errorf("module %s must be a string, got %s", key, v.Type())
		}
		*dst = s
	}
	if err := validateVersion(module.Version); err != nil {
		return nil, err
	}

	raw, ok := globals["commands"]
	if !ok {
		return nil, ErrNoCommands
	}
	dict, ok := raw.(*starlark.Dict)
	if !ok {
		return nil, fmt.Errorf("%w: commands is a %s, not a dict", ErrNoCommands, raw.Type())
	}

	for _, item := range dict.Items() {
		name, ok := starlark.AsString(item[0])
		if !ok {
			return nil, fmt.Errorf("%w: command key %s is not a string", ErrNoCommands, item[0])
		}
		fn, ok := item[1].(starlark.Callable)
		if !ok {
			return nil, fmt.Errorf("%w: command %q is a %s, not a function", ErrNoCommands, name, item[1].Type())
		}
		module.Commands = append(module.Commands, Export{
			Name:        name,
			Description: docOf(fn),
			Handler:     e.handler(name, fn),
		})
	}
	return module, nil
}

func (e *StarlarkEvaluator) handler(name string, fn starlark.Callable) luxtypes.HandlerFunc {
	return func(args ...string) string {
		tuple := make(starlark.Tuple, len(args))
		for i, arg := range args {
			tuple[i] = starlark.String(arg)
		}

		v, err := starlark.Call(e.newThread(name), fn, tuple, nil)
		if err != nil {
			return fmt.Sprintf("Error: %s: %v", name, err)
		}
		switch v := v.(type) {
		case starlark.String:
			return string(v)
		case starlark.NoneType:
			return ""
		default:
			return v.String()
		}
	}
}

func docOf(fn starlark.Callable) string {
	if f, ok := fn.(*starlark.Function); ok {
		return f.Doc()
	}
	return ""
}
