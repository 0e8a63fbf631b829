// Package builtin provides the LuxOS builtin commands. Each command is a
// struct implementing luxtypes.Command; RegisterAll wires them into a
// console's registry together with the state they operate on.
package builtin

import (
	"strings"

	"luxos/internal/apps"
	"luxos/internal/commands"
	"luxos/internal/loader"
	"luxos/internal/screen"
	"luxos/internal/vfs"
	"luxos/pkg/luxtypes"
)

// Env is the console state the builtins act on.
type Env struct {
	Registry  *commands.Registry
	Files     *vfs.Store
	Screen    *screen.Buffer
	Installer *apps.Installer
	Loader    *loader.Loader
}

// Commands returns every builtin bound to env.
func Commands(env *Env) []luxtypes.Command {
	return []luxtypes.Command{
		&HelpCommand{registry: env.Registry},
		&LsCommand{files: env.Files},
		&MkdirCommand{files: env.Files},
		&WriteCommand{files: env.Files},
		&ReadCommand{files: env.Files},
		&DiffCommand{files: env.Files},
		&ClearCommand{screen: env.Screen},
		&InstallCommand{installer: env.Installer},
		&ListAppsCommand{installer: env.Installer},
		&AppsCommand{installer: env.Installer},
		&OpenCommand{installer: env.Installer, files: env.Files},
		&FaxCommand{},
		&EmailCommand{},
		&ReadModuleCommand{loader: env.Loader},
		&ModulesCommand{loader: env.Loader},
		&VersionCommand{},
	}
}

// RegisterAll registers every builtin into env.Registry.
func RegisterAll(env *Env) {
	env.Registry.Merge(Commands(env))
}

func helpFor(cmd luxtypes.Command, examples []luxtypes.HelpExample, notes ...string) luxtypes.HelpInfo {
	return luxtypes.HelpInfo{
		Command:     cmd.Name(),
		Description: cmd.Description(),
		Usage:       cmd.Usage(),
		Examples:    examples,
		Notes:       notes,
	}
}

func usage(cmd luxtypes.Command) string {
	return "Usage: " + cmd.Usage()
}

// joinRest joins args[from:] with single spaces.
func joinRest(args []string, from int) string {
	if len(args) <= from {
		return ""
	}
	return strings.Join(args[from:], " ")
}

// firstArg returns args[0] or "".
func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
