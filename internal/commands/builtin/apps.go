package builtin

import (
	"errors"
	"fmt"
	"strings"

	"luxos/internal/apps"
	"luxos/internal/vfs"
	"luxos/pkg/luxtypes"
)

// InstallCommand starts installing a catalog app. Installation finishes
// later; this command only acknowledges the request.
type InstallCommand struct {
	installer *apps.Installer
}

// Name returns the command name "install" for registration and lookup.
func (c *InstallCommand) Name() string {
	return "install"
}

// Description returns a brief description of what the install command does.
func (c *InstallCommand) Description() string {
	return "Install an app from the catalog"
}

// Usage returns the syntax of the install command.
func (c *InstallCommand) Usage() string {
	return "install <app_name>"
}

// HelpInfo returns structured help information for the install command.
func (c *InstallCommand) HelpInfo() luxtypes.HelpInfo {
	return helpFor(c, []luxtypes.HelpExample{
		{Command: "install LuxText", Description: "Install the LuxText editor"},
		{Command: "apps", Description: "See which apps can be installed"},
	}, "Only one app installs at a time", "The app is usable once the success message appears")
}

// Execute starts installing args[0].
func (c *InstallCommand) Execute(args []string) string {
	name := firstArg(args)
	if name == "" {
		return usage(c)
	}

	err := c.installer.Install(name)
	switch {
	case err == nil:
		return fmt.Sprintf("Installation of %s started.", name)
	case errors.Is(err, apps.ErrUnknownApp):
		return fmt.Sprintf("Unknown app: %s", name)
	case errors.Is(err, apps.ErrAlreadyInstalled):
		return fmt.Sprintf("%s is already installed.", name)
	case errors.Is(err, apps.ErrInstalling):
		return fmt.Sprintf("%s is already being installed.", name)
	case errors.Is(err, apps.ErrBusy):
		return fmt.Sprintf("Cannot install %s: %s is currently installing.", name, c.installer.Installing())
	default:
		return fmt.Sprintf("Error: install: %v", err)
	}
}

// ListAppsCommand lists installed apps.
type ListAppsCommand struct {
	installer *apps.Installer
}

// Name returns the command name "listapps" for registration and lookup.
func (c *ListAppsCommand) Name() string {
	return "listapps"
}

// Description returns a brief description of what the listapps command does.
func (c *ListAppsCommand) Description() string {
	return "List installed apps"
}

// Usage returns the syntax of the listapps command.
func (c *ListAppsCommand) Usage() string {
	return "listapps"
}

// HelpInfo returns structured help information for the listapps command.
func (c *ListAppsCommand) HelpInfo() luxtypes.HelpInfo {
	return helpFor(c, nil, "Apps still installing are not listed")
}

// Execute lists installed app names.
func (c *ListAppsCommand) Execute(_ []string) string {
	installed := c.installer.Installed()
	if len(installed) == 0 {
		return "No apps installed."
	}
	names := make([]string, len(installed))
	for i, app := range installed {
		names[i] = app.Name
	}
	return strings.Join(names, "\n")
}

// AppsCommand shows the whole catalog with each app's status.
type AppsCommand struct {
	installer *apps.Installer
}

// Name returns the command name "apps" for registration and lookup.
func (c *AppsCommand) Name() string {
	return "apps"
}

// Description returns a brief description of what the apps command does.
func (c *AppsCommand) Description() string {
	return "Show the app catalog"
}

// Usage returns the syntax of the apps command.
func (c *AppsCommand) Usage() string {
	return "apps"
}

// HelpInfo returns structured help information for the apps command.
func (c *AppsCommand) HelpInfo() luxtypes.HelpInfo {
	return helpFor(c, nil)
}

// Execute formats one catalog line per app.
func (c *AppsCommand) Execute(_ []string) string {
	states := c.installer.States()
	if len(states) == 0 {
		return "No apps available."
	}
	lines := make([]string, len(states))
	for i, s := range states {
		lines[i] = fmt.Sprintf("%s v%s [%s] - %s", s.Name, s.Version, s.Status, s.Description)
	}
	return strings.Join(lines, "\n")
}

// OpenCommand opens a file with an installed app.
type OpenCommand struct {
	installer *apps.Installer
	files     *vfs.Store
}

// Name returns the command name "open" for registration and lookup.
func (c *OpenCommand) Name() string {
	return "open"
}

// Description returns a brief description of what the open command does.
func (c *OpenCommand) Description() string {
	return "Open a file with an installed app"
}

// Usage returns the syntax of the open command.
func (c *OpenCommand) Usage() string {
	return "open <app_name> <file_name>"
}

// HelpInfo returns structured help information for the open command.
func (c *OpenCommand) HelpInfo() luxtypes.HelpInfo {
	return helpFor(c, []luxtypes.HelpExample{
		{Command: "open LuxText notes.txt", Description: "Open notes.txt in LuxText"},
	}, "Some apps only open files with their own extension")
}

// Execute opens args[1] with args[0].
func (c *OpenCommand) Execute(args []string) string {
	if len(args) < 2 || args[0] == "" || args[1] == "" {
		return usage(c)
	}
	appName, fileName := args[0], args[1]

	app, ok := c.installer.Catalog().Get(appName)
	if !ok {
		return fmt.Sprintf("Unknown app: %s", appName)
	}
	if c.installer.Status(appName) != luxtypes.AppInstalled {
		return fmt.Sprintf("%s is not installed.", appName)
	}
	if app.Extension != "" && !strings.HasSuffix(fileName, app.Extension) {
		return fmt.Sprintf("%s can only open %s files.", appName, app.Extension)
	}

	content, err := c.files.Read(fileName)
	if err != nil {
		return readError(fileName, err)
	}
	return fmt.Sprintf("%s opened '%s':\n%s", appName, fileName, content)
}
