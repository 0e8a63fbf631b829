// Package apps implements the LuxOS app catalog and the installation state
// machine that gates which apps are available over time.
package apps

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"luxos/pkg/luxtypes"
)

//go:embed catalog.yaml
var defaultCatalogData []byte

// Catalog is the ordered, read-only list of installable apps.
type Catalog struct {
	apps  []luxtypes.App
	index map[string]int
}

type catalogFile struct {
	Apps []luxtypes.App `yaml:"apps"`
}

// DefaultCatalog returns the catalog shipped with LuxOS.
func DefaultCatalog() *Catalog {
	c, err := LoadCatalog(defaultCatalogData)
	if err != nil {
		panic(fmt.Sprintf("embedded app catalog is invalid: %v", err))
	}
	return c
}

// LoadCatalog parses a YAML catalog. Every app needs a unique name and a
// semantic version; an extension must start with a dot.
func LoadCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse app catalog: %w", err)
	}

	c := &Catalog{index: make(map[string]int, len(file.Apps))}
	for _, app := range file.Apps {
		if app.Name == "" {
			return nil, errors.New("app without a name")
		}
		if _, dup := c.index[app.Name]; dup {
			return nil, fmt.Errorf("duplicate app %q", app.Name)
		}
		if _, err := semver.NewVersion(app.Version); err != nil {
			return nil, fmt.Errorf("app %q has invalid version %q: %w", app.Name, app.Version, err)
		}
		if app.Extension != "" && !strings.HasPrefix(app.Extension, ".") {
			return nil, fmt.Errorf("app %q extension %q must start with a dot", app.Name, app.Extension)
		}
		c.index[app.Name] = len(c.apps)
		c.apps = append(c.apps, app)
	}
	return c, nil
}

// Get looks an app up by its exact name.
func (c *Catalog) Get(name string) (luxtypes.App, bool) {
	i, ok := c.index[name]
	if !ok {
		return luxtypes.App{}, false
	}
	return c.apps[i], true
}

// Apps returns the catalog in declaration order.
func (c *Catalog) Apps() []luxtypes.App {
	out := make([]luxtypes.App, len(c.apps))
	copy(out, c.apps)
	return out
}
