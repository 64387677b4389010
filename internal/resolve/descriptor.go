package resolve

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// descriptorFile is the name of the descriptor scanned out of each
// --syspath directory. It never contains code -- a Go binary cannot load
// code at runtime -- only aliases onto fixtures already linked into this
// binary, letting an operator extend the set of names a syspath entry
// exposes without a rebuild of the calling test suite's configuration.
const descriptorFile = "fixture.yaml"

// descriptor is the on-disk shape of fixture.yaml: a list of additional
// dotted names that should resolve to an already-registered constructor.
type descriptor struct {
	Aliases []aliasEntry `yaml:"aliases"`
}

type aliasEntry struct {
	Name   string `yaml:"name"`
	MapsTo string `yaml:"maps_to"`
}

// LoadDescriptors scans dir for a fixture.yaml descriptor and registers
// each entry's Name as an alias for the already-registered MapsTo
// constructor. It is a no-op, not an error, if dir has no descriptor --
// most --syspath entries are plain search roots with nothing to alias.
func LoadDescriptors(dir string) error {
	path := filepath.Join(dir, descriptorFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("resolve: reading %s: %w", path, err)
	}

	var d descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("resolve: parsing %s: %w", path, err)
	}

	for _, entry := range d.Aliases {
		ctor, ok := lookup(entry.MapsTo)
		if !ok {
			return fmt.Errorf("resolve: %s aliases %q to unregistered constructor %q", path, entry.Name, entry.MapsTo)
		}
		if err := Register(entry.Name, ctor); err != nil {
			return fmt.Errorf("resolve: %s: %w", path, err)
		}
	}
	return nil
}
