package reftable

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Table names shipped with the package.
const (
	TableDarwin  = "darwin"
	TableWindows = "windows"
	TableMac     = "mac"
	TableIPhone  = "iphone"
	TableIPad    = "ipad"
	TableIPod    = "ipod"
	TableWatch   = "watch"
	TableAppleTV = "appletv"
	TableNetflix = "netflix"
)

//go:embed tables/*.yaml
var tablesFS embed.FS

type tableFile struct {
	Name    string  `yaml:"name"`
	Entries []Entry `yaml:"entries"`
}

var (
	loadedMu sync.Mutex
	loaded   = make(map[string]*Table)
)

// Load returns the named embedded table. Tables are decoded once and shared.
func Load(name string) (*Table, error) {
	loadedMu.Lock()
	defer loadedMu.Unlock()

	if t, ok := loaded[name]; ok {
		return t, nil
	}

	raw, err := tablesFS.ReadFile(path.Join("tables", name+".yaml"))
	if err != nil {
		return nil, errors.Join(ErrTableNotFound, fmt.Errorf("table %q", name), err)
	}

	t, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	if t.Name() != name {
		return nil, errors.Join(ErrInvalidTable, fmt.Errorf("file %q declares table %q", name, t.Name()))
	}

	loaded[name] = t
	return t, nil
}

// MustLoad is like Load but panics on error.
func MustLoad(name string) *Table {
	t, err := Load(name)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse decodes a YAML table document.
func Parse(raw []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, errors.Join(ErrInvalidTable, err)
	}
	if f.Name == "" {
		return nil, errors.Join(ErrInvalidTable, errors.New("missing table name"))
	}
	for i, e := range f.Entries {
		if e.Code == "" {
			return nil, errors.Join(ErrInvalidTable, fmt.Errorf("table %q: entry %d has empty code", f.Name, i))
		}
	}
	return New(f.Name, f.Entries), nil
}

// Names lists the embedded table names, sorted.
func Names() []string {
	files, err := tablesFS.ReadDir("tables")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(f.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

func Darwin() *Table  { return MustLoad(TableDarwin) }
func Windows() *Table { return MustLoad(TableWindows) }
func Mac() *Table     { return MustLoad(TableMac) }
func IPhone() *Table  { return MustLoad(TableIPhone) }
func IPad() *Table    { return MustLoad(TableIPad) }
func IPod() *Table    { return MustLoad(TableIPod) }
func Watch() *Table   { return MustLoad(TableWatch) }
func AppleTV() *Table { return MustLoad(TableAppleTV) }
func Netflix() *Table { return MustLoad(TableNetflix) }
