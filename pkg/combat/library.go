package combat

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v2"
)

//ErrUnknownMod is returned when a mod name is not in the library
var ErrUnknownMod = errors.New("unknown mod")

//Library holds every known mod keyed by name. It is read only once loaded
type Library struct {
	path string
	mods map[string]Mod
}

//LoadLibrary reads a yaml list of mods from path
func LoadLibrary(path string) (*Library, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mod library: %w", err)
	}
	l, err := ParseLibrary(source)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	l.path = path
	return l, nil
}

func ParseLibrary(source []byte) (*Library, error) {
	var mods []Mod
	if err := yaml.Unmarshal(source, &mods); err != nil {
		return nil, fmt.Errorf("parse mod library: %w", err)
	}
	return NewLibrary(mods)
}

func NewLibrary(mods []Mod) (*Library, error) {
	l := &Library{mods: make(map[string]Mod, len(mods))}
	for _, m := range mods {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if _, dup := l.mods[m.Name]; dup {
			return nil, fmt.Errorf("duplicated mod %v", m.Name)
		}
		l.mods[m.Name] = m
	}
	return l, nil
}

func (l *Library) Path() string {
	return l.path
}

func (l *Library) Len() int {
	return len(l.mods)
}

func (l *Library) Get(name string) (Mod, bool) {
	m, ok := l.mods[name]
	return m, ok
}

//Names returns every mod name sorted
func (l *Library) Names() []string {
	r := make([]string, 0, len(l.mods))
	for k := range l.mods {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

//Lookup returns the mods for names in the same order
func (l *Library) Lookup(names []string) ([]Mod, error) {
	r := make([]Mod, 0, len(names))
	for _, n := range names {
		m, ok := l.Get(n)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnknownMod, n)
		}
		r = append(r, m)
	}
	return r, nil
}

//WriteLibrary encodes mods in the format LoadLibrary reads
func WriteLibrary(w io.Writer, mods []Mod) error {
	out, err := yaml.Marshal(mods)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
