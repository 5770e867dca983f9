package properties

import "os"

const (
	// SourceOverride names the process-scoped local override store.
	SourceOverride = "override"
	// SourceEnvironment names the host process environment.
	SourceEnvironment = "environment"
)

// Source is a read-only key/value store consulted by the Resolver.
type Source interface {
	// Lookup returns the value stored for key and whether it was present.
	Lookup(key string) (string, bool)
	// Name identifies the source in logs and responses.
	Name() string
}

// LookupFunc looks up a single key, following os.LookupEnv semantics.
type LookupFunc func(key string) (string, bool)

// EnvSource reads values from the process environment.
type EnvSource struct {
	lookup LookupFunc
}

// NewEnvSource returns a Source backed by os.LookupEnv.
func NewEnvSource() *EnvSource {
	return &EnvSource{lookup: os.LookupEnv}
}

// NewEnvSourceFunc returns an environment Source backed by fn.
func NewEnvSourceFunc(fn LookupFunc) *EnvSource {
	return &EnvSource{lookup: fn}
}

func (e *EnvSource) Lookup(key string) (string, bool) {
	if e == nil || e.lookup == nil {
		return "", false
	}
	return e.lookup(key)
}

func (e *EnvSource) Name() string {
	return SourceEnvironment
}

// MapSource is a fixed map used as a Source.
type MapSource struct {
	name   string
	values map[string]string
}

// NewMapSource copies values into a named Source.
func NewMapSource(name string, values map[string]string) *MapSource {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &MapSource{name: name, values: copied}
}

func (m *MapSource) Lookup(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[key]
	return v, ok
}

func (m *MapSource) Name() string {
	return m.name
}
