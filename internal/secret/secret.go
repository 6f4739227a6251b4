package secret

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrNotFound = errors.New("secret not found")

// Env reads named secrets from the process environment, as mounted by the
// platform's secret manager. Values are trimmed.
type Env struct {
	prefix string
	lookup func(string) (string, bool)
}

func NewEnv(prefix string) *Env {
	return &Env{prefix: prefix, lookup: os.LookupEnv}
}

// NewStatic serves secrets from a map. Used by tests and local runs.
func NewStatic(values map[string]string) *Env {
	return &Env{lookup: func(name string) (string, bool) {
		v, ok := values[name]
		return v, ok
	}}
}

func (e *Env) Get(_ context.Context, name string) (string, error) {
	value, ok := e.lookup(e.prefix + name)
	value = strings.TrimSpace(value)

	if !ok || value == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return value, nil
}
