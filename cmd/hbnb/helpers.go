package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mesh-intelligence/hbnb/internal/config"
	"github.com/mesh-intelligence/hbnb/internal/storage"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// validKindsStr lists the kind names for error output.
var validKindsStr = func() string {
	names := make([]string, len(types.Kinds))
	for i, k := range types.Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}()

// loadStorageConfig parses the storage settings from the environment, with
// config.yaml values as fallback, and applies the resolved data directory.
func loadStorageConfig() (types.Config, error) {
	var cfg types.Config
	if err := config.ParseEnvWithFallback(&cfg, settings.fallback); err != nil {
		return cfg, err
	}
	dataDir, err := resolveDataDir()
	if err != nil {
		return cfg, fmt.Errorf("resolve data dir: %w", err)
	}
	logger.Debugf("data directory %s", dataDir)
	cfg.DataDir = dataDir.Path
	return cfg, nil
}

// openEngine loads the storage config and opens the engine it names. The
// caller must defer engine.Close().
func openEngine() (types.Engine, types.Config, error) {
	cfg, err := loadStorageConfig()
	if err != nil {
		return nil, cfg, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, cfg, fmt.Errorf("create data dir: %w", err)
	}
	engine, err := storage.Open(cfg)
	if err != nil {
		return nil, cfg, err
	}
	return engine, cfg, nil
}

// openEngineFor is openEngine for command name: configuration mistakes are
// user errors, anything else a system error.
func openEngineFor(name string) (types.Engine, types.Config, error) {
	engine, cfg, err := openEngine()
	if err != nil {
		code := exitSysError
		if isConfigError(err) {
			code = exitUserError
		}
		return nil, cfg, failure(code, name, err)
	}
	return engine, cfg, nil
}

func isConfigError(err error) bool {
	for _, target := range []error{
		types.ErrStorageEmpty,
		types.ErrStorageUnknown,
		types.ErrDriverUnknown,
		types.ErrDatabaseName,
		types.ErrResetNotAllowed,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// cmdError is a command failure carrying the process exit code. main prints
// it as "name: err" once every deferred cleanup has run.
type cmdError struct {
	code int
	name string
	err  error
}

func (e *cmdError) Error() string {
	return fmt.Sprintf("%s: %v", e.name, e.err)
}

func (e *cmdError) Unwrap() error {
	return e.err
}

// failure wraps err for command name with an exit code.
func failure(code int, name string, err error) error {
	return &cmdError{code: code, name: name, err: err}
}

// exitCode returns the code err should exit with.
func exitCode(err error) int {
	var ce *cmdError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}

// parseKind resolves a kind argument; an unknown kind is a user error.
func parseKind(name, arg string) (types.Kind, error) {
	kind, err := types.ParseKind(arg)
	if err != nil {
		return "", failure(exitUserError, name, fmt.Errorf("unknown kind %q (valid: %s)", arg, validKindsStr))
	}
	return kind, nil
}

// getEntity loads an entity; a missing one is a user error.
func getEntity(name string, engine types.Engine, kind types.Kind, id string) (types.Entity, error) {
	e, err := storage.Get(engine, kind, id)
	if errors.Is(err, types.ErrNotFound) {
		return nil, failure(exitUserError, name, fmt.Errorf("%s %q not found", kind, id))
	}
	if err != nil {
		return nil, failure(exitSysError, name, err)
	}
	return e, nil
}

// parseAssignments turns key=value arguments into a field mapping. Values
// that parse as JSON keep their JSON type; anything else is a string.
func parseAssignments(args []string) (map[string]any, error) {
	fields := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q (expected key=value)", arg)
		}
		var parsed any
		if err := json.Unmarshal([]byte(value), &parsed); err != nil {
			parsed = value
		}
		fields[key] = parsed
	}
	return fields, nil
}

// hashPasswordField replaces a "password" value in fields with its bcrypt
// hash when kind is User.
func hashPasswordField(kind types.Kind, fields map[string]any) error {
	raw, present := fields["password"]
	if kind != types.KindUser || !present {
		return nil
	}
	hash, err := types.HashPassword(fmt.Sprint(raw))
	if err != nil {
		return err
	}
	fields["password"] = hash
	return nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// formatEntity renders e on one line as "[Kind] (id) key=value ...".
func formatEntity(e types.Entity) string {
	m := e.ToMap(false)
	delete(m, types.ClassField)
	delete(m, "id")
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] (%s)", e.Kind(), e.Base().ID)
	for _, k := range keys {
		v, _ := json.Marshal(m[k])
		fmt.Fprintf(&b, " %s=%s", k, v)
	}
	return b.String()
}
