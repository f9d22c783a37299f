package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix shared by every Quillpad environment variable.
const EnvPrefix = "QUILLPAD_"

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	mapping map[string]string // Env var -> config path
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "QUILLPAD_").
func NewEnvLoader(prefix string) *EnvLoader {
	return NewEnvLoaderWithMapping(defaultEnvMapping(prefix))
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(mapping map[string]string) *EnvLoader {
	return &EnvLoader{mapping: mapping}
}

func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "TAB_WIDTH":        "editor.tab_width",
		prefix + "SAVE_ENCODING":    "editor.save_encoding",
		prefix + "SCROLL_MARGIN":    "editor.scroll_margin",
		prefix + "LOG_LEVEL":        "logging.level",
		prefix + "LOG_FILE":         "logging.file",
		prefix + "SYSTEM_CLIPBOARD": "clipboard.system",
		prefix + "WATCH":            "watch.enabled",
	}
}

// Load reads the mapped environment variables and returns a configuration
// map. Empty values count as set. Unmapped variables are ignored.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for env, path := range l.mapping {
		if val, ok := os.LookupEnv(env); ok {
			setByPath(config, path, parseValue(val))
		}
	}

	return config, nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// parseValue converts booleans and integers; everything else stays a string.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}

	current[parts[len(parts)-1]] = value
}
