package loader

import (
	"strings"
	"testing"
)

func TestEnvLoader_Load(t *testing.T) {
	t.Setenv("QUILLPAD_TAB_WIDTH", "2")
	t.Setenv("QUILLPAD_LOG_LEVEL", "debug")
	t.Setenv("QUILLPAD_WATCH", "off")

	config, err := NewEnvLoader(EnvPrefix).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := getByPath(config, "editor.tab_width"); !ok || val != int64(2) {
		t.Errorf("editor.tab_width = %v (%T), want 2", val, val)
	}
	if val, ok := getByPath(config, "logging.level"); !ok || val != "debug" {
		t.Errorf("logging.level = %v, want 'debug'", val)
	}
	if val, ok := getByPath(config, "watch.enabled"); !ok || val != false {
		t.Errorf("watch.enabled = %v, want false", val)
	}
	if _, ok := getByPath(config, "clipboard.system"); ok {
		t.Error("unset variables should not appear in the map")
	}
}

func TestEnvLoader_UnmappedIgnored(t *testing.T) {
	t.Setenv("QUILLPAD_SOMETHING_ELSE", "x")

	config, err := NewEnvLoader(EnvPrefix).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, ok := config["something"]; ok {
		t.Error("unmapped variable should be ignored")
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	t.Setenv("MY_SETTING", "value")

	loader := NewEnvLoaderWithMapping(nil)
	loader.AddMapping("MY_SETTING", "custom.path")

	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if val, ok := getByPath(config, "custom.path"); !ok || val != "value" {
		t.Errorf("custom.path = %v, want 'value'", val)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"", ""},
		{"true", true},
		{"YES", true},
		{"on", true},
		{"false", false},
		{"No", false},
		{"off", false},
		{"1", int64(1)},
		{"0", int64(0)},
		{"-3", int64(-3)},
		{"latin1", "latin1"},
		{"/tmp/q.log", "/tmp/q.log"},
	}

	for _, tt := range tests {
		if got := parseValue(tt.input); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.input, got, got, tt.want, tt.want)
		}
	}
}

// getByPath retrieves a value from a nested map using a dot-separated path.
func getByPath(data map[string]any, path string) (any, bool) {
	current := any(data)

	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		val, exists := m[part]
		if !exists {
			return nil, false
		}
		current = val
	}

	return current, true
}
