package behavior

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed defs/*.yaml
var DefsFS embed.FS

// Load reads a behavior definition file, preferring an on-disk copy under
// behavior/defs so tuning can be edited without rebuilding.
func Load(name string) ([]byte, error) {
	clean := cleanDefPath(name)
	if data, err := os.ReadFile(diskDefPath(clean)); err == nil {
		return data, nil
	}
	return DefsFS.ReadFile(clean)
}

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// LoadScript reads an ability script, preferring an on-disk copy.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(filepath.Join("behavior", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

func cleanDefPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "behavior/"); ok {
		s = after
	}
	if !strings.HasPrefix(s, "defs/") {
		s = fmt.Sprintf("defs/%s", s)
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "behavior/"); ok {
		s = after
	}
	if !strings.HasPrefix(s, "scripts/") {
		s = fmt.Sprintf("scripts/%s", s)
	}
	return s
}

func diskDefPath(clean string) string {
	return filepath.Join("behavior", filepath.FromSlash(clean))
}
