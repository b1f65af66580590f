package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var PrefabsFS embed.FS

// Dir is the on-disk directory whose files take precedence over the
// embedded copies. Empty disables disk overrides.
var Dir = "prefabs"

// Load returns a prefab file, preferring the disk copy so edits can be
// hot reloaded without rebuilding.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if Dir != "" {
		if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
			return data, nil
		}
	}
	return PrefabsFS.ReadFile(clean)
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func diskPrefabPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
