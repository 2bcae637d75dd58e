package runner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sidconv/pkg/config"
	"github.com/yaklabco/sidconv/pkg/rewrite"
	_ "github.com/yaklabco/sidconv/pkg/rewrite/rules"
	"github.com/yaklabco/sidconv/pkg/runner"
)

// writeFiles creates files under dir from a map of relative path to content.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func newConverter(cfg *config.Config) *runner.Converter {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return runner.NewConverter(rewrite.NewEngine(rewrite.DefaultRegistry, cfg))
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}
