package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeOrg builds a module tree under a temp org dir. Each entry maps a
// module name to the files it contains.
func writeOrg(t *testing.T, modules map[string][]string) string {
	t.Helper()
	org := t.TempDir()
	for name, files := range modules {
		dir := filepath.Join(org, name)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		for _, f := range files {
			path := filepath.Join(dir, f)
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
			require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		}
	}
	return org
}

func TestClassificationFirstMatchWins(t *testing.T) {
	org := writeOrg(t, map[string][]string{
		"both":    {"app.yaml", "module.yaml"},
		"apponly": {"app.yaml"},
		"modonly": {"module.yaml"},
		"libonly": {"library.yaml"},
	})
	r := New(Options{})
	require.NoError(t, r.Scan(org))

	kinds := map[string]Kind{}
	for _, m := range r.Visible() {
		kinds[m.Name] = m.Kind
	}
	assert.Equal(t, KindAppModule, kinds["both"], "the more specific rule is ordered first")
	assert.Equal(t, KindApp, kinds["apponly"])
	assert.Equal(t, KindModule, kinds["modonly"])
	assert.Equal(t, KindLibrary, kinds["libonly"])
}

func TestClassificationSourceFallback(t *testing.T) {
	org := writeOrg(t, map[string][]string{
		"scripts": {"run.sh"},
		"empty":   {"README.md"},
	})
	r := New(Options{})
	require.NoError(t, r.Scan(org))

	m, ok := r.Lookup("scripts")
	require.True(t, ok)
	assert.Equal(t, KindScripts, m.Kind)

	m, ok = r.Lookup("empty")
	require.True(t, ok)
	assert.Equal(t, KindUnknown, m.Kind)
}

func TestReservedNamesSkipped(t *testing.T) {
	org := writeOrg(t, map[string][]string{
		".hidden":   {"module.yaml"},
		"_internal": {"module.yaml"},
		"excluded":  {"module.yaml"},
		"kept":      {"module.yaml"},
	})
	r := New(Options{Skip: []string{"excluded"}})
	require.NoError(t, r.Scan(org))
	assert.Equal(t, []string{"kept"}, r.VisibleNames())
}

func TestRuleOverride(t *testing.T) {
	org := writeOrg(t, map[string][]string{
		"svc": {"service.toml"},
	})
	r := New(Options{Rules: []Rule{{Requires: []string{"service.toml"}, Kind: KindApp}}})
	require.NoError(t, r.Scan(org))
	m, ok := r.Lookup("svc")
	require.True(t, ok)
	assert.Equal(t, KindApp, m.Kind)
}

func TestApplyFilter(t *testing.T) {
	org := writeOrg(t, map[string][]string{
		"a-app":  {"app.yaml"},
		"b-mod":  {"module.yaml"},
		"c-both": {"app.yaml", "module.yaml"},
		"d-lib":  {"library.yaml"},
	})
	r := New(Options{})
	require.NoError(t, r.Scan(org))

	r.ApplyFilter("app")
	assert.ElementsMatch(t, []string{"a-app", "c-both"}, r.VisibleNames())

	r.ApplyFilter("module")
	assert.ElementsMatch(t, []string{"b-mod", "c-both"}, r.VisibleNames())

	r.ApplyFilter("library")
	assert.Equal(t, []string{"d-lib"}, r.VisibleNames())

	r.ApplyFilter("all")
	assert.Len(t, r.VisibleNames(), 4)
}

func TestScanUnreadableDirDegrades(t *testing.T) {
	r := New(Options{})
	err := r.Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
	assert.Empty(t, r.VisibleNames())
}

func TestDeclaredCommandsTakePrecedence(t *testing.T) {
	org := writeOrg(t, map[string][]string{
		"svc": {"module.yaml", "commands.yaml"},
	})
	require.NoError(t, os.WriteFile(
		filepath.Join(org, "svc", "commands.yaml"),
		[]byte("- from-file\n"), 0o644))

	r := New(Options{Declared: map[string][]string{"svc": {"from-config"}}})
	require.NoError(t, r.Scan(org))
	m, _ := r.Lookup("svc")
	assert.Equal(t, []string{"from-config"}, r.Commands(m))
}

func TestCommandsLoadedFromModuleFile(t *testing.T) {
	org := writeOrg(t, map[string][]string{
		"svc": {"module.yaml"},
	})
	require.NoError(t, os.WriteFile(
		filepath.Join(org, "svc", "commands.yaml"),
		[]byte("- deploy\n- status\n"), 0o644))

	r := New(Options{})
	require.NoError(t, r.Scan(org))
	m, _ := r.Lookup("svc")
	assert.Equal(t, []string{"deploy", "status"}, r.Commands(m))

	// Loaded once, then cached on the descriptor.
	require.NoError(t, os.Remove(filepath.Join(org, "svc", "commands.yaml")))
	assert.Equal(t, []string{"deploy", "status"}, r.Commands(m))
}

func TestCommandsMissingFileYieldsEmptyList(t *testing.T) {
	org := writeOrg(t, map[string][]string{
		"bare": {"module.yaml"},
	})
	r := New(Options{})
	require.NoError(t, r.Scan(org))
	m, _ := r.Lookup("bare")
	assert.NotNil(t, r.Commands(m))
	assert.Empty(t, r.Commands(m))
}

func TestVisibleNamesSorted(t *testing.T) {
	org := writeOrg(t, map[string][]string{
		"zeta":  {"module.yaml"},
		"alpha": {"module.yaml"},
	})
	r := New(Options{})
	require.NoError(t, r.Scan(org))
	assert.Equal(t, []string{"alpha", "zeta"}, r.VisibleNames())
}
