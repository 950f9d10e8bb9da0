package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `outputDir: %q
siteMetadata:
  title: Test Site
  author: Someone
  siteUrl: https://example.com
  menuLinks:
    - name: About
      link: /
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBuildCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "public")
	cfg := writeConfig(t, fmt.Sprintf(testConfig, out))

	stdout, err := execute(t, "--config", cfg, "--log-level", "error", "build")
	require.NoError(t, err)
	assert.Contains(t, stdout, "built 3 pages")

	assert.FileExists(t, filepath.Join(out, "index.html"))
	assert.FileExists(t, filepath.Join(out, "projects", "index.html"))
	assert.FileExists(t, filepath.Join(out, "404.html"))
	assert.FileExists(t, filepath.Join(out, "sitemap.xml"))
	assert.FileExists(t, filepath.Join(out, "robots.txt"))
}

func TestBuildCommandOutputFlag(t *testing.T) {
	out := filepath.Join(t.TempDir(), "elsewhere")
	cfg := writeConfig(t, "outputDir: unused\n")

	_, err := execute(t, "--config", cfg, "--log-level", "error", "build", "--output", out)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "index.html"))
	assert.NoFileExists(t, filepath.Join(out, "sitemap.xml"))
}

func TestMissingConfigFile(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "build")
	assert.Error(t, err)
}

func TestBuildCommandRejectsArgs(t *testing.T) {
	cfg := writeConfig(t, "outputDir: "+t.TempDir()+"\n")
	_, err := execute(t, "--config", cfg, "build", "extra")
	assert.Error(t, err)
}
