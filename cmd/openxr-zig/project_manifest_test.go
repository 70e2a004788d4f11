package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadProjectManifest(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "openxr.toml")
	data := `# test manifest
[package]
name = "demo-bindings"

[generate]
registry = "registry/xr.xml"
out = "src/openxr.zig"
tags = ["acme", " EXTX "]
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write openxr.toml: %v", err)
	}
	m, ok, err := loadProjectManifest(root)
	if err != nil {
		t.Fatalf("loadProjectManifest: %v", err)
	}
	if !ok {
		t.Fatalf("expected manifest to be found")
	}
	if m.Config.Package.Name != "demo-bindings" {
		t.Fatalf("Package.Name = %q, want demo-bindings", m.Config.Package.Name)
	}
	wantRegistry := filepath.Join(m.Root, "registry", "xr.xml")
	if got := m.registryPath(); got != wantRegistry {
		t.Fatalf("registryPath() = %q, want %q", got, wantRegistry)
	}
	wantOut := filepath.Join(m.Root, "src", "openxr.zig")
	if got := m.outPath(); got != wantOut {
		t.Fatalf("outPath() = %q, want %q", got, wantOut)
	}
	tags := m.extraTags()
	if len(tags) != 2 || tags[0] != "ACME" || tags[1] != "EXTX" {
		t.Fatalf("extraTags() = %v, want [ACME EXTX]", tags)
	}
}

func TestLoadProjectManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	data := `[package]
name = "demo"

[generate]
registry = "xr.xml"
`
	if err := os.WriteFile(filepath.Join(root, "openxr.toml"), []byte(data), 0o600); err != nil {
		t.Fatalf("write openxr.toml: %v", err)
	}
	m, ok, err := loadProjectManifest(nested)
	if err != nil {
		t.Fatalf("loadProjectManifest: %v", err)
	}
	if !ok {
		t.Fatalf("expected manifest above nested dir to be found")
	}
	if filepath.Base(m.Root) != filepath.Base(root) {
		t.Fatalf("manifest root = %q, want %q", m.Root, root)
	}
}

func TestLoadProjectConfigRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name string
		data string
		want string
	}{
		{
			name: "missing package",
			data: "[generate]\nregistry = \"xr.xml\"\n",
			want: "missing [package]",
		},
		{
			name: "missing package name",
			data: "[package]\n[generate]\nregistry = \"xr.xml\"\n",
			want: "missing [package].name",
		},
		{
			name: "missing generate",
			data: "[package]\nname = \"demo\"\n",
			want: "missing [generate]",
		},
		{
			name: "missing registry",
			data: "[package]\nname = \"demo\"\n[generate]\n",
			want: "missing [generate].registry",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "openxr.toml")
			if err := os.WriteFile(path, []byte(tc.data), 0o600); err != nil {
				t.Fatalf("write openxr.toml: %v", err)
			}
			_, err := loadProjectConfig(path)
			if err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err.Error(), tc.want)
			}
		})
	}
}
