package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("UNIPACK_TEST_FORMAT", "zip")
	t.Setenv("UNIPACK_TEST_EMPTY", "")
	t.Setenv("UNIPACK_TEST_TEMPLATE", "Templates/Custom.txt")

	tests := []struct {
		name    string
		input   string
		want    string
		missing []string
	}{
		{
			name:  "plain",
			input: `format = "${UNIPACK_TEST_FORMAT}"`,
			want:  `format = "zip"`,
		},
		{
			name:    "unset",
			input:   `format = "${UNIPACK_TEST_NEVER_SET_FORMAT}"`,
			want:    `format = "${UNIPACK_TEST_NEVER_SET_FORMAT}"`,
			missing: []string{"UNIPACK_TEST_NEVER_SET_FORMAT"},
		},
		{
			name:  "empty uses default",
			input: `template = "${UNIPACK_TEST_EMPTY:-Templates/Version.txt}"`,
			want:  `template = "Templates/Version.txt"`,
		},
		{
			name:  "set overrides default",
			input: `template = "${UNIPACK_TEST_TEMPLATE:-Templates/Version.txt}"`,
			want:  `template = "Templates/Custom.txt"`,
		},
		{
			name:    "required and empty",
			input:   `root = "${UNIPACK_TEST_EMPTY:?set the Unity project path}"`,
			want:    `root = "${UNIPACK_TEST_EMPTY:?set the Unity project path}"`,
			missing: []string{"UNIPACK_TEST_EMPTY: set the Unity project path"},
		},
		{
			name:    "several in one document",
			input:   "format = \"${UNIPACK_TEST_FORMAT}\"\npath = \"${UNIPACK_TEST_NEVER_SET_DB}\"\nlevel = \"${UNIPACK_TEST_EMPTY:-debug}\"",
			want:    "format = \"zip\"\npath = \"${UNIPACK_TEST_NEVER_SET_DB}\"\nlevel = \"debug\"",
			missing: []string{"UNIPACK_TEST_NEVER_SET_DB"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, missing := substituteEnvVars(tt.input)
			if got != tt.want {
				t.Errorf("substituteEnvVars(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if !slices.Equal(missing, tt.missing) {
				t.Errorf("missing = %v, want %v", missing, tt.missing)
			}
		})
	}
}

func TestLoad_SubstitutesCodegenAndLegacy(t *testing.T) {
	t.Setenv("UNIPACK_TEST_LEGACY_FORMAT", "mpq")
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "unipack.toml")
	content := `
[legacy]
format = "${UNIPACK_TEST_LEGACY_FORMAT}"

[codegen]
template = "${UNIPACK_TEST_UNSET_TEMPLATE:-Templates/Version.txt}"
filename = "BuildInfo.cs"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Legacy.Format != "mpq" {
		t.Errorf("legacy.format = %q, want mpq", cfg.Legacy.Format)
	}
	if cfg.Codegen.Template != "Templates/Version.txt" {
		t.Errorf("codegen.template = %q, want Templates/Version.txt", cfg.Codegen.Template)
	}
	if cfg.Codegen.Filename != "BuildInfo.cs" {
		t.Errorf("codegen.filename = %q, want BuildInfo.cs", cfg.Codegen.Filename)
	}
}
