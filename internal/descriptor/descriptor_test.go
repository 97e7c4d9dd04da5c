package descriptor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	d := New("com.example.tools")

	assert.NotEmpty(t, d.ID)
	assert.Equal(t, "com.example.tools", d.PackageName)
	assert.Equal(t, DefaultVersion, d.Version)
	assert.Equal(t, DefaultUnityVersion, d.UnityVersion)
	assert.NotEqual(t, d.ID, New("com.example.tools").ID, "ids are unique")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *Descriptor)
		missing string
	}{
		{"package name", func(d *Descriptor) { d.PackageName = "" }, "package_name"},
		{"display name", func(d *Descriptor) { d.DisplayName = " " }, "display_name"},
		{"version", func(d *Descriptor) { d.Version = "" }, "version"},
		{"unity version", func(d *Descriptor) { d.UnityVersion = "" }, "unity_version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New("com.example.tools")
			d.DisplayName = "Example Tools"
			require.NoError(t, d.Validate())

			tt.mutate(d)
			err := d.Validate()
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Assets", "Tools", "tools.upkg.toml")

	d := New("com.example.tools")
	d.DisplayName = "Example Tools"
	d.Keywords = []string{"editor", "tools"}
	d.Author = &Author{Name: "Jane Dev", Email: "jane@example.com"}
	d.Dependencies = []Dependency{{Name: "com.unity.textmeshpro", Version: "1.3.0"}, {Name: "", Version: "1.0.0"}}
	d.SourcePaths = []string{"Assets/Tools/Runtime", "Assets/Tools/README.md"}
	d.IgnorePaths = []string{"Assets/Tools/Runtime/Tests"}
	d.DestinationPath = "../tools-package"

	require.NoError(t, d.Save(path))
	assert.Equal(t, path, d.Path())
	assert.Equal(t, filepath.Dir(path), d.Dir())

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, d.ID, loaded.ID)
	assert.Equal(t, d.Keywords, loaded.Keywords)
	assert.Equal(t, d.Dependencies, loaded.Dependencies, "empty entries survive until serialization")
	require.NotNil(t, loaded.Author)
	assert.Equal(t, "Jane Dev", loaded.Author.Name)
	assert.Equal(t, d.SourcePaths, loaded.SourcePaths)
	assert.Equal(t, "../tools-package", loaded.DestinationPath)
	assert.Empty(t, loaded.LegacyDestinationPath)
}

func TestSave_RefusesIDChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.upkg.toml")

	d := New("com.example.tools")
	require.NoError(t, d.Save(path))

	other := New("com.example.tools")
	err := other.Save(path)
	assert.ErrorIs(t, err, ErrIDChanged)

	// Same ID may be rewritten.
	d.Version = "1.1.0"
	require.NoError(t, d.Save(path))
}

func TestSave_RequiresID(t *testing.T) {
	d := &Descriptor{PackageName: "com.example.tools"}
	err := d.Save(filepath.Join(t.TempDir(), "tools.upkg.toml"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.upkg.toml")
	require.NoError(t, os.WriteFile(path, []byte("id = ["), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestHasAuthor(t *testing.T) {
	d := New("com.example.tools")
	assert.False(t, d.HasAuthor())
	d.Author = &Author{Email: "only@example.com"}
	assert.False(t, d.HasAuthor())
	d.Author.Name = "Jane"
	assert.True(t, d.HasAuthor())
}
