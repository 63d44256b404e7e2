package path

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exampleData struct {
	Name   string   `yaml:"name"`
	URL    string   `yaml:"url" validate:"required,url"`
	Age    int      `yaml:"age" validate:"required,gte=28"`
	Skills []string `yaml:"skills"`
}

func TestReadYaml(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		path     string
		expected *exampleData
		wantErr  bool
	}{
		{
			name:    "valid yaml is read and validated",
			content: "name: jane\nurl: https://example.com\nage: 30\nskills: [go, python]\n",
			path:    "data.yml",
			expected: &exampleData{
				Name:   "jane",
				URL:    "https://example.com",
				Age:    30,
				Skills: []string{"go", "python"},
			},
		},
		{
			name:    "validation errors are returned",
			content: "name: jane\nurl: not a url\nage: 12\n",
			path:    "data.yml",
			wantErr: true,
		},
		{
			name:    "broken yaml is returned as an error",
			content: "name: [jane\n",
			path:    "data.yml",
			wantErr: true,
		},
		{
			name:    "missing file is an error",
			path:    "does-not-exist.yml",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			if tt.content != "" {
				require.NoError(t, afero.WriteFile(fs, "data.yml", []byte(tt.content), 0o644))
			}

			out := &exampleData{}
			err := ReadYaml(fs, tt.path, out)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestWriteYaml(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	in := &exampleData{Name: "jane", URL: "https://example.com", Age: 30, Skills: []string{"go"}}
	require.NoError(t, WriteYaml(fs, "out.yml", in))

	buf, err := afero.ReadFile(fs, "out.yml")
	require.NoError(t, err)
	assert.Equal(t, "name: jane\nurl: https://example.com\nage: 30\nskills:\n  - go\n", string(buf))

	out := &exampleData{}
	require.NoError(t, ReadYaml(fs, "out.yml", out))
	assert.Equal(t, in, out)

	err = WriteYaml(fs, "invalid.yml", &exampleData{Name: "joe", URL: "nope", Age: 30})
	require.Error(t, err)
	exists, err := afero.Exists(fs, "invalid.yml")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, fs.MkdirAll("docs", 0o755))
	assert.True(t, DirExists(fs, "docs"))
	assert.False(t, DirExists(fs, "missing"))
}
