package store

import (
	"os"
	"path/filepath"
	"testing"

	"casha/finance-advisor/internal/logging"
	"casha/finance-advisor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	err := os.WriteFile(path, []byte(content), 0600)
	require.NoError(t, err)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "test.yaml")
	writeFile(t, testFile, "test content")

	store := NewCategoryStore("", nil)

	file, err := store.FindConfigFile(testFile)
	assert.NoError(t, err)
	assert.Equal(t, testFile, file)

	_, err = store.FindConfigFile(filepath.Join(dir, "nonexistent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindConfigFile_RelativeLocations(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	require.NoError(t, os.MkdirAll("config", 0750))
	writeFile(t, filepath.Join("config", "rules.yaml"), "[]")

	file, err := NewCategoryStore("", nil).FindConfigFile("rules.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("config", "rules.yaml"), file)
}

func TestLoadCategories(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []models.CategoryConfig
		wantErr bool
	}{
		{
			name: "top-level key",
			content: `categories:
  - name: Food & Dining
    keywords: ["grocery", "bakery"]
  - name: Transportation
    keywords: ["gas"]
`,
			want: []models.CategoryConfig{
				{Name: "Food & Dining", Keywords: []string{"grocery", "bakery"}},
				{Name: "Transportation", Keywords: []string{"gas"}},
			},
		},
		{
			name: "bare list",
			content: `- name: Rent
  keywords: [landlord]
`,
			want: []models.CategoryConfig{{Name: "Rent", Keywords: []string{"landlord"}}},
		},
		{
			name:    "malformed",
			content: "categories: [unterminated",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "categories.yaml")
			writeFile(t, file, tt.content)

			got, err := NewCategoryStore(file, nil).LoadCategories()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadCategories_Missing(t *testing.T) {
	logger := logging.NewMockLogger()
	store := NewCategoryStore(filepath.Join(t.TempDir(), "missing.yaml"), logger)

	got, err := store.LoadCategories()
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.True(t, logger.HasEntry("DEBUG", "Categories file not found"))
}

func TestSaveCategories_RoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "categories.yaml")
	store := NewCategoryStore(file, nil)

	rules := []models.CategoryConfig{{Name: "Entertainment", Keywords: []string{"netflix", "cinema"}}}
	require.NoError(t, store.SaveCategories(rules))

	got, err := store.LoadCategories()
	require.NoError(t, err)
	assert.Equal(t, rules, got)

	assert.Error(t, store.SaveCategories(nil))
}

func TestMockCategoryStore(t *testing.T) {
	m := &MockCategoryStore{Categories: []models.CategoryConfig{{Name: "X"}}}
	got, err := m.LoadCategories()
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, m.Loads)

	m.LoadCategoriesError = os.ErrPermission
	_, err = m.LoadCategories()
	assert.ErrorIs(t, err, os.ErrPermission)
}
