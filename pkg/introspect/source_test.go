package introspect

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestLoader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlCatalog), 0o644))

	doc, err := NewLoader(nil).Load(context.Background(), SourceFromFile(path))
	require.NoError(t, err)
	require.Equal(t, SourceKindFile, doc.Source().Kind())
	require.Equal(t, path, doc.Location())

	catalog, err := LoadClasses(context.Background(), doc)
	require.NoError(t, err)
	require.Equal(t, []string{`Shop\Line`, `Shop\Order`}, catalog.Classes())
}

func TestLoader_FS(t *testing.T) {
	fsys := fstest.MapFS{"api/pets.json": {Data: []byte(petstore)}}

	doc, err := NewLoader(fsys).Load(context.Background(), SourceFromFS("api/pets.json"))
	require.NoError(t, err)
	require.True(t, IsOpenAPI(doc.Raw()))

	catalog, err := LoadClasses(context.Background(), doc)
	require.NoError(t, err)
	require.Equal(t, []string{"Owner", "Pet", "Toy"}, catalog.Classes())
}

func TestLoader_Errors(t *testing.T) {
	loader := NewLoader(nil)

	_, err := loader.Load(context.Background(), nil)
	require.Error(t, err)

	_, err = loader.Load(context.Background(), SourceFromFS("x.yaml"))
	require.ErrorContains(t, err, "fs is nil")

	_, err = loader.Load(context.Background(), SourceFromFile(filepath.Join(t.TempDir(), "missing.yaml")))
	require.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = loader.Load(context.Background(), SourceFromFile(empty))
	require.ErrorContains(t, err, "is empty")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = loader.Load(ctx, SourceFromFile(empty))
	require.ErrorIs(t, err, context.Canceled)
}

func TestIsOpenAPI(t *testing.T) {
	require.True(t, IsOpenAPI([]byte("openapi: 3.0.0\n")))
	require.False(t, IsOpenAPI([]byte(yamlCatalog)))
	require.False(t, IsOpenAPI([]byte("::not yaml")))
}
