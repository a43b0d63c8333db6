package cas_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/keel/internal/adapters/cas"
	"go.trai.ch/keel/internal/core/domain"
)

const appGradle = "android/app/build.gradle"

func record(variant domain.BuildVariant, format, fingerprint string) domain.DescriptorRecord {
	return domain.DescriptorRecord{
		Variant:     variant,
		Format:      format,
		OutputPath:  appGradle,
		Fingerprint: fingerprint,
		Descriptor: &domain.BuildDescriptor{
			Variant:        variant,
			SDKRoot:        "/opt/flutter",
			ApplicationID:  "com.example.app",
			PackagingFlags: domain.PackagingFlags{},
			Plugins:        []string{"com.android.application"},
			Dependencies:   []domain.Dependency{domain.RuntimeDependency("1.9.22")},
		},
		Timestamp: time.Now().Truncate(time.Second), // JSON round trip drops the monotonic clock
	}
}

func TestStore_PutGet(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store, err := cas.NewStore()
	require.NoError(t, err)

	debug := record(domain.VariantDebug, "gradle", "aaaa")
	release := record(domain.VariantRelease, "gradle", "bbbb")

	t.Run("put and get", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, store.Put(root, debug))
		require.NoError(t, store.Put(root, release))

		got, err := store.Get(root, domain.VariantDebug, "gradle", appGradle)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, debug.Fingerprint, got.Fingerprint)
		assert.Equal(t, debug.Descriptor, got.Descriptor)
		assert.True(t, debug.Timestamp.Equal(got.Timestamp))

		got, err = store.Get(root, domain.VariantRelease, "gradle", appGradle)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "bbbb", got.Fingerprint)
	})

	t.Run("get missing", func(t *testing.T) {
		t.Parallel()
		got, err := store.Get(root, domain.VariantDebug, "json", appGradle)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestStore_Overwrite(t *testing.T) {
	root := t.TempDir()
	store, err := cas.NewStore()
	require.NoError(t, err)

	require.NoError(t, store.Put(root, record(domain.VariantDebug, "gradle", "old")))
	require.NoError(t, store.Put(root, record(domain.VariantDebug, "gradle", "new")))

	got, err := store.Get(root, domain.VariantDebug, "gradle", appGradle)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Fingerprint)

	entries, err := os.ReadDir(filepath.Join(root, domain.DefaultStorePath()))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_KeyedByOutputPath(t *testing.T) {
	root := t.TempDir()
	store, err := cas.NewStore()
	require.NoError(t, err)

	first := record(domain.VariantDebug, "gradle", "aaaa")
	first.OutputPath = "out/one.gradle"
	second := record(domain.VariantDebug, "gradle", "bbbb")
	second.OutputPath = "out/two.gradle"

	require.NoError(t, store.Put(root, first))
	require.NoError(t, store.Put(root, second))

	got, err := store.Get(root, domain.VariantDebug, "gradle", "out/one.gradle")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "aaaa", got.Fingerprint)

	got, err = store.Get(root, domain.VariantDebug, "gradle", "./out/two.gradle")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "bbbb", got.Fingerprint)

	got, err = store.Get(root, domain.VariantDebug, "gradle", appGradle)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_GetCorrupt(t *testing.T) {
	root := t.TempDir()
	store, err := cas.NewStore()
	require.NoError(t, err)
	require.NoError(t, store.Put(root, record(domain.VariantDebug, "gradle", "x")))

	dir := filepath.Join(root, domain.DefaultStorePath())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	err = os.WriteFile(filepath.Join(dir, entries[0].Name()), []byte("{ invalid json"), domain.PrivateFilePerm)
	require.NoError(t, err)

	_, err = store.Get(root, domain.VariantDebug, "gradle", appGradle)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrStoreUnmarshalFailed.Error())
}

func TestStore_Clean(t *testing.T) {
	root := t.TempDir()
	store, err := cas.NewStore()
	require.NoError(t, err)

	require.NoError(t, store.Clean(root), "cleaning an empty root is a no-op")

	require.NoError(t, store.Put(root, record(domain.VariantDebug, "gradle", "x")))
	require.NoError(t, store.Clean(root))

	_, err = os.Stat(filepath.Join(root, domain.DefaultStorePath()))
	assert.True(t, os.IsNotExist(err))

	got, err := store.Get(root, domain.VariantDebug, "gradle", appGradle)
	require.NoError(t, err)
	assert.Nil(t, got)
}
