package index_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurgelenas/xbps/pkg/index"
	"github.com/jurgelenas/xbps/pkg/model"
)

func TestParseIndex(t *testing.T) {
	data := []byte(`{
		"format_version": "1",
		"packages": [
			{"name": "zlib", "version": "1.3.1", "installed_size": 350},
			{"name": "zlib", "version": "1.2.0"},
			{"name": "libpng", "version": "1.6.40", "architecture": "amd64"}
		]
	}`)
	idx, err := index.ParseIndex(data)
	require.NoError(t, err)
	assert.Equal(t, "1", idx.FormatVersion)
	assert.Len(t, idx.Packages, 3)
	assert.Len(t, idx.FindPackages("zlib"), 2)
}

func TestParseIndex_MissingFormatVersion(t *testing.T) {
	_, err := index.ParseIndex([]byte(`{"packages": []}`))
	assert.Error(t, err)
}

func TestParseIndex_InvalidJSON(t *testing.T) {
	_, err := index.ParseIndex([]byte(`{nope`))
	assert.Error(t, err)
}

func TestFindProvider(t *testing.T) {
	idx := index.NewIndex("1")
	idx.AddPackage(&model.PackageDescriptor{Name: "zlib", Version: "1.2.0"})
	idx.AddPackage(&model.PackageDescriptor{Name: "zlib", Version: "1.3.1"})
	idx.AddPackage(&model.PackageDescriptor{Name: "zlib", Version: "2.0.0", Architecture: "arm64"})

	// Highest satisfying version for the target architecture wins.
	pkg := idx.FindProvider(model.Dependency{Name: "zlib"}, "amd64")
	require.NotNil(t, pkg)
	assert.Equal(t, "1.3.1", pkg.Version)

	pkg = idx.FindProvider(model.Dependency{Name: "zlib", VersionConstraint: "< 1.3.0"}, "amd64")
	require.NotNil(t, pkg)
	assert.Equal(t, "1.2.0", pkg.Version)

	assert.Nil(t, idx.FindProvider(model.Dependency{Name: "zlib", VersionConstraint: ">= 3.0.0"}, "amd64"))
	assert.Nil(t, idx.FindProvider(model.Dependency{Name: "libpng"}, "amd64"))
}

func TestAddPackage_ReplacesSameVersion(t *testing.T) {
	idx := index.NewIndex("1")
	idx.AddPackage(&model.PackageDescriptor{Name: "zlib", Version: "1.3.1", InstalledSize: 100})
	idx.AddPackage(&model.PackageDescriptor{Name: "zlib", Version: "1.3.1", InstalledSize: 200})

	pkgs := idx.FindPackages("zlib")
	require.Len(t, pkgs, 1)
	assert.Equal(t, uint64(200), pkgs[0].InstalledSize)
}

func TestIndexRoundTrip(t *testing.T) {
	idx := index.NewIndex("1")
	idx.AddPackage(&model.PackageDescriptor{Name: "zlib", Version: "1.3.1"})

	data, err := idx.ToJSON()
	require.NoError(t, err)

	parsed, err := index.ParseIndex(data)
	require.NoError(t, err)
	assert.Equal(t, idx.FormatVersion, parsed.FormatVersion)
	require.Len(t, parsed.Packages, 1)
	assert.Equal(t, "zlib@1.3.1", parsed.Packages[0].ID())
}

func TestFilesIndex(t *testing.T) {
	data := []byte(`{
		"format_version": "1",
		"files": {
			"zlib@1.3.1": ["/usr/lib/libz.so.1", "/usr/share/licenses/zlib"]
		}
	}`)
	fidx, err := index.ParseFilesIndex(data)
	require.NoError(t, err)
	assert.Len(t, fidx.PackageFiles("zlib@1.3.1"), 2)
	assert.Nil(t, fidx.PackageFiles("libpng@1.6.40"))
}

func TestFilesIndex_NilReceiver(t *testing.T) {
	var fidx *index.FilesIndex
	assert.Nil(t, fidx.PackageFiles("zlib@1.3.1"))
}
