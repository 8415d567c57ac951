package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xlsd/internal/memfs"
	"xlsd/internal/model"
)

func names(entries []*model.DirEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func sample() *memfs.FS {
	return memfs.New().
		File("/d/b.txt", "", 0o644).
		Dir("/d/A").
		File("/d/a.txt", "", 0o644).
		Dir("/d/B").
		File("/d/.hidden", "", 0o644)
}

func TestSortStrategies(t *testing.T) {
	tests := []struct {
		method string
		want   []string
	}{
		{"directories-first", []string{"A", "B", "a.txt", "b.txt"}},
		{"directories_first", []string{"A", "B", "a.txt", "b.txt"}},
		{"Alphabetical", []string{"A", "a.txt", "B", "b.txt"}},
		{"as_is", []string{"b.txt", "A", "a.txt", "B"}},
		{"by-phase-of-moon", []string{"b.txt", "A", "a.txt", "B"}},
	}
	reg := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			c := &Collector{FS: sample(), Sort: reg.Lookup(tt.method, nil)}
			entries, err := c.List("/d", false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(entries))
		})
	}
}

func TestDirectoriesFirstTreatsBadLinksAsDirectories(t *testing.T) {
	mfs := memfs.New().
		File("/d/file", "", 0o644).
		Symlink("/d/loop", "loop").
		Symlink("/d/broken", "missing").
		Dir("/d/zdir")
	c := &Collector{FS: mfs, Sort: SortDirectoriesFirst}
	entries, err := c.List("/d", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"broken", "loop", "zdir", "file"}, names(entries))
}

func TestListHidden(t *testing.T) {
	c := &Collector{FS: sample(), Sort: SortAlphabetical}
	entries, err := c.List("/d", true)
	require.NoError(t, err)
	assert.Equal(t, []string{".hidden", "A", "a.txt", "B", "b.txt"}, names(entries))
}

func TestListPermissionDenied(t *testing.T) {
	c := &Collector{FS: sample().Deny("/d")}
	entries, err := c.List("/d", false)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListMissingDirectory(t *testing.T) {
	c := &Collector{FS: sample()}
	_, err := c.List("/nope", false)
	require.Error(t, err)
}

func TestRegisterCustom(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Reverse_Name", func(entries []*model.DirEntry) {
		SortAlphabetical(entries)
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	})
	assert.Contains(t, reg.Names(), "reverse-name")

	c := &Collector{FS: sample(), Sort: reg.Lookup("reverse-name", nil)}
	entries, err := c.List("/d", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.txt", "B", "a.txt", "A"}, names(entries))
}
