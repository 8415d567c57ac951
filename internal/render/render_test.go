package render

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xlsd/internal/icons"
	"xlsd/internal/listing"
	"xlsd/internal/memfs"
	"xlsd/internal/model"
	"xlsd/internal/style"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func plainFormatter() *Formatter {
	return &Formatter{Styler: style.NewStyler(termenv.Ascii), Palette: style.DefaultPalette()}
}

func sample() *memfs.FS {
	return memfs.New().
		File("/d/b.txt", "", 0o644).
		Dir("/d/A").
		File("/d/a.txt", "hello", 0o644).
		Dir("/d/B").
		File("/d/.hidden", "", 0o644)
}

func newRenderer(fsys model.FileSystem, opts Options) *Renderer {
	opts.FS = fsys
	if opts.Sort == nil {
		opts.Sort = listing.SortDirectoriesFirst
	}
	if opts.Formatter == nil {
		opts.Formatter = plainFormatter()
	}
	return New(opts)
}

func render(t *testing.T, r *Renderer, req Request) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := r.Render(&buf, req)
	return buf.String(), err
}

func TestGrid(t *testing.T) {
	out, err := render(t, newRenderer(sample(), Options{}), Request{Paths: []string{"/d"}})
	require.NoError(t, err)
	assert.Equal(t, "A/  B/  a.txt  b.txt\n", out)
}

func TestGridNarrow(t *testing.T) {
	out, err := render(t, newRenderer(sample(), Options{Width: 16}), Request{Paths: []string{"/d"}, ShowHidden: true})
	require.NoError(t, err)
	assert.Equal(t, "A/       B/\n.hidden  a.txt\nb.txt\n", out)
}

func TestGridWithIcons(t *testing.T) {
	f := plainFormatter()
	f.Icons = icons.DefaultRegistry(nil, nil).Chain([]string{"extension"}, icons.NewGlyphSet(icons.DefaultGlyphs()), nil)
	out, err := render(t, newRenderer(sample(), Options{Formatter: f}), Request{Paths: []string{"/d"}})
	require.NoError(t, err)
	assert.Equal(t, "📁 A/  📁 B/  📄 a.txt  📄 b.txt\n", out)
}

func TestGridMeasuresBracesInNames(t *testing.T) {
	mfs := memfs.New().File("/m/{RED}abc", "", 0o644).File("/m/b", "", 0o644)

	out, err := render(t, newRenderer(mfs, Options{Width: 10}), Request{Paths: []string{"/m"}})
	require.NoError(t, err)
	assert.Equal(t, "b\n{RED}abc\n", out)

	out, err = render(t, newRenderer(mfs, Options{Width: 20}), Request{Paths: []string{"/m"}})
	require.NoError(t, err)
	assert.Equal(t, "b  {RED}abc\n", out)

	out, err = render(t, newRenderer(mfs, Options{}), Request{Paths: []string{"/m"}, Mode: ModeTree})
	require.NoError(t, err)
	assert.Equal(t, "/m:\n├── b\n└── {RED}abc\n", out)
}

func TestDeniedDirectoryRendersPlaceholder(t *testing.T) {
	out, err := render(t, newRenderer(sample().Deny("/d"), Options{}), Request{Paths: []string{"/d"}})
	require.NoError(t, err)
	assert.Equal(t, model.NoFiles+"\n", out)
}

func TestPlaceholderIsPlainUnderColor(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI)
	t.Cleanup(func() { lipgloss.SetColorProfile(termenv.Ascii) })

	out, err := render(t, newRenderer(memfs.New().Dir("/empty"), Options{}), Request{Paths: []string{"/empty"}})
	require.NoError(t, err)
	assert.Equal(t, model.NoFiles+"\n", out)

	out, err = render(t, newRenderer(memfs.New().Dir("/empty"), Options{}), Request{Paths: []string{"/empty"}, Mode: ModeTree})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "\n"+model.NoFiles+"\n"), out)
}

func TestMultiplePaths(t *testing.T) {
	r := newRenderer(sample(), Options{})
	out, err := render(t, r, Request{Paths: []string{"/d/A", "/missing", "/d/a.txt"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "/missing: ")
	assert.Equal(t, "/d/A:\n[no files]\n\n/d/a.txt:\na.txt\n", out)
}

func TestSingleFileListsItself(t *testing.T) {
	out, err := render(t, newRenderer(sample(), Options{}), Request{Paths: []string{"/d/a.txt"}})
	require.NoError(t, err)
	assert.Equal(t, "a.txt\n", out)
}

func treeFS() *memfs.FS {
	return memfs.New().
		Dir("/t/sub").
		File("/t/sub/f", "", 0o644).
		Dir("/t/sub/deeper").
		File("/t/sub/deeper/g", "", 0o644).
		Symlink("/t/link", "sub").
		Symlink("/t/self", "self").
		File("/t/z.txt", "", 0o644)
}

func TestTree(t *testing.T) {
	out, err := render(t, newRenderer(treeFS(), Options{}), Request{Paths: []string{"/t"}, Mode: ModeTree})
	require.NoError(t, err)
	want := strings.Join([]string{
		"/t:",
		"├── link/ → sub",
		"├── self/ → self",
		"├── sub/",
		"│   ├── deeper/",
		"│   │   └── g",
		"│   └── f",
		"└── z.txt",
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestTreeNeverFollowsDirectoryLinks(t *testing.T) {
	mfs := memfs.New().
		Dir("/r/real").
		File("/r/real/inside", "", 0o644).
		Symlink("/r/real/up", "..").
		Symlink("/r/a", "a")
	out, err := render(t, newRenderer(mfs, Options{}), Request{Paths: []string{"/r"}, Mode: ModeTree})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "inside"))
	assert.Equal(t, "/r:\n├── a/ → a\n└── real/\n    ├── up/ → ..\n    └── inside\n", out)
}

func TestTreeDepth(t *testing.T) {
	out, err := render(t, newRenderer(treeFS(), Options{TreeDepth: 2}), Request{Paths: []string{"/t"}, Mode: ModeTree})
	require.NoError(t, err)
	assert.Contains(t, out, "deeper/")
	assert.NotContains(t, out, "g\n")
}

func TestTreeDeniedSubdirectory(t *testing.T) {
	out, err := render(t, newRenderer(treeFS().Deny("/t/sub"), Options{}), Request{Paths: []string{"/t"}, Mode: ModeTree})
	require.NoError(t, err)
	assert.Contains(t, out, "├── sub/\n└── z.txt\n")
}

func TestTreeEmptyDirectory(t *testing.T) {
	out, err := render(t, newRenderer(memfs.New().Dir("/e"), Options{}), Request{Paths: []string{"/e"}, Mode: ModeTree})
	require.NoError(t, err)
	assert.Equal(t, "/e:\n[no files]\n", out)
}

func longFS() *memfs.FS {
	return memfs.New().
		Dir("/d/A").
		File("/d/a.txt", "hello", 0o644).
		Owner("/d/a.txt", 1000, 100)
}

func longEnv() ColumnEnv {
	return ColumnEnv{
		Formatter: plainFormatter(),
		Identity: memfs.StaticIdentity{
			Users:  map[uint32]string{0: "root", 1000: "alice"},
			Groups: map[uint32]string{0: "root", 100: "users"},
		},
		Now: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestLong(t *testing.T) {
	r := newRenderer(longFS(), Options{
		Columns:     DefaultColumns(longEnv()),
		ColumnNames: []string{"mode", "hardlinks", "uid", "gid", "size", "mtime", "name"},
	})
	out, err := render(t, r, Request{Paths: []string{"/d"}, Mode: ModeLong})
	require.NoError(t, err)
	assert.Equal(t, "drwxr-xr-x  2  root   root    -  Mar  1 12:00  A/\n"+
		"-rw-r--r--  1  alice  users  5B  Mar  1 12:00  a.txt\n", out)
}

func TestLongUnknownColumn(t *testing.T) {
	r := newRenderer(longFS(), Options{
		Columns:     DefaultColumns(longEnv()),
		ColumnNames: []string{"mode", "bogus", "hardlinks", "name"},
	})
	out, err := render(t, r, Request{Paths: []string{"/d"}, Mode: ModeLong})
	require.NoError(t, err)
	assert.Equal(t, "drwxr-xr-x  <unknown>  2  A/\n-rw-r--r--  <unknown>  1  a.txt\n", out)
}

func TestLongFailingColumn(t *testing.T) {
	cols := DefaultColumns(longEnv())
	cols.Register(Column{Name: "broken", Extract: func(e *model.DirEntry) (string, error) {
		if e.Name == "A" {
			return "", errors.New("boom")
		}
		return "ok", nil
	}})
	r := newRenderer(longFS(), Options{Columns: cols, ColumnNames: []string{"broken", "name"}})
	out, err := render(t, r, Request{Paths: []string{"/d"}, Mode: ModeLong})
	require.NoError(t, err)
	assert.Equal(t, "<error>  A/\nok       a.txt\n", out)
}

func TestFormat(t *testing.T) {
	mfs := memfs.New().
		File("/f/run", "", 0o755).
		Dir("/f/bin").
		Symlink("/f/go", "run").
		Symlink("/f/dangling", "nowhere")
	entry := func(p string) *model.DirEntry {
		e, err := model.NewDirEntry(mfs, p)
		require.NoError(t, err)
		return e
	}

	plain := plainFormatter()
	assert.Equal(t, "bin/", plain.Format(entry("/f/bin"), true))
	assert.Equal(t, "dangling/ → nowhere", plain.Format(entry("/f/dangling"), true))
	assert.Equal(t, "dangling/", plain.Format(entry("/f/dangling"), false))

	ansi := &Formatter{Styler: style.NewStyler(termenv.ANSI), Palette: style.DefaultPalette()}
	assert.Equal(t, "\x1b[1mrun\x1b[0m", ansi.Format(entry("/f/run"), false))
	assert.Equal(t, "bin/", ansi.Format(entry("/f/bin"), false), "directories are never emphasized")
	assert.Equal(t, "\x1b[1;4mgo\x1b[0m → \x1b[36mrun\x1b[0m", ansi.Format(entry("/f/go"), true))
}

func TestPermString(t *testing.T) {
	tests := map[fs.FileMode]string{
		0o644:                             "-rw-r--r--",
		fs.ModeDir | 0o755:                "drwxr-xr-x",
		fs.ModeSymlink | 0o777:            "lrwxrwxrwx",
		fs.ModeDir | fs.ModeSticky | 0o777: "drwxrwxrwt",
		fs.ModeSetuid | 0o755:             "-rwsr-xr-x",
		fs.ModeSetgid | 0o644:             "-rw-r-Sr--",
		fs.ModeNamedPipe | 0o600:          "prw-------",
		fs.ModeSocket | 0o755:             "srwxr-xr-x",
		fs.ModeDevice | 0o660:             "brw-rw----",
		fs.ModeDevice | fs.ModeCharDevice: "c---------",
	}
	for m, want := range tests {
		assert.Equal(t, want, PermString(m))
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		size      int64
		num, unit string
	}{
		{0, "0", "B"},
		{1023, "1023", "B"},
		{1024, "1.0", "K"},
		{1536, "1.5", "K"},
		{200 * 1024, "200", "K"},
		{5 * 1024 * 1024 * 1024, "5.0", "G"},
	}
	for _, tt := range tests {
		num, unit := HumanSize(tt.size)
		assert.Equal(t, tt.num, num)
		assert.Equal(t, tt.unit, unit)
	}
}

func TestFormatTime(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Mar  1 12:00", FormatTime(time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC), now))
	assert.Equal(t, "Dec 24  2019", FormatTime(time.Date(2019, time.December, 24, 8, 30, 0, 0, time.UTC), now))
}
