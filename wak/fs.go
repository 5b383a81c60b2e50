package wak

import (
	"bytes"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

// FS exposes a decoded entry set as a read-only filesystem.
//
// Directories are synthesized from entry paths; the archive itself
// stores only files. Lookups scan the linear entry table, mirroring
// the format's flat index.
type FS struct {
	entries []Entry
}

// Interface compliance.
var (
	_ fs.FS         = (*FS)(nil)
	_ fs.StatFS     = (*FS)(nil)
	_ fs.ReadFileFS = (*FS)(nil)
	_ fs.ReadDirFS  = (*FS)(nil)
)

// NewFS returns a filesystem over entries. The entries are retained;
// callers must not modify them while the FS is in use.
func NewFS(entries []Entry) *FS {
	return &FS{entries: entries}
}

// Open implements fs.FS.
func (f *FS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	if e, ok := f.lookup(name); ok {
		return &entryFile{
			Reader: bytes.NewReader(e.Content),
			info:   fileInfo{name: path.Base(name), size: int64(len(e.Content))},
		}, nil
	}
	if f.isDir(name) {
		return &dirFile{fsys: f, name: name}, nil
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// Stat implements fs.StatFS.
func (f *FS) Stat(name string) (fs.FileInfo, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrInvalid}
	}
	if e, ok := f.lookup(name); ok {
		return fileInfo{name: path.Base(name), size: int64(len(e.Content))}, nil
	}
	if f.isDir(name) {
		return dirInfo{name: baseName(name)}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

// ReadFile implements fs.ReadFileFS. The returned bytes are a copy.
func (f *FS) ReadFile(name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readfile", Path: name, Err: fs.ErrInvalid}
	}
	e, ok := f.lookup(name)
	if !ok {
		return nil, &fs.PathError{Op: "readfile", Path: name, Err: fs.ErrNotExist}
	}
	return bytes.Clone(e.Content), nil
}

// ReadDir implements fs.ReadDirFS. Entries are sorted by name.
func (f *FS) ReadDir(name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}
	if _, ok := f.lookup(name); ok {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}
	entries := f.children(name)
	if entries == nil && name != "." {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	return entries, nil
}

// lookup finds the entry for name by scanning the table.
func (f *FS) lookup(name string) (*Entry, bool) {
	for i := range f.entries {
		if f.entries[i].Path == name {
			return &f.entries[i], true
		}
	}
	return nil, false
}

// isDir reports whether name has entries beneath it.
func (f *FS) isDir(name string) bool {
	if name == "." {
		return true
	}
	prefix := name + "/"
	for i := range f.entries {
		if strings.HasPrefix(f.entries[i].Path, prefix) {
			return true
		}
	}
	return false
}

// children synthesizes the directory listing for name, or nil if no
// entry lives under it.
func (f *FS) children(name string) []fs.DirEntry {
	prefix := ""
	if name != "." {
		prefix = name + "/"
	}

	type child struct {
		isDir bool
		size  int64
	}
	seen := make(map[string]child)
	for i := range f.entries {
		p := f.entries[i].Path
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := p[len(prefix):]
		if rest == "" {
			continue
		}
		if j := strings.IndexByte(rest, '/'); j >= 0 {
			seen[rest[:j]] = child{isDir: true}
		} else if _, ok := seen[rest]; !ok {
			seen[rest] = child{size: int64(len(f.entries[i].Content))}
		}
	}
	if len(seen) == 0 && name != "." {
		return nil
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)

	out := make([]fs.DirEntry, 0, len(names))
	for _, n := range names {
		c := seen[n]
		if c.isDir {
			out = append(out, dirEntry{dirInfo{name: n}})
		} else {
			out = append(out, dirEntry{fileInfo{name: n, size: c.size}})
		}
	}
	return out
}

func baseName(name string) string {
	if name == "." {
		return "."
	}
	return path.Base(name)
}

// entryFile is an open archive file backed by the entry's content.
type entryFile struct {
	*bytes.Reader
	info fileInfo
}

func (f *entryFile) Stat() (fs.FileInfo, error) { return f.info, nil }
func (f *entryFile) Close() error               { return nil }

// dirFile is an open synthetic directory.
type dirFile struct {
	fsys    *FS
	name    string
	listing []fs.DirEntry
	pos     int
}

func (d *dirFile) Read(_ []byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.name, Err: fs.ErrInvalid}
}

func (d *dirFile) Stat() (fs.FileInfo, error) {
	return dirInfo{name: baseName(d.name)}, nil
}

func (d *dirFile) Close() error { return nil }

// ReadDir implements fs.ReadDirFile.
func (d *dirFile) ReadDir(n int) ([]fs.DirEntry, error) {
	if d.listing == nil {
		d.listing = d.fsys.children(d.name)
	}
	rest := d.listing[d.pos:]
	if n <= 0 {
		d.pos = len(d.listing)
		return append([]fs.DirEntry(nil), rest...), nil
	}
	if len(rest) == 0 {
		return nil, io.EOF
	}
	if n > len(rest) {
		n = len(rest)
	}
	d.pos += n
	return append([]fs.DirEntry(nil), rest[:n]...), nil
}

// fileInfo describes an archive file.
type fileInfo struct {
	name string
	size int64
}

func (i fileInfo) Name() string       { return i.name }
func (i fileInfo) Size() int64        { return i.size }
func (i fileInfo) Mode() fs.FileMode  { return 0o444 }
func (i fileInfo) ModTime() time.Time { return time.Time{} }
func (i fileInfo) IsDir() bool        { return false }
func (i fileInfo) Sys() any           { return nil }

// dirInfo describes a synthetic directory.
type dirInfo struct {
	name string
}

func (i dirInfo) Name() string       { return i.name }
func (i dirInfo) Size() int64        { return 0 }
func (i dirInfo) Mode() fs.FileMode  { return fs.ModeDir | 0o555 }
func (i dirInfo) ModTime() time.Time { return time.Time{} }
func (i dirInfo) IsDir() bool        { return true }
func (i dirInfo) Sys() any           { return nil }

// dirEntry adapts a FileInfo to fs.DirEntry.
type dirEntry struct {
	info fs.FileInfo
}

func (e dirEntry) Name() string               { return e.info.Name() }
func (e dirEntry) IsDir() bool                { return e.info.IsDir() }
func (e dirEntry) Type() fs.FileMode          { return e.info.Mode().Type() }
func (e dirEntry) Info() (fs.FileInfo, error) { return e.info, nil }
