package sir

import (
	"strings"
	"sync"
)

// FileHandle is the caller's stable, opaque reference to one cached log
// file, returned by AddFile and valid until RemoveFile. Equality of two
// handles means they name the same cache entry.
type FileHandle struct {
	cf *cachedFile
}

func (h FileHandle) valid() bool { return h.cf != nil }

// fileCache is the File Cache component: a bounded, ordered list of open
// files, each with its own level and option mask, guarded by its own lock
// independent of the Library State and Style Table locks.
type fileCache struct {
	mu    sync.Mutex
	files []*cachedFile
}

func newFileCache() *fileCache {
	return &fileCache{files: make([]*cachedFile, 0, maxCachedFiles)}
}

func samePath(a, b string) bool {
	if isCaseInsensitiveFS() {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// add opens path and appends it to the cache. It fails with ErrCacheFull if
// 16 files are already cached and with ErrDuplicateFile if path matches an
// existing entry.
func (c *fileCache) add(path string, levels LevelMask, opts OptionMask) (FileHandle, *Error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.files) >= maxCachedFiles {
		return FileHandle{}, newError(ErrCacheFull)
	}
	for _, f := range c.files {
		if samePath(f.path, path) {
			return FileHandle{}, newError(ErrDuplicateFile)
		}
	}

	cf, err := openCachedFile(path, levels, opts)
	if err != nil {
		return FileHandle{}, err
	}
	c.files = append(c.files, cf)
	return FileHandle{cf: cf}, nil
}

func (c *fileCache) find(h FileHandle) (*cachedFile, bool) {
	for _, f := range c.files {
		if f == h.cf {
			return f, true
		}
	}
	return nil, false
}

func (c *fileCache) updateLevels(h FileHandle, mask LevelMask) *Error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cf, ok := c.find(h)
	if !ok {
		return newError(ErrNoSuchFile)
	}
	cf.levels = mask
	return nil
}

func (c *fileCache) updateOptions(h FileHandle, mask OptionMask) *Error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cf, ok := c.find(h)
	if !ok {
		return newError(ErrNoSuchFile)
	}
	cf.options = mask
	return nil
}

// remove closes and evicts the cache entry for h, compacting the remaining
// entries down by one.
func (c *fileCache) remove(h FileHandle) *Error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, f := range c.files {
		if f == h.cf {
			cerr := f.close()
			c.files = append(c.files[:i], c.files[i+1:]...)
			return cerr
		}
	}
	return newError(ErrNoSuchFile)
}

// dispatch writes f to every cached file whose mask admits level, caching
// one rendering per distinct option mask across the loop (most files share
// the process-wide default file option mask of zero). It returns the number
// of files that admitted the level and the number that wrote successfully.
func (c *fileCache) dispatch(f fields) (wanted, wrote int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rendered := map[OptionMask][]byte{}
	for _, cf := range c.files {
		if !cf.levels.Admits(f.level) {
			continue
		}
		wanted++
		line, ok := rendered[cf.options]
		if !ok {
			buf := getBuffer()
			renderLine(buf, f, cf.options, false)
			line = append([]byte(nil), buf.Bytes()...)
			rendered[cf.options] = line
			putBuffer(buf)
		}
		if err := cf.write(line); err == nil {
			wrote++
		}
	}
	for _, cf := range c.files {
		cf.file.Sync()
	}
	return wanted, wrote
}
