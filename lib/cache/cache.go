// Package cache remembers which sources were already compiled with which
// settings, so an unchanged program is not rebuilt.
package cache

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"
)

const FileName = "cache.bin"

type BuiltFile struct {
	FilePath string
	Sum      string
	OutPath  string
}

type BuildCache struct {
	Path  string
	Files map[string]BuiltFile
}

// Open loads the cache kept in dir. A missing cache file is an empty cache.
func Open(dir string) (*BuildCache, error) {
	c := &BuildCache{Path: filepath.Join(dir, FileName), Files: make(map[string]BuiltFile)}

	cacheFile, err := os.Open(c.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	defer cacheFile.Close()

	decoder := gob.NewDecoder(cacheFile)
	if err := decoder.Decode(&c.Files); err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.Path, err)
	}
	return c, nil
}

// Sum hashes everything that affects a build's output.
func Sum(parts ...string) string {
	h := blake3.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Fresh returns the recorded output for source if it was built with sum and
// the output still exists.
func (c *BuildCache) Fresh(source, sum string) (string, bool) {
	f, ok := c.Files[source]
	if !ok || f.Sum != sum {
		return "", false
	}
	if _, err := os.Stat(f.OutPath); err != nil {
		return "", false
	}
	return f.OutPath, true
}

func (c *BuildCache) Record(source, sum, out string) {
	c.Files[source] = BuiltFile{FilePath: source, Sum: sum, OutPath: out}
}

func (c *BuildCache) Save() (err error) {
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return err
	}
	cacheFile, err := os.Create(c.Path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := cacheFile.Close(); err == nil {
			err = cerr
		}
	}()

	encoder := gob.NewEncoder(cacheFile)
	return encoder.Encode(c.Files)
}
