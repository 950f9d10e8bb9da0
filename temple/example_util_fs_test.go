package temple_test

import (
	"io/fs"
	"testing/fstest"
)

// staticFS is a file name to file contents map usable as template fixtures.
type staticFS map[string]string

func (s staticFS) Open(name string) (fs.File, error) {
	files := make(fstest.MapFS, len(s))
	for path, contents := range s {
		files[path] = &fstest.MapFile{Data: []byte(contents), Mode: 0o400}
	}
	return files.Open(name)
}
