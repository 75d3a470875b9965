// Package load reads configuration files and folders, picking the document
// format from the file extension, and records where a failure came from.
package load

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/signadot/typeconf/format"
	"github.com/signadot/typeconf/gomap"
	"github.com/signadot/typeconf/ir"
	"github.com/signadot/typeconf/parse"
)

// locate appends loc to the location trail of a decoding error. Errors that
// carry no trail, such as syntax errors, are wrapped instead.
func locate(err error, loc string) error {
	if _, ok := gomap.AsError(err); ok {
		return gomap.AddLocation(err, loc)
	}
	return fmt.Errorf("%s: %w", loc, err)
}

// Node reads and parses the file at path.
func Node(path string, opts ...parse.ParseOption) (*ir.Node, error) {
	f, err := format.FromPath(path)
	if err != nil {
		return nil, err
	}
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	popts := append([]parse.ParseOption{parse.ParseFormat(f), parse.ParseFile(path)}, opts...)
	return parse.Parse(d, popts...)
}

// File decodes the file at path as t.
func File[T any](r *gomap.Registry, path string, t gomap.Type[T], opts ...parse.ParseOption) (T, error) {
	var zero T
	n, err := Node(path, opts...)
	if err != nil {
		return zero, locate(err, "in file "+path)
	}
	v, err := gomap.Parse(r, n, t)
	if err != nil {
		return zero, locate(err, "in file "+path)
	}
	return v, nil
}

// Bytes decodes d as t. name is used for positions and the location trail;
// it may be empty.
func Bytes[T any](r *gomap.Registry, d []byte, name string, t gomap.Type[T], opts ...parse.ParseOption) (T, error) {
	var zero T
	popts := opts
	if name != "" {
		popts = append([]parse.ParseOption{parse.ParseFile(name)}, opts...)
	}
	loc := func(err error) error {
		if name == "" {
			return err
		}
		return locate(err, "in "+name)
	}
	n, err := parse.Parse(d, popts...)
	if err != nil {
		return zero, loc(err)
	}
	v, err := gomap.Parse(r, n, t)
	if err != nil {
		return zero, loc(err)
	}
	return v, nil
}

// ID is the key a file is stored under by Folder: its lower-cased base name
// without extension.
func ID(path string) string {
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Folder decodes every file of dir whose extension names a known format.
// Other files and subdirectories are skipped. Files are decoded
// concurrently; the first failure is returned.
func Folder[T any](r *gomap.Registry, dir string, t gomap.Type[T], opts ...parse.ParseOption) (map[string]T, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	paths := map[string]string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := format.FromPath(e.Name()); err != nil {
			continue
		}
		id := ID(e.Name())
		if prev, ok := paths[id]; ok {
			return nil, fmt.Errorf("from folder %s: %s and %s share the id %q", dir, filepath.Base(prev), e.Name(), id)
		}
		paths[id] = filepath.Join(dir, e.Name())
	}
	ids := make([]string, 0, len(paths))
	for id := range paths {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var (
		mu  sync.Mutex
		res = make(map[string]T, len(ids))
		g   errgroup.Group
	)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, id := range ids {
		g.Go(func() error {
			v, err := File(r, paths[id], t, opts...)
			if err != nil {
				return locate(err, "from folder "+dir)
			}
			mu.Lock()
			res[id] = v
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
