// Package baseuri computes the resource base used to resolve relative links
// and images in a rendered page.
package baseuri

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Resolve returns the file:// URI of the directory containing identity, with a
// trailing slash. An empty identity, or one without a resolvable parent
// directory, resolves against the canonical working directory instead. The
// boolean is false only when the working directory cannot be canonicalized.
func Resolve(identity string) (string, bool) {
	if dir, ok := parentDir(identity); ok {
		return FileURI(dir), true
	}

	wd, err := workingDir()
	if err != nil {
		return "", false
	}
	return FileURI(wd), true
}

func parentDir(identity string) (string, bool) {
	if identity == "" {
		return "", false
	}

	abs, err := filepath.Abs(identity)
	if err != nil {
		return "", false
	}

	dir := filepath.Dir(abs)
	if dir == abs {
		// filesystem root has no parent
		return "", false
	}
	return dir, true
}

// workingDir is swapped in tests.
var workingDir = func() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(wd)
}

// FileURI returns a file:// URI for dir with a guaranteed trailing slash.
func FileURI(dir string) string {
	p := filepath.ToSlash(dir)
	if !strings.HasPrefix(p, "/") {
		// windows drive paths
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}

	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}
