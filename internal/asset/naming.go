package asset

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DerivativePath returns the grayscale derivative path for a source file:
// "{basename_without_ext}-grayscale.{ext}" in the same directory as the
// source. The convention is load-bearing: existing libraries were written
// with it, and deletion locates derivative files by recomputing it.
func DerivativePath(sourcePath string) string {
	dir := filepath.Dir(sourcePath)
	base := filepath.Base(sourcePath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext) + "-grayscale" + ext
	if dir == "." {
		return name
	}
	return filepath.Join(dir, name)
}

// VariantPath returns the file path for a resized rendition of the original:
// "{basename_without_ext}-{W}x{H}.{ext}" alongside the original.
func VariantPath(originalPath string, width, height int) string {
	dir := filepath.Dir(originalPath)
	base := filepath.Base(originalPath)
	ext := filepath.Ext(base)
	name := fmt.Sprintf("%s-%dx%d%s", strings.TrimSuffix(base, ext), width, height, ext)
	if dir == "." {
		return name
	}
	return filepath.Join(dir, name)
}
