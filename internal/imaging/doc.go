// Package imaging implements the derivative generator: decoding PNG/JPEG
// sources, applying a luminance grayscale conversion, and re-encoding in the
// source format. It also produces resized renditions for configured size
// variants. Generation is a pure transform; callers persist the returned
// bytes.
//
// A fixed pixel-area ceiling protects against unbounded memory use during
// decode. The ceiling is checked against the image header before any pixel
// data is read.
package imaging
