// Package lifecycle coordinates the asset lifecycle end to end: ingest
// (copy into the library, materialize size variants, generate grayscale
// derivatives), deletion (registry rows plus derivative files), and size
// resolution (grayscale request grammar with fallback to the full
// derivative, degrading to the original when nothing is recorded).
//
// The error design is silent-degrade: generation failures on individual
// variants skip that variant and the ingest still succeeds, possibly with
// zero derivatives. Events run strictly one at a time.
package lifecycle
