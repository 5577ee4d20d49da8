// Package asset defines the data model for tracked images: the asset record,
// its named size variants, and the grayscale derivatives generated for them.
// It also owns the derivative file naming convention, which must stay
// bit-exact for compatibility with previously generated libraries.
package asset
