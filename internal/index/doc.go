// Package index defines the gloss index data model, its JSON document
// serialization, and the batch builder that produces it from a subtitle
// corpus.
//
// The index maps a normalized gloss key to candidate media fragments.
// Selection among candidates is by highest score with ties broken by
// build-time encounter order; the document write is atomic so online readers
// never observe a partial index.
package index
