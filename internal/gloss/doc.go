// Package gloss derives index keys from French caption text and from
// display-form gloss strings.
//
// Both the build-time extractor and the query-time normalizer share one
// diacritic fold, so a token that survives extraction is always its own
// canonical key. Keeping the two paths on a single transform is what keeps
// index writes and lookups agreeing on key shape.
package gloss
