// Package captions parses block-structured SRT subtitle documents into timed
// cues. Parsing is tolerant: malformed blocks are dropped so that a noisy
// corpus never aborts an index build.
package captions
