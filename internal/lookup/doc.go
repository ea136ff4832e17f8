// Package lookup is the online read path over the gloss index: an eager
// file-backed reader for server deployments, a lazy fetch-and-cache HTTP
// reader for client deployments, and the facade both sit behind.
//
// The two readers implement one Resolver contract and differ only in how the
// index is hydrated. "Key not found" and "index unavailable" are distinct
// sentinel errors throughout; callers are expected to branch on them.
package lookup
