// Package listings resolves which page types take part in listings.
//
// A Registry tracks the types carrying one marker capability: listed pages,
// listings roots or listings indexes. It enumerates them from the page-type
// hierarchy, validates candidate sets, expands types to their live
// subclasses, finds the common class of a set, and, for roots and indexes,
// finds the owners that manage a given listed-page type. Resolved sets are
// memoized in a cache.Store under a per-registry key prefix and rebuilt on
// Flush.
//
// A Set wires the three registries together the way an application needs
// them; callers normally build one Set at start-up and share it.
package listings
