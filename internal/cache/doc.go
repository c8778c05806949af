// Package cache provides the key/value stores that listing registries memoize
// resolved type sets in. A Store maps string keys to ordered lists of type
// names. Three backends are available: an in-process map (go-cache), a
// bounded LRU, and a badger database that can be shared between processes
// and survives restarts. Persisted stores carry a manifest fingerprint so a
// changed page-type manifest invalidates stale entries on open.
package cache
