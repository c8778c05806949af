// Package manifest loads the page-type manifest that describes the hierarchy
// listing registries operate on. A manifest is a YAML document naming the
// root type, an optional base type for listings, and every page type with
// its parent, marker capabilities, listed-page associations and titles.
// Manifests are validated against an embedded JSON schema and a supported
// schema_version range before being turned into a hierarchy.Tree.
package manifest
