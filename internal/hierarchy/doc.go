// Package hierarchy models the page-type tree that listing registries read
// from. A Tree holds named types with a single parent each, the marker
// capabilities they declare (listed page, listings root, listings index), and
// the association data a root or index declares about the listed-page types it
// manages. Registries only see the tree through the Hierarchy interface.
package hierarchy
