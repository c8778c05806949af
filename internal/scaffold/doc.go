// Package scaffold generates starter page-type manifests from embedded
// templates. It powers the "listings init" command.
package scaffold
