// Package cli defines the Cobra command tree for the listings CLI. Each file
// in this package registers one top-level command with the root command.
// Commands load the page-type manifest into a session and delegate to the
// listings registries; they only handle flag parsing and output formatting.
package cli
