package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "listings" {
		t.Errorf("CLIName = %q, want listings", got)
	}
	if got := HomeDir(); got != ".listings" {
		t.Errorf("HomeDir = %q, want .listings", got)
	}
	if got := ManifestFile(); got != "listings.yaml" {
		t.Errorf("ManifestFile = %q, want listings.yaml", got)
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("cache_backend"); got != "LISTINGS_CACHE_BACKEND" {
		t.Errorf("EnvVar = %q, want LISTINGS_CACHE_BACKEND", got)
	}
}
