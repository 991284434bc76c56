package construct

import (
	"strings"
	"testing"
)

func backendFamily() *Family {
	return &Family{
		Name:          "Backend",
		Discriminator: "backend_type",
		Default:       "alpha",
		Variants: map[string]string{
			"alpha": "AlphaBackend",
			"beta":  "BetaBackend",
		},
	}
}

func TestFamilyResolve(t *testing.T) {
	fam := backendFamily()

	got, err := fam.Resolve(nil, map[string]any{"backend_type": "beta"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "BetaBackend" {
		t.Fatalf("resolved %q, want BetaBackend", got)
	}
}

func TestFamilyResolveDefault(t *testing.T) {
	fam := backendFamily()

	for _, parent := range []map[string]any{nil, {}, {"other": 1}} {
		got, err := fam.Resolve(nil, parent)
		if err != nil {
			t.Fatalf("Resolve with parent %v failed: %v", parent, err)
		}
		if got != "AlphaBackend" {
			t.Fatalf("resolved %q, want default AlphaBackend", got)
		}
	}
}

func TestFamilyResolveUnknown(t *testing.T) {
	fam := backendFamily()

	_, err := fam.Resolve(nil, map[string]any{"backend_type": "gamma"})
	if !IsKind(err, KindUnknownVariant) {
		t.Fatalf("expected unknown-variant error, got %v", err)
	}
	if !strings.Contains(err.Error(), "alpha") || !strings.Contains(err.Error(), "beta") {
		t.Fatalf("error should list valid values: %v", err)
	}
}

func TestFamilyResolveCaseSensitive(t *testing.T) {
	fam := backendFamily()

	_, err := fam.Resolve(nil, map[string]any{"backend_type": "Alpha"})
	if !IsKind(err, KindUnknownVariant) {
		t.Fatalf("lookup should be case-sensitive, got %v", err)
	}
}

func TestFamilyResolveOwnDataIgnored(t *testing.T) {
	fam := backendFamily()

	// The discriminator lives in the parent's data, not the variant's own.
	got, err := fam.Resolve(map[string]any{"backend_type": "beta"}, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "AlphaBackend" {
		t.Fatalf("resolved %q, want AlphaBackend from default", got)
	}
}
