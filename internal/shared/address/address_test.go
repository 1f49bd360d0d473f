package address

import "testing"

func TestDeriveIsDeterministic(t *testing.T) {
	first := Derive(NamespaceArtistProfile, "artist-wallet-1")
	second := Derive(NamespaceArtistProfile, "artist-wallet-1")
	if first != second {
		t.Fatalf("expected stable address, got %s and %s", first, second)
	}
}

func TestDeriveSeparatesNamespaces(t *testing.T) {
	profile := Derive(NamespaceArtistProfile, "wallet-1")
	work := Derive(NamespaceMasterWork, "wallet-1")
	if profile == work {
		t.Fatal("expected distinct addresses across namespaces")
	}
}

func TestDeriveSeparatesParts(t *testing.T) {
	// ("ab","c") and ("a","bc") must not collide.
	first := Derive(NamespaceCollection, "ab", "c")
	second := Derive(NamespaceCollection, "a", "bc")
	if first == second {
		t.Fatal("expected part boundaries to affect the address")
	}
}
