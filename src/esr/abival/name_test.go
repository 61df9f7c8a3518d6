package abival

import "testing"

func TestPlaceholderRendering(t *testing.T) {
	if got := PlaceholderActor.String(); got != "............1" {
		t.Fatalf("placeholder actor: got %q", got)
	}
	if got := PlaceholderPermission.String(); got != "............2" {
		t.Fatalf("placeholder permission: got %q", got)
	}
}

func TestNameRoundTrip(t *testing.T) {
	cases := []string{"foo", "bar", "eosio.token", "active", "transfer", "a", "zzzzzzzzzzzzj"}
	for _, s := range cases {
		n := NameFromString(s)
		if got := n.String(); got != s {
			t.Errorf("round trip %q: got %q", s, got)
		}
	}
}

func TestIsPlaceholder(t *testing.T) {
	if !PlaceholderActor.IsPlaceholder() || !PlaceholderPermission.IsPlaceholder() {
		t.Fatal("expected placeholders to report IsPlaceholder")
	}
	if NameFromString("foo").IsPlaceholder() {
		t.Fatal("ordinary name reported as placeholder")
	}
}
