package abival

import "testing"

func TestSubstitutePlaceholdersRecursive(t *testing.T) {
	signer := PermissionLevel{Actor: NameFromString("foo"), Permission: NameFromString("active")}

	nested := RecordValue([]Field{
		{Key: "from", Value: NameValue(PlaceholderActor)},
		{Key: "to", Value: NameValue(NameFromString("bar"))},
		{Key: "list", Value: ArrayValue([]Value{
			NameValue(PlaceholderPermission),
			StringValue("untouched"),
		})},
	})

	out := SubstitutePlaceholders(nested, signer.Actor, signer.Permission)

	from, _ := out.Get("from")
	if from.Name != signer.Actor {
		t.Fatalf("expected from to resolve to signer actor, got %v", from.Name)
	}

	list, _ := out.Get("list")
	if list.Array[0].Name != signer.Permission {
		t.Fatalf("expected list[0] to resolve to signer permission, got %v", list.Array[0].Name)
	}

	if HasPlaceholder(out) {
		t.Fatal("expected no placeholders to remain after substitution")
	}
}

func TestPermissionLevelAuthorizationBackCompat(t *testing.T) {
	signer := PermissionLevel{Actor: NameFromString("foo"), Permission: NameFromString("active")}

	// placeholder-1 in the permission slot resolves to signer.Permission,
	// not signer.Actor, matching legacy client behavior.
	auth := PermissionLevel{Actor: PlaceholderActor, Permission: PlaceholderActor}
	resolved := auth.Substitute(signer)

	if resolved.Actor != signer.Actor {
		t.Fatalf("expected actor slot to resolve normally, got %v", resolved.Actor)
	}
	if resolved.Permission != signer.Permission {
		t.Fatalf("expected permission slot placeholder-1 to resolve to signer permission, got %v", resolved.Permission)
	}
}

func TestInfoListLastWins(t *testing.T) {
	var l InfoList
	l = l.Set("k", []byte("a"))
	l = l.Set("k", []byte("b"))

	v, ok := l.Get("k")
	if !ok || string(v) != "b" {
		t.Fatalf("expected last-wins value %q, got %q (ok=%v)", "b", v, ok)
	}
	if len(l) != 1 {
		t.Fatalf("expected a single entry after overwrite, got %d", len(l))
	}
}
