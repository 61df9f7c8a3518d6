package abival

// Action is a contract invocation descriptor. Data is always available as
// raw bytes; Decoded is populated once the action has been resolved
// against an ABI.
type Action struct {
	Account        Name
	Name           Name
	Authorization  []PermissionLevel
	Data           []byte
	Decoded        *Value // nil until resolved
}

// SubstitutePlaceholders returns a copy of a with placeholders resolved in
// its authorizations and, if present, its decoded data.
func (a Action) SubstitutePlaceholders(signer PermissionLevel) Action {
	out := a
	out.Authorization = make([]PermissionLevel, len(a.Authorization))
	for i, auth := range a.Authorization {
		out.Authorization[i] = auth.Substitute(signer)
	}
	if a.Decoded != nil {
		resolved := SubstitutePlaceholders(*a.Decoded, signer.Actor, signer.Permission)
		out.Decoded = &resolved
	}
	return out
}

// ExtensionPair is a (type, data) transaction extension entry.
type ExtensionPair struct {
	Type uint16
	Data []byte
}
