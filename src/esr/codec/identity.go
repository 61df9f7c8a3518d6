package codec

import (
	"github.com/yourusername/signingrequest/src/esr/abival"
	"github.com/yourusername/signingrequest/src/esr/wire"
)

// IdentityActionName is the account-less, built-in "identity" action name
// used by every identity request.
var IdentityActionName = abival.NameFromString("identity")

// ZeroAccount is the account under which the identity action is placed:
// the zero-valued Name.
var ZeroAccount = abival.Name(0)

// EncodeIdentityData serializes an identity body (scope + optional
// permission) to the wire form appropriate for version. This bypasses the
// generic field-based ActionCodec because IdentityBody's optional-
// permission shape, and v2/v3's differing field set, don't fit the simple
// fixed-field-list model.
func EncodeIdentityData(v abival.Value, version wire.Version) []byte {
	w := wire.NewWriter()
	wire.WriteIdentityBody(w, version, ValueToIdentityBody(v, version))
	return w.Bytes()
}

// DecodeIdentityData is the inverse of EncodeIdentityData, returning the
// body as a Record Value so it composes with placeholder substitution and
// the rest of the generic Value tree machinery.
func DecodeIdentityData(data []byte, version wire.Version) (abival.Value, error) {
	r := wire.NewReader(data)
	body, err := wire.ReadIdentityBody(r, version)
	if err != nil {
		return abival.Value{}, err
	}
	return IdentityBodyValue(body, version), nil
}

// IdentityBodyValue converts a wire.IdentityBody into its Value-tree
// representation, for callers (the resolver) that build one directly
// rather than by decoding bytes.
func IdentityBodyValue(body wire.IdentityBody, version wire.Version) abival.Value {
	var fields []abival.Field
	if version == wire.V3 {
		fields = append(fields, abival.Field{Key: "scope", Value: abival.NameValue(body.Scope)})
	}
	if body.Permission != nil {
		fields = append(fields, abival.Field{Key: "permission", Value: abival.RecordValue([]abival.Field{
			{Key: "actor", Value: abival.NameValue(body.Permission.Actor)},
			{Key: "permission", Value: abival.NameValue(body.Permission.Permission)},
		})})
	}
	return abival.RecordValue(fields)
}

// ValueToIdentityBody is the inverse of IdentityBodyValue.
func ValueToIdentityBody(v abival.Value, version wire.Version) wire.IdentityBody {
	var body wire.IdentityBody
	if version == wire.V3 {
		if scope, ok := v.Get("scope"); ok {
			body.Scope = scope.Name
		}
	}
	if permVal, ok := v.Get("permission"); ok {
		actor, _ := permVal.Get("actor")
		perm, _ := permVal.Get("permission")
		body.Permission = &abival.PermissionLevel{Actor: actor.Name, Permission: perm.Name}
	}
	return body
}
