// Package esr is the signing-request protocol core: the Request builder,
// its binary/text serialization, and the state-machine operations that
// move a Request through resolve/sign/callback.
package esr

import "fmt"

// Kind is a machine-readable error identifier, one per failure mode this
// package can raise.
type Kind string

const (
	InvalidScheme      Kind = "INVALID_SCHEME"
	InvalidURI         Kind = "INVALID_URI"
	UnsupportedVersion Kind = "UNSUPPORTED_VERSION"
	MissingCompressor  Kind = "MISSING_COMPRESSOR"
	DecodeErrorKind    Kind = "DECODE_ERROR"
	InvalidDescriptor  Kind = "INVALID_DESCRIPTOR"
	MissingAbiProvider Kind = "MISSING_ABI_PROVIDER"
	MissingAbi         Kind = "MISSING_ABI"
	UnknownAction      Kind = "UNKNOWN_ACTION"
	UnknownAlias       Kind = "UNKNOWN_ALIAS"
	MissingTaPoS       Kind = "MISSING_TAPOS"
	BadChain           Kind = "BAD_CHAIN"
	IdentityBroadcast  Kind = "IDENTITY_BROADCAST"
	NeedSignature      Kind = "NEED_SIGNATURE"
	BadProof           Kind = "BAD_PROOF"
)

// Error is the error type this package returns for the failures it
// classifies. A resolution error that matches none of the resolve
// package's sentinels (an action-data decode failure, for example) is
// returned unwrapped. All failures are synchronous; the core never retries.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("esr: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("esr: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func wrapError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if ok := asError(err, &e); ok {
		return e.Kind == kind
	}
	return false
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
