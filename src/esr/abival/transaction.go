package abival

// Header carries TAPoS fields.
type Header struct {
	Expiration       uint32 // seconds since epoch
	RefBlockNum      uint16
	RefBlockPrefix   uint32
	MaxNetUsageWords uint64 // varuint on the wire
	MaxCPUUsageMS    uint8
	DelaySec         uint64 // varuint on the wire
}

// IsNull reports whether h is the "resolve me" sentinel header: expiration,
// ref_block_num, and ref_block_prefix all zero.
func (h Header) IsNull() bool {
	return h.Expiration == 0 && h.RefBlockNum == 0 && h.RefBlockPrefix == 0
}

// Transaction is a full EOSIO-style transaction body.
type Transaction struct {
	Header
	ContextFreeActions    []Action
	Actions               []Action
	TransactionExtensions []ExtensionPair
}

// Clone returns a deep copy of t.
func (t Transaction) Clone() Transaction {
	out := t
	out.ContextFreeActions = cloneActions(t.ContextFreeActions)
	out.Actions = cloneActions(t.Actions)
	out.TransactionExtensions = append([]ExtensionPair(nil), t.TransactionExtensions...)
	return out
}

func cloneActions(in []Action) []Action {
	out := make([]Action, len(in))
	for i, a := range in {
		out[i] = a
		out[i].Authorization = append([]PermissionLevel(nil), a.Authorization...)
		out[i].Data = append([]byte(nil), a.Data...)
		if a.Decoded != nil {
			v := *a.Decoded
			out[i].Decoded = &v
		}
	}
	return out
}
