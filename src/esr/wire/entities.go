package wire

import (
	"github.com/yourusername/signingrequest/src/esr/abival"
	"github.com/yourusername/signingrequest/src/esr/chain"
)

func WritePermissionLevel(w *Writer, p abival.PermissionLevel) {
	w.WriteName(p.Actor)
	w.WriteName(p.Permission)
}

func ReadPermissionLevel(r *Reader) (abival.PermissionLevel, error) {
	actor, err := r.ReadName()
	if err != nil {
		return abival.PermissionLevel{}, err
	}
	perm, err := r.ReadName()
	if err != nil {
		return abival.PermissionLevel{}, err
	}
	return abival.PermissionLevel{Actor: actor, Permission: perm}, nil
}

func WriteAction(w *Writer, a abival.Action) {
	w.WriteName(a.Account)
	w.WriteName(a.Name)
	w.WriteVaruint32(uint32(len(a.Authorization)))
	for _, auth := range a.Authorization {
		WritePermissionLevel(w, auth)
	}
	w.WriteBytes(a.Data)
}

func ReadAction(r *Reader) (abival.Action, error) {
	account, err := r.ReadName()
	if err != nil {
		return abival.Action{}, err
	}
	name, err := r.ReadName()
	if err != nil {
		return abival.Action{}, err
	}
	n, err := r.ReadVaruint32()
	if err != nil {
		return abival.Action{}, err
	}
	auths := make([]abival.PermissionLevel, n)
	for i := range auths {
		auths[i], err = ReadPermissionLevel(r)
		if err != nil {
			return abival.Action{}, err
		}
	}
	data, err := r.ReadBytes()
	if err != nil {
		return abival.Action{}, err
	}
	return abival.Action{Account: account, Name: name, Authorization: auths, Data: data}, nil
}

func WriteActions(w *Writer, actions []abival.Action) {
	w.WriteVaruint32(uint32(len(actions)))
	for _, a := range actions {
		WriteAction(w, a)
	}
}

func ReadActions(r *Reader) ([]abival.Action, error) {
	n, err := r.ReadVaruint32()
	if err != nil {
		return nil, err
	}
	out := make([]abival.Action, n)
	for i := range out {
		out[i], err = ReadAction(r)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func WriteHeader(w *Writer, h abival.Header) {
	w.WriteUint32(h.Expiration)
	w.WriteUint16(h.RefBlockNum)
	w.WriteUint32(h.RefBlockPrefix)
	w.WriteVaruint32(uint32(h.MaxNetUsageWords))
	w.WriteByte(h.MaxCPUUsageMS)
	w.WriteVaruint32(uint32(h.DelaySec))
}

func ReadHeader(r *Reader) (abival.Header, error) {
	var h abival.Header
	var err error
	if h.Expiration, err = r.ReadUint32(); err != nil {
		return h, err
	}
	if h.RefBlockNum, err = r.ReadUint16(); err != nil {
		return h, err
	}
	if h.RefBlockPrefix, err = r.ReadUint32(); err != nil {
		return h, err
	}
	words, err := r.ReadVaruint32()
	if err != nil {
		return h, err
	}
	h.MaxNetUsageWords = uint64(words)
	if h.MaxCPUUsageMS, err = r.ReadByte(); err != nil {
		return h, err
	}
	delay, err := r.ReadVaruint32()
	if err != nil {
		return h, err
	}
	h.DelaySec = uint64(delay)
	return h, nil
}

func WriteTransaction(w *Writer, t abival.Transaction) {
	WriteHeader(w, t.Header)
	WriteActions(w, t.ContextFreeActions)
	WriteActions(w, t.Actions)
	w.WriteVaruint32(uint32(len(t.TransactionExtensions)))
	for _, e := range t.TransactionExtensions {
		w.WriteUint16(e.Type)
		w.WriteBytes(e.Data)
	}
}

func ReadTransaction(r *Reader) (abival.Transaction, error) {
	var t abival.Transaction
	var err error
	if t.Header, err = ReadHeader(r); err != nil {
		return t, err
	}
	if t.ContextFreeActions, err = ReadActions(r); err != nil {
		return t, err
	}
	if t.Actions, err = ReadActions(r); err != nil {
		return t, err
	}
	n, err := r.ReadVaruint32()
	if err != nil {
		return t, err
	}
	t.TransactionExtensions = make([]abival.ExtensionPair, n)
	for i := range t.TransactionExtensions {
		typ, err := r.ReadUint16()
		if err != nil {
			return t, err
		}
		data, err := r.ReadBytes()
		if err != nil {
			return t, err
		}
		t.TransactionExtensions[i] = abival.ExtensionPair{Type: typ, Data: data}
	}
	return t, nil
}

func WriteInfoList(w *Writer, l abival.InfoList) {
	w.WriteVaruint32(uint32(len(l)))
	for _, p := range l {
		w.WriteString(p.Key)
		w.WriteBytes(p.Value)
	}
}

func ReadInfoList(r *Reader) (abival.InfoList, error) {
	n, err := r.ReadVaruint32()
	if err != nil {
		return nil, err
	}
	out := make(abival.InfoList, n)
	for i := range out {
		key, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		val, err := r.ReadBytes()
		if err != nil {
			return nil, err
		}
		out[i] = abival.InfoPair{Key: key, Value: val}
	}
	return out, nil
}

// WriteChainVariant writes the tag-0 (alias) / tag-1 (raw id) chain id
// union.
func WriteChainVariant(w *Writer, v chain.Variant) {
	if v.IsAlias {
		w.WriteByte(0)
		w.WriteByte(byte(v.Alias))
	} else {
		w.WriteByte(1)
		w.WriteRawBytes(v.ID[:])
	}
}

func ReadChainVariant(r *Reader) (chain.Variant, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return chain.Variant{}, err
	}
	switch tag {
	case 0:
		a, err := r.ReadByte()
		if err != nil {
			return chain.Variant{}, err
		}
		return chain.Variant{IsAlias: true, Alias: chain.Alias(a)}, nil
	case 1:
		raw, err := r.ReadRawBytes(32)
		if err != nil {
			return chain.Variant{}, err
		}
		id, _ := chain.IDFromBytes(raw)
		return chain.Variant{IsAlias: false, ID: id}, nil
	default:
		return chain.Variant{}, ErrShortBuffer
	}
}
