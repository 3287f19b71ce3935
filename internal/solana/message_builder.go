package solana

import "fmt"

// AccountMeta describes how an instruction uses an account.
type AccountMeta struct {
	Pubkey     Pubkey
	IsSigner   bool
	IsWritable bool
}

// Instruction is an uncompiled instruction with explicit account metas.
type Instruction struct {
	ProgramID Pubkey
	Accounts  []AccountMeta
	Data      []byte
}

// NewTransaction compiles instructions into an unsigned legacy transaction.
// The fee payer is always the first account key; signature slots are
// allocated empty, one per required signer, in header order.
func NewTransaction(payer Pubkey, recentBlockhash [32]byte, instructions ...Instruction) (*Transaction, error) {
	if len(instructions) == 0 {
		return nil, fmt.Errorf("no instructions")
	}

	keys, header := compileAccounts(payer, instructions)

	index := make(map[Pubkey]uint8, len(keys))
	for i, k := range keys {
		index[k] = uint8(i)
	}

	compiled := make([]CompiledInstruction, len(instructions))
	for i, in := range instructions {
		ci := CompiledInstruction{
			ProgramIDIndex: index[in.ProgramID],
			AccountIndexes: make([]uint8, len(in.Accounts)),
			Data:           append([]byte(nil), in.Data...),
		}
		for j, a := range in.Accounts {
			ci.AccountIndexes[j] = index[a.Pubkey]
		}
		compiled[i] = ci
	}

	msg := Message{
		Version:      versionLegacy,
		Header:       header,
		AccountKeys:  keys,
		Instructions: compiled,
	}
	msg.RecentBlockhash = recentBlockhash
	msg.raw = serializeLegacyMessage(&msg)

	return &Transaction{
		Signatures: make([]Signature, header.NumRequiredSignatures),
		Message:    msg,
	}, nil
}

// compileAccounts merges account metas across instructions and orders them
// per the message format: writable signers, readonly signers, writable
// non-signers, readonly non-signers. Program IDs join as readonly non-signers.
func compileAccounts(payer Pubkey, instructions []Instruction) ([]Pubkey, MessageHeader) {
	type meta struct {
		signer   bool
		writable bool
		order    int
	}
	merged := make(map[Pubkey]*meta)
	var order []Pubkey

	upsert := func(pk Pubkey, signer, writable bool) {
		m, ok := merged[pk]
		if !ok {
			m = &meta{order: len(order)}
			merged[pk] = m
			order = append(order, pk)
		}
		m.signer = m.signer || signer
		m.writable = m.writable || writable
	}

	upsert(payer, true, true)
	for _, in := range instructions {
		for _, a := range in.Accounts {
			upsert(a.Pubkey, a.IsSigner, a.IsWritable)
		}
		upsert(in.ProgramID, false, false)
	}

	var writableSigners, readonlySigners, writableOthers, readonlyOthers []Pubkey
	for _, pk := range order {
		m := merged[pk]
		switch {
		case pk == payer:
			// Placed first below.
		case m.signer && m.writable:
			writableSigners = append(writableSigners, pk)
		case m.signer:
			readonlySigners = append(readonlySigners, pk)
		case m.writable:
			writableOthers = append(writableOthers, pk)
		default:
			readonlyOthers = append(readonlyOthers, pk)
		}
	}

	keys := make([]Pubkey, 0, len(order))
	keys = append(keys, payer)
	keys = append(keys, writableSigners...)
	keys = append(keys, readonlySigners...)
	keys = append(keys, writableOthers...)
	keys = append(keys, readonlyOthers...)

	header := MessageHeader{
		NumRequiredSignatures: uint8(1 + len(writableSigners) + len(readonlySigners)),
		NumReadonlySigned:     uint8(len(readonlySigners)),
		NumReadonlyUnsigned:   uint8(len(readonlyOthers)),
	}
	return keys, header
}

// serializeLegacyMessage encodes a legacy (unversioned) message.
func serializeLegacyMessage(m *Message) []byte {
	out := []byte{
		m.Header.NumRequiredSignatures,
		m.Header.NumReadonlySigned,
		m.Header.NumReadonlyUnsigned,
	}

	out = appendCompactU16(out, len(m.AccountKeys))
	for _, k := range m.AccountKeys {
		out = append(out, k[:]...)
	}

	out = append(out, m.RecentBlockhash[:]...)

	out = appendCompactU16(out, len(m.Instructions))
	for _, in := range m.Instructions {
		out = append(out, in.ProgramIDIndex)
		out = appendCompactU16(out, len(in.AccountIndexes))
		out = append(out, in.AccountIndexes...)
		out = appendCompactU16(out, len(in.Data))
		out = append(out, in.Data...)
	}

	return out
}
