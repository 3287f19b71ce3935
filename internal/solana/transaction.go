package solana

import (
	"encoding/base64"
	"fmt"
)

// versionLegacy marks a message without a version prefix byte.
const versionLegacy = -1

// ErrInvalidTransaction is returned when transaction bytes fail to parse.
var ErrInvalidTransaction = fmt.Errorf("invalid transaction data")

// Signature is one 64-byte signature slot. An all-zero slot is empty.
type Signature [SignatureLength]byte

// IsZero reports whether the slot is unpopulated.
func (s Signature) IsZero() bool {
	return s == Signature{}
}

// MessageHeader declares how the static account keys split into signer and
// read-only groups. The first NumRequiredSignatures keys are the signers, in
// the exact order their signature slots appear.
type MessageHeader struct {
	NumRequiredSignatures uint8
	NumReadonlySigned     uint8
	NumReadonlyUnsigned   uint8
}

// CompiledInstruction references accounts by index into the message keys.
type CompiledInstruction struct {
	ProgramIDIndex uint8
	AccountIndexes []uint8
	Data           []byte
}

// AddressTableLookup is a v0 message extension loading extra accounts from an
// on-chain lookup table. Parsed for completeness; this service never adds them.
type AddressTableLookup struct {
	Table           Pubkey
	WritableIndexes []uint8
	ReadonlyIndexes []uint8
}

// Message is a parsed transaction message. The raw serialized bytes are kept
// verbatim: they are what gets signed and they are never mutated after
// construction.
type Message struct {
	raw []byte

	Version         int // versionLegacy or 0
	Header          MessageHeader
	AccountKeys     []Pubkey
	RecentBlockhash [32]byte
	Instructions    []CompiledInstruction
	Lookups         []AddressTableLookup
}

// Bytes returns a copy of the exact serialized message, the input to signing.
func (m *Message) Bytes() []byte {
	return append([]byte(nil), m.raw...)
}

// Transaction is a binary transaction: an immutable message plus a parallel
// array of signature slots, one per required-signer account.
type Transaction struct {
	Signatures []Signature
	Message    Message
}

// DeserializeTransaction parses wire-format transaction bytes.
func DeserializeTransaction(data []byte) (*Transaction, error) {
	r := &byteReader{data: data}

	sigCount, err := r.compactU16()
	if err != nil {
		return nil, fmt.Errorf("%w: signature count: %v", ErrInvalidTransaction, err)
	}

	sigs := make([]Signature, sigCount)
	for i := range sigs {
		b, err := r.read(SignatureLength)
		if err != nil {
			return nil, fmt.Errorf("%w: signature %d: %v", ErrInvalidTransaction, i, err)
		}
		copy(sigs[i][:], b)
	}

	msg, err := parseMessage(r.rest())
	if err != nil {
		return nil, err
	}

	if int(msg.Header.NumRequiredSignatures) != len(sigs) {
		return nil, fmt.Errorf("%w: %d signature slots for %d required signers",
			ErrInvalidTransaction, len(sigs), msg.Header.NumRequiredSignatures)
	}

	return &Transaction{Signatures: sigs, Message: *msg}, nil
}

// DeserializeTransactionBase64 parses a base64-encoded transaction, the
// transport encoding used on the wire.
func DeserializeTransactionBase64(s string) (*Transaction, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", ErrInvalidTransaction, err)
	}
	return DeserializeTransaction(data)
}

// parseMessage parses message bytes, retaining them verbatim.
func parseMessage(data []byte) (*Message, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty message", ErrInvalidTransaction)
	}

	msg := &Message{raw: append([]byte(nil), data...), Version: versionLegacy}
	r := &byteReader{data: data}

	// A set high bit on the first byte marks a versioned message.
	if data[0]&0x80 != 0 {
		version := int(data[0] & 0x7f)
		if version != 0 {
			return nil, fmt.Errorf("%w: unsupported message version %d", ErrInvalidTransaction, version)
		}
		msg.Version = version
		r.skip(1)
	}

	hdr, err := r.read(3)
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrInvalidTransaction, err)
	}
	msg.Header = MessageHeader{
		NumRequiredSignatures: hdr[0],
		NumReadonlySigned:     hdr[1],
		NumReadonlyUnsigned:   hdr[2],
	}

	keyCount, err := r.compactU16()
	if err != nil {
		return nil, fmt.Errorf("%w: key count: %v", ErrInvalidTransaction, err)
	}
	if keyCount < int(msg.Header.NumRequiredSignatures) {
		return nil, fmt.Errorf("%w: %d keys for %d required signers",
			ErrInvalidTransaction, keyCount, msg.Header.NumRequiredSignatures)
	}
	msg.AccountKeys = make([]Pubkey, keyCount)
	for i := range msg.AccountKeys {
		b, err := r.read(PubkeyLength)
		if err != nil {
			return nil, fmt.Errorf("%w: account key %d: %v", ErrInvalidTransaction, i, err)
		}
		copy(msg.AccountKeys[i][:], b)
	}

	bh, err := r.read(32)
	if err != nil {
		return nil, fmt.Errorf("%w: blockhash: %v", ErrInvalidTransaction, err)
	}
	copy(msg.RecentBlockhash[:], bh)

	instrCount, err := r.compactU16()
	if err != nil {
		return nil, fmt.Errorf("%w: instruction count: %v", ErrInvalidTransaction, err)
	}
	msg.Instructions = make([]CompiledInstruction, instrCount)
	for i := range msg.Instructions {
		in, err := parseInstruction(r)
		if err != nil {
			return nil, fmt.Errorf("%w: instruction %d: %v", ErrInvalidTransaction, i, err)
		}
		msg.Instructions[i] = in
	}

	if msg.Version == 0 {
		lookupCount, err := r.compactU16()
		if err != nil {
			return nil, fmt.Errorf("%w: lookup count: %v", ErrInvalidTransaction, err)
		}
		msg.Lookups = make([]AddressTableLookup, lookupCount)
		for i := range msg.Lookups {
			l, err := parseLookup(r)
			if err != nil {
				return nil, fmt.Errorf("%w: lookup %d: %v", ErrInvalidTransaction, i, err)
			}
			msg.Lookups[i] = l
		}
	}

	if r.remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidTransaction, r.remaining())
	}

	return msg, nil
}

func parseInstruction(r *byteReader) (CompiledInstruction, error) {
	var in CompiledInstruction

	b, err := r.read(1)
	if err != nil {
		return in, fmt.Errorf("program index: %w", err)
	}
	in.ProgramIDIndex = b[0]

	accountCount, err := r.compactU16()
	if err != nil {
		return in, fmt.Errorf("account count: %w", err)
	}
	accounts, err := r.read(accountCount)
	if err != nil {
		return in, fmt.Errorf("account indexes: %w", err)
	}
	in.AccountIndexes = append([]uint8(nil), accounts...)

	dataLen, err := r.compactU16()
	if err != nil {
		return in, fmt.Errorf("data length: %w", err)
	}
	data, err := r.read(dataLen)
	if err != nil {
		return in, fmt.Errorf("data: %w", err)
	}
	in.Data = append([]byte(nil), data...)

	return in, nil
}

func parseLookup(r *byteReader) (AddressTableLookup, error) {
	var l AddressTableLookup

	b, err := r.read(PubkeyLength)
	if err != nil {
		return l, fmt.Errorf("table address: %w", err)
	}
	copy(l.Table[:], b)

	wCount, err := r.compactU16()
	if err != nil {
		return l, fmt.Errorf("writable count: %w", err)
	}
	w, err := r.read(wCount)
	if err != nil {
		return l, fmt.Errorf("writable indexes: %w", err)
	}
	l.WritableIndexes = append([]uint8(nil), w...)

	roCount, err := r.compactU16()
	if err != nil {
		return l, fmt.Errorf("readonly count: %w", err)
	}
	ro, err := r.read(roCount)
	if err != nil {
		return l, fmt.Errorf("readonly indexes: %w", err)
	}
	l.ReadonlyIndexes = append([]uint8(nil), ro...)

	return l, nil
}

// Serialize encodes the transaction to wire format: the signature slot array
// followed by the untouched message bytes.
func (t *Transaction) Serialize() []byte {
	out := appendCompactU16(nil, len(t.Signatures))
	for _, sig := range t.Signatures {
		out = append(out, sig[:]...)
	}
	return append(out, t.Message.raw...)
}

// SerializeBase64 encodes the transaction for transport.
func (t *Transaction) SerializeBase64() string {
	return base64.StdEncoding.EncodeToString(t.Serialize())
}

// Sign computes the keypair's signature over the message bytes and places it
// in the slot matching the keypair's position among the declared signers.
// The slot array is never reordered or resized and already-filled slots
// belonging to other keys are left untouched.
func (t *Transaction) Sign(kp *Keypair) error {
	idx := t.signerIndex(kp.Pubkey)
	if idx < 0 {
		return fmt.Errorf("key %s is not a declared signer", kp.Pubkey)
	}
	t.Signatures[idx] = kp.SignMessage(t.Message.raw)
	return nil
}

// signerIndex returns the signature slot for the pubkey, or -1.
func (t *Transaction) signerIndex(pk Pubkey) int {
	n := int(t.Message.Header.NumRequiredSignatures)
	for i := 0; i < n && i < len(t.Message.AccountKeys); i++ {
		if t.Message.AccountKeys[i] == pk {
			return i
		}
	}
	return -1
}

// MissingSigners returns the declared signer keys whose slots are still empty,
// in header order.
func (t *Transaction) MissingSigners() []Pubkey {
	var missing []Pubkey
	for i, sig := range t.Signatures {
		if sig.IsZero() {
			missing = append(missing, t.Message.AccountKeys[i])
		}
	}
	return missing
}

// byteReader tracks an offset into immutable input bytes.
type byteReader struct {
	data []byte
	off  int
}

func (r *byteReader) remaining() int { return len(r.data) - r.off }

func (r *byteReader) rest() []byte { return r.data[r.off:] }

func (r *byteReader) skip(n int) { r.off += n }

func (r *byteReader) read(n int) ([]byte, error) {
	if r.remaining() < n {
		return nil, fmt.Errorf("need %d bytes, have %d", n, r.remaining())
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

// compactU16 decodes the shortvec length prefix: 7 bits per byte,
// little-endian, high bit marks continuation, at most 3 bytes.
func (r *byteReader) compactU16() (int, error) {
	var value, shift int
	for i := 0; i < 3; i++ {
		b, err := r.read(1)
		if err != nil {
			return 0, err
		}
		value |= int(b[0]&0x7f) << shift
		if b[0]&0x80 == 0 {
			if value > 0xffff {
				return 0, fmt.Errorf("compact-u16 overflow")
			}
			return value, nil
		}
		shift += 7
	}
	return 0, fmt.Errorf("compact-u16 too long")
}

// appendCompactU16 encodes a shortvec length prefix.
func appendCompactU16(buf []byte, v int) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(buf, b)
		}
		buf = append(buf, b|0x80)
	}
}
