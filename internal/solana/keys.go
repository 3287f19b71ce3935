package solana

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// Sizes of ed25519 key material.
const (
	PubkeyLength    = 32
	SecretKeyLength = 64 // full private key: seed(32) | pubkey(32)
	SignatureLength = 64
)

// Well-known program addresses.
var (
	SystemProgramID          = MustParsePubkey("11111111111111111111111111111111")
	TokenProgramID           = MustParsePubkey("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	AssociatedTokenProgramID = MustParsePubkey("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
	MetadataProgramID        = MustParsePubkey("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")
	WSOLMint                 = MustParsePubkey("So11111111111111111111111111111111111111112")
)

// pdaMarker is appended to PDA seed material per the Solana runtime.
var pdaMarker = []byte("ProgramDerivedAddress")

// Pubkey is a 32-byte ed25519 public key / account address.
type Pubkey [PubkeyLength]byte

// ParsePubkey decodes a base58 address into a Pubkey.
func ParsePubkey(s string) (Pubkey, error) {
	var pk Pubkey
	decoded, err := base58.Decode(s)
	if err != nil {
		return pk, fmt.Errorf("decode pubkey: %w", err)
	}
	if len(decoded) != PubkeyLength {
		return pk, fmt.Errorf("pubkey must be %d bytes, got %d", PubkeyLength, len(decoded))
	}
	copy(pk[:], decoded)
	return pk, nil
}

// MustParsePubkey decodes a base58 address and panics on failure.
// For package-level constants only.
func MustParsePubkey(s string) Pubkey {
	pk, err := ParsePubkey(s)
	if err != nil {
		panic(err)
	}
	return pk
}

// String returns the base58 form of the pubkey.
func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// IsZero reports whether the pubkey is all zeroes.
func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

// Keypair is an ed25519 signing keypair.
type Keypair struct {
	Pubkey  Pubkey
	private ed25519.PrivateKey
}

// GenerateKeypair creates a fresh random keypair.
func GenerateKeypair() (*Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate ed25519 key: %w", err)
	}
	var pk Pubkey
	copy(pk[:], pub)
	return &Keypair{Pubkey: pk, private: priv}, nil
}

// KeypairFromSecretKey reconstructs a keypair from the full 64-byte private key.
// A 32-byte seed is rejected: custodied keys are always stored in full form.
func KeypairFromSecretKey(secret []byte) (*Keypair, error) {
	if len(secret) != SecretKeyLength {
		return nil, fmt.Errorf("secret key must be %d bytes, got %d", SecretKeyLength, len(secret))
	}
	priv := ed25519.PrivateKey(append([]byte(nil), secret...))
	var pk Pubkey
	copy(pk[:], priv.Public().(ed25519.PublicKey))
	return &Keypair{Pubkey: pk, private: priv}, nil
}

// KeypairFromBase64 reconstructs a keypair from a base64-encoded secret key,
// the form custodied keys are persisted in.
func KeypairFromBase64(s string) (*Keypair, error) {
	secret, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode secret key: %w", err)
	}
	return KeypairFromSecretKey(secret)
}

// KeypairFromBase58 reconstructs a keypair from a base58-encoded secret key,
// the form wallet exports use.
func KeypairFromBase58(s string) (*Keypair, error) {
	secret, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("decode secret key: %w", err)
	}
	return KeypairFromSecretKey(secret)
}

// SecretKeyBase64 returns the full private key encoded for persistence.
func (k *Keypair) SecretKeyBase64() string {
	return base64.StdEncoding.EncodeToString(k.private)
}

// SignMessage signs arbitrary message bytes. Ed25519 is deterministic:
// the same key and message always produce the same signature.
func (k *Keypair) SignMessage(message []byte) [SignatureLength]byte {
	var sig [SignatureLength]byte
	copy(sig[:], ed25519.Sign(k.private, message))
	return sig
}

// isOnCurve reports whether the 32 bytes decode to a valid edwards25519 point.
// PDAs must NOT be on the curve so no private key can exist for them.
func isOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

// CreateProgramAddress derives the address for the given seeds and program.
// Fails if the derived point lands on the curve.
func CreateProgramAddress(seeds [][]byte, programID Pubkey) (Pubkey, error) {
	h := sha256.New()
	for _, seed := range seeds {
		if len(seed) > 32 {
			return Pubkey{}, fmt.Errorf("seed exceeds 32 bytes: %d", len(seed))
		}
		h.Write(seed)
	}
	h.Write(programID[:])
	h.Write(pdaMarker)

	sum := h.Sum(nil)
	if isOnCurve(sum) {
		return Pubkey{}, fmt.Errorf("derived address is on curve")
	}

	var pk Pubkey
	copy(pk[:], sum)
	return pk, nil
}

// FindProgramAddress searches bump seeds from 255 downward until the
// derivation falls off the curve, as the Solana runtime does.
func FindProgramAddress(seeds [][]byte, programID Pubkey) (Pubkey, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		full := append(append([][]byte{}, seeds...), []byte{byte(bump)})
		pk, err := CreateProgramAddress(full, programID)
		if err == nil {
			return pk, uint8(bump), nil
		}
	}
	return Pubkey{}, 0, fmt.Errorf("no valid program address for seeds")
}

// FindAssociatedTokenAddress derives the associated token account for a
// wallet and mint.
func FindAssociatedTokenAddress(wallet, mint Pubkey) (Pubkey, error) {
	addr, _, err := FindProgramAddress(
		[][]byte{wallet[:], TokenProgramID[:], mint[:]},
		AssociatedTokenProgramID,
	)
	if err != nil {
		return Pubkey{}, fmt.Errorf("derive associated token address: %w", err)
	}
	return addr, nil
}
