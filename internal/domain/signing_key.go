package domain

// KeyRole identifies which account a custodied keypair belongs to.
type KeyRole string

// Key roles.
const (
	KeyRoleConfig KeyRole = "config" // bonding-curve config account keypair
	KeyRoleMint   KeyRole = "mint"   // token mint account keypair
)

// Valid reports whether the role is a member of the closed enumeration.
func (r KeyRole) Valid() bool {
	return r == KeyRoleConfig || r == KeyRoleMint
}

// SigningKey is a server-custodied keypair generated during pool/token
// creation. Corresponds to signing_keys table in PostgreSQL.
// Identity is the composite (Wallet, Subject, Role); exactly one record
// exists per tuple.
type SigningKey struct {
	Wallet    string  // owner wallet address (base58)
	Subject   string  // public key of the account the keypair controls (base58)
	Role      KeyRole // config | mint
	SecretKey string  // full raw 64-byte ed25519 private key, base64
	CreatedAt int64   // record creation timestamp (ms)
}
