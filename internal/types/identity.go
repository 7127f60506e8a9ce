package types

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// IdentitySize is the length in bytes of a validator node identity.
const IdentitySize = 32

// Identity is the public key of a validator node. It is comparable and can be
// used as a map key.
type Identity [IdentitySize]byte

// ParseIdentity decodes the base58 text form of a node identity.
func ParseIdentity(s string) (Identity, error) {
	var id Identity
	if s == "" {
		return id, fmt.Errorf("empty identity")
	}

	raw := base58.Decode(s)
	if len(raw) != IdentitySize {
		// base58.Decode returns an empty slice on invalid characters
		return id, fmt.Errorf("invalid identity %q: decoded to %d bytes, want %d", s, len(raw), IdentitySize)
	}
	copy(id[:], raw)

	return id, nil
}

func (id Identity) String() string {
	return base58.Encode(id[:])
}

func (id Identity) IsZero() bool {
	return id == Identity{}
}

func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *Identity) UnmarshalText(text []byte) error {
	parsed, err := ParseIdentity(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
