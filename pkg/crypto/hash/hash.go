package hash

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/nspcc-dev/syrup/pkg/syrup"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // RIPEMD-160 is a part of Hash160.
)

// Uint256 is a 32-byte SHA-256 digest.
type Uint256 [sha256.Size]byte

// Uint160 is a 20-byte RIPEMD-160 digest.
type Uint160 [ripemd160.Size]byte

// StringBE returns hex representation of the digest in the byte order it
// was produced in.
func (u Uint256) StringBE() string {
	return hex.EncodeToString(u[:])
}

// StringBE returns hex representation of the digest in the byte order it
// was produced in.
func (u Uint160) StringBE() string {
	return hex.EncodeToString(u[:])
}

// Sha256 hashes the incoming byte slice using the sha256 algorithm.
func Sha256(data []byte) Uint256 {
	return sha256.Sum256(data)
}

// DoubleSha256 performs sha256 twice on the given data.
func DoubleSha256(data []byte) Uint256 {
	h := Sha256(data)
	return Sha256(h[:])
}

// RipeMD160 performs the RIPEMD160 hash algorithm on the given data.
func RipeMD160(data []byte) Uint160 {
	var hash Uint160
	hasher := ripemd160.New()
	_, _ = hasher.Write(data)
	hasher.Sum(hash[:0])
	return hash
}

// Hash160 performs sha256 and then ripemd160 on the given data.
func Hash160(data []byte) Uint160 {
	h := Sha256(data)
	return RipeMD160(h[:])
}

// Item returns SHA-256 digest of the item's canonical encoding. Equal
// items always have equal digests no matter how they were constructed.
func Item(item syrup.Item) (Uint256, error) {
	b, err := syrup.Serialize(item)
	if err != nil {
		return Uint256{}, err
	}
	return Sha256(b), nil
}
