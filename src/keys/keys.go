// Package keys handles the 32-byte key pairs used by nodes in the network:
// generation, the lowercase hex encoding used everywhere keys appear as
// text, and parsing of the joined secret||public record found in
// configuration files. The elliptic curve arithmetic itself is supplied by
// crypto/ed25519; this package only moves key bytes around.
package keys

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"fmt"
	"io"

	"github.com/famedly/yggdrasil-keys-go/src/bitutil"
)

const (
	// PrivateKeySize is the length of a private key in bytes. This is the
	// 32-byte seed half of an ed25519 private key.
	PrivateKeySize = 32
	// PublicKeySize is the length of a public key in bytes.
	PublicKeySize = 32
	// KeyPairSize is the length of the joined secret||public record as it
	// is stored in configuration files. It happens to equal the size of a
	// full ed25519 private key, which uses the same layout.
	KeyPairSize = PrivateKeySize + PublicKeySize
)

// PrivateKey is a node's 32-byte private key seed.
type PrivateKey []byte

// PublicKey is a node's 32-byte public key. Addresses and subnets are
// derived from these bytes alone.
type PublicKey []byte

// KeyPair holds a private key and its matching public key. The pair is
// never validated algebraically by this package; callers that need that
// guarantee should compare Public against Private.Public() themselves.
type KeyPair struct {
	Private PrivateKey
	Public  PublicKey
}

// ErrConflictingKeys is returned by FromHex when a joined record and a
// separately supplied public key disagree about the public half.
var ErrConflictingKeys = errors.New("keys: public keys in record and argument differ")

// NewKeyPair generates a fresh key pair from the supplied entropy source.
// A nil reader uses crypto/rand, matching ed25519.GenerateKey.
func NewKeyPair(rng io.Reader) (KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rng)
	if err != nil {
		return KeyPair{}, fmt.Errorf("keys: generate: %w", err)
	}
	return KeyPair{
		Private: PrivateKey(priv.Seed()),
		Public:  PublicKey(pub),
	}, nil
}

// Public derives the public key belonging to k. Returns nil if k has the
// wrong length.
func (k PrivateKey) Public() PublicKey {
	if len(k) != PrivateKeySize {
		return nil
	}
	priv := ed25519.NewKeyFromSeed(k)
	return PublicKey(priv.Public().(ed25519.PublicKey))
}

// Strength is the number of leading one bits of the key. Leading ones are
// compressed out of the derived address, so a stronger key leaves more of
// its bits visible in the address.
func (k PublicKey) Strength() int {
	return bitutil.LeadingOnes(k)
}

// ParseKeyPair splits a joined secret||public record into its two keys.
// The record must be exactly KeyPairSize bytes; anything else fails with a
// *FormatError.
func ParseKeyPair(record []byte) (KeyPair, error) {
	if len(record) != KeyPairSize {
		return KeyPair{}, &FormatError{
			Reason: fmt.Sprintf("key pair record must be %d bytes, have %d", KeyPairSize, len(record)),
			Pos:    -1,
		}
	}
	return KeyPair{
		Private: append(PrivateKey(nil), record[:PrivateKeySize]...),
		Public:  append(PublicKey(nil), record[PrivateKeySize:]...),
	}, nil
}

// ParseKeyPairHex is ParseKeyPair for the hex form of the record.
func ParseKeyPairHex(s string) (KeyPair, error) {
	record, err := DecodeHex(s)
	if err != nil {
		return KeyPair{}, err
	}
	return ParseKeyPair(record)
}

// FromHex parses a key pair the way it appears in configuration files.
// secHex holds either the private key alone or the joined secret||public
// record. pubHex optionally holds the public key and may be empty, in which
// case the public key is derived from the private key when the record
// doesn't already carry one. If both the record and pubHex carry a public
// key, the two must agree.
func FromHex(secHex, pubHex string) (KeyPair, error) {
	sec, err := DecodeHex(secHex)
	if err != nil {
		return KeyPair{}, err
	}
	var pair KeyPair
	switch len(sec) {
	case KeyPairSize:
		if pair, err = ParseKeyPair(sec); err != nil {
			return KeyPair{}, err
		}
	case PrivateKeySize:
		pair.Private = PrivateKey(sec)
	default:
		return KeyPair{}, &FormatError{
			Reason: fmt.Sprintf("private key must be %d or %d bytes, have %d", PrivateKeySize, KeyPairSize, len(sec)),
			Pos:    -1,
		}
	}
	if pubHex != "" {
		pub, err := DecodeHex(pubHex)
		if err != nil {
			return KeyPair{}, err
		}
		if len(pub) != PublicKeySize {
			return KeyPair{}, &FormatError{
				Reason: fmt.Sprintf("public key must be %d bytes, have %d", PublicKeySize, len(pub)),
				Pos:    -1,
			}
		}
		if pair.Public != nil && !bytes.Equal(pair.Public, pub) {
			return KeyPair{}, ErrConflictingKeys
		}
		pair.Public = PublicKey(pub)
	}
	if pair.Public == nil {
		pair.Public = pair.Private.Public()
	}
	return pair, nil
}

// HexSplit returns the hex forms of the private and public keys.
func (p KeyPair) HexSplit() (string, string) {
	return EncodeHex(p.Private), EncodeHex(p.Public)
}

// HexJoined returns the hex form of the joined secret||public record.
func (p KeyPair) HexJoined() string {
	sec, pub := p.HexSplit()
	return sec + pub
}
