// Package address contains the types used to represent IPv6 addresses or
// prefixes in the overlay address range, as well as the functions used to
// derive them from a node's public key, or to recover the visible part of a
// key from an address.
//
// Derivation is a pure function of the public key bytes: two processes
// holding the same key always compute bit-identical results. The mapping is
// deliberately lossy and makes no attempt to be injective.
package address

import (
	"github.com/famedly/yggdrasil-keys-go/src/bitutil"
	"github.com/famedly/yggdrasil-keys-go/src/keys"
)

// Address represents an IPv6 address in the network address range.
type Address [16]byte

// Subnet represents an IPv6 /64 subnet in the network subnet range. Only
// the 64 significant bits are stored; everything past them is zero.
type Subnet [8]byte

// SubnetPrefixLength is the routed prefix length of every Subnet.
const SubnetPrefixLength = 64

// GetPrefix returns the address prefix used by the network, currently
// 200::/7. This is a protocol constant shared with every peer; nodes that
// configure it differently compute addresses that the rest of the network
// will not route. The 8th bit of the last byte is used to distinguish
// addresses (0) from /64 prefixes (1).
func GetPrefix() [1]byte {
	return [...]byte{0x02}
}

// IsValid returns true if an address falls within the range used by nodes
// in the network.
func (a *Address) IsValid() bool {
	prefix := GetPrefix()
	for idx := range prefix {
		if (*a)[idx] != prefix[idx] {
			return false
		}
	}
	return true
}

// IsValid returns true if a prefix falls within the range usable by the
// network.
func (s *Subnet) IsValid() bool {
	prefix := GetPrefix()
	l := len(prefix)
	for idx := range prefix[:l-1] {
		if (*s)[idx] != prefix[idx] {
			return false
		}
	}
	return (*s)[l-1] == prefix[l-1]|0x01
}

// AddrForKey takes a public key as an argument and returns an *Address.
// This function returns nil if the key length is not keys.PublicKeySize.
// The address begins with the contents of GetPrefix(), with the last bit
// set to 0 to indicate an address. The following 8 bits are set to the
// number of leading 1 bits in the key. The key, excluding the leading 1
// bits and the first leading 0 bit, is truncated to the appropriate length
// and makes up the remainder of the address, padded with zero bits if the
// key runs out first.
func AddrForKey(publicKey keys.PublicKey) *Address {
	// 128 bit address
	// Begins with prefix
	// Next bit is a 0
	// Next 7 bits, interpreted as a uint, are # of leading 1s in the key
	// Leading 1s and the first leading 0 of the key are truncated off
	// The rest is appended to the IPv6 address (truncated to 128 bits total)
	if len(publicKey) != keys.PublicKeySize {
		return nil
	}
	prefix := GetPrefix()
	var addr Address
	copy(addr[:], prefix[:])
	ones := bitutil.LeadingOnes(publicKey)
	if ones >= 8*keys.PublicKeySize {
		// All-ones key: there is no terminating 0 bit to strip, so the
		// count field saturates and no key bits remain for the tail.
		addr[len(prefix)] = 0xff
		return &addr
	}
	addr[len(prefix)] = byte(ones)
	remaining := 8*keys.PublicKeySize - (ones + 1)
	if space := 8 * (len(addr) - len(prefix) - 1); remaining > space {
		remaining = space
	}
	// The offsets above never leave the key buffer, so this cannot fail.
	tail, _ := bitutil.Extract(publicKey, ones+1, remaining)
	copy(addr[len(prefix)+1:], tail)
	return &addr
}

// SubnetForKey takes a public key as an argument and returns a *Subnet.
// This function returns nil if the key length is not keys.PublicKeySize.
// The subnet begins with the address prefix, with the last bit set to 1 to
// indicate a prefix, and is otherwise laid out exactly like the address,
// truncated to the 64 significant bits.
func SubnetForKey(publicKey keys.PublicKey) *Subnet {
	addr := AddrForKey(publicKey)
	if addr == nil {
		return nil
	}
	var snet Subnet
	copy(snet[:], addr[:])
	prefix := GetPrefix()
	snet[len(prefix)-1] |= 0x01
	return &snet
}

// GetKey returns the partial public key for the Address. The bits past the
// end of the address are unknowable and left as zero; derivation is lossy,
// so this is only useful for key lookup, not for recovering a key.
func (a *Address) GetKey() keys.PublicKey {
	var key [keys.PublicKeySize]byte
	prefix := GetPrefix()
	ones := int(a[len(prefix)])
	for idx := 0; idx < ones && idx < 8*len(key); idx++ {
		key[idx/8] |= 0x80 >> byte(idx%8)
	}
	keyOffset := ones + 1
	addrOffset := 8 * (len(prefix) + 1)
	for idx := addrOffset; idx < 8*len(a); idx++ {
		keyIdx := keyOffset + (idx - addrOffset)
		if keyIdx >= 8*len(key) {
			break
		}
		bit := (a[idx/8] >> byte(7-idx%8)) & 1
		key[keyIdx/8] |= bit << byte(7-keyIdx%8)
	}
	return keys.PublicKey(key[:])
}

// GetKey returns the partial public key for the Subnet. This is used for
// key lookup.
func (s *Subnet) GetKey() keys.PublicKey {
	var addr Address
	copy(addr[:], s[:])
	return addr.GetKey()
}
