package address

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/famedly/yggdrasil-keys-go/src/keys"
)

// Golden derivation vectors. These pin the on-wire bit layout and must never
// change: an independent implementation given the same key has to compute
// byte-identical results.
var derivationVectors = []struct {
	name    string
	keyHex  string
	addrHex string
	snetHex string
}{
	{
		// No leading ones at all.
		name:    "all zero key",
		keyHex:  "0000000000000000000000000000000000000000000000000000000000000000",
		addrHex: "02000000000000000000000000000000",
		snetHex: "0300000000000000",
	},
	{
		// Degenerate: no terminating zero bit exists, count saturates.
		name:    "all ones key",
		keyHex:  "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
		addrHex: "02ff0000000000000000000000000000",
		snetHex: "03ff000000000000",
	},
	{
		name:    "single leading one",
		keyHex:  "8000000000000000000000000000000000000000000000000000000000000000",
		addrHex: "02010000000000000000000000000000",
		snetHex: "0301000000000000",
	},
	{
		name:    "two leading ones",
		keyHex:  "c000000000000000000000000000000000000000000000000000000000000000",
		addrHex: "02020000000000000000000000000000",
		snetHex: "0302000000000000",
	},
	{
		// Seven leading ones, tail crosses byte boundaries.
		name:    "seven leading ones",
		keyHex:  "feed000000000000000000000000000000000000000000000000000000000000",
		addrHex: "0207ed00000000000000000000000000",
		snetHex: "0307ed0000000000",
	},
	{
		name:    "realistic key",
		keyHex:  "551e45e3e871bf843be66a9188f7e229f198e685f169ee2dface9dcd2e518661",
		addrHex: "0200aa3c8bc7d0e37f0877ccd52311ef",
		snetHex: "0300aa3c8bc7d0e3",
	},
	{
		// RFC 8032 test 1 public key.
		name:    "ed25519 test key",
		keyHex:  "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a",
		addrHex: "0202bad4c00c158855beaa5ff69e4b20",
		snetHex: "0302bad4c00c1588",
	},
}

func TestAddress_AddrForKey(t *testing.T) {
	for _, vector := range derivationVectors {
		key, err := keys.DecodeHex(vector.keyHex)
		if err != nil {
			t.Fatal(err)
		}
		addr := AddrForKey(key)
		if addr == nil {
			t.Fatalf("%s: no address derived", vector.name)
		}
		if keys.EncodeHex(addr[:]) != vector.addrHex {
			t.Fatalf("%s: derived %s, want %s", vector.name, keys.EncodeHex(addr[:]), vector.addrHex)
		}
		if !addr.IsValid() {
			t.Fatalf("%s: derived address not in the network range", vector.name)
		}
	}
}

func TestAddress_SubnetForKey(t *testing.T) {
	for _, vector := range derivationVectors {
		key, err := keys.DecodeHex(vector.keyHex)
		if err != nil {
			t.Fatal(err)
		}
		snet := SubnetForKey(key)
		if snet == nil {
			t.Fatalf("%s: no subnet derived", vector.name)
		}
		if keys.EncodeHex(snet[:]) != vector.snetHex {
			t.Fatalf("%s: derived %s, want %s", vector.name, keys.EncodeHex(snet[:]), vector.snetHex)
		}
		if !snet.IsValid() {
			t.Fatalf("%s: derived subnet not in the network range", vector.name)
		}
	}
}

func TestAddress_Determinism(t *testing.T) {
	key := make(keys.PublicKey, keys.PublicKeySize)
	for i := 0; i < 100; i++ {
		rand.Read(key)
		first := AddrForKey(key)
		second := AddrForKey(key)
		if *first != *second {
			t.Fatalf("address derivation not deterministic for key %s", keys.EncodeHex(key))
		}
		snet := SubnetForKey(key)
		if snet[0] != first[0]|0x01 || !bytes.Equal(snet[1:], first[1:len(snet)]) {
			t.Fatalf("subnet differs from address head for key %s", keys.EncodeHex(key))
		}
	}
}

func TestAddress_WrongKeyLength(t *testing.T) {
	if AddrForKey(make(keys.PublicKey, 16)) != nil {
		t.Fatal("short key should not derive an address")
	}
	if AddrForKey(make(keys.PublicKey, 64)) != nil {
		t.Fatal("long key should not derive an address")
	}
	if SubnetForKey(nil) != nil {
		t.Fatal("nil key should not derive a subnet")
	}
}

func TestAddress_GetKey(t *testing.T) {
	key := make(keys.PublicKey, keys.PublicKeySize)
	for i := 0; i < 100; i++ {
		rand.Read(key)
		addr := AddrForKey(key)
		partial := addr.GetKey()
		// Recovery is lossy, but re-deriving from the partial key must
		// land on the same address.
		again := AddrForKey(partial)
		if *addr != *again {
			t.Fatalf("partial key does not re-derive its address for key %s", keys.EncodeHex(key))
		}
	}

	// The visible bits of the partial key must match the original.
	key, _ = keys.DecodeHex("d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a")
	partial := AddrForKey(key).GetKey()
	if !bytes.Equal(partial[:14], key[:14]) {
		t.Fatalf("recovered key prefix %s differs from original", keys.EncodeHex(partial))
	}

	snet := SubnetForKey(key)
	if !bytes.Equal(snet.GetKey()[:6], key[:6]) {
		t.Fatal("subnet key recovery differs from original")
	}
}

func TestAddress_Address_IsValid(t *testing.T) {
	var address Address
	rand.Read(address[:])

	address[0] = 0

	if address.IsValid() {
		t.Fatal("invalid address marked as valid")
	}

	address[0] = 0x03

	if address.IsValid() {
		t.Fatal("invalid address marked as valid")
	}

	address[0] = 0x02

	if !address.IsValid() {
		t.Fatal("valid address marked as invalid")
	}
}

func TestAddress_Subnet_IsValid(t *testing.T) {
	var subnet Subnet
	rand.Read(subnet[:])

	subnet[0] = 0

	if subnet.IsValid() {
		t.Fatal("invalid subnet marked as valid")
	}

	subnet[0] = 0x02

	if subnet.IsValid() {
		t.Fatal("invalid subnet marked as valid")
	}

	subnet[0] = 0x03

	if !subnet.IsValid() {
		t.Fatal("valid subnet marked as invalid")
	}
}
