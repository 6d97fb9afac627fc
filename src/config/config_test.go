package config

import (
	"bytes"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/famedly/yggdrasil-keys-go/src/keys"
)

func TestConfig_Keys(t *testing.T) {
	var nodeConfig NodeConfig
	if err := nodeConfig.NewKeys(); err != nil {
		t.Fatal(err)
	}

	publicKey1, err := keys.DecodeHex(nodeConfig.PublicKey)

	if err != nil {
		t.Fatal("can not decode generated public key")
	}

	if len(publicKey1) == 0 {
		t.Fatal("empty public key generated")
	}

	privateKey1, err := keys.DecodeHex(nodeConfig.PrivateKey)

	if err != nil {
		t.Fatal("can not decode generated private key")
	}

	if len(privateKey1) != keys.KeyPairSize {
		t.Fatal("private key field should hold the joined record")
	}

	if err := nodeConfig.NewKeys(); err != nil {
		t.Fatal(err)
	}

	publicKey2, err := keys.DecodeHex(nodeConfig.PublicKey)

	if err != nil {
		t.Fatal("can not decode generated public key")
	}

	if bytes.Equal(publicKey2, publicKey1) {
		t.Fatal("same public key generated")
	}

	privateKey2, err := keys.DecodeHex(nodeConfig.PrivateKey)

	if err != nil {
		t.Fatal("can not decode generated private key")
	}

	if bytes.Equal(privateKey2, privateKey1) {
		t.Fatal("same private key generated")
	}
}

func TestConfig_KeyPair(t *testing.T) {
	cfg := GenerateConfig()
	pair, err := cfg.KeyPair()
	if err != nil {
		t.Fatal(err)
	}
	if pair.HexJoined() != cfg.PrivateKey {
		t.Fatal("parsed pair does not match the configured record")
	}

	// The public key is optional in the file.
	cfg.PublicKey = ""
	derived, err := cfg.KeyPair()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(derived.Public, pair.Public) {
		t.Fatal("derived public key differs from the configured one")
	}
}

func TestConfig_ReadFrom(t *testing.T) {
	reference := GenerateConfig()
	doc := `{
		# A comment, because this is HJSON.
		PrivateKey: ` + reference.PrivateKey + `
		PublicKey: ` + reference.PublicKey + `
	}`

	var cfg NodeConfig
	if _, err := cfg.ReadFrom(strings.NewReader(doc)); err != nil {
		t.Fatal(err)
	}
	if cfg.PrivateKey != reference.PrivateKey || cfg.PublicKey != reference.PublicKey {
		t.Fatal("configuration fields not populated")
	}
}

func TestConfig_ReadFrom_LegacyNames(t *testing.T) {
	reference := GenerateConfig()
	doc := `{
		SigningPrivateKey: ` + reference.PrivateKey + `
		SigningPublicKey: ` + reference.PublicKey + `
	}`

	var cfg NodeConfig
	if _, err := cfg.ReadFrom(strings.NewReader(doc)); err != nil {
		t.Fatal(err)
	}
	if cfg.PrivateKey != reference.PrivateKey {
		t.Fatal("legacy private key field not migrated")
	}
	if cfg.PublicKey != reference.PublicKey {
		t.Fatal("legacy public key field not migrated")
	}
}

func TestConfig_MarshalPEMPrivateKey(t *testing.T) {
	cfg := GenerateConfig()
	pemBytes, err := cfg.MarshalPEMPrivateKey()
	if err != nil {
		t.Fatal(err)
	}
	block, rest := pem.Decode(pemBytes)
	if block == nil || len(rest) != 0 {
		t.Fatal("exported key is not a single PEM block")
	}
	if block.Type != "PRIVATE KEY" {
		t.Fatal("unexpected PEM block type", block.Type)
	}
}
