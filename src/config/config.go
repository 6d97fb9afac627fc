// Package config holds the persistent configuration for a node's keys and
// the helpers for reading and writing it. Configuration files are written
// in HJSON, with plain JSON accepted on input, and store both halves of the
// key pair as lowercase hex.
package config

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io"

	"github.com/hjson/hjson-go/v4"
	"github.com/mitchellh/mapstructure"

	"github.com/famedly/yggdrasil-keys-go/src/keys"
)

// NodeConfig defines the configuration values for a node's identity.
type NodeConfig struct {
	PrivateKey string `comment:"Your private key. DO NOT share this with anyone! This is either\nthe private key alone or the private and public keys joined, as\nwritten by -genconf."`
	PublicKey  string `comment:"Your public key. Your peers may ask you for this so that they can\nderive your address and subnet. Optional: it is derived from the\nprivate key when missing."`
}

// GenerateConfig produces a configuration with a fresh key pair. This is
// used when outputting the -genconf parameter.
func GenerateConfig() *NodeConfig {
	cfg := NodeConfig{}
	if err := cfg.NewKeys(); err != nil {
		panic(err)
	}
	return &cfg
}

// NewKeys replaces the keys in the configuration with a fresh pair.
func (cfg *NodeConfig) NewKeys() error {
	pair, err := keys.NewKeyPair(nil)
	if err != nil {
		return err
	}
	cfg.PrivateKey = pair.HexJoined()
	cfg.PublicKey = keys.EncodeHex(pair.Public)
	return nil
}

// KeyPair parses the keys out of the configuration. Missing public keys are
// derived; a public key that contradicts the private key record is an error.
func (cfg *NodeConfig) KeyPair() (keys.KeyPair, error) {
	return keys.FromHex(cfg.PrivateKey, cfg.PublicKey)
}

// ReadFrom reads HJSON/JSON configuration from r into cfg, renaming fields
// from older configuration formats along the way.
func (cfg *NodeConfig) ReadFrom(r io.Reader) (int64, error) {
	conf, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	n := int64(len(conf))
	if err := cfg.UnmarshalHJSON(conf); err != nil {
		return n, err
	}
	return n, nil
}

// UnmarshalHJSON decodes conf, which may be HJSON or JSON, into cfg.
func (cfg *NodeConfig) UnmarshalHJSON(conf []byte) error {
	var dat map[string]interface{}
	if err := hjson.Unmarshal(conf, &dat); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	// Older configurations carried separate signing and encryption pairs.
	// Addresses are derived from the signing keys these days, so adopt
	// those when the current names are absent.
	changes := map[string]string{
		"SigningPrivateKey": "PrivateKey",
		"SigningPublicKey":  "PublicKey",
	}
	for from, to := range changes {
		if _, ok := dat[from]; ok {
			if _, ok := dat[to]; !ok {
				dat[to] = dat[from]
			}
		}
	}
	if err := mapstructure.Decode(dat, cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// MarshalPEMPrivateKey exports the configured private key as a PKCS#8 PEM
// block, for use with tools that expect standard ed25519 key files.
func (cfg *NodeConfig) MarshalPEMPrivateKey() ([]byte, error) {
	pair, err := cfg.KeyPair()
	if err != nil {
		return nil, err
	}
	record, err := keys.DecodeHex(pair.HexJoined())
	if err != nil {
		return nil, err
	}
	der, err := x509.MarshalPKCS8PrivateKey(ed25519.PrivateKey(record))
	if err != nil {
		return nil, err
	}
	block := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: der,
	}
	return pem.EncodeToMemory(block), nil
}
