package utils

import (
	"crypto/sha256"
	"encoding/asn1"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

var (
	ErrInvalidECPrivateKey = errors.New("invalid private key, make sure your private key is a hex encoded DER secp256k1 key")

	oidECPublicKey = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
	oidSecp256k1   = asn1.ObjectIdentifier{1, 3, 132, 0, 10}
)

// sec1PrivateKey is the RFC 5915 ECPrivateKey structure.
type sec1PrivateKey struct {
	Version       int
	PrivateKey    []byte
	NamedCurveOID asn1.ObjectIdentifier `asn1:"optional,explicit,tag:0"`
	PublicKey     asn1.BitString        `asn1:"optional,explicit,tag:1"`
}

type algorithmIdentifier struct {
	Algorithm  asn1.ObjectIdentifier
	Parameters asn1.ObjectIdentifier
}

type subjectPublicKeyInfo struct {
	Algorithm algorithmIdentifier
	PublicKey asn1.BitString
}

// ParseSecp256k1PrivateKeyHex parses a hex encoded DER (SEC1) secp256k1 private key.
func ParseSecp256k1PrivateKeyHex(privateKeyHex string) (*secp256k1.PrivateKey, error) {
	der, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("decoding hex private key: %w", ErrInvalidECPrivateKey)
	}

	var key sec1PrivateKey
	rest, err := asn1.Unmarshal(der, &key)
	if err != nil || len(rest) > 0 {
		return nil, fmt.Errorf("parsing DER private key: %w", ErrInvalidECPrivateKey)
	}
	if key.Version != 1 {
		return nil, fmt.Errorf("unsupported private key version %d: %w", key.Version, ErrInvalidECPrivateKey)
	}
	if len(key.NamedCurveOID) > 0 && !key.NamedCurveOID.Equal(oidSecp256k1) {
		return nil, fmt.Errorf("private key curve %s is not secp256k1: %w", key.NamedCurveOID, ErrInvalidECPrivateKey)
	}
	if len(key.PrivateKey) == 0 || len(key.PrivateKey) > 32 {
		return nil, fmt.Errorf("private key has an invalid length: %w", ErrInvalidECPrivateKey)
	}

	return secp256k1.PrivKeyFromBytes(key.PrivateKey), nil
}

// MarshalSecp256k1PrivateKeyHex is the inverse of ParseSecp256k1PrivateKeyHex.
func MarshalSecp256k1PrivateKeyHex(privateKey *secp256k1.PrivateKey) (string, error) {
	pub := privateKey.PubKey().SerializeUncompressed()
	der, err := asn1.Marshal(sec1PrivateKey{
		Version:       1,
		PrivateKey:    privateKey.Serialize(),
		NamedCurveOID: oidSecp256k1,
		PublicKey:     asn1.BitString{Bytes: pub, BitLength: 8 * len(pub)},
	})
	if err != nil {
		return "", fmt.Errorf("marshalling private key: %w", err)
	}
	return hex.EncodeToString(der), nil
}

// PublicKeyDERHex returns the hex encoded DER SubjectPublicKeyInfo of publicKey.
func PublicKeyDERHex(publicKey *secp256k1.PublicKey) (string, error) {
	pub := publicKey.SerializeUncompressed()
	der, err := asn1.Marshal(subjectPublicKeyInfo{
		Algorithm: algorithmIdentifier{Algorithm: oidECPublicKey, Parameters: oidSecp256k1},
		PublicKey: asn1.BitString{Bytes: pub, BitLength: 8 * len(pub)},
	})
	if err != nil {
		return "", fmt.Errorf("marshalling public key: %w", err)
	}
	return hex.EncodeToString(der), nil
}

// SignHex signs the SHA-256 digest of data and returns the DER signature hex encoded.
func SignHex(privateKey *secp256k1.PrivateKey, data []byte) string {
	digest := sha256.Sum256(data)
	return hex.EncodeToString(ecdsa.Sign(privateKey, digest[:]).Serialize())
}

// VerifyHex reports whether signatureHex is a valid DER signature of data by publicKey.
func VerifyHex(publicKey *secp256k1.PublicKey, data []byte, signatureHex string) bool {
	raw, err := hex.DecodeString(signatureHex)
	if err != nil {
		return false
	}
	sig, err := ecdsa.ParseDERSignature(raw)
	if err != nil {
		return false
	}
	digest := sha256.Sum256(data)
	return sig.Verify(digest[:], publicKey)
}
