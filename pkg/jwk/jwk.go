// Package jwk derives the server's JSON Web Key from its signing key
// pair.
package jwk

import (
	"crypto"
	"crypto/sha256"
	"encoding/hex"

	"github.com/convenehq/convene/pkg/config"
	"github.com/go-jose/go-jose/v3"
	"github.com/golang-jwt/jwt/v5"
)

// SigningMethod signs and verifies session tokens with the server's
// Ed25519 key.
var SigningMethod = &jwt.SigningMethodEd25519{}

// Pair couples the server private key with its public JWK.
type Pair struct {
	privateKey crypto.PrivateKey
	public     jose.JSONWebKey
}

// PrivateKey returns the signing key.
func (p Pair) PrivateKey() crypto.PrivateKey { return p.privateKey }

// JWK returns the public half as a JSON Web Key.
func (p Pair) JWK() jose.JSONWebKey { return p.public }

// NewPair loads the configured key pair and derives its JWK. The key id
// is the hex encoded sha256 of the raw private key, stable for the life
// of the key.
func NewPair(cfg *config.Config) (Pair, error) {
	kp, err := config.KeyPair(cfg)
	if err != nil {
		return Pair{}, err
	}

	sum := sha256.Sum256(kp.RawPrivateKey())
	public := jose.JSONWebKey{
		Key:       kp.CryptoPublicKey(),
		KeyID:     hex.EncodeToString(sum[:]),
		Algorithm: SigningMethod.Alg(),
		Use:       "sig",
	}

	return Pair{privateKey: kp.PrivateKey(), public: public}, nil
}
