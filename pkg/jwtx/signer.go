package jwtx

import (
	"crypto"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Sign mints a compact JWS over claims with the kid header set. Only dev
// tooling signs; the service verifies.
func Sign(alg, kid string, key crypto.Signer, claims Claims) (string, error) {
	var method jwt.SigningMethod
	switch alg {
	case AlgEdDSA:
		method = jwt.SigningMethodEdDSA
	case AlgES256:
		method = jwt.SigningMethodES256
	case AlgRS256:
		method = jwt.SigningMethodRS256
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlg, alg)
	}

	tok := jwt.NewWithClaims(method, claims)
	tok.Header["kid"] = kid
	return tok.SignedString(key)
}
