package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

const (
	// WalkerIDClaim is the claim carrying the walker a token was issued to.
	WalkerIDClaim = "walker_id"

	issuerClaim     = "iss"
	expirationClaim = "exp"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrInvalidIssuer  = errors.New("token issued by another service")
	ErrMissingWalker  = errors.New("token does not identify a walker")
	ErrUnexpectedAlgo = errors.New("unexpected signing method")
)

var _ i.Tokenizer = &JwtService{}

// JwtService signs and verifies HS256 tokens stamped with the service issuer.
type JwtService struct {
	secretKey string
	issuer    string
}

// NewJwtService creates a new JWT Service with the provided configuration.
func NewJwtService(secretKey, issuer string) *JwtService {
	return &JwtService{
		secretKey: secretKey,
		issuer:    issuer,
	}
}

// Generate creates a JWT for the given claims. The issuer and expiry claims are always set by the service.
func (s *JwtService) Generate(claims map[string]interface{}, expTime time.Duration) (string, error) {
	jwtClaims := jwt.MapClaims{}
	for key, val := range claims {
		jwtClaims[key] = val
	}
	jwtClaims[expirationClaim] = time.Now().UTC().Add(expTime).Unix()
	jwtClaims[issuerClaim] = s.issuer

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	return token.SignedString([]byte(s.secretKey))
}

// Decode parses and validates a JWT, returning the claims if valid.
func (s *JwtService) Decode(tokenString string) (map[string]interface{}, error) {
	token, err := jwt.Parse(tokenString, s.getSigningKey)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if !claims.VerifyIssuer(s.issuer, true) {
		return nil, ErrInvalidIssuer
	}

	return claims, nil
}

// WalkerToken issues a token identifying walker id.
func (s *JwtService) WalkerToken(id uuid.UUID, expTime time.Duration) (string, error) {
	return s.Generate(map[string]interface{}{WalkerIDClaim: id.String()}, expTime)
}

// WalkerID extracts the walker identifier from decoded claims.
func WalkerID(claims map[string]interface{}) (uuid.UUID, error) {
	raw, ok := claims[WalkerIDClaim].(string)
	if !ok {
		return uuid.Nil, ErrMissingWalker
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrMissingWalker, err)
	}
	return id, nil
}

// getSigningKey returns the signing key for token validation.
func (s *JwtService) getSigningKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrUnexpectedAlgo
	}
	return []byte(s.secretKey), nil
}
