package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrMissingSecret = errors.New("cv link secret is not configured")
)

// CVClaims identifies the candidate a shared CV link exposes.
type CVClaims struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	SharedBy    uuid.UUID `json:"shared_by"`
	jwt.RegisteredClaims
}

// Signer mints and checks CV link tokens with one HMAC secret.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock overrides the signing clock. Used by tests.
func (s *Signer) WithClock(now func() time.Time) *Signer {
	s.now = now
	return s
}

// Generate returns a signed token valid for the signer TTL and its expiry.
func (s *Signer) Generate(candidateID, sharedBy uuid.UUID) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, ErrMissingSecret
	}
	issued := s.now()
	expires := issued.Add(s.ttl)

	claims := &CVClaims{
		CandidateID: candidateID,
		SharedBy:    sharedBy,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(issued),
			Issuer:    "uhs-recruit",
			Subject:   candidateID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Parse validates signature and expiry.
func (s *Signer) Parse(tokenString string) (*CVClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CVClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithIssuer("uhs-recruit"))

	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*CVClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
