package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	// ErrTokenMalformed is returned when a token cannot be parsed at all.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrTokenSignature is returned when a token was signed with the wrong secret.
	ErrTokenSignature = errors.New("token signature invalid")
	// ErrTokenExpired is returned when a token's expiry has passed.
	ErrTokenExpired = errors.New("token expired")
)

// Claims represents JWT claims carried by both token kinds.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenPair bundles a freshly signed access and refresh token.
type TokenPair struct {
	Access  string
	Refresh string
}

// JWTService signs and verifies the access/refresh token pair. The two kinds
// use independent secrets so that compromise of one cannot forge the other.
type JWTService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTService creates a JWT service with separate access and refresh secrets.
func NewJWTService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTService {
	return &JWTService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// AccessTTL returns the configured access token lifetime.
func (s *JWTService) AccessTTL() time.Duration { return s.accessTTL }

// RefreshTTL returns the configured refresh token lifetime.
func (s *JWTService) RefreshTTL() time.Duration { return s.refreshTTL }

// SignAccess signs a short-lived access token for the user.
func (s *JWTService) SignAccess(userID uuid.UUID) (string, error) {
	return s.sign(userID, s.accessSecret, s.accessTTL)
}

// SignRefresh signs a long-lived refresh token for the user.
func (s *JWTService) SignRefresh(userID uuid.UUID) (string, error) {
	return s.sign(userID, s.refreshSecret, s.refreshTTL)
}

// SignPair signs a fresh access+refresh pair for the user.
func (s *JWTService) SignPair(userID uuid.UUID) (TokenPair, error) {
	access, err := s.SignAccess(userID)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.SignRefresh(userID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// VerifyAccess verifies an access token and returns its claims.
func (s *JWTService) VerifyAccess(tokenString string) (*Claims, error) {
	return s.verify(tokenString, s.accessSecret)
}

// VerifyRefresh verifies a refresh token and returns its claims.
func (s *JWTService) VerifyRefresh(tokenString string) (*Claims, error) {
	return s.verify(tokenString, s.refreshSecret)
}

func (s *JWTService) sign(userID uuid.UUID, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (s *JWTService) verify(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignature
		}
		return secret, nil
	})
	if err != nil {
		return nil, classifyParseError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// classifyParseError collapses jwt/v4 validation flags into the three
// failure classes callers care about. Expiry wins over other flags so an
// expired token reports expiry regardless of signature state.
func classifyParseError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrTokenExpired
	}
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, ErrTokenSignature) {
		return ErrTokenSignature
	}
	return ErrTokenMalformed
}

// SubjectID parses the user id carried by verified claims.
func (c *Claims) SubjectID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}
