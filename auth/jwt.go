// Package auth provides JWT token generation and validation for the API
// server. Tokens are HMAC-signed; the claims type is fixed to the small set
// of fields the parts API cares about.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token fails signature or time checks.
var ErrInvalidToken = errors.New("auth: invalid token")

// Claims are the token claims issued and accepted by the parts API.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// Config configures the token service.
type Config struct {
	// Secret is the HMAC signing key.
	Secret string `yaml:"secret" mapstructure:"secret"`
	// Issuer is the "iss" claim stamped on issued tokens.
	Issuer string `yaml:"issuer" mapstructure:"issuer"`
	// TokenTTL is the lifetime of issued tokens. Defaults to 15m.
	TokenTTL time.Duration `yaml:"token_ttl" mapstructure:"token_ttl"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.TokenTTL <= 0 {
		c.TokenTTL = 15 * time.Minute
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("auth: secret is required")
	}
	return nil
}

// Service issues and validates HS256-signed tokens.
type Service struct {
	cfg Config
}

// NewService creates a token service.
func NewService(cfg Config) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{cfg: cfg}, nil
}

// Generate creates a signed token for the subject.
func (s *Service) Generate(subject, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Parse validates a token string and returns its claims.
func (s *Service) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(s.cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateMap parses a token and flattens its claims into a map, the shape
// the server auth middleware stores in the request context.
func (s *Service) ValidateMap(tokenString string) (map[string]interface{}, error) {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	m := map[string]interface{}{
		"subject": claims.Subject,
	}
	if claims.Role != "" {
		m["role"] = claims.Role
	}
	return m, nil
}
