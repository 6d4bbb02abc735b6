package httpclient

import (
	"encoding/base64"
	"fmt"
)

// AuthType identifies the authentication method.
type AuthType int

const (
	// AuthNone disables authentication.
	AuthNone AuthType = iota
	// AuthBearer uses Bearer token authentication.
	AuthBearer
	// AuthBasic uses HTTP Basic authentication.
	AuthBasic
	// AuthAPIKey uses API key authentication (header or query parameter).
	AuthAPIKey
	// AuthCustom uses a custom request modifier function.
	AuthCustom
)

// AuthConfig configures request authentication. Strategies are pure: apply
// decorates the per-attempt request copy and touches no shared state, so a
// single AuthConfig is safe for concurrent use.
type AuthConfig struct {
	// Type is the authentication method.
	Type AuthType
	// Token is the bearer token (AuthBearer).
	Token string
	// Username is the basic auth username (AuthBasic).
	Username string
	// Password is the basic auth password (AuthBasic).
	Password string
	// Key is the API key value (AuthAPIKey).
	Key string
	// In specifies where to place the API key: "header" (default) or "query".
	In string
	// Name is the header or query parameter name (AuthAPIKey).
	// Defaults to "X-API-Key".
	Name string
	// Apply is a custom function to modify the request (AuthCustom).
	Apply func(*Request)
}

// NoAuth creates a pass-through auth config.
func NoAuth() *AuthConfig {
	return &AuthConfig{Type: AuthNone}
}

// BearerAuth creates a bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// BasicAuth creates a basic auth config.
func BasicAuth(username, password string) *AuthConfig {
	return &AuthConfig{Type: AuthBasic, Username: username, Password: password}
}

// APIKeyAuth creates an API key auth config sent via the X-API-Key header.
func APIKeyAuth(key string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: "header", Name: "X-API-Key"}
}

// APIKeyAuthHeader creates an API key auth config with a custom header name.
func APIKeyAuthHeader(key, headerName string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: "header", Name: headerName}
}

// APIKeyAuthQuery creates an API key auth config sent via query parameter.
func APIKeyAuthQuery(key, paramName string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: "query", Name: paramName}
}

// CustomAuth creates a custom auth config with a request modifier function.
func CustomAuth(fn func(*Request)) *AuthConfig {
	return &AuthConfig{Type: AuthCustom, Apply: fn}
}

// Validate checks that the configuration is complete for its type.
func (a *AuthConfig) Validate() error {
	if a == nil {
		return nil
	}
	switch a.Type {
	case AuthNone:
		return nil
	case AuthBearer:
		if a.Token == "" {
			return fmt.Errorf("httpclient: bearer auth requires a token")
		}
	case AuthBasic:
		if a.Username == "" {
			return fmt.Errorf("httpclient: basic auth requires a username")
		}
	case AuthAPIKey:
		if a.Key == "" {
			return fmt.Errorf("httpclient: api-key auth requires a key")
		}
		if a.In != "" && a.In != "header" && a.In != "query" {
			return fmt.Errorf("httpclient: api-key auth placement must be header or query (got %q)", a.In)
		}
	case AuthCustom:
		if a.Apply == nil {
			return fmt.Errorf("httpclient: custom auth requires an Apply function")
		}
	default:
		return fmt.Errorf("httpclient: unknown auth type %d", a.Type)
	}
	return nil
}

// apply decorates the request with credentials.
func (a *AuthConfig) apply(req *Request) {
	if a == nil {
		return
	}
	switch a.Type {
	case AuthBearer:
		req.SetHeader("Authorization", "Bearer "+a.Token)
	case AuthBasic:
		credentials := base64.StdEncoding.EncodeToString([]byte(a.Username + ":" + a.Password))
		req.SetHeader("Authorization", "Basic "+credentials)
	case AuthAPIKey:
		name := a.Name
		if name == "" {
			name = "X-API-Key"
		}
		if a.In == "query" {
			req.AddQuery(name, a.Key)
		} else {
			req.SetHeader(name, a.Key)
		}
	case AuthCustom:
		if a.Apply != nil {
			a.Apply(req)
		}
	}
}
