package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	authorizer "github.com/localnerve/authorizer-go"
	"github.com/roomfinder/roomfinder-api/internal/config"
	"github.com/roomfinder/roomfinder-api/internal/types"
	"github.com/roomfinder/roomfinder-api/internal/utils"
)

// Authenticator turns a bearer token into a session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*types.Session, error)
	Ping(ctx context.Context) error
}

// NewAuthenticator builds the authenticator selected by AUTH_PROVIDER.
func NewAuthenticator(cfg *config.Config) (Authenticator, error) {
	switch cfg.AuthProvider {
	case config.AuthProviderAuthorizer:
		return NewAuthorizerAuthenticator(cfg.AuthzURL, cfg.AuthzClientID, cfg.PublicBaseURL)
	case config.AuthProviderJWT:
		return NewJWTAuthenticator(cfg.AuthJWTSecret), nil
	}
	return nil, fmt.Errorf("unsupported auth provider: %s", cfg.AuthProvider)
}

// AuthorizerAuthenticator validates access tokens against an Authorizer instance.
type AuthorizerAuthenticator struct {
	client *authorizer.AuthorizerClient
	url    string
}

// NewAuthorizerAuthenticator pings the Authorizer service and creates its client.
func NewAuthorizerAuthenticator(authzURL, clientID, redirectURL string) (*AuthorizerAuthenticator, error) {
	if err := utils.PingAuthorizer(context.Background(), authzURL); err != nil {
		return nil, fmt.Errorf("authorizer ping failed: %w", err)
	}

	log.Printf("Initializing Authorizer: authorizerURL=%s, clientID=%s, redirectURL=%s",
		authzURL, clientID, redirectURL)

	client, err := authorizer.NewAuthorizerClient(clientID, authzURL, redirectURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create authorizer client: %w", err)
	}
	return &AuthorizerAuthenticator{client: client, url: authzURL}, nil
}

// Authenticate validates token as an access token and reads the session from its claims.
func (a *AuthorizerAuthenticator) Authenticate(ctx context.Context, token string) (*types.Session, error) {
	res, err := a.client.ValidateJWTToken(&authorizer.ValidateJWTTokenInput{
		TokenType: authorizer.TokenTypeAccessToken,
		Token:     token,
	})
	if err != nil {
		return nil, types.AuthError("invalid token", err)
	}
	if res == nil || !res.IsValid {
		return nil, types.AuthError("invalid token", nil)
	}
	return SessionFromClaims(res.Claims)
}

// Ping checks the Authorizer service is reachable.
func (a *AuthorizerAuthenticator) Ping(ctx context.Context) error {
	return utils.PingAuthorizer(ctx, a.url)
}

// JWTAuthenticator validates HS256 tokens signed with a shared secret.
type JWTAuthenticator struct {
	secret []byte
}

// NewJWTAuthenticator returns an authenticator for tokens signed with secret.
func NewJWTAuthenticator(secret string) *JWTAuthenticator {
	return &JWTAuthenticator{secret: []byte(secret)}
}

// Authenticate verifies the signature and expiry of token.
func (a *JWTAuthenticator) Authenticate(ctx context.Context, token string) (*types.Session, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, types.AuthError("invalid token", err)
	}
	if !parsed.Valid {
		return nil, types.AuthError("invalid token", nil)
	}
	return SessionFromClaims(claims)
}

// Ping always succeeds; there is nothing remote to reach.
func (a *JWTAuthenticator) Ping(ctx context.Context) error {
	return nil
}

// SignToken issues an HS256 token for session. Used by the admin CLI and tests.
// The role goes in user_metadata like a signup choice; admin is granted through roles.
func (a *JWTAuthenticator) SignToken(session types.Session, claims jwt.MapClaims) (string, error) {
	if claims == nil {
		claims = jwt.MapClaims{}
	}
	claims["sub"] = session.UserID
	claims["email"] = session.Email
	claims["user_metadata"] = map[string]any{"role": session.Role}
	if session.Role == types.RoleAdmin {
		claims["roles"] = []string{types.RoleAdmin}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// SessionFromClaims reads the user id from sub. Admin comes only from the provider's roles
// claim. Otherwise the role is user_metadata.role, then role, then the first recognised
// entry of roles. Users without a role are students.
func SessionFromClaims(claims map[string]any) (*types.Session, error) {
	sub, _ := claims["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return nil, types.AuthError("token has no subject", errors.New("missing sub claim"))
	}
	email, _ := claims["email"].(string)

	granted := ""
	if roles, ok := claims["roles"].([]any); ok {
		for _, r := range roles {
			s, _ := r.(string)
			c := types.CanonicalRole(s)
			if c == types.RoleAdmin {
				granted = c
				break
			}
			if granted == "" {
				granted = c
			}
		}
	}
	if granted == types.RoleAdmin {
		return &types.Session{UserID: sub, Email: email, Role: types.RoleAdmin}, nil
	}

	role := ""
	if meta, ok := claims["user_metadata"].(map[string]any); ok {
		r, _ := meta["role"].(string)
		role = selfAssigned(r)
	}
	if role == "" {
		r, _ := claims["role"].(string)
		role = selfAssigned(r)
	}
	if role == "" {
		role = granted
	}
	if role == "" {
		role = types.RoleStudent
	}

	return &types.Session{UserID: sub, Email: email, Role: role}, nil
}

// selfAssigned canonicalizes a role the user could have picked, which never includes admin.
func selfAssigned(role string) string {
	if r := types.CanonicalRole(role); r != types.RoleAdmin {
		return r
	}
	return ""
}
