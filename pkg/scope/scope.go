package scope

import (
	"encoding/base64"
	"encoding/json"

	"admissions-srv/internal/model"
)

// Payload holds the verified claims extracted from an access token.
type Payload struct {
	Subject   string
	UserID    string
	Username  string
	Role      string
	Issuer    string
	Id        string
	IssuedAt  int64
	ExpiresAt int64
}

// Manager verifies access tokens into payloads.
type Manager interface {
	Verify(token string) (Payload, error)
}

// NewScope creates a new scope.
func NewScope(payload Payload) model.Scope {
	userID := payload.UserID
	if userID == "" {
		userID = payload.Subject
	}

	return model.Scope{
		UserID:   userID,
		Username: payload.Username,
		Role:     payload.Role,
	}
}

// CreateScopeHeader encodes a scope as a Base64 JSON header value.
func CreateScopeHeader(scope model.Scope) (string, error) {
	jsonData, err := json.Marshal(scope)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(jsonData), nil
}

// ParseScopeHeader decodes a Base64 JSON header value into a scope.
func ParseScopeHeader(scopeHeader string) (model.Scope, error) {
	jsonData, err := base64.StdEncoding.DecodeString(scopeHeader)
	if err != nil {
		return model.Scope{}, err
	}

	var scope model.Scope
	if err := json.Unmarshal(jsonData, &scope); err != nil {
		return model.Scope{}, err
	}

	return scope, nil
}
