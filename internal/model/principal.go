package model

import (
	"encoding/json"
	"time"
)

// Principal is the identity resolved for the current request. It is derived
// from the provider's access token or its authoritative user endpoint and is
// never persisted by this service.
type Principal struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	UserMetadata Metadata `json:"user_metadata"`
	AppMetadata  Metadata `json:"app_metadata"`
}

// Session is the cookie-carried proof of authentication. The access token is
// a provider-signed JWT, the refresh token is opaque.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	Principal    Principal
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Metadata is the provider's loosely-typed metadata bag. Only the fields this
// service interprets are typed; everything else round-trips through Extra
// untouched.
type Metadata struct {
	Role     string
	FullName string
	Extra    map[string]json.RawMessage
}

func (m *Metadata) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = Metadata{}
	if v, ok := raw["role"]; ok {
		if err := json.Unmarshal(v, &m.Role); err == nil {
			delete(raw, "role")
		}
	}
	if v, ok := raw["full_name"]; ok {
		if err := json.Unmarshal(v, &m.FullName); err == nil {
			delete(raw, "full_name")
		}
	}
	if len(raw) > 0 {
		m.Extra = raw
	}
	return nil
}

func (m Metadata) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(m.Extra)+2)
	for k, v := range m.Extra {
		out[k] = v
	}
	if m.Role != "" {
		role, err := json.Marshal(m.Role)
		if err != nil {
			return nil, err
		}
		out["role"] = role
	}
	if m.FullName != "" {
		name, err := json.Marshal(m.FullName)
		if err != nil {
			return nil, err
		}
		out["full_name"] = name
	}
	return json.Marshal(out)
}
