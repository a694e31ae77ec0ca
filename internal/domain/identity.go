package domain

import "time"

// LinkedIdentity is the game account bound to a community account
type LinkedIdentity struct {
	AccountID   string    `json:"account_id"`
	Name        string    `json:"name"`
	UUID        string    `json:"uuid"`
	SkinURL     string    `json:"skin_url,omitempty"`
	SkinVariant string    `json:"skin_variant,omitempty"`
	LinkedAt    time.Time `json:"linked_at"`
}

// PublicIdentity omits the external identifier
type PublicIdentity struct {
	Name        string `json:"name"`
	SkinURL     string `json:"skin_url,omitempty"`
	SkinVariant string `json:"skin_variant,omitempty"`
}

// Public strips the external id
func (l *LinkedIdentity) Public() *PublicIdentity {
	return &PublicIdentity{
		Name:        l.Name,
		SkinURL:     l.SkinURL,
		SkinVariant: l.SkinVariant,
	}
}

// ExchangeToken caches the result of the federated token exchange per account
type ExchangeToken struct {
	AccountID string    `json:"account_id"`
	Token     string    `json:"-"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid reports whether the cached token may still be used at now
func (e *ExchangeToken) Valid(now time.Time) bool {
	return e != nil && e.Token != "" && now.Before(e.ExpiresAt)
}

// GameSkin is a skin entry of the game profile
type GameSkin struct {
	ID      string `json:"id"`
	State   string `json:"state"`
	URL     string `json:"url"`
	Variant string `json:"variant"`
}

// SkinStateActive marks the skin currently worn
const SkinStateActive = "ACTIVE"

// GameProfile is the profile returned by the game service
type GameProfile struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Skins []GameSkin `json:"skins"`
}

// ActiveSkin returns the worn skin, if any
func (p *GameProfile) ActiveSkin() *GameSkin {
	for i := range p.Skins {
		if p.Skins[i].State == SkinStateActive {
			return &p.Skins[i]
		}
	}
	return nil
}

// LinkResult is returned by the identity linking operation
type LinkResult struct {
	HasGame bool         `json:"has_game"`
	Profile *GameProfile `json:"profile,omitempty"`
}
