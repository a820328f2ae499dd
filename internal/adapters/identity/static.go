// Package identity is the stubbed sign-in surface. There is no real
// authentication: a fixed local user signs in and out.
package identity

import "github.com/PabloGalante/quorum-agent/internal/domain"

type StaticProvider struct {
	user domain.User
}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		user: domain.User{
			Name:      "Local User",
			AvatarRef: "avatar://local",
		},
	}
}

func (p *StaticProvider) SignIn() (*domain.User, error) {
	u := p.user
	return &u, nil
}

func (p *StaticProvider) SignOut() error {
	return nil
}
