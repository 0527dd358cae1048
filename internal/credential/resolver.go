// Package credential decodes access credentials and resolves them into
// session descriptors. Pure logic, no I/O beyond the decode itself.
package credential

import (
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/nanomeet/nanomeet-go/internal/domain"
)

// Query parameter keys the embedding page may use to override config.
const (
	QueryServer   = "nanomeet.server"
	QueryBranding = "nanomeet.branding"
)

// Decode parses the payload of a signed credential without verifying the
// signature; verification is the issuing service's job. Any structural
// problem with the token is a decode error.
func Decode(token string) (domain.Claims, error) {
	var claims domain.Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return domain.Claims{}, domain.NewError(domain.KindDecode, "the token could not be decoded: "+err.Error())
	}
	return claims, nil
}

// Resolver merges credential claims, caller configuration and page
// overrides into a session descriptor.
type Resolver struct {
	defaultServer string
	now           func() time.Time
}

func NewResolver(defaultServer string) *Resolver {
	return &Resolver{
		defaultServer: defaultServer,
		now:           time.Now,
	}
}

// Decode is a convenience wrapper over the package-level Decode.
func (r *Resolver) Decode(token string) (domain.Claims, error) {
	return Decode(token)
}

// Validate runs the claim checks in order and stops at the first
// failure. The issue date (iat) is logged but never checked.
func (r *Resolver) Validate(claims domain.Claims) error {
	if claims.Room == "" {
		return domain.NewError(domain.KindMissingRoom, "the token contains no room")
	}
	if claims.Streamname == "" {
		return domain.NewError(domain.KindMissingStream, "the token contains no streamname")
	}
	if claims.Subject == "" {
		return domain.NewError(domain.KindMissingTenant, "the token contains no valid group")
	}

	nowMillis := r.now().UnixMilli()

	if claims.IssuedAt != nil {
		log.Info().Str("module", "credential").Time("iat", claims.IssuedAt.Time).Msg("token issue date")
	}
	if claims.NotBefore != nil {
		log.Info().Str("module", "credential").Time("nbf", claims.NotBefore.Time).Msg("token start date")
		if nowMillis < claims.NotBefore.Unix()*1000 {
			return domain.NewError(domain.KindTokenNotYetValid, "the token 'not before date' (nbf) is not reached yet")
		}
	}
	if claims.ExpiresAt != nil {
		log.Info().Str("module", "credential").Time("exp", claims.ExpiresAt.Time).Msg("token expiration date")
		if nowMillis > claims.ExpiresAt.Unix()*1000 {
			return domain.NewError(domain.KindTokenExpired, "the token is expired")
		}
	}
	return nil
}

// ResolveServer picks the connection host. Highest precedence wins:
// page query override, then the credential's server claim, then the
// explicit config value, then the built-in default.
func (r *Resolver) ResolveServer(claims domain.Claims, explicit string, query url.Values) string {
	if s := query.Get(QueryServer); s != "" {
		return s
	}
	if claims.Server != "" {
		return claims.Server
	}
	if explicit != "" {
		return explicit
	}
	return r.defaultServer
}

// ResolveBranding picks the branding URL; the page override wins over
// the configured value. Empty means no custom branding.
func (r *Resolver) ResolveBranding(explicit string, query url.Values) string {
	if b := query.Get(QueryBranding); b != "" {
		return b
	}
	return explicit
}

// BuildDescriptor merges validated claims and caller configuration into
// the immutable descriptor a session is opened with.
func (r *Resolver) BuildDescriptor(cfg domain.InitConfig, claims domain.Claims) domain.Descriptor {
	server := r.ResolveServer(claims, cfg.Server, cfg.Query)

	d := domain.Descriptor{
		Server:     server,
		Domain:     server + "/" + claims.Subject,
		Room:       claims.Room,
		Streamname: claims.Streamname,
		Moderator:  claims.Moderator,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Branding:   r.ResolveBranding(cfg.Branding, cfg.Query),
	}
	if d.Width == "" {
		d.Width = "100%"
	}
	if d.Height == "" {
		d.Height = "100%"
	}
	if cfg.TileView != nil {
		tv := *cfg.TileView
		d.TileView = &tv
	}

	log.Info().Str("module", "credential").Str("server", server).Str("room", d.Room).Msg("resolved session descriptor")
	return d
}
