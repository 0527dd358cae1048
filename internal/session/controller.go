// Package session owns the lifecycle of one embedded conference: it
// validates the access credential, constructs the widget and forwards
// user commands to it.
package session

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/nanomeet/nanomeet-go/internal/config"
	"github.com/nanomeet/nanomeet-go/internal/core"
	"github.com/nanomeet/nanomeet-go/internal/credential"
	"github.com/nanomeet/nanomeet-go/internal/domain"
)

const Version = "1.0.2"

// Tokens issued by the cloud are always longer than this; anything
// shorter cannot be a real credential.
const minTokenLen = 200

// Controller drives one session through
// uninitialized -> connecting -> active -> closed, or into rejected when
// the credential does not hold up. One controller, one session; it is
// driven by a single caller and is not safe for concurrent use.
type Controller struct {
	cfg      *config.Config
	resolver *credential.Resolver
	factory  core.WidgetFactory

	state  domain.SessionState
	reason error
	desc   *domain.Descriptor
	widget core.Widget
}

func NewController(cfg *config.Config, resolver *credential.Resolver, factory core.WidgetFactory) *Controller {
	return &Controller{
		cfg:      cfg,
		resolver: resolver,
		factory:  factory,
		state:    domain.StateUninitialized,
	}
}

// InitResult reports what the caller may do with the opened session.
type InitResult struct {
	Moderator bool `json:"moderator"`
}

// Init validates the credential and opens the session. A validation
// failure parks the controller in the rejected state before any widget
// exists; the caller retries with a fresh controller.
func (c *Controller) Init(ctx context.Context, cfg domain.InitConfig) (InitResult, error) {
	log.Info().Str("module", "session").Str("version", Version).Msg("initializing")

	if c.state != domain.StateUninitialized {
		return InitResult{}, domain.NewError(domain.KindInvalidState,
			fmt.Sprintf("init is not valid in the %s state", c.state))
	}
	if len(cfg.Token) < minTokenLen {
		return InitResult{}, domain.NewError(domain.KindToken, "please provide a token")
	}
	if cfg.ID == "" {
		return InitResult{}, domain.NewError(domain.KindTarget, "please provide a div-id")
	}

	claims, err := c.resolver.Decode(cfg.Token)
	if err != nil {
		return InitResult{}, c.reject(err)
	}
	if err := c.resolver.Validate(claims); err != nil {
		return InitResult{}, c.reject(err)
	}

	desc := c.resolver.BuildDescriptor(cfg, claims)
	c.desc = &desc
	c.state = domain.StateConnecting
	log.Info().Str("module", "session").Str("domain", desc.Domain).Msg("connecting")

	widget, err := c.factory.Create(ctx, desc.Domain, buildSetup(desc, cfg))
	if err != nil {
		c.desc = nil
		return InitResult{}, c.reject(domain.NewError(domain.KindRemote, "the conference widget could not be loaded: "+err.Error()))
	}
	c.widget = widget
	c.widget.AddEventListener("readyToClose", func() {
		_ = c.Destroy()
	})
	c.state = domain.StateActive
	log.Info().Str("module", "session").Str("room", desc.Room).Bool("moderator", desc.Moderator).Msg("session active")

	return InitResult{Moderator: desc.Moderator}, nil
}

func (c *Controller) reject(err error) error {
	c.state = domain.StateRejected
	c.reason = err
	log.Warn().Str("module", "session").Err(err).Msg("session rejected")
	return err
}

// Destroy disposes the widget and closes the session. Without a live
// widget there is nothing to destroy.
func (c *Controller) Destroy() error {
	if c.widget == nil {
		return domain.NewError(domain.KindNoActiveSession, "you are trying to destroy a non existing instance")
	}
	c.widget.Dispose()
	c.widget = nil
	c.state = domain.StateClosed
	log.Info().Str("module", "session").Msg("session closed")
	return nil
}

// State reports the current lifecycle position.
func (c *Controller) State() domain.SessionState {
	return c.state
}

// RejectReason returns the error that parked the controller in the
// rejected state, or nil.
func (c *Controller) RejectReason() error {
	return c.reason
}

// Descriptor returns the resolved session descriptor, or nil before a
// successful Init.
func (c *Controller) Descriptor() *domain.Descriptor {
	return c.desc
}

func buildSetup(desc domain.Descriptor, cfg domain.InitConfig) core.Setup {
	setup := core.Setup{
		RoomName: desc.Room,
		JWT:      cfg.Token,
		Width:    desc.Width,
		Height:   desc.Height,
		ParentID: cfg.ID,
		ConfigOverwrite: core.ConfigOverwrite{
			DisableDeepLinking: true,
		},
		InterfaceOverwrite: core.InterfaceOverwrite{
			MobileAppPromo: false,
		},
	}
	if desc.Branding != "" {
		setup.ConfigOverwrite.DynamicBrandingURL = desc.Branding
		setup.ConfigOverwrite.BrandingDataURL = desc.Branding
	}
	if tv := desc.TileView; tv != nil {
		// Zero values mean "not provided" and stay unset.
		if tv.Size != 0 {
			setup.InterfaceOverwrite.FilmStripMaxHeight = tv.Size
		}
		if tv.MaxColumns != 0 {
			setup.InterfaceOverwrite.TileViewMaxColumns = tv.MaxColumns
		}
		if tv.Vertical {
			setup.InterfaceOverwrite.VerticalFilmstrip = true
		}
	}
	return setup
}
