package domain

import "net/url"

// TileView configures the participant tile strip. Size and MaxColumns
// set to zero mean "not provided" and are never forwarded to the widget;
// MaxColumns accepts values from 1 to 5.
type TileView struct {
	Size       int
	MaxColumns int
	Vertical   bool
}

// InitConfig is the caller-facing configuration for opening a session.
type InitConfig struct {
	// Token is the signed access credential. Required.
	Token string
	// ID names the page element the conference is embedded into. Required.
	ID string
	// Width and Height of the embedded window. Default is "100%" each.
	Width  string
	Height string
	// Branding points to a JSON branding definition.
	Branding string
	// Server overrides the built-in default connection host. A server
	// claim in the credential still wins over this value.
	Server string
	// TileView configures the tile strip.
	TileView *TileView
	// Query carries the embedding page's URL query parameters; the
	// nanomeet.server and nanomeet.branding keys override configuration.
	Query url.Values
}

// Descriptor is the fully resolved, immutable configuration for one
// session. Built once per Init and owned by the session controller.
type Descriptor struct {
	Server     string
	Domain     string
	Room       string
	Streamname string
	Moderator  bool
	Width      string
	Height     string
	Branding   string
	TileView   *TileView
}
