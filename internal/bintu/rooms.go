package bintu

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/nanomeet/nanomeet-go/internal/credential"
	"github.com/nanomeet/nanomeet-go/internal/domain"
)

// RoomSetup configures a new room token. Exp and Nbf are ISO dates
// understood by the issuance service; Streamname is passed through.
type RoomSetup struct {
	Exp        string `json:"exp"`
	Nbf        string `json:"nbf"`
	Room       string `json:"room"`
	Streamname string `json:"streamname"`
	Moderator  bool   `json:"moderator"`
	Server     string `json:"server"`
}

// Room is the issued room token together with the setup it was built
// from.
type Room struct {
	Expiration string `json:"expiration"`
	NotBefore  string `json:"notbefore"`
	Room       string `json:"room"`
	Server     string `json:"server"`
	Streamname string `json:"streamname"`
	Moderator  bool   `json:"moderator"`
	Token      string `json:"token"`
}

// InviteSetup configures an invite token for one participant. Exp and
// Nbf are optional; unset means the room token's bounds apply.
type InviteSetup struct {
	Moderator bool   `json:"moderator"`
	Exp       string `json:"exp,omitempty"`
	Nbf       string `json:"nbf,omitempty"`
}

// Invite is the issued invite token with a ready-made join link.
type Invite struct {
	Moderator  bool   `json:"moderator"`
	Token      string `json:"token"`
	InviteLink string `json:"inviteLink"`
}

type issuedToken struct {
	Data string `json:"data"`
}

// CreateRoom asks the issuance service for a new room token.
func (c *Client) CreateRoom(ctx context.Context, apikey string, setup RoomSetup) (*Room, error) {
	if apikey == "" {
		return nil, domain.NewError(domain.KindInput, "please provide a valid api key")
	}
	if setup.Exp == "" {
		return nil, domain.NewError(domain.KindInput, "please provide an expiration time for the token in ISO format")
	}
	if setup.Nbf == "" {
		return nil, domain.NewError(domain.KindInput, "please provide a not before time for the token in ISO format")
	}
	if setup.Room == "" {
		return nil, domain.NewError(domain.KindInput, "please provide a room name")
	}
	if setup.Server == "" {
		return nil, domain.NewError(domain.KindInput, "please provide a location where you want to host your room")
	}

	data, err := c.do(ctx, http.MethodPost, c.tokenAPI+"/nanomeet", map[string]string{
		"X-BINTU-APIKEY": apikey,
	}, setup)
	if err != nil {
		return nil, err
	}

	var issued issuedToken
	if err := json.Unmarshal(data, &issued); err != nil {
		return nil, domain.NewError(domain.KindRemote, "unexpected issuance response: "+err.Error())
	}

	log.Info().Str("module", "bintu").Str("room", setup.Room).Str("server", setup.Server).Msg("room created")
	return &Room{
		Expiration: setup.Exp,
		NotBefore:  setup.Nbf,
		Room:       setup.Room,
		Server:     setup.Server,
		Streamname: setup.Streamname,
		Moderator:  setup.Moderator,
		Token:      issued.Data,
	}, nil
}

// CreateInviteToken issues an invite derived from a moderator token.
// The invite inherits the moderator token's server claim.
func (c *Client) CreateInviteToken(ctx context.Context, moderatorToken string, setup InviteSetup) (*Invite, error) {
	if moderatorToken == "" {
		return nil, domain.NewError(domain.KindInput, "please provide a valid token with moderator rights to create an invite token")
	}

	claims, err := credential.Decode(moderatorToken)
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"moderator": setup.Moderator,
		"server":    claims.Server,
	}
	if setup.Exp != "" {
		body["exp"] = setup.Exp
	}
	if setup.Nbf != "" {
		body["nbf"] = setup.Nbf
	}

	data, err := c.do(ctx, http.MethodPost, c.tokenAPI+"/nanomeet", map[string]string{
		"x-bintu-token": moderatorToken,
	}, body)
	if err != nil {
		return nil, err
	}

	var issued issuedToken
	if err := json.Unmarshal(data, &issued); err != nil {
		return nil, domain.NewError(domain.KindRemote, "unexpected issuance response: "+err.Error())
	}

	return &Invite{
		Moderator:  setup.Moderator,
		Token:      issued.Data,
		InviteLink: c.webPage + "?token=" + issued.Data,
	}, nil
}
