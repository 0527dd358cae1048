// Package domain contains entities without logic, just meta-data.
package domain

import "github.com/golang-jwt/jwt/v5"

// Claims is the decoded payload of an access credential. The registered
// claims carry the tenant (sub) and the temporal bounds (iat/nbf/exp);
// room, streamname and moderator are product claims set by the issuing
// service. Room, Streamname and Subject must be non-empty for the
// credential to be accepted.
type Claims struct {
	Room       string `json:"room"`
	Streamname string `json:"streamname"`
	Server     string `json:"server,omitempty"`
	Moderator  bool   `json:"moderator,omitempty"`

	jwt.RegisteredClaims
}
