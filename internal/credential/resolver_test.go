package credential

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/nanomeet/nanomeet-go/internal/domain"
)

func makeToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	// Signature content is never inspected, only its presence.
	sig := strings.Repeat("x", 172)
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + "." + sig
}

func testResolver(now time.Time) *Resolver {
	return &Resolver{
		defaultServer: "meet-default.example.com",
		now:           func() time.Time { return now },
	}
}

func TestDecodeValidToken(t *testing.T) {
	token := makeToken(t, map[string]any{
		"room":       "r1",
		"streamname": "s1",
		"sub":        "t1",
		"server":     "meet-a.example.com",
		"moderator":  true,
		"exp":        int64(9999999999),
	})

	claims, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if claims.Room != "r1" {
		t.Errorf("room = %q, want %q", claims.Room, "r1")
	}
	if claims.Streamname != "s1" {
		t.Errorf("streamname = %q, want %q", claims.Streamname, "s1")
	}
	if claims.Subject != "t1" {
		t.Errorf("sub = %q, want %q", claims.Subject, "t1")
	}
	if claims.Server != "meet-a.example.com" {
		t.Errorf("server = %q, want %q", claims.Server, "meet-a.example.com")
	}
	if !claims.Moderator {
		t.Error("moderator should be true")
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Unix() != 9999999999 {
		t.Errorf("exp = %v, want 9999999999", claims.ExpiresAt)
	}
}

func TestDecodeMalformed(t *testing.T) {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256"}`))
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no segments", "garbage"},
		{"missing payload", header + ".."},
		{"payload not base64url", header + ".!!!!.sig"},
		{"payload not json", header + "." + base64.RawURLEncoding.EncodeToString([]byte("not json")) + ".sig"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode(tc.token); domain.KindOf(err) != domain.KindDecode {
				t.Errorf("Decode(%q) err = %v, want kind %q", tc.token, err, domain.KindDecode)
			}
		})
	}
}

func TestValidateRequiredClaims(t *testing.T) {
	r := testResolver(time.Unix(1700000000, 0))
	tests := []struct {
		name   string
		claims domain.Claims
		want   domain.Kind
	}{
		{"missing room", claims(map[string]any{"streamname": "s1", "sub": "t1"}), domain.KindMissingRoom},
		{"missing streamname", claims(map[string]any{"room": "r1", "sub": "t1"}), domain.KindMissingStream},
		{"missing tenant", claims(map[string]any{"room": "r1", "streamname": "s1"}), domain.KindMissingTenant},
		// First failure wins when several claims are missing.
		{"room checked first", claims(map[string]any{"sub": "t1"}), domain.KindMissingRoom},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := r.Validate(tc.claims)
			if domain.KindOf(err) != tc.want {
				t.Errorf("Validate err = %v, want kind %q", err, tc.want)
			}
		})
	}
}

func TestValidateTimeBounds(t *testing.T) {
	now := time.Unix(1700000000, 0)
	r := testResolver(now)

	tests := []struct {
		name   string
		extra  map[string]any
		want   domain.Kind
		wantOK bool
	}{
		{"nbf in the future", map[string]any{"nbf": now.Unix() + 600}, domain.KindTokenNotYetValid, false},
		{"exp in the past", map[string]any{"exp": now.Unix() - 600}, domain.KindTokenExpired, false},
		{"nbf past and exp future", map[string]any{"nbf": now.Unix() - 600, "exp": now.Unix() + 600}, "", true},
		{"no time bounds", nil, "", true},
		{"iat only is informational", map[string]any{"iat": now.Unix() - 60}, "", true},
		{"nbf exactly now passes", map[string]any{"nbf": now.Unix()}, "", true},
		{"exp exactly now passes", map[string]any{"exp": now.Unix()}, "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			base := map[string]any{"room": "r1", "streamname": "s1", "sub": "t1"}
			for k, v := range tc.extra {
				base[k] = v
			}
			err := r.Validate(claims(base))
			if tc.wantOK {
				if err != nil {
					t.Fatalf("Validate: %v, want nil", err)
				}
				return
			}
			if domain.KindOf(err) != tc.want {
				t.Errorf("Validate err = %v, want kind %q", err, tc.want)
			}
		})
	}
}

func TestResolveServerPrecedence(t *testing.T) {
	r := testResolver(time.Unix(1700000000, 0))

	withClaim := claims(map[string]any{"server": "claim.example.com"})
	override := url.Values{QueryServer: {"query.example.com"}}

	tests := []struct {
		name     string
		claims   domain.Claims
		explicit string
		query    url.Values
		want     string
	}{
		{"query wins over claim", withClaim, "explicit.example.com", override, "query.example.com"},
		{"claim wins over explicit", withClaim, "explicit.example.com", url.Values{}, "claim.example.com"},
		{"explicit wins over default", domain.Claims{}, "explicit.example.com", url.Values{}, "explicit.example.com"},
		{"default as last resort", domain.Claims{}, "", url.Values{}, "meet-default.example.com"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := r.ResolveServer(tc.claims, tc.explicit, tc.query)
			if got != tc.want {
				t.Errorf("ResolveServer = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResolveBranding(t *testing.T) {
	r := testResolver(time.Unix(1700000000, 0))

	if got := r.ResolveBranding("cfg.json", url.Values{QueryBranding: {"query.json"}}); got != "query.json" {
		t.Errorf("branding = %q, want query override", got)
	}
	if got := r.ResolveBranding("cfg.json", url.Values{}); got != "cfg.json" {
		t.Errorf("branding = %q, want config value", got)
	}
	if got := r.ResolveBranding("", url.Values{}); got != "" {
		t.Errorf("branding = %q, want absent", got)
	}
}

func TestBuildDescriptor(t *testing.T) {
	r := testResolver(time.Unix(1700000000, 0))
	cl := claims(map[string]any{
		"room": "r1", "streamname": "s1", "sub": "t1", "moderator": true,
	})

	t.Run("explicit dimensions preserved", func(t *testing.T) {
		got := r.BuildDescriptor(domain.InitConfig{Width: "640", Height: "480"}, cl)
		want := domain.Descriptor{
			Server:     "meet-default.example.com",
			Domain:     "meet-default.example.com/t1",
			Room:       "r1",
			Streamname: "s1",
			Moderator:  true,
			Width:      "640",
			Height:     "480",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("dimensions default to full size", func(t *testing.T) {
		got := r.BuildDescriptor(domain.InitConfig{}, cl)
		if got.Width != "100%" || got.Height != "100%" {
			t.Errorf("dimensions = %q x %q, want 100%% x 100%%", got.Width, got.Height)
		}
	})

	t.Run("tile view copied when present", func(t *testing.T) {
		got := r.BuildDescriptor(domain.InitConfig{
			TileView: &domain.TileView{Size: 120, MaxColumns: 3, Vertical: true},
		}, cl)
		want := &domain.TileView{Size: 120, MaxColumns: 3, Vertical: true}
		if diff := cmp.Diff(want, got.TileView); diff != "" {
			t.Errorf("tile view mismatch (-want +got):\n%s", diff)
		}
	})
}

func claims(m map[string]any) domain.Claims {
	payload, err := json.Marshal(m)
	if err != nil {
		panic(err)
	}
	var c domain.Claims
	if err := json.Unmarshal(payload, &c); err != nil {
		panic(err)
	}
	return c
}
