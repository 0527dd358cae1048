// Package http wires the meetserver routes: the hosted sample page plus
// a thin proxy over the provisioning services so the API key never
// reaches the browser.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nanomeet/nanomeet-go/internal/bintu"
	"github.com/nanomeet/nanomeet-go/internal/config"
	"github.com/nanomeet/nanomeet-go/internal/domain"
)

// ClientTokenMiddleware tags every browser with a stable token so
// provisioning requests can be correlated in the logs.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = uuid.NewString()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(cfg *config.Config, client *bintu.Client) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	api := r.Group("/api")

	api.GET("/organisation", func(c *gin.Context) {
		org, err := client.ValidateAPIKey(c.Request.Context(), cfg.APIKey)
		if err != nil {
			fail(c, err)
			return
		}
		c.Data(http.StatusOK, "application/json", org)
	})

	api.POST("/streams", func(c *gin.Context) {
		var req struct {
			Profiles []string `json:"profiles"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		result, err := client.CreateStreams(c.Request.Context(), cfg.APIKey, req.Profiles)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	})

	api.POST("/rooms", func(c *gin.Context) {
		var setup bintu.RoomSetup
		if err := c.ShouldBindJSON(&setup); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		room, err := client.CreateRoom(c.Request.Context(), cfg.APIKey, setup)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, room)
	})

	api.POST("/invites", func(c *gin.Context) {
		var setup bintu.InviteSetup
		if err := c.ShouldBindJSON(&setup); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		invite, err := client.CreateInviteToken(c.Request.Context(), c.GetHeader("x-bintu-token"), setup)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, invite)
	})

	api.GET("/shorturl", func(c *gin.Context) {
		short, err := client.ShortenURL(c.Request.Context(), c.Query("url"), c.Query("alias"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"shortLink": short})
	})

	return r
}

// fail maps a domain error to an HTTP status and serializes it as the
// usual {error, message} body.
func fail(c *gin.Context, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		de = domain.NewError(domain.KindRemote, err.Error())
	}
	status := http.StatusInternalServerError
	switch de.Kind {
	case domain.KindInput, domain.KindProfiles, domain.KindDecode:
		status = http.StatusBadRequest
	case domain.KindRemote:
		status = http.StatusBadGateway
	}
	log.Warn().Str("module", "adapters.http").Str("sid", c.GetString("client_token")).Err(err).Msg("request failed")
	c.JSON(status, de)
}
