package bintu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/nanomeet/nanomeet-go/internal/domain"
)

type streamRequest struct {
	Tags       []string          `json:"tags"`
	Transcodes []streamTranscode `json:"transcodes"`
}

type streamTranscode struct {
	Profile string   `json:"profile"`
	Tags    []string `json:"tags"`
}

type streamResponse struct {
	ID      string `json:"id"`
	Playout struct {
		H5Live []struct {
			ID string `json:"id"`
		} `json:"h5live"`
	} `json:"playout"`
}

// StreamResult carries the raw stream info from the provisioning
// service plus a ready-made dashboard link for the two transcodes.
type StreamResult struct {
	StreamInfo         json.RawMessage `json:"streamInfo"`
	CloudDashboardLink string          `json:"cloudDashboardLink"`
}

// CreateStreams provisions a passthrough stream with two transcodes.
// Without profiles the default pair is used; a caller-supplied pair is
// reordered so the lower-bitrate profile always becomes the first
// transcode.
func (c *Client) CreateStreams(ctx context.Context, apikey string, profiles []string) (*StreamResult, error) {
	if apikey == "" {
		return nil, domain.NewError(domain.KindInput, "please provide a valid api key")
	}

	profile1, profile2 := defaultProfile1, defaultProfile2
	if len(profiles) == 2 {
		var err error
		profile1, profile2, err = orderProfiles(profiles[0], profiles[1])
		if err != nil {
			return nil, err
		}
	}

	body := streamRequest{
		Tags: []string{"nanoMeet"},
		Transcodes: []streamTranscode{
			{Profile: profile1, Tags: []string{"1st transcode", "nanoMeet"}},
			{Profile: profile2, Tags: []string{"2nd transcode", "nanoMeet"}},
		},
	}

	data, err := c.do(ctx, http.MethodPost, c.api+"/stream", map[string]string{
		"x-bintu-apikey": apikey,
	}, body)
	if err != nil {
		return nil, err
	}

	var stream streamResponse
	if err := json.Unmarshal(data, &stream); err != nil {
		return nil, domain.NewError(domain.KindRemote, "unexpected stream response: "+err.Error())
	}
	// Playout entry 0 is the passthrough stream, 1 and 2 the transcodes.
	if len(stream.Playout.H5Live) < 3 {
		return nil, domain.NewError(domain.KindRemote, "stream response is missing transcode playouts")
	}

	dashboard := fmt.Sprintf("%s/stream/new/%s?vtrans1.id=%s&vtrans1.bitrate=%s&vtrans2.id=%s&vtrans2.bitrate=%s&startIndex=0",
		c.frontend, stream.ID,
		stream.Playout.H5Live[1].ID, profile1,
		stream.Playout.H5Live[2].ID, profile2)

	log.Info().Str("module", "bintu").Str("stream", stream.ID).Msg("streams created")
	return &StreamResult{StreamInfo: json.RawMessage(data), CloudDashboardLink: dashboard}, nil
}
