package bintu

import "github.com/nanomeet/nanomeet-go/internal/domain"

// Default transcode pair used when the caller names no profiles.
const (
	defaultProfile1 = "vtrans2-852x480x800x25"
	defaultProfile2 = "vtrans2-640x360x400x25"
)

// transcodingProfiles maps every known transcode profile to its bitrate
// in kbit/s. The catalog is owned by the transcoding service; this copy
// exists only to order profile pairs.
var transcodingProfiles = map[string]int{
	"vtrans-2000x30":          2000,
	"vtrans-2000x25":          2000,
	"vtrans-1600x30":          1600,
	"vtrans-1600x25":          1600,
	"vtrans-1000k":            1000,
	"vtrans-1000x30":          1000,
	"vtrans-1000x25":          1000,
	"vtrans-800k":             800,
	"vtrans-400k":             400,
	"vtrans-400k15":           400,
	"vtrans-1280x720x2000x30": 2000,
	"vtrans-1280x720x2000x25": 2000,
	"vtrans-1280x720x1600x30": 1600,
	"vtrans-1280x720x1600x25": 1600,
	"vtrans-1280x720x1200x30": 1200,
	"vtrans-1280x720x1200x25": 1200,
	"vtrans-1280x720x1000x30": 1000,
	"vtrans-1280x720x1000x25": 1000,
	"vtrans-852x480x800x30":   800,
	"vtrans-852x480x800x25":   800,
	"vtrans-852x480x640x30":   640,
	"vtrans-852x480x640x25":   640,
	"vtrans-640x360x400":      400,
	"vtrans-640x360x400x25":   400,
	"vtrans-640x360x300x15":   300,
	"vtrans-480x360x300x15":   300,
	"vtrans-480x270x250x15":   250,
	"vtrans-426x240x200x15":   200,
	"vtrans-320x240x200x15":   200,

	"vtrans2-2000x30":          2000,
	"vtrans2-2000x25":          2000,
	"vtrans2-1600x30":          1600,
	"vtrans2-1600x25":          1600,
	"vtrans2-1000k":            1000,
	"vtrans2-1000x30":          1000,
	"vtrans2-1000x25":          1000,
	"vtrans2-800k":             800,
	"vtrans2-400k":             400,
	"vtrans2-400k15":           400,
	"vtrans2-1280x720x2000x30": 2000,
	"vtrans2-1280x720x2000x25": 2000,
	"vtrans2-1280x720x1600x30": 1600,
	"vtrans2-1280x720x1600x25": 1600,
	"vtrans2-1280x720x1200x30": 1200,
	"vtrans2-1280x720x1200x25": 1200,
	"vtrans2-1280x720x1000x30": 1000,
	"vtrans2-1280x720x1000x25": 1000,
	"vtrans2-852x480x800x30":   800,
	"vtrans2-852x480x800x25":   800,
	"vtrans2-852x480x640x30":   640,
	"vtrans2-852x480x640x25":   640,
	"vtrans2-640x360x400":      400,
	"vtrans2-640x360x400x25":   400,
	"vtrans2-640x360x300x15":   300,
	"vtrans2-480x360x300x15":   300,
	"vtrans2-480x270x250x15":   250,
	"vtrans2-426x240x200x15":   200,
	"vtrans2-320x240x200x15":   200,
}

// orderProfiles validates the pair and returns it lower-bitrate first;
// the first transcode of a stream must always be the smaller one.
func orderProfiles(a, b string) (string, string, error) {
	rateA, okA := transcodingProfiles[a]
	rateB, okB := transcodingProfiles[b]
	if !okA || !okB {
		return "", "", domain.NewError(domain.KindProfiles, "please provide 2 valid profiles")
	}
	if rateA > rateB {
		return b, a, nil
	}
	return a, b, nil
}
