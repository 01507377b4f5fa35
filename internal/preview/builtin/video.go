package builtin

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/GriffinCanCode/AgentOS/preview/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/AgentOS/preview/internal/preview"
	"github.com/GriffinCanCode/AgentOS/preview/internal/preview/external"
	"github.com/GriffinCanCode/AgentOS/preview/internal/resolver"
	"go.uber.org/zap"
)

// VideoName is the name the video strategy registers under.
const VideoName = "video"

// VideoRatio is the fixed aspect ratio of embedded players.
const VideoRatio = 16.0 / 9.0

const embedBase = "https://www.youtube-nocookie.com/embed/"

// VideoDomains are the link domains the video strategy claims.
var VideoDomains = []string{
	"youtube.com",
	"www.youtube.com",
	"m.youtube.com",
	"music.youtube.com",
	"youtu.be",
}

var videoID = regexp.MustCompile(`^[A-Za-z0-9_-]{6,20}$`)

// VideoOptions configures a Video strategy.
type VideoOptions struct {
	Host     preview.Host
	Logger   *zap.Logger
	Observer preview.LoadObserver
	Tracer   *tracing.Tracer
}

// Video previews YouTube links through the privacy-enhanced embed player.
// It shares the external pipeline, with the embed rewrite as its resolver,
// and always lays out at 16:9.
type Video struct {
	*external.Strategy
	host    preview.Host
	domains preview.DomainSet
}

// NewVideo creates a hidden video strategy. It panics with
// *preview.ConfigError when Host is missing.
func NewVideo(opts VideoOptions) *Video {
	return &Video{
		Strategy: external.New(external.Options{
			Name:     VideoName,
			Host:     opts.Host,
			Resolver: resolver.Func(embedResolve),
			Logger:   opts.Logger,
			Observer: opts.Observer,
			Tracer:   opts.Tracer,
		}),
		host:    opts.Host,
		domains: preview.NewDomainSet(VideoDomains),
	}
}

// Match accepts links on a video domain that name a playable video.
func (v *Video) Match(domain, rawURL string) bool {
	if domain == "" || rawURL == "" || !v.domains.Contains(domain) {
		return false
	}
	return preview.IsHTTPURL(rawURL) && EmbedURL(rawURL) != ""
}

// SetAspectRatio ignores reports; the player is always 16:9.
func (v *Video) SetAspectRatio(float64) {}

func (v *Video) RenderStyle() preview.Style {
	if !v.IsVisible() {
		return preview.HiddenStyle()
	}
	return preview.SizedStyle(VideoRatio, v.host.Viewport())
}

func embedResolve(_ context.Context, rawURL string) (string, error) {
	embed := EmbedURL(rawURL)
	if embed == "" {
		return "", fmt.Errorf("no video id in %q", rawURL)
	}
	return embed, nil
}

// EmbedURL rewrites a watch, short, live or share link to its embed URL.
// It returns "" when rawURL names no video.
func EmbedURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	host := preview.NormalizeDomain(u.Hostname())
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	var id string
	switch {
	case host == "youtu.be":
		id = segments[0]
	case len(segments) == 1 && segments[0] == "watch":
		id = u.Query().Get("v")
	case len(segments) == 2 && (segments[0] == "shorts" || segments[0] == "embed" || segments[0] == "live"):
		id = segments[1]
	}
	if !videoID.MatchString(id) {
		return ""
	}

	embed := embedBase + id
	if start := startSeconds(u.Query()); start > 0 {
		embed += "?start=" + strconv.Itoa(start)
	}
	return embed
}

// startSeconds reads the t or start parameter: plain seconds or a duration
// such as 1m30s.
func startSeconds(q url.Values) int {
	raw := q.Get("t")
	if raw == "" {
		raw = q.Get("start")
	}
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(strings.TrimSuffix(raw, "s")); err == nil {
		return n
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return int(d.Seconds())
	}
	return 0
}

var _ preview.Strategy = (*Video)(nil)
