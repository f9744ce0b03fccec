// Package youtube resolves raw user input into the ordered videos of a
// batch, using the YouTube Data API v3 for playlist expansion and video
// metadata lookup.
package youtube

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/yiApollo/yttx/internal/errors"
	"github.com/yiApollo/yttx/internal/model"
)

// Service resolves a URL or bare id into the ordered videos of a batch.
type Service interface {
	// Resolve parses the input and returns one VideoRef for a single video,
	// or the playlist members in platform order (duplicates preserved).
	Resolve(ctx context.Context, raw string) ([]*model.VideoRef, error)
}

// service implements Service against the YouTube Data API
type service struct {
	apiKey  string
	client  *http.Client
	baseURL string
}

// NewService creates a new Service with the default HTTP client
func NewService(apiKey string) Service {
	return NewServiceWithClient(apiKey, &http.Client{Timeout: 30 * time.Second}, defaultBaseURL)
}

// NewServiceWithClient creates a new Service with a custom client and API
// base URL (for testing)
func NewServiceWithClient(apiKey string, client *http.Client, baseURL string) Service {
	return &service{
		apiKey:  apiKey,
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// videoIDPattern matches a bare 11-character YouTube video id.
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// Resolve parses the input string and expands it into VideoRefs.
func (s *service) Resolve(ctx context.Context, raw string) ([]*model.VideoRef, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New(errors.CodeInvalidReference, "input is empty")
	}

	if videoIDPattern.MatchString(raw) {
		return s.resolveVideo(ctx, raw)
	}

	candidate := raw
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidReference, "not a valid URL or video id")
	}

	query := u.Query()
	if playlistID := query.Get("list"); playlistID != "" {
		return s.resolvePlaylist(ctx, playlistID)
	}
	if videoID := query.Get("v"); videoID != "" {
		return s.resolveVideo(ctx, videoID)
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	if host == "youtu.be" {
		if videoID := strings.Trim(u.Path, "/"); videoIDPattern.MatchString(videoID) {
			return s.resolveVideo(ctx, videoID)
		}
	}
	if strings.HasPrefix(u.Path, "/shorts/") {
		if videoID := strings.Trim(strings.TrimPrefix(u.Path, "/shorts/"), "/"); videoIDPattern.MatchString(videoID) {
			return s.resolveVideo(ctx, videoID)
		}
	}

	return nil, errors.New(errors.CodeInvalidReference, "URL has neither a 'v' nor a 'list' parameter")
}

// resolveVideo builds a single-video batch. Metadata lookup is best effort:
// the captions and whisper paths only need the id, so a failed or
// unauthenticated lookup degrades to an untitled ref instead of failing
// the batch.
func (s *service) resolveVideo(ctx context.Context, videoID string) ([]*model.VideoRef, error) {
	ref := &model.VideoRef{VideoID: videoID}
	if s.apiKey != "" {
		if title, channel, err := s.fetchVideoMeta(ctx, videoID); err == nil {
			ref.Title = title
			ref.Channel = channel
		}
	}
	return []*model.VideoRef{ref}, nil
}

// resolvePlaylist expands a playlist into ordered VideoRefs via the paged
// playlistItems endpoint.
func (s *service) resolvePlaylist(ctx context.Context, playlistID string) ([]*model.VideoRef, error) {
	if s.apiKey == "" {
		return nil, errors.New(errors.CodeExternal, "a YouTube API key is required to expand playlists (set youtube_api_key or YOUTUBE_API_KEY)")
	}

	var refs []*model.VideoRef
	pageToken := ""
	index := 1

	for {
		page, err := s.fetchPlaylistPage(ctx, playlistID, pageToken)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			channel := item.Snippet.VideoOwnerChannelTitle
			if channel == "" {
				channel = item.Snippet.ChannelTitle
			}
			refs = append(refs, &model.VideoRef{
				VideoID:       item.Snippet.ResourceID.VideoID,
				Title:         item.Snippet.Title,
				Channel:       channel,
				PlaylistIndex: index,
			})
			index++
		}
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	if len(refs) == 0 {
		return nil, errors.New(errors.CodeNotFound, "playlist has no videos")
	}
	return refs, nil
}
