package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/yiApollo/yttx/internal/errors"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// playlistItemsResponse mirrors the Data API playlistItems.list response.
type playlistItemsResponse struct {
	Items []struct {
		Snippet struct {
			Title                  string `json:"title"`
			ChannelTitle           string `json:"channelTitle"`
			VideoOwnerChannelTitle string `json:"videoOwnerChannelTitle"`
			ResourceID             struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
		} `json:"snippet"`
	} `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

// videosResponse mirrors the Data API videos.list response.
type videosResponse struct {
	Items []struct {
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
	} `json:"items"`
}

func (s *service) fetchPlaylistPage(ctx context.Context, playlistID, pageToken string) (*playlistItemsResponse, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("playlistId", playlistID)
	params.Set("maxResults", "50")
	params.Set("key", s.apiKey)
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	var page playlistItemsResponse
	if err := s.doGet(ctx, "/playlistItems", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *service) fetchVideoMeta(ctx context.Context, videoID string) (title, channel string, err error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("id", videoID)
	params.Set("key", s.apiKey)

	var resp videosResponse
	if err := s.doGet(ctx, "/videos", params, &resp); err != nil {
		return "", "", err
	}
	if len(resp.Items) == 0 {
		return "", "", errors.New(errors.CodeNotFound, "video not found: "+videoID)
	}
	return resp.Items[0].Snippet.Title, resp.Items[0].Snippet.ChannelTitle, nil
}

func (s *service) doGet(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to build API request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.CodeExternal, "YouTube API request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.New(errors.CodeExternal,
			fmt.Sprintf("YouTube API returned %d for %s: %s", resp.StatusCode, path, string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, errors.CodeExternal, "failed to decode API response")
	}
	return nil
}
