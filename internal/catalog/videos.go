package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

type wireVideo struct {
	Key      string `json:"key"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

type wireVideosResponse struct {
	Results []wireVideo `json:"results"`
}

// BestTrailerURL queries the title's videos in the configured language and
// the en-US fallback, merges the candidates, and picks the best YouTube
// match: official before unofficial, Trailer before Teaser before anything
// else, response order breaking remaining ties. Returns "" when no
// site-hosted video matches.
//
// A failed language variant only contributes no candidates as long as the
// other variant succeeds; when every variant fails the last error surfaces.
func (c *Client) BestTrailerURL(ctx context.Context, id int64, kind Kind) (string, error) {
	if kind == KindPerson {
		return "", ErrUnsupportedKind
	}
	if id <= 0 {
		return "", errors.New("catalog id must be positive")
	}

	var (
		candidates []wireVideo
		succeeded  int
		lastErr    error
	)
	endpoint := fmt.Sprintf("/%s/%d/videos", kind, id)
	for _, lang := range c.trailerLanguages() {
		params := url.Values{}
		params.Set("language", lang)

		var payload wireVideosResponse
		if err := c.getJSON(ctx, "catalog videos", endpoint, params, &payload); err != nil {
			lastErr = err
			continue
		}
		succeeded++
		candidates = append(candidates, payload.Results...)
	}
	if succeeded == 0 && lastErr != nil {
		return "", lastErr
	}

	picked := make([]wireVideo, 0, len(candidates))
	for _, video := range candidates {
		if strings.EqualFold(video.Site, "YouTube") {
			picked = append(picked, video)
		}
	}
	if len(picked) == 0 {
		return "", nil
	}

	sort.SliceStable(picked, func(i, j int) bool {
		return videoRank(picked[i]) < videoRank(picked[j])
	})
	return "https://www.youtube.com/watch?v=" + picked[0].Key, nil
}

// videoRank orders candidates: official first, then Trailer < Teaser < rest.
func videoRank(v wireVideo) int {
	rank := 0
	if !v.Official {
		rank += 10
	}
	switch v.Type {
	case "Trailer":
	case "Teaser":
		rank++
	default:
		rank += 2
	}
	return rank
}

func (c *Client) trailerLanguages() []string {
	if c.language == "" || strings.EqualFold(c.language, fallbackLanguage) {
		return []string{fallbackLanguage}
	}
	return []string{c.language, fallbackLanguage}
}
