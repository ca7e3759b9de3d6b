package fetchers

import (
	"context"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"

	"github.com/samber/lo"

	"github.com/i474232898/astro-dashboard/internal/nasa"
)

const imagesUnavailable = "Could not load NASA Image Library data right now."

// moonQueries are the search terms one of which is picked per fetch, so the
// sector shows different results on every dashboard load.
var moonQueries = []string{"moon", "lunar", "full moon", "moon surface", "moon landing"}

// imagePages is the number of result pages the random page is drawn from.
const imagePages = 10

// ImagesFetcher searches the public NASA image library. It needs no
// credential; the query term and result page are randomized per call.
type ImagesFetcher struct {
	baseURL string
	client  *http.Client
	pick    func(n int) int // random int in [0,n)
}

func NewImages(client *http.Client) *ImagesFetcher {
	return &ImagesFetcher{
		baseURL: imageLibraryURL,
		client:  client,
		pick:    rand.Intn,
	}
}

func (f *ImagesFetcher) Code() string {
	return nasa.CodeImages
}

func (f *ImagesFetcher) Fetch(ctx context.Context) nasa.SectorResult {
	fetchesTotal.WithLabelValues(f.Code()).Inc()

	params := url.Values{}
	params.Set("q", moonQueries[f.pick(len(moonQueries))])
	params.Set("media_type", "image")
	params.Set("page", strconv.Itoa(f.pick(imagePages)+1))

	var payload struct {
		Collection struct {
			Items []struct {
				Data []struct {
					Title       *string `json:"title"`
					Description *string `json:"description"`
				} `json:"data"`
				Links []struct {
					Href *string `json:"href"`
				} `json:"links"`
			} `json:"items"`
		} `json:"collection"`
	}
	if err := getJSON(ctx, f.client, f.baseURL, params, "", &payload); err != nil {
		return unavailable(f.Code(), imagesUnavailable, err)
	}

	items := lo.Slice(payload.Collection.Items, 0, maxSectorItems)

	images := make([]nasa.LibraryImage, 0, len(items))
	for _, item := range items {
		var img nasa.LibraryImage
		if len(item.Data) > 0 {
			img.Title = item.Data[0].Title
			img.Description = item.Data[0].Description
		}
		if len(item.Links) > 0 {
			img.URL = item.Links[0].Href
		}
		images = append(images, img)
	}

	return nasa.Ok(nasa.ImagesPayload{Images: images})
}
