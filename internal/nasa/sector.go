package nasa

import "encoding/json"

// Sector codes, fixed at build time. They double as preference keys.
const (
	CodeAPOD   = "apod"
	CodeMars   = "mars"
	CodeNEO    = "neo"
	CodeDONKI  = "donki"
	CodeImages = "images"
)

// SectorDefinition describes one dashboard sector backed by a NASA feed.
type SectorDefinition struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Definitions returns the sector catalog in dashboard display order.
func Definitions() []SectorDefinition {
	return []SectorDefinition{
		{
			Code:        CodeAPOD,
			Title:       "Astronomy Picture of the Day",
			Description: "Daily highlighted astronomy image with explanation.",
		},
		{
			Code:        CodeMars,
			Title:       "Mars Weather",
			Description: "Latest available Mars weather data from the InSight mission.",
		},
		{
			Code:        CodeNEO,
			Title:       "Near Earth Objects",
			Description: "Asteroid pass data (data for a one-day window).",
		},
		{
			Code:        CodeDONKI,
			Title:       "DONKI CME",
			Description: "Recent Coronal Mass Ejection events (last 30 days).",
		},
		{
			Code:        CodeImages,
			Title:       "NASA Image Library",
			Description: "Moon related image discoveries.",
		},
	}
}

// SectorResult is the outcome of one sector fetch: either a normalized
// payload or a static user-facing message, never both. Fetchers never leak
// upstream failures as Go errors beyond this type.
type SectorResult struct {
	payload any
	errMsg  string
}

// Ok wraps a normalized payload.
func Ok(payload any) SectorResult {
	return SectorResult{payload: payload}
}

// Unavailable wraps the sector's static user-facing error message.
func Unavailable(message string) SectorResult {
	return SectorResult{errMsg: message}
}

// OK reports whether the fetch produced a payload.
func (r SectorResult) OK() bool {
	return r.errMsg == ""
}

// Payload returns the normalized payload, nil for failed fetches.
func (r SectorResult) Payload() any {
	return r.payload
}

// ErrMessage returns the user-facing message, empty for successful fetches.
func (r SectorResult) ErrMessage() string {
	return r.errMsg
}

// MarshalJSON renders the payload on success or {"error": message} on
// failure, which is the shape dashboard clients consume.
func (r SectorResult) MarshalJSON() ([]byte, error) {
	if r.errMsg != "" {
		return json.Marshal(map[string]string{"error": r.errMsg})
	}
	return json.Marshal(r.payload)
}

// APODPayload is the normalized Astronomy Picture of the Day.
type APODPayload struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
	URL         string `json:"url"`
	MediaType   string `json:"media_type"`
}

// MarsPayload wraps the latest sol reading. Weather is nil when the feed
// reported no sols; that still renders as an empty weather object.
type MarsPayload struct {
	Weather *SolWeather `json:"weather"`
}

func (p MarsPayload) MarshalJSON() ([]byte, error) {
	if p.Weather == nil {
		return []byte(`{"weather":{}}`), nil
	}
	type alias MarsPayload
	return json.Marshal(alias(p))
}

// SolWeather holds one Martian day's averaged readings. Pointer fields stay
// null when the instrument feed omits a reading.
type SolWeather struct {
	Sol                string   `json:"sol"`
	AverageTemperature *float64 `json:"average_temperature"`
	WindSpeed          *float64 `json:"wind_speed"`
	Pressure           *float64 `json:"pressure"`
	Season             *string  `json:"season"`
}

// NEOPayload lists up to three of today's asteroid passes.
type NEOPayload struct {
	Asteroids []Asteroid `json:"asteroids"`
}

// Asteroid is one near-earth object pass with pre-formatted measurements.
type Asteroid struct {
	Name         string `json:"name"`
	Diameter     string `json:"diameter"`
	MissDistance string `json:"miss_distance"`
}

// DONKIPayload lists up to three recent coronal mass ejection events.
type DONKIPayload struct {
	Events []CMEEvent `json:"events"`
}

// CMEEvent carries the upstream catalog and start time fields verbatim.
type CMEEvent struct {
	Catalog   string `json:"catalog"`
	StartTime string `json:"start_time"`
}

// ImagesPayload lists up to three image library hits.
type ImagesPayload struct {
	Images []LibraryImage `json:"images"`
}

// LibraryImage is one image library hit. Fields stay null when the upstream
// item omits them.
type LibraryImage struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
}
