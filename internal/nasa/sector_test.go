package nasa

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionsOrderAndCodes(t *testing.T) {
	defs := Definitions()

	codes := make([]string, 0, len(defs))
	for _, d := range defs {
		codes = append(codes, d.Code)
	}
	assert.Equal(t, []string{CodeAPOD, CodeMars, CodeNEO, CodeDONKI, CodeImages}, codes)

	for _, d := range defs {
		assert.NotEmpty(t, d.Title, "sector %s", d.Code)
		assert.NotEmpty(t, d.Description, "sector %s", d.Code)
	}
}

func TestSectorResultMarshal(t *testing.T) {
	tests := []struct {
		name   string
		result SectorResult
		want   string
	}{
		{
			name:   "payload on success",
			result: Ok(APODPayload{Title: "Eagle Nebula", Date: "2026-08-21", MediaType: "image"}),
			want:   `{"title":"Eagle Nebula","date":"2026-08-21","description":"","url":"","media_type":"image"}`,
		},
		{
			name:   "error object on failure",
			result: Unavailable("Could not load APOD data right now."),
			want:   `{"error":"Could not load APOD data right now."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.result)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}

func TestSectorResultAccessors(t *testing.T) {
	ok := Ok(NEOPayload{Asteroids: []Asteroid{}})
	assert.True(t, ok.OK())
	assert.Empty(t, ok.ErrMessage())
	assert.NotNil(t, ok.Payload())

	failed := Unavailable("Could not load Mars weather right now.")
	assert.False(t, failed.OK())
	assert.Equal(t, "Could not load Mars weather right now.", failed.ErrMessage())
	assert.Nil(t, failed.Payload())
}

func TestMarsPayloadMarshalEmptyWeather(t *testing.T) {
	b, err := json.Marshal(MarsPayload{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"weather":{}}`, string(b))
}

func TestMarsPayloadMarshalWithReadings(t *testing.T) {
	temp := -62.3
	season := "winter"
	b, err := json.Marshal(MarsPayload{Weather: &SolWeather{
		Sol:                "1219",
		AverageTemperature: &temp,
		Season:             &season,
	}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"weather":{"sol":"1219","average_temperature":-62.3,"wind_speed":null,"pressure":null,"season":"winter"}}`, string(b))
}
