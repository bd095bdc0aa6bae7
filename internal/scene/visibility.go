package scene

import (
	"strings"

	"github.com/weatherscene/weatherscene/internal/weather"
)

// Visibility flags tell the rendering layer which celestial and optical
// effects to draw.
type Visibility struct {
	ShowSun       bool `json:"show_sun"`
	ShowMoon      bool `json:"show_moon"`
	ShowLensFlare bool `json:"show_lens_flare"`
	ShowStars     bool `json:"show_stars"`
}

// ResolveVisibility decides the celestial flags for a classified record.
// forcedDay is the portal-preview override: previews force daytime
// lighting regardless of the forecast hour so every portal reads
// consistently, which also keeps the moon and stars out of them.
func ResolveVisibility(class weather.Class, phase Phase, conditionText string, forcedDay bool) Visibility {
	night := phase == PhaseNight && !forcedDay

	v := Visibility{
		ShowMoon:  night,
		ShowStars: night,
	}
	v.ShowSun = !night && !v.ShowMoon

	overcast := strings.Contains(strings.ToLower(conditionText), "overcast")
	heavyWeather := class == weather.ClassStormy || class == weather.ClassRainy || class == weather.ClassSnowy
	v.ShowLensFlare = v.ShowSun && !heavyWeather && !overcast

	return v
}
