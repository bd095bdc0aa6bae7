package weather

import "strings"

// Class is the closed set of renderable weather categories.
type Class string

const (
	ClassSunny  Class = "sunny"
	ClassCloudy Class = "cloudy"
	ClassRainy  Class = "rainy"
	ClassSnowy  Class = "snowy"
	ClassStormy Class = "stormy"
	ClassFoggy  Class = "foggy"
)

// classRule maps condition-text substrings to a Class. Rules are evaluated
// in order and the first match wins: upstream texts routinely contain
// several keywords ("Thundery outbreaks possible", "Moderate or heavy snow
// with thunder"), so storm must outrank snow, snow must outrank rain, and
// so on down to the clear-sky rules.
type classRule struct {
	keywords []string
	class    Class
}

var classRules = []classRule{
	{[]string{"thunder", "storm"}, ClassStormy},
	{[]string{"snow", "blizzard"}, ClassSnowy},
	{[]string{"rain", "drizzle"}, ClassRainy},
	{[]string{"fog", "mist", "haze"}, ClassFoggy},
	{[]string{"cloud", "overcast"}, ClassCloudy},
	{[]string{"sunny", "clear"}, ClassSunny},
}

// Classify maps a free-text condition to exactly one Class. It is total:
// unrecognized text classifies as cloudy, never as an error.
func Classify(conditionText string) Class {
	text := strings.ToLower(conditionText)
	for _, rule := range classRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.class
			}
		}
	}
	return ClassCloudy
}

// IsPrecipitating reports whether the class renders a particle ensemble.
func (c Class) IsPrecipitating() bool {
	return c == ClassRainy || c == ClassSnowy || c == ClassStormy
}
