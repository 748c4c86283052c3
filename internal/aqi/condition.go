package aqi

import "strings"

// Condition is the normalized weather condition vocabulary exposed to
// downstream consumers.
type Condition string

const (
	ConditionClear        Condition = "Clear"
	ConditionCloudy       Condition = "Cloudy"
	ConditionRain         Condition = "Rain"
	ConditionPartlyCloudy Condition = "Partly Cloudy"
)

// conditionRule maps raw-text keywords to a normalized condition.
type conditionRule struct {
	keywords  []string
	condition Condition
}

// conditionRules are checked in order; the first matching rule wins.
// Order matters because raw strings like "patchy rain with clear spells"
// match several keywords.
var conditionRules = []conditionRule{
	{[]string{"rain", "drizzle"}, ConditionRain},
	{[]string{"cloud", "overcast"}, ConditionCloudy},
	{[]string{"mist", "fog"}, ConditionPartlyCloudy},
	{[]string{"sunny", "clear"}, ConditionClear},
}

// NormalizeCondition maps a provider's free-form condition text onto the
// normalized vocabulary by case-insensitive substring containment.
// Unrecognized text defaults to Partly Cloudy.
func NormalizeCondition(raw string) Condition {
	lower := strings.ToLower(raw)

	for _, rule := range conditionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.condition
			}
		}
	}

	return ConditionPartlyCloudy
}
