// Package city resolves free-form city references to canonical identities.
package city

// Identity identifies a city served by the API.
// Directory entries are static; identities for unrecognized queries are
// synthesized on first use and carry a "custom_" id prefix.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}

// UnknownState is the placeholder state for identities without state metadata.
const UnknownState = "Unknown State"

// defaultEntries is the static directory of tracked cities.
var defaultEntries = []Identity{
	{ID: "delhi", Name: "New Delhi", State: "Delhi"},
	{ID: "mumbai", Name: "Mumbai", State: "Maharashtra"},
	{ID: "bengaluru", Name: "Bengaluru", State: "Karnataka"},
	{ID: "kolkata", Name: "Kolkata", State: "West Bengal"},
	{ID: "chennai", Name: "Chennai", State: "Tamil Nadu"},
	{ID: "hyderabad", Name: "Hyderabad", State: "Telangana"},
	{ID: "pune", Name: "Pune", State: "Maharashtra"},
	{ID: "ahmedabad", Name: "Ahmedabad", State: "Gujarat"},
	{ID: "jaipur", Name: "Jaipur", State: "Rajasthan"},
	{ID: "lucknow", Name: "Lucknow", State: "Uttar Pradesh"},
	{ID: "chandigarh", Name: "Chandigarh", State: "Punjab"},
	{ID: "bhopal", Name: "Bhopal", State: "Madhya Pradesh"},
}

// defaultAliases are additional known cities without state metadata.
// They are matched during resolution but are not part of the directory
// listing served by the cities endpoint.
var defaultAliases = []string{
	"Patna", "Indore", "Nagpur", "Surat", "Gurgaon", "Gurugram", "Noida",
	"Ghaziabad", "Faridabad", "Kanpur", "Varanasi", "Agra", "Amritsar",
	"Jodhpur", "Kochi", "Coimbatore", "Visakhapatnam", "Vadodara", "Thane",
}

// defaultHistorical maps historical city names to their modern canonical names.
var defaultHistorical = map[string]string{
	"bangalore": "Bengaluru",
	"bombay":    "Mumbai",
	"calcutta":  "Kolkata",
	"madras":    "Chennai",
}
