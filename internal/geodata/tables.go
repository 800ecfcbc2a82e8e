// Package geodata provides the static geographic lookup tables the location
// component resolves addresses against: city-to-county mappings, centroid
// coordinates, incorporated municipalities, airport reference points, and
// special-district membership for the serviced region (Tampa Bay and
// Southwest Florida).
//
// Tables are immutable after construction and safe for concurrent use.
// Callers needing additional coverage inject their own Tables instead of
// editing the defaults.
package geodata

import (
	"fmt"
	"strings"

	"github.com/jonathan/permit-engine/internal/types"
)

// Airport is a reference point used for height-restriction checks
type Airport struct {
	Name        string
	Coordinates types.Coordinates
}

// Tables is the embedded geographic knowledge base for one serviced region
type Tables struct {
	// DefaultCounty is used when a city is not recognized
	DefaultCounty string
	// DefaultCoordinates is the regional fallback when neither geocoding
	// nor the centroid tables resolve a point
	DefaultCoordinates types.Coordinates

	CityCounties    map[string]string
	CityCentroids   map[string]types.Coordinates
	CountyCentroids map[string]types.Coordinates

	IncorporatedCities  map[string]bool
	CityPermitOffices   map[string]string
	CountyPermitOffices map[string]string

	Airports []Airport

	HistoricCities  map[string]bool
	HOACities       map[string]bool
	EnvReviewCities map[string]bool
}

// NormalizeCity lowercases and trims a city name for table lookup
func NormalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// County returns the county for a city, falling back to the default county
// for unrecognized cities. Never returns an empty string.
func (t *Tables) County(city string) string {
	if county, ok := t.CityCounties[NormalizeCity(city)]; ok {
		return county
	}
	return t.DefaultCounty
}

// KnownCity reports whether the city appears in the county table
func (t *Tables) KnownCity(city string) bool {
	_, ok := t.CityCounties[NormalizeCity(city)]
	return ok
}

// Centroid returns the best static coordinate for a city: the city centroid
// if known, else the centroid of the city's county, else the regional
// default. Never returns a zero coordinate.
func (t *Tables) Centroid(city string) types.Coordinates {
	key := NormalizeCity(city)
	if c, ok := t.CityCentroids[key]; ok {
		return c
	}
	if c, ok := t.CountyCentroids[t.County(city)]; ok {
		return c
	}
	return t.DefaultCoordinates
}

// IsIncorporated reports whether the city is an incorporated municipality
func (t *Tables) IsIncorporated(city string) bool {
	return t.IncorporatedCities[NormalizeCity(city)]
}

// PermitOffice returns the permit office string for a site. Incorporated
// cities use their municipal office; everything else uses the county office.
// Never returns an empty string.
func (t *Tables) PermitOffice(city, county string) string {
	key := NormalizeCity(city)
	if t.IncorporatedCities[key] {
		if office, ok := t.CityPermitOffices[key]; ok && office != "" {
			return office
		}
	}
	if office, ok := t.CountyPermitOffices[county]; ok && office != "" {
		return office
	}
	return fmt.Sprintf("%s County Building Services Division", county)
}

// Default returns the built-in tables for the Tampa Bay / Southwest Florida
// service area.
func Default() *Tables {
	return &Tables{
		DefaultCounty:      "Hillsborough",
		DefaultCoordinates: types.Coordinates{Latitude: 27.9506, Longitude: -82.4572}, // downtown Tampa

		CityCounties: map[string]string{
			"tampa":              "Hillsborough",
			"temple terrace":     "Hillsborough",
			"plant city":         "Hillsborough",
			"brandon":            "Hillsborough",
			"riverview":          "Hillsborough",
			"valrico":            "Hillsborough",
			"seffner":            "Hillsborough",
			"lutz":               "Hillsborough",
			"apollo beach":       "Hillsborough",
			"ruskin":             "Hillsborough",
			"gibsonton":          "Hillsborough",
			"sun city center":    "Hillsborough",
			"town 'n' country":   "Hillsborough",
			"st petersburg":      "Pinellas",
			"st. petersburg":     "Pinellas",
			"saint petersburg":   "Pinellas",
			"clearwater":         "Pinellas",
			"largo":              "Pinellas",
			"pinellas park":      "Pinellas",
			"dunedin":            "Pinellas",
			"tarpon springs":     "Pinellas",
			"palm harbor":        "Pinellas",
			"safety harbor":      "Pinellas",
			"oldsmar":            "Pinellas",
			"seminole":           "Pinellas",
			"gulfport":           "Pinellas",
			"st pete beach":      "Pinellas",
			"treasure island":    "Pinellas",
			"madeira beach":      "Pinellas",
			"indian rocks beach": "Pinellas",
			"new port richey":    "Pasco",
			"port richey":        "Pasco",
			"zephyrhills":        "Pasco",
			"dade city":          "Pasco",
			"wesley chapel":      "Pasco",
			"land o lakes":       "Pasco",
			"land o' lakes":      "Pasco",
			"holiday":            "Pasco",
			"trinity":            "Pasco",
			"hudson":             "Pasco",
			"bradenton":          "Manatee",
			"palmetto":           "Manatee",
			"lakewood ranch":     "Manatee",
			"anna maria":         "Manatee",
			"holmes beach":       "Manatee",
			"ellenton":           "Manatee",
			"parrish":            "Manatee",
			"sarasota":           "Sarasota",
			"venice":             "Sarasota",
			"north port":         "Sarasota",
			"osprey":             "Sarasota",
			"nokomis":            "Sarasota",
			"longboat key":       "Sarasota",
			"brooksville":        "Hernando",
			"spring hill":        "Hernando",
			"weeki wachee":       "Hernando",
			"lakeland":           "Polk",
			"winter haven":       "Polk",
			"bartow":             "Polk",
			"auburndale":         "Polk",
			"mulberry":           "Polk",
		},

		CityCentroids: map[string]types.Coordinates{
			"tampa":            {Latitude: 27.9506, Longitude: -82.4572},
			"temple terrace":   {Latitude: 28.0353, Longitude: -82.3893},
			"plant city":       {Latitude: 28.0186, Longitude: -82.1129},
			"brandon":          {Latitude: 27.9378, Longitude: -82.2859},
			"riverview":        {Latitude: 27.8661, Longitude: -82.3265},
			"valrico":          {Latitude: 27.9459, Longitude: -82.2365},
			"lutz":             {Latitude: 28.1511, Longitude: -82.4615},
			"apollo beach":     {Latitude: 27.7731, Longitude: -82.3940},
			"ruskin":           {Latitude: 27.7209, Longitude: -82.4332},
			"sun city center":  {Latitude: 27.7181, Longitude: -82.3515},
			"st petersburg":    {Latitude: 27.7676, Longitude: -82.6403},
			"st. petersburg":   {Latitude: 27.7676, Longitude: -82.6403},
			"saint petersburg": {Latitude: 27.7676, Longitude: -82.6403},
			"clearwater":       {Latitude: 27.9659, Longitude: -82.8001},
			"largo":            {Latitude: 27.9095, Longitude: -82.7873},
			"pinellas park":    {Latitude: 27.8428, Longitude: -82.6995},
			"dunedin":          {Latitude: 28.0197, Longitude: -82.7718},
			"tarpon springs":   {Latitude: 28.1461, Longitude: -82.7568},
			"palm harbor":      {Latitude: 28.0781, Longitude: -82.7637},
			"st pete beach":    {Latitude: 27.7253, Longitude: -82.7412},
			"treasure island":  {Latitude: 27.7692, Longitude: -82.7693},
			"new port richey":  {Latitude: 28.2442, Longitude: -82.7193},
			"zephyrhills":      {Latitude: 28.2336, Longitude: -82.1812},
			"dade city":        {Latitude: 28.3647, Longitude: -82.1959},
			"wesley chapel":    {Latitude: 28.2397, Longitude: -82.3279},
			"land o lakes":     {Latitude: 28.2189, Longitude: -82.4576},
			"bradenton":        {Latitude: 27.4989, Longitude: -82.5748},
			"palmetto":         {Latitude: 27.5214, Longitude: -82.5723},
			"lakewood ranch":   {Latitude: 27.4186, Longitude: -82.3934},
			"anna maria":       {Latitude: 27.5315, Longitude: -82.7334},
			"sarasota":         {Latitude: 27.3364, Longitude: -82.5307},
			"venice":           {Latitude: 27.0998, Longitude: -82.4543},
			"north port":       {Latitude: 27.0442, Longitude: -82.2359},
			"longboat key":     {Latitude: 27.3926, Longitude: -82.6393},
			"brooksville":      {Latitude: 28.5553, Longitude: -82.3879},
			"spring hill":      {Latitude: 28.4769, Longitude: -82.5254},
			"lakeland":         {Latitude: 28.0395, Longitude: -81.9498},
			"winter haven":     {Latitude: 28.0222, Longitude: -81.7329},
			"bartow":           {Latitude: 27.8964, Longitude: -81.8431},
		},

		CountyCentroids: map[string]types.Coordinates{
			"Hillsborough": {Latitude: 27.9904, Longitude: -82.3018},
			"Pinellas":     {Latitude: 27.9027, Longitude: -82.7396},
			"Pasco":        {Latitude: 28.3232, Longitude: -82.4319},
			"Manatee":      {Latitude: 27.4799, Longitude: -82.3452},
			"Sarasota":     {Latitude: 27.1900, Longitude: -82.3646},
			"Hernando":     {Latitude: 28.5544, Longitude: -82.4362},
			"Polk":         {Latitude: 27.9661, Longitude: -81.6900},
		},

		IncorporatedCities: map[string]bool{
			"tampa":              true,
			"temple terrace":     true,
			"plant city":         true,
			"st petersburg":      true,
			"st. petersburg":     true,
			"saint petersburg":   true,
			"clearwater":         true,
			"largo":              true,
			"pinellas park":      true,
			"dunedin":            true,
			"tarpon springs":     true,
			"safety harbor":      true,
			"oldsmar":            true,
			"seminole":           true,
			"gulfport":           true,
			"st pete beach":      true,
			"treasure island":    true,
			"madeira beach":      true,
			"indian rocks beach": true,
			"new port richey":    true,
			"port richey":        true,
			"zephyrhills":        true,
			"dade city":          true,
			"bradenton":          true,
			"palmetto":           true,
			"anna maria":         true,
			"holmes beach":       true,
			"sarasota":           true,
			"venice":             true,
			"north port":         true,
			"longboat key":       true,
			"brooksville":        true,
			"weeki wachee":       true,
			"lakeland":           true,
			"winter haven":       true,
			"bartow":             true,
			"auburndale":         true,
			"mulberry":           true,
		},

		CityPermitOffices: map[string]string{
			"tampa":            "City of Tampa Construction Services Center",
			"temple terrace":   "City of Temple Terrace Community Development",
			"plant city":       "City of Plant City Building Division",
			"st petersburg":    "City of St. Petersburg Construction Services & Permitting",
			"st. petersburg":   "City of St. Petersburg Construction Services & Permitting",
			"saint petersburg": "City of St. Petersburg Construction Services & Permitting",
			"clearwater":       "City of Clearwater Planning & Development",
			"largo":            "City of Largo Building Division",
			"pinellas park":    "City of Pinellas Park Building Development Services",
			"dunedin":          "City of Dunedin Planning & Development",
			"tarpon springs":   "City of Tarpon Springs Building Development",
			"new port richey":  "City of New Port Richey Development Department",
			"zephyrhills":      "City of Zephyrhills Building Department",
			"dade city":        "City of Dade City Building Division",
			"bradenton":        "City of Bradenton Building Division",
			"palmetto":         "City of Palmetto Building Department",
			"sarasota":         "City of Sarasota Development Services",
			"venice":           "City of Venice Building Department",
			"north port":       "City of North Port Building Division",
			"brooksville":      "City of Brooksville Community Development",
			"lakeland":         "City of Lakeland Building Inspection Division",
			"winter haven":     "City of Winter Haven Building Division",
		},

		CountyPermitOffices: map[string]string{
			"Hillsborough": "Hillsborough County Development Services",
			"Pinellas":     "Pinellas County Building & Development Review Services",
			"Pasco":        "Pasco County Central Permitting",
			"Manatee":      "Manatee County Building & Development Services",
			"Sarasota":     "Sarasota County Planning & Development Services",
			"Hernando":     "Hernando County Building Division",
			"Polk":         "Polk County Building Division",
		},

		Airports: []Airport{
			{Name: "Tampa International Airport", Coordinates: types.Coordinates{Latitude: 27.9755, Longitude: -82.5332}},
			{Name: "St. Pete-Clearwater International Airport", Coordinates: types.Coordinates{Latitude: 27.9102, Longitude: -82.6874}},
			{Name: "Albert Whitted Airport", Coordinates: types.Coordinates{Latitude: 27.7651, Longitude: -82.6270}},
			{Name: "Peter O. Knight Airport", Coordinates: types.Coordinates{Latitude: 27.9156, Longitude: -82.4493}},
			{Name: "Sarasota-Bradenton International Airport", Coordinates: types.Coordinates{Latitude: 27.3954, Longitude: -82.5544}},
			{Name: "Lakeland Linder International Airport", Coordinates: types.Coordinates{Latitude: 27.9889, Longitude: -82.0186}},
			{Name: "MacDill Air Force Base", Coordinates: types.Coordinates{Latitude: 27.8493, Longitude: -82.5214}},
		},

		HistoricCities: map[string]bool{
			"tampa":            true, // Ybor City, Hyde Park
			"st petersburg":    true,
			"st. petersburg":   true,
			"saint petersburg": true,
			"tarpon springs":   true,
			"plant city":       true,
			"dade city":        true,
			"sarasota":         true,
		},

		HOACities: map[string]bool{
			"wesley chapel":   true,
			"land o lakes":    true,
			"land o' lakes":   true,
			"riverview":       true,
			"valrico":         true,
			"apollo beach":    true,
			"sun city center": true,
			"lakewood ranch":  true,
			"trinity":         true,
			"north port":      true,
		},

		EnvReviewCities: map[string]bool{
			"st pete beach":      true,
			"treasure island":    true,
			"madeira beach":      true,
			"indian rocks beach": true,
			"anna maria":         true,
			"holmes beach":       true,
			"longboat key":       true,
			"venice":             true,
			"apollo beach":       true,
		},
	}
}
