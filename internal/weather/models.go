package weather

// WeatherSnapshot is the current weather for one committed city, as reported
// by the provider. It is replaced wholesale on every successful fetch.
type WeatherSnapshot struct {
	Temperature float64 `json:"temperatureC"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidityPercent"`
	WindSpeed   float64 `json:"windSpeedKph"`
}

// Location identifies the place a lookup was issued for.
// WeatherAPI accepts free-form city names, so the city is sent as typed.
type Location struct {
	City string `json:"city"`
}

// Key returns a canonical string key for logging and metrics labels.
func (l Location) Key() string {
	return l.City
}
