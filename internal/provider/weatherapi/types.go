package weatherapi

// LocationInfo is the resolved location block present on every response.
type LocationInfo struct {
	Name           string  `json:"name"`
	Region         string  `json:"region"`
	Country        string  `json:"country"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	TzID           string  `json:"tz_id"`
	LocaltimeEpoch int64   `json:"localtime_epoch"`
	Localtime      string  `json:"localtime"`
}

// Condition is the weather condition descriptor.
type Condition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
	Code int    `json:"code"`
}

// AirQuality is the optional AQI block (aqi=yes).
type AirQuality struct {
	CO   float64 `json:"co"`
	NO2  float64 `json:"no2"`
	O3   float64 `json:"o3"`
	SO2  float64 `json:"so2"`
	PM25 float64 `json:"pm2_5"`
	PM10 float64 `json:"pm10"`
}

// CurrentWeather is the current conditions block of current.json.
type CurrentWeather struct {
	LastUpdatedEpoch int64       `json:"last_updated_epoch"`
	LastUpdated      string      `json:"last_updated"`
	TempC            float64     `json:"temp_c"`
	TempF            float64     `json:"temp_f"`
	IsDay            int         `json:"is_day"`
	Condition        Condition   `json:"condition"`
	WindMph          float64     `json:"wind_mph"`
	WindKph          float64     `json:"wind_kph"`
	WindDegree       float64     `json:"wind_degree"`
	WindDir          string      `json:"wind_dir"`
	PressureMb       float64     `json:"pressure_mb"`
	PrecipMm         float64     `json:"precip_mm"`
	Humidity         float64     `json:"humidity"`
	Cloud            float64     `json:"cloud"`
	FeelslikeC       float64     `json:"feelslike_c"`
	FeelslikeF       float64     `json:"feelslike_f"`
	VisKm            float64     `json:"vis_km"`
	UV               float64     `json:"uv"`
	GustMph          float64     `json:"gust_mph"`
	GustKph          float64     `json:"gust_kph"`
	AirQuality       *AirQuality `json:"air_quality,omitempty"`
}

// CurrentResponse is the current.json payload.
type CurrentResponse struct {
	Location LocationInfo   `json:"location"`
	Current  CurrentWeather `json:"current"`
}

// DaySummary is the daily aggregate of one forecast day.
type DaySummary struct {
	MaxtempC          float64   `json:"maxtemp_c"`
	MintempC          float64   `json:"mintemp_c"`
	AvgtempC          float64   `json:"avgtemp_c"`
	MaxwindMph        float64   `json:"maxwind_mph"`
	MaxwindKph        float64   `json:"maxwind_kph"`
	TotalprecipMm     float64   `json:"totalprecip_mm"`
	AvgvisKm          float64   `json:"avgvis_km"`
	Avghumidity       float64   `json:"avghumidity"`
	DailyChanceOfRain float64   `json:"daily_chance_of_rain"`
	DailyChanceOfSnow float64   `json:"daily_chance_of_snow"`
	Condition         Condition `json:"condition"`
	UV                float64   `json:"uv"`
}

// HourForecast is one hourly step of a forecast day.
type HourForecast struct {
	TimeEpoch    int64     `json:"time_epoch"`
	Time         string    `json:"time"`
	TempC        float64   `json:"temp_c"`
	TempF        float64   `json:"temp_f"`
	IsDay        int       `json:"is_day"`
	Condition    Condition `json:"condition"`
	WindMph      float64   `json:"wind_mph"`
	WindKph      float64   `json:"wind_kph"`
	WindDegree   float64   `json:"wind_degree"`
	WindDir      string    `json:"wind_dir"`
	PressureMb   float64   `json:"pressure_mb"`
	PrecipMm     float64   `json:"precip_mm"`
	Humidity     float64   `json:"humidity"`
	Cloud        float64   `json:"cloud"`
	FeelslikeC   float64   `json:"feelslike_c"`
	FeelslikeF   float64   `json:"feelslike_f"`
	VisKm        float64   `json:"vis_km"`
	UV           float64   `json:"uv"`
	GustMph      float64   `json:"gust_mph"`
	GustKph      float64   `json:"gust_kph"`
	ChanceOfRain float64   `json:"chance_of_rain"`
	ChanceOfSnow float64   `json:"chance_of_snow"`
}

// ForecastDay is one day of the forecast.json payload.
type ForecastDay struct {
	Date      string         `json:"date"`
	DateEpoch int64          `json:"date_epoch"`
	Day       DaySummary     `json:"day"`
	Hour      []HourForecast `json:"hour"`
}

// ForecastResponse is the forecast.json payload.
type ForecastResponse struct {
	Location LocationInfo   `json:"location"`
	Current  CurrentWeather `json:"current"`
	Forecast struct {
		Forecastday []ForecastDay `json:"forecastday"`
	} `json:"forecast"`
}
