package openweather

// WeatherCondition is the shared weather descriptor of every OpenWeatherMap feed.
type WeatherCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// OneCallResponse is the One Call 3.0 payload, limited to the current and
// daily blocks (minutely/hourly are excluded from the request).
type OneCallResponse struct {
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	Timezone       string  `json:"timezone"`
	TimezoneOffset int     `json:"timezone_offset"`
	Current        struct {
		Dt         int64              `json:"dt"`
		Sunrise    int64              `json:"sunrise"`
		Sunset     int64              `json:"sunset"`
		Temp       float64            `json:"temp"`
		FeelsLike  float64            `json:"feels_like"`
		Pressure   float64            `json:"pressure"`
		Humidity   float64            `json:"humidity"`
		DewPoint   float64            `json:"dew_point"`
		UVI        float64            `json:"uvi"`
		Clouds     float64            `json:"clouds"`
		Visibility float64            `json:"visibility"`
		WindSpeed  float64            `json:"wind_speed"`
		WindDeg    float64            `json:"wind_deg"`
		WindGust   *float64           `json:"wind_gust,omitempty"`
		Weather    []WeatherCondition `json:"weather"`
	} `json:"current"`
	Daily []DailyForecast `json:"daily"`
}

// DailyForecast is one day of the One Call daily block.
type DailyForecast struct {
	Dt       int64 `json:"dt"`
	Sunrise  int64 `json:"sunrise"`
	Sunset   int64 `json:"sunset"`
	Temp     struct {
		Day   float64 `json:"day"`
		Min   float64 `json:"min"`
		Max   float64 `json:"max"`
		Night float64 `json:"night"`
		Eve   float64 `json:"eve"`
		Morn  float64 `json:"morn"`
	} `json:"temp"`
	FeelsLike struct {
		Day   float64 `json:"day"`
		Night float64 `json:"night"`
		Eve   float64 `json:"eve"`
		Morn  float64 `json:"morn"`
	} `json:"feels_like"`
	Pressure  float64            `json:"pressure"`
	Humidity  float64            `json:"humidity"`
	DewPoint  float64            `json:"dew_point"`
	WindSpeed float64            `json:"wind_speed"`
	WindDeg   float64            `json:"wind_deg"`
	WindGust  *float64           `json:"wind_gust,omitempty"`
	Weather   []WeatherCondition `json:"weather"`
	Clouds    float64            `json:"clouds"`
	POP       float64            `json:"pop"`
	Rain      *float64           `json:"rain,omitempty"`
	Snow      *float64           `json:"snow,omitempty"`
	UVI       float64            `json:"uvi"`
}

// ForecastResponse is the 5-day/3-hour forecast payload.
type ForecastResponse struct {
	Cod  string         `json:"cod"`
	List []ForecastItem `json:"list"`
	City struct {
		Name  string `json:"name"`
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
		Country  string `json:"country"`
		Timezone int    `json:"timezone"`
	} `json:"city"`
}

// ForecastItem is one 3-hour step of the 5-day forecast.
type ForecastItem struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp      float64  `json:"temp"`
		FeelsLike float64  `json:"feels_like"`
		TempMin   float64  `json:"temp_min"`
		TempMax   float64  `json:"temp_max"`
		Pressure  float64  `json:"pressure"`
		SeaLevel  *float64 `json:"sea_level,omitempty"`
		GrndLevel *float64 `json:"grnd_level,omitempty"`
		Humidity  float64  `json:"humidity"`
	} `json:"main"`
	Weather []WeatherCondition `json:"weather"`
	Clouds  struct {
		All float64 `json:"all"`
	} `json:"clouds"`
	Wind struct {
		Speed float64  `json:"speed"`
		Deg   float64  `json:"deg"`
		Gust  *float64 `json:"gust,omitempty"`
	} `json:"wind"`
	Visibility float64 `json:"visibility"`
	POP        float64 `json:"pop"`
	Rain       *struct {
		ThreeH *float64 `json:"3h,omitempty"`
	} `json:"rain,omitempty"`
	Snow *struct {
		ThreeH *float64 `json:"3h,omitempty"`
	} `json:"snow,omitempty"`
	DtTxt string `json:"dt_txt"`
}
