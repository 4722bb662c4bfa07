package kma

// SeaObsRecord is one parsed data row of the sea_obs.php feed, fields in wire
// column order. Values stay raw strings; sentinel handling happens downstream.
type SeaObsRecord struct {
	ObservationType string
	TM              string
	StationID       string
	StationName     string
	Longitude       string
	Latitude        string
	WaveHeight      string
	WindDirection   string
	WindSpeed       string
	GustWindSpeed   string
	WaterTemp       string
	AirTemp         string
	Pressure        string
	Humidity        string
}

// ShortTermItem is one item of the VilageFcst grid forecast response.
type ShortTermItem struct {
	BaseDate  string `json:"baseDate"`
	BaseTime  string `json:"baseTime"`
	Category  string `json:"category"`
	FcstDate  string `json:"fcstDate"`
	FcstTime  string `json:"fcstTime"`
	FcstValue string `json:"fcstValue"`
	NX        int    `json:"nx"`
	NY        int    `json:"ny"`
}

type vilageFcstResponse struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items struct {
				Item []ShortTermItem `json:"item"`
			} `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

// MediumTermRecord is one header-mapped row of the fct_afs_wc/fct_afs_wo CSV
// feeds. Keys are the upstream column names (REG_ID, TM_FC, TM_EF, MOD, ...).
type MediumTermRecord map[string]string

// Medium-term feed kinds.
const (
	MediumTermTemperature = "temperature"
	MediumTermMarine      = "marine"
)
