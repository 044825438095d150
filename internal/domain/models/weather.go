package models

// Location is a monitored field with coordinates.
type Location struct {
	ID   string  `json:"id" yaml:"id"`
	Name string  `json:"name" yaml:"name"`
	Lat  float64 `json:"lat" yaml:"lat"`
	Long float64 `json:"long" yaml:"long"`
}

// WeatherSample is an hourly sensor reading.
type WeatherSample struct {
	Timestamp      string  `json:"timestamp" yaml:"timestamp"`
	Temperature    float64 `json:"temperature" yaml:"temperature"`
	Humidity       float64 `json:"humidity" yaml:"humidity"`
	Precipitation  float64 `json:"precipitation" yaml:"precipitation"`
	WindSpeed      float64 `json:"wind_speed" yaml:"windSpeed"`
	SoilMoisture   float64 `json:"soil_moisture" yaml:"soilMoisture"`
	SolarRadiation float64 `json:"solar_radiation" yaml:"solarRadiation"`
}

// Forecast is a single forecast day.
type Forecast struct {
	Date          Date    `json:"date" yaml:"date"`
	TempHigh      float64 `json:"temp_high" yaml:"tempHigh"`
	TempLow       float64 `json:"temp_low" yaml:"tempLow"`
	Precipitation float64 `json:"precipitation" yaml:"precipitation"`
	Humidity      float64 `json:"humidity" yaml:"humidity"`
	WindSpeed     float64 `json:"wind_speed" yaml:"windSpeed"`
}

// StressLevel grades crop water/heat stress.
type StressLevel string

const (
	StressLow    StressLevel = "Low"
	StressMedium StressLevel = "Medium"
	StressHigh   StressLevel = "High"
)

// CropHealth is the agronomic state of a crop on one field.
type CropHealth struct {
	ID             string      `json:"id" yaml:"id"`
	Field          string      `json:"field" yaml:"field"`
	Crop           string      `json:"crop" yaml:"crop"`
	Stage          string      `json:"stage" yaml:"stage"`
	GDD            float64     `json:"gdd" yaml:"gdd"`
	Stress         StressLevel `json:"stress" yaml:"stress"`
	SoilMoisture   float64     `json:"soil_moisture" yaml:"soilMoisture"`
	LastIrrigation Date        `json:"last_irrigation" yaml:"lastIrrigation"`
}
