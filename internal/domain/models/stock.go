package models

// CropField is a planted field tracked by the stock management board.
type CropField struct {
	ID          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Status      string `json:"status" yaml:"status"`
	Health      int    `json:"health" yaml:"health"`
	Moisture    int    `json:"moisture" yaml:"moisture"`
	Temp        int    `json:"temp" yaml:"temp"`
	LastWatered string `json:"last_watered" yaml:"lastWatered"`
	NextHarvest string `json:"next_harvest" yaml:"nextHarvest"`
}

// Herd aggregates a livestock group on the stock management board.
type Herd struct {
	ID              int64   `json:"id" yaml:"id"`
	Type            string  `json:"type" yaml:"type"`
	Count           int     `json:"count" yaml:"count"`
	Healthy         int     `json:"healthy" yaml:"healthy"`
	Quarantine      int     `json:"quarantine" yaml:"quarantine"`
	AvgWeight       float64 `json:"avg_weight" yaml:"avgWeight"`
	LastVaccination string  `json:"last_vaccination" yaml:"lastVaccination"`
	NextCheckup     string  `json:"next_checkup" yaml:"nextCheckup"`
}

// YieldPoint is one month of combined crop and livestock yield.
type YieldPoint struct {
	Month     string  `json:"month" yaml:"month"`
	Crops     float64 `json:"crops" yaml:"crops"`
	Livestock float64 `json:"livestock" yaml:"livestock"`
}
