package models

// LifecycleStage is a growth phase of a crop profile.
type LifecycleStage struct {
	Stage    string `json:"stage" yaml:"stage"`
	Duration string `json:"duration" yaml:"duration"`
}

// CropProfile is an agronomy article about one crop.
type CropProfile struct {
	ID               int64            `json:"id" yaml:"id"`
	Name             string           `json:"name" yaml:"name"`
	AdaptiveFeatures []string         `json:"adaptive_features" yaml:"adaptiveFeatures"`
	Lifecycle        []LifecycleStage `json:"lifecycle" yaml:"lifecycle"`
	Production       []float64        `json:"production" yaml:"production"`
	Regions          []string         `json:"regions" yaml:"regions"`
	ImageURL         string           `json:"image_url" yaml:"imageUrl"`
}
