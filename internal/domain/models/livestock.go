package models

// AnimalType enumerates the animals tracked by the livestock view.
type AnimalType string

const (
	AnimalCow   AnimalType = "Cow"
	AnimalSheep AnimalType = "Sheep"
	AnimalPig   AnimalType = "Pig"
)

// HealthStatus is the veterinary state of an animal.
type HealthStatus string

const (
	HealthHealthy     HealthStatus = "Healthy"
	HealthSick        HealthStatus = "Sick"
	HealthQuarantined HealthStatus = "Quarantined"
)

// LivestockItem is a single tagged animal.
type LivestockItem struct {
	ID           int64        `json:"id" yaml:"id"`
	Type         AnimalType   `json:"type" yaml:"type" binding:"required,oneof=Cow Sheep Pig"`
	Tag          string       `json:"tag" yaml:"tag" binding:"required"`
	Age          int          `json:"age" yaml:"age"`
	Weight       float64      `json:"weight" yaml:"weight"`
	HealthStatus HealthStatus `json:"health_status" yaml:"healthStatus" binding:"required,oneof=Healthy Sick Quarantined"`
	Location     string       `json:"location" yaml:"location"`
	LastCheckup  Date         `json:"last_checkup" yaml:"lastCheckup"`
}

func (l LivestockItem) RecordID() int64       { return l.ID }
func (l *LivestockItem) SetRecordID(id int64) { l.ID = id }
