package models

// Crop is a harvested lot in the crop inventory.
type Crop struct {
	ID        int64  `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name" binding:"required"`
	Quantity  int    `json:"quantity" yaml:"quantity"`
	Planted   Date   `json:"planted" yaml:"planted"`
	Harvested Date   `json:"harvested" yaml:"harvested"`
}

func (c Crop) RecordID() int64       { return c.ID }
func (c *Crop) SetRecordID(id int64) { c.ID = id }
