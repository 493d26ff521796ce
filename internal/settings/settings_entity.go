package settings

import "time"

// LocationSetting is the single office location used for geofencing.
// Primary key is pinned to 1 so at most one row ever exists.
type LocationSetting struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Latitude     float64   `gorm:"column:latitude;not null"`
	Longitude    float64   `gorm:"column:longitude;not null"`
	RadiusMeters int       `gorm:"column:radius_meters;not null;default:500"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (LocationSetting) TableName() string {
	return "location_settings"
}
