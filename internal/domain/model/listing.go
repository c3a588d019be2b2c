package model

// Listing is the bookable property record, read during checkout for charge
// descriptions and confirmation emails.
type Listing struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	Title      string `gorm:"size:255;not null" json:"title"`
	LocationID int64  `gorm:"not null;index" json:"location_id"`
	HostID     string `gorm:"size:36;index" json:"host_id"`
}

// TableName specifies the table name for GORM
func (Listing) TableName() string {
	return "listings"
}

// Location is the street address of a listing.
type Location struct {
	ID       int64  `gorm:"primaryKey" json:"id"`
	Address1 string `gorm:"size:255" json:"address1"`
	City     string `gorm:"size:100" json:"city"`
	State    string `gorm:"size:100" json:"state"`
	Country  string `gorm:"size:100" json:"country"`
}

// TableName specifies the table name for GORM
func (Location) TableName() string {
	return "locations"
}

// Address renders the single-line form used in charge metadata.
func (l *Location) Address() string {
	if l.City == "" {
		return l.Address1
	}
	return l.Address1 + ", " + l.City
}
