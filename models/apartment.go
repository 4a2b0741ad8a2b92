package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Apartment struct {
	ID                  string                              `json:"id" gorm:"type:uuid;primaryKey"`
	Title               string                              `json:"title" gorm:"not null"`
	Description         string                              `json:"description"`
	Address             string                              `json:"address"`
	PricePerNight       float64                             `json:"price_per_night" gorm:"not null"`
	MaxGuests           int                                 `json:"max_guests" gorm:"not null;index"`
	IsActive            bool                                `json:"is_active" gorm:"index"`
	Characteristics     datatypes.JSONType[Characteristics] `json:"characteristics"`
	Images              datatypes.JSONSlice[string]         `json:"images"`
	PrincipalImageIndex int                                 `json:"principal_image_index"`
	GoogleMapsURL       string                              `json:"google_maps_url"`
	Latitude            *float64                            `json:"latitude"`
	Longitude           *float64                            `json:"longitude"`
	Geohash             string                              `json:"geohash" gorm:"index"`
	ContactEmail        string                              `json:"contact_email" gorm:"not null"`
	ContactPhone        string                              `json:"contact_phone"`
	ContactWhatsapp     string                              `json:"contact_whatsapp"`
	CreatedAt           time.Time                           `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt           time.Time                           `json:"updated_at" gorm:"autoUpdateTime"`
}

func (a *Apartment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// ValidatePrincipalImage kiểm tra principal_image_index nằm trong danh sách ảnh
func (a *Apartment) ValidatePrincipalImage() error {
	if len(a.Images) == 0 {
		return nil
	}
	if a.PrincipalImageIndex < 0 || a.PrincipalImageIndex >= len(a.Images) {
		return fmt.Errorf("invalid principal_image_index: %d, must be between 0 and %d", a.PrincipalImageIndex, len(a.Images)-1)
	}
	return nil
}

// PrincipalImage trả về ảnh đại diện, rỗng nếu chưa có ảnh
func (a *Apartment) PrincipalImage() string {
	if a.ValidatePrincipalImage() != nil || len(a.Images) == 0 {
		return ""
	}
	return a.Images[a.PrincipalImageIndex]
}

// HasAmenity is true only when the flag is present and set.
func (a *Apartment) HasAmenity(amenity Amenity) bool {
	return a.Characteristics.Data().Has(amenity)
}

// Amenity là khóa tiện ích có thể lọc
type Amenity string

const (
	AmenityWiFi            Amenity = "wifi"
	AmenityAirConditioning Amenity = "air_conditioning"
	AmenityHeating         Amenity = "heating"
	AmenityKitchen         Amenity = "kitchen"
	AmenityParking         Amenity = "parking"
	AmenityPool            Amenity = "pool"
	AmenityWasher          Amenity = "washer"
	AmenityTV              Amenity = "tv"
	AmenityPetsAllowed     Amenity = "pets_allowed"
	AmenityBalcony         Amenity = "balcony"
	AmenityElevator        Amenity = "elevator"
	AmenityGarden          Amenity = "garden"
	AmenityGrill           Amenity = "grill"
	AmenityWorkspace       Amenity = "workspace"
)

var amenities = map[Amenity]struct{}{
	AmenityWiFi: {}, AmenityAirConditioning: {}, AmenityHeating: {}, AmenityKitchen: {},
	AmenityParking: {}, AmenityPool: {}, AmenityWasher: {}, AmenityTV: {},
	AmenityPetsAllowed: {}, AmenityBalcony: {}, AmenityElevator: {}, AmenityGarden: {},
	AmenityGrill: {}, AmenityWorkspace: {},
}

func (a Amenity) IsValid() bool {
	_, ok := amenities[a]
	return ok
}

// AllAmenities returns the closed amenity set in a stable order.
func AllAmenities() []Amenity {
	out := make([]Amenity, 0, len(amenities))
	for a := range amenities {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Characteristics mô tả tiện ích của căn hộ; nil nghĩa là chưa khai báo
type Characteristics struct {
	Bedrooms  *int `json:"bedrooms,omitempty"`
	Bathrooms *int `json:"bathrooms,omitempty"`
	Beds      *int `json:"beds,omitempty"`

	WiFi            *bool `json:"wifi,omitempty"`
	AirConditioning *bool `json:"air_conditioning,omitempty"`
	Heating         *bool `json:"heating,omitempty"`
	Kitchen         *bool `json:"kitchen,omitempty"`
	Parking         *bool `json:"parking,omitempty"`
	Pool            *bool `json:"pool,omitempty"`
	Washer          *bool `json:"washer,omitempty"`
	TV              *bool `json:"tv,omitempty"`
	PetsAllowed     *bool `json:"pets_allowed,omitempty"`
	Balcony         *bool `json:"balcony,omitempty"`
	Elevator        *bool `json:"elevator,omitempty"`
	Garden          *bool `json:"garden,omitempty"`
	Grill           *bool `json:"grill,omitempty"`
	Workspace       *bool `json:"workspace,omitempty"`
}

func (c Characteristics) flag(a Amenity) *bool {
	switch a {
	case AmenityWiFi:
		return c.WiFi
	case AmenityAirConditioning:
		return c.AirConditioning
	case AmenityHeating:
		return c.Heating
	case AmenityKitchen:
		return c.Kitchen
	case AmenityParking:
		return c.Parking
	case AmenityPool:
		return c.Pool
	case AmenityWasher:
		return c.Washer
	case AmenityTV:
		return c.TV
	case AmenityPetsAllowed:
		return c.PetsAllowed
	case AmenityBalcony:
		return c.Balcony
	case AmenityElevator:
		return c.Elevator
	case AmenityGarden:
		return c.Garden
	case AmenityGrill:
		return c.Grill
	case AmenityWorkspace:
		return c.Workspace
	}
	return nil
}

func (c Characteristics) Has(a Amenity) bool {
	v := c.flag(a)
	return v != nil && *v
}

// Set is mostly used by fixtures and the admin form.
func (c *Characteristics) Set(a Amenity, value bool) {
	v := value
	switch a {
	case AmenityWiFi:
		c.WiFi = &v
	case AmenityAirConditioning:
		c.AirConditioning = &v
	case AmenityHeating:
		c.Heating = &v
	case AmenityKitchen:
		c.Kitchen = &v
	case AmenityParking:
		c.Parking = &v
	case AmenityPool:
		c.Pool = &v
	case AmenityWasher:
		c.Washer = &v
	case AmenityTV:
		c.TV = &v
	case AmenityPetsAllowed:
		c.PetsAllowed = &v
	case AmenityBalcony:
		c.Balcony = &v
	case AmenityElevator:
		c.Elevator = &v
	case AmenityGarden:
		c.Garden = &v
	case AmenityGrill:
		c.Grill = &v
	case AmenityWorkspace:
		c.Workspace = &v
	}
}
