package models

import (
	"time"
)

// Delivery order statuses. Подготавливается is the only non-terminal state:
// an order moves to Можно забрать or Отменено once and stays there.
const (
	DeliveryStatusPreparing = "Подготавливается"
	DeliveryStatusReady     = "Можно забрать"
	DeliveryStatusCancelled = "Отменено"
)

func ValidDeliveryStatus(s string) bool {
	switch s {
	case DeliveryStatusPreparing, DeliveryStatusReady, DeliveryStatusCancelled:
		return true
	}
	return false
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"not null"                 json:"username"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null;default:user"    json:"role"`
}

type Product struct {
	ID                uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name              string   `gorm:"not null"                 json:"name"`
	Description       *string  `json:"description"`
	Price             float64  `gorm:"not null"                 json:"price"`
	LastPrice         *float64 `json:"last_price"`
	LogoImage         []byte   `json:"logo_image,omitempty"`
	FirmName          *string  `json:"firm_name"`
	SoldQuantity      uint     `gorm:"not null;default:0"       json:"sold_quantity"`
	ManufacturingYear *int     `json:"manufacturing_year"`
}

type Photo struct {
	ID        uint   `gorm:"primaryKey"     json:"id"`
	ProductID uint   `gorm:"index;not null" json:"product_id"`
	Image     []byte `gorm:"not null"       json:"image"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey"     json:"id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Comment   string    `gorm:"not null"       json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Rating keeps at most one row per (product, user); repeated submissions
// update the existing row in place.
type Rating struct {
	ID        uint      `gorm:"primaryKey"                                    json:"id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_ratings_product_user" json:"product_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_ratings_product_user" json:"user_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5"    json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

type Favorite struct {
	ID        uint `gorm:"primaryKey"                                      json:"id"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_favorites_user_product" json:"user_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_favorites_user_product" json:"product_id"`
}

type CartItem struct {
	ID        uint `gorm:"primaryKey"                                 json:"id"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  uint `gorm:"not null;check:quantity > 0"                json:"quantity"`
}

type DeliveryOrder struct {
	ID        uint   `gorm:"primaryKey"               json:"id"`
	UserID    uint   `gorm:"index;not null"           json:"user_id"`
	ProductID uint   `gorm:"not null"                 json:"product_id"`
	Count     uint   `gorm:"not null;check:count > 0" json:"count"`
	Date      string `gorm:"not null"                 json:"date"`
	Time      string `gorm:"not null"                 json:"time"`
	Status    string `gorm:"not null"                 json:"status"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"           json:"id"`
	Token     string `gorm:"unique;not null"      json:"token"`
	JTI       string `gorm:"uniqueIndex;not null" json:"jti"`
	UserID    uint   `gorm:"index;not null"       json:"user_id"`
	ExpiresAt int64  `gorm:"not null"             json:"expires_at"`
	Revoked   bool   `gorm:"default:false"        json:"revoked"`
}

// All is the migration set, in FK dependency order.
func All() []any {
	return []any{
		&User{},
		&Product{},
		&Photo{},
		&Review{},
		&Rating{},
		&Favorite{},
		&CartItem{},
		&DeliveryOrder{},
		&RefreshToken{},
	}
}
