package models

import "time"

// BarberConfig agrupa las preferencias de agenda de cada barbero.
// Si no existe fila para el barbero se usan los valores de DefaultBarberConfig.
type BarberConfig struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"uniqueIndex" json:"barber_id"`

	// Minutos libres entre turnos consecutivos (limpieza / preparación).
	BufferMinutes int `gorm:"default:5" json:"buffer_minutes"`

	// Anticipación mínima para reservar, en minutos.
	LeadTimeMinutes int `gorm:"default:1440" json:"lead_time_minutes"`

	MaxBookingsPerDay int  `gorm:"default:20" json:"max_bookings_per_day"`
	AllowSameDay      bool `gorm:"default:true" json:"allow_same_day"`

	ShowPrices bool   `gorm:"default:true" json:"show_prices"`
	Currency   string `gorm:"size:5;default:'ARS'" json:"currency"`
	Timezone   string `gorm:"size:50;default:'America/Argentina/Buenos_Aires'" json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func DefaultBarberConfig(barberID uint) BarberConfig {
	return BarberConfig{
		BarberID:          barberID,
		BufferMinutes:     5,
		LeadTimeMinutes:   1440,
		MaxBookingsPerDay: 20,
		AllowSameDay:      true,
		ShowPrices:        true,
		Currency:          "ARS",
		Timezone:          "America/Argentina/Buenos_Aires",
	}
}
