package models

import "time"

const (
	SpecialDayHoliday  = "holiday"
	SpecialDayVacation = "vacation"
	SpecialDayCustom   = "custom"
)

// SpecialDay bloquea reservas en una fecha puntual (feriado, vacaciones,
// cierre puntual). Tiene prioridad sobre los horarios laborales.
type SpecialDay struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index:idx_special_day,unique" json:"barber_id"`

	Date string `gorm:"size:10;index:idx_special_day,unique;not null" json:"date"` // YYYY-MM-DD

	Kind     string `gorm:"size:20;default:'holiday'" json:"kind"`
	WholeDay bool   `gorm:"default:true" json:"whole_day"`

	RangeStart string `gorm:"size:5" json:"range_start"`
	RangeEnd   string `gorm:"size:5" json:"range_end"`

	Description string `gorm:"size:255" json:"description"`

	CreatedAt time.Time `json:"created_at"`
}
