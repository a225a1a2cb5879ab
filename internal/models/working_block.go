package models

import "time"

// WorkingBlock es un rango de atención para un día de la semana.
// Un barbero puede tener más de un bloque por día (turnos partidos).
// Weekday sigue la convención de la agenda: 0 = domingo ... 6 = sábado.
type WorkingBlock struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index" json:"barber_id"`

	Weekday int `gorm:"not null" json:"weekday"`

	StartTime string `gorm:"size:5;not null" json:"start_time"` // HH:MM
	EndTime   string `gorm:"size:5;not null" json:"end_time"`   // HH:MM

	BreakStart string `gorm:"size:5" json:"break_start"`
	BreakEnd   string `gorm:"size:5" json:"break_end"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *WorkingBlock) HasBreak() bool {
	return b.BreakStart != "" && b.BreakEnd != ""
}
