package dto

import "github.com/turnosbarberia/turnos-api/internal/models"

type AppointmentListDTO struct {
	ID          uint    `json:"id"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Status      string  `json:"status"`
	ClientName  string  `json:"client_name"`
	ClientPhone string  `json:"client_phone"`
	ServiceName string  `json:"service_name"`
	PriceFinal  float64 `json:"price_final"`
	Notes       string  `json:"notes"`
}

func AppointmentListFromModels(appointments []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, AppointmentListDTO{
			ID:          ap.ID,
			Date:        ap.Date,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			ClientName:  ap.Client.Name + " " + ap.Client.Surname,
			ClientPhone: ap.Client.Phone,
			ServiceName: ap.Service.Name,
			PriceFinal:  ap.PriceFinal,
			Notes:       ap.Notes,
		})
	}
	return out
}
