package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/turnosbarberia/turnos-api/internal/httperr"
)

// mapBookingError traduce los errores de negocio del flujo de reserva a
// respuestas HTTP. Cualquier error no reconocido termina en 500.
func mapBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "missing_required_fields"):
		httperr.BadRequest(c, "missing_required_fields", "Nombre, apellido y teléfono son obligatorios.")
	case httperr.IsBusiness(err, "missing_service"):
		httperr.BadRequest(c, "missing_service", "Debe seleccionar un servicio.")
	case httperr.IsBusiness(err, "invalid_email"):
		httperr.BadRequest(c, "invalid_email", "El email no tiene un formato válido.")
	case httperr.IsBusiness(err, "invalid_date"):
		httperr.BadRequest(c, "invalid_date", "El formato de fecha no es válido.")
	case httperr.IsBusiness(err, "invalid_time"):
		httperr.BadRequest(c, "invalid_time", "El horario indicado no es válido.")
	case httperr.IsBusiness(err, "invalid_time_range"):
		httperr.BadRequest(c, "invalid_time_range", "El horario indicado no es válido.")
	case httperr.IsBusiness(err, "barber_not_found"):
		httperr.NotFound(c, "barber_not_found", "Barbero no encontrado.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.NotFound(c, "service_not_found", "Servicio no encontrado o inactivo.")
	case httperr.IsBusiness(err, "invalid_service_duration"):
		httperr.BadRequest(c, "invalid_service_duration", "El servicio no tiene una duración configurada.")
	case httperr.IsBusiness(err, "date_in_past"):
		httperr.BadRequest(c, "date_in_past", "No se pueden reservar turnos en el pasado.")
	case httperr.IsBusiness(err, "same_day_not_allowed"):
		httperr.BadRequest(c, "same_day_not_allowed", "No se permiten reservas para el mismo día.")
	case httperr.IsBusiness(err, "too_soon"):
		httperr.BadRequest(c, "too_soon", "La reserva requiere más anticipación.")
	case httperr.IsBusiness(err, "day_fully_booked"):
		httperr.Conflict(c, "day_fully_booked", "No quedan cupos para esa fecha.")
	case httperr.IsBusiness(err, "special_day"):
		httperr.Conflict(c, "special_day", "El barbero no atiende en esa fecha.")
	case httperr.IsBusiness(err, "outside_working_hours"):
		httperr.BadRequest(c, "outside_working_hours", "El horario está fuera del horario laboral.")
	case httperr.IsBusiness(err, "slot_taken"):
		httperr.Conflict(c, "slot_taken", "El horario seleccionado ya no está disponible. Por favor, elegí otro.")
	case httperr.IsBusiness(err, "cancel_code_exhausted"):
		httperr.Internal(c, "cancel_code_exhausted", "No se pudo generar el código de cancelación. Intentá nuevamente.")
	default:
		httperr.Internal(c, "booking_failed", "Error al crear la reserva.")
	}
}
