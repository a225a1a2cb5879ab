package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnosbarberia/turnos-api/internal/audit"
	"github.com/turnosbarberia/turnos-api/internal/httperr"
	"github.com/turnosbarberia/turnos-api/internal/models"
	"github.com/turnosbarberia/turnos-api/internal/timezone"
)

// nextMonday devuelve un lunes a más de una semana vista, para que el
// turno pase la anticipación mínima por defecto (24 h).
func nextMonday() string {
	d := timezone.Now().AddDate(0, 0, 8)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

func validInput() CreateBookingInput {
	return CreateBookingInput{
		BarberID:      1,
		ClientName:    "Juan",
		ClientSurname: "Gómez",
		ClientPhone:   "1155550000",
		ServiceID:     10,
		Date:          nextMonday(),
		StartTime:     "10:00",
	}
}

func newCreateUC(repo *fakeRepo) *CreateBooking {
	// dispatcher real con logger nulo no hace falta: los tests no consultan
	// la auditoría, solo necesitan que Dispatch no bloquee
	return NewCreateBooking(repo, audit.NewDispatcher(audit.New(nil)))
}

func TestCreateBooking_OK(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	out, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	ap := out.Appointment
	assert.Equal(t, uint(1), ap.BarberID)
	assert.Equal(t, uint(5), ap.ClientID)
	assert.Equal(t, uint(10), ap.ServiceID)
	assert.Equal(t, "10:00", ap.StartTime)
	assert.Equal(t, "10:30", ap.EndTime) // duración del servicio, no del buffer
	assert.Equal(t, "reserved", ap.Status)
	assert.Equal(t, 8000.0, ap.PriceFinal)

	assert.Len(t, out.CancelCode, 6)
	assert.Equal(t, out.CancelCode, ap.CancelCode)

	assert.Equal(t, 1, repo.visitsIncremented)
	require.NotNil(t, repo.created)
}

func TestCreateBooking_Validaciones(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	tests := []struct {
		name     string
		mutate   func(*CreateBookingInput)
		wantCode string
	}{
		{"sin nombre", func(in *CreateBookingInput) { in.ClientName = "   " }, "missing_required_fields"},
		{"sin apellido", func(in *CreateBookingInput) { in.ClientSurname = "" }, "missing_required_fields"},
		{"sin teléfono", func(in *CreateBookingInput) { in.ClientPhone = "" }, "missing_required_fields"},
		{"sin servicio", func(in *CreateBookingInput) { in.ServiceID = 0 }, "missing_service"},
		{"email inválido", func(in *CreateBookingInput) { in.ClientEmail = "no-es-un-mail" }, "invalid_email"},
		{"fecha inválida", func(in *CreateBookingInput) { in.Date = "10/03/2026" }, "invalid_date"},
		{"hora inválida", func(in *CreateBookingInput) { in.StartTime = "25:99" }, "invalid_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := uc.Execute(context.Background(), in)
			assert.Equal(t, tt.wantCode, errBusinessCode(err))
		})
	}
}

func TestCreateBooking_ServicioInexistente(t *testing.T) {
	repo := newFakeRepo()
	repo.serviceErr = true
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), validInput())
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestCreateBooking_FechaPasada(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	in := validInput()
	in.Date = "2020-01-06" // lunes, pero en el pasado

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "date_in_past"))
}

func TestCreateBooking_AnticipacionMinima(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	// un turno dentro de dos horas: futuro, pero dentro de las 24 h de
	// anticipación por defecto
	start := timezone.NowIn(repo.cfg.Timezone).Add(2 * time.Hour)

	in := validInput()
	in.Date = start.Format("2006-01-02")
	in.StartTime = start.Format("15:04")

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "too_soon"))

	// el panel del barbero saltea la anticipación; acá choca recién con
	// el horario laboral o pasa, pero nunca con too_soon
	in.SkipLeadTime = true
	_, err = uc.Execute(context.Background(), in)
	assert.False(t, httperr.IsBusiness(err, "too_soon"))
}

func TestCreateBooking_MismoDiaDeshabilitado(t *testing.T) {
	repo := newFakeRepo()
	repo.cfg.AllowSameDay = false
	uc := newCreateUC(repo)

	now := timezone.NowIn(repo.cfg.Timezone)
	start := now.Add(30 * time.Minute)
	if start.Day() != now.Day() {
		t.Skip("demasiado cerca de medianoche para armar un turno de hoy")
	}

	in := validInput()
	in.Date = start.Format("2006-01-02")
	in.StartTime = start.Format("15:04")

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "same_day_not_allowed"))
}

func TestCreateBooking_CupoDiarioLleno(t *testing.T) {
	repo := newFakeRepo()
	repo.occupiedCount = int64(repo.cfg.MaxBookingsPerDay)
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), validInput())
	assert.True(t, httperr.IsBusiness(err, "day_fully_booked"))
}

func TestCreateBooking_DiaEspecial(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)
	in := validInput()

	// día completo bloqueado
	repo.specialDay = &models.SpecialDay{BarberID: 1, Date: in.Date, WholeDay: true}
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "special_day"))

	// bloqueo parcial que pisa el turno
	repo.specialDay = &models.SpecialDay{
		BarberID: 1, Date: in.Date,
		WholeDay: false, RangeStart: "09:30", RangeEnd: "10:15",
	}
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "special_day"))

	// bloqueo parcial que no toca el turno de 10:00-10:30
	repo.specialDay = &models.SpecialDay{
		BarberID: 1, Date: in.Date,
		WholeDay: false, RangeStart: "11:00", RangeEnd: "12:00",
	}
	_, err = uc.Execute(context.Background(), in)
	assert.NoError(t, err)
}

func TestCreateBooking_FueraDeHorario(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	// el bloque del lunes es 09:00-12:00
	in := validInput()
	in.StartTime = "20:00"

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))

	// cruza el cierre: empieza dentro pero termina fuera
	in.StartTime = "11:45"
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
}

func TestCreateBooking_SlotTomado(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = httperr.ErrBusiness("slot_taken")
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), validInput())
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))

	// si el insert falla, el contador de visitas no se toca
	assert.Equal(t, 0, repo.visitsIncremented)
}

func TestCreateBooking_DosPedidosPorLaMismaVentana(t *testing.T) {
	// dos reservas por el mismo hueco, resueltas en el orden en que la
	// transacción serializada las deja pasar: exactamente una gana
	repo := newFakeRepo()
	repo.persist = true
	uc := newCreateUC(repo)

	first, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), validInput())
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))

	require.Len(t, repo.persisted, 1)
	assert.Equal(t, first.Appointment.ID, repo.persisted[0].ID)

	// un turno solapado pero no idéntico también pierde
	in := validInput()
	in.StartTime = "10:15"
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))

	// el hueco contiguo sigue libre
	in.StartTime = "10:30"
	_, err = uc.Execute(context.Background(), in)
	assert.NoError(t, err)
	assert.Len(t, repo.persisted, 2)
}

func TestCreateBooking_CodigosAgotados(t *testing.T) {
	repo := newFakeRepo()
	repo.allCodesTaken = true
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), validInput())
	assert.True(t, httperr.IsBusiness(err, "cancel_code_exhausted"))
}
