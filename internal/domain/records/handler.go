package records

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"care-circle/internal/middleware"
	"care-circle/internal/ports/access"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Rutas propias: el dueño es el actor
	registerResourceRoutes(r, svc, false)

	// Rutas delegadas: el paciente objetivo viene en el path,
	// el guard decide con el flag correspondiente
	r.Route("/patients/{patientID}", func(pr chi.Router) {
		registerResourceRoutes(pr, svc, true)
	})

	// Vista agregada (owner o cualquier grant aceptado)
	r.Get("/patient-data/{patientID}", patientDataHandler(svc))
}

func registerResourceRoutes(r chi.Router, svc *Service, delegated bool) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Get("/", listAppointmentsHandler(svc, delegated))
		ar.Post("/", createAppointmentHandler(svc, delegated))
		ar.Put("/{recordID}", updateAppointmentHandler(svc, delegated))
		ar.Delete("/{recordID}", deleteAppointmentHandler(svc, delegated))
	})
	r.Route("/medications", func(mr chi.Router) {
		mr.Get("/", listMedicationsHandler(svc, delegated))
		mr.Post("/", createMedicationHandler(svc, delegated))
		mr.Put("/{recordID}", updateMedicationHandler(svc, delegated))
		mr.Delete("/{recordID}", deleteMedicationHandler(svc, delegated))
	})
	r.Route("/daily-tasks", func(tr chi.Router) {
		tr.Get("/", listDailyTasksHandler(svc, delegated))
		tr.Post("/", createDailyTaskHandler(svc, delegated))
		tr.Put("/{recordID}", updateDailyTaskHandler(svc, delegated))
		tr.Delete("/{recordID}", deleteDailyTaskHandler(svc, delegated))
	})
}

// -------------------------
// Wire types
// -------------------------

type appointmentRequest struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type appointmentResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type medicationRequest struct {
	Name     string `json:"name"`
	Dosage   string `json:"dosage"`
	Time     string `json:"time"`
	Duration string `json:"duration"`
	// isTaken en camelCase: es lo que ya mandan los clientes
	IsTaken bool `json:"isTaken"`
}

type medicationResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Dosage    string    `json:"dosage"`
	Time      string    `json:"time"`
	Duration  string    `json:"duration"`
	IsTaken   bool      `json:"isTaken"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type dailyTaskRequest struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	Time      string `json:"time"`
	Frequency string `json:"frequency"`
}

type dailyTaskResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Time      string    `json:"time"`
	Frequency string    `json:"frequency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type patientDataResponse struct {
	Patient      patientProfileResponse `json:"patient"`
	Appointments []appointmentResponse  `json:"appointments"`
	Medications  []medicationResponse   `json:"medications"`
	DailyTasks   []dailyTaskResponse    `json:"daily_tasks"`
}

type patientProfileResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// -------------------------
// Handlers
// -------------------------

// actorAndOwner resuelve actor (claims) y dueño objetivo.
// En rutas propias el dueño queda vacío y el service lo iguala al actor.
func actorAndOwner(w http.ResponseWriter, r *http.Request, delegated bool) (actor, owner string, ok bool) {
	claims, found := middleware.GetClaims(r.Context())
	if !found || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", "", false
	}
	if delegated {
		return claims.UserID, chi.URLParam(r, "patientID"), true
	}
	return claims.UserID, "", true
}

func listAppointmentsHandler(svc *Service, delegated bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, owner, ok := actorAndOwner(w, r, delegated)
		if !ok {
			return
		}

		items, err := svc.ListAppointments(r.Context(), actor, owner)
		if err != nil {
			writeRecordError(w, err)
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAppointmentResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func createAppointmentHandler(svc *Service, delegated bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, owner, ok := actorAndOwner(w, r, delegated)
		if !ok {
			return
		}

		var req appointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.CreateAppointment(r.Context(), actor, owner, AppointmentInput(req))
		if err != nil {
			writeRecordError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAppointmentResponse(a))
	}
}

func updateAppointmentHandler(svc *Service, delegated bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, owner, ok := actorAndOwner(w, r, delegated)
		if !ok {
			return
		}

		var req appointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.UpdateAppointment(r.Context(), actor, owner, chi.URLParam(r, "recordID"), AppointmentInput(req))
		if err != nil {
			writeRecordError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func deleteAppointmentHandler(svc *Service, delegated bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, owner, ok := actorAndOwner(w, r, delegated)
		if !ok {
			return
		}

		if err := svc.DeleteAppointment(r.Context(), actor, owner, chi.URLParam(r, "recordID")); err != nil {
			writeRecordError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listMedicationsHandler(svc *Service, delegated bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, owner, ok := actorAndOwner(w, r, delegated)
		if !ok {
			return
		}

		items, err := svc.ListMedications(r.Context(), actor, owner)
		if err != nil {
			writeRecordError(w, err)
			return
		}

		out := make([]medicationResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMedicationResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func createMedicationHandler(svc *Service, delegated bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, owner, ok := actorAndOwner(w, r, delegated)
		if !ok {
			return
		}

		var req medicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.CreateMedication(r.Context(), actor, owner, MedicationInput(req))
		if err != nil {
			writeRecordError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toMedicationResponse(m))
	}
}

func updateMedicationHandler(svc *Service, delegated bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, owner, ok := actorAndOwner(w, r, delegated)
		if !ok {
			return
		}

		var req medicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.UpdateMedication(r.Context(), actor, owner, chi.URLParam(r, "recordID"), MedicationInput(req))
		if err != nil {
			writeRecordError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMedicationResponse(m))
	}
}

func deleteMedicationHandler(svc *Service, delegated bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, owner, ok := actorAndOwner(w, r, delegated)
		if !ok {
			return
		}

		if err := svc.DeleteMedication(r.Context(), actor, owner, chi.URLParam(r, "recordID")); err != nil {
			writeRecordError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listDailyTasksHandler(svc *Service, delegated bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, owner, ok := actorAndOwner(w, r, delegated)
		if !ok {
			return
		}

		items, err := svc.ListDailyTasks(r.Context(), actor, owner)
		if err != nil {
			writeRecordError(w, err)
			return
		}

		out := make([]dailyTaskResponse, 0, len(items))
		for _, task := range items {
			out = append(out, toDailyTaskResponse(task))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func createDailyTaskHandler(svc *Service, delegated bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, owner, ok := actorAndOwner(w, r, delegated)
		if !ok {
			return
		}

		var req dailyTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		task, err := svc.CreateDailyTask(r.Context(), actor, owner, DailyTaskInput(req))
		if err != nil {
			writeRecordError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toDailyTaskResponse(task))
	}
}

func updateDailyTaskHandler(svc *Service, delegated bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, owner, ok := actorAndOwner(w, r, delegated)
		if !ok {
			return
		}

		var req dailyTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		task, err := svc.UpdateDailyTask(r.Context(), actor, owner, chi.URLParam(r, "recordID"), DailyTaskInput(req))
		if err != nil {
			writeRecordError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDailyTaskResponse(task))
	}
}

func deleteDailyTaskHandler(svc *Service, delegated bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, owner, ok := actorAndOwner(w, r, delegated)
		if !ok {
			return
		}

		if err := svc.DeleteDailyTask(r.Context(), actor, owner, chi.URLParam(r, "recordID")); err != nil {
			writeRecordError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func patientDataHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		snap, err := svc.PatientSnapshot(r.Context(), claims.UserID, chi.URLParam(r, "patientID"))
		if err != nil {
			writeRecordError(w, err)
			return
		}

		resp := patientDataResponse{
			Patient: patientProfileResponse{
				ID:       snap.Patient.ID,
				Name:     snap.Patient.Name,
				Username: snap.Patient.Username,
			},
			Appointments: make([]appointmentResponse, 0, len(snap.Appointments)),
			Medications:  make([]medicationResponse, 0, len(snap.Medications)),
			DailyTasks:   make([]dailyTaskResponse, 0, len(snap.DailyTasks)),
		}
		for _, a := range snap.Appointments {
			resp.Appointments = append(resp.Appointments, toAppointmentResponse(a))
		}
		for _, m := range snap.Medications {
			resp.Medications = append(resp.Medications, toMedicationResponse(m))
		}
		for _, task := range snap.DailyTasks {
			resp.DailyTasks = append(resp.DailyTasks, toDailyTaskResponse(task))
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func writeRecordError(w http.ResponseWriter, err error) {
	switch err {
	case ErrInvalidInput:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case access.ErrForbidden:
		http.Error(w, "forbidden", http.StatusForbidden)
	case ErrNotFound:
		http.Error(w, "not found", http.StatusNotFound)
	default:
		// nunca filtramos el texto del error de storage al cliente
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		Title:       a.Title,
		Date:        a.Date,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toMedicationResponse(m Medication) medicationResponse {
	return medicationResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Dosage:    m.Dosage,
		Time:      m.Time,
		Duration:  m.Duration,
		IsTaken:   m.IsTaken,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toDailyTaskResponse(t DailyTask) dailyTaskResponse {
	return dailyTaskResponse{
		ID:        t.ID,
		UserID:    t.UserID,
		Name:      t.Name,
		Location:  t.Location,
		Time:      t.Time,
		Frequency: t.Frequency,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo;
// todavía no amerita un helper compartido.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
