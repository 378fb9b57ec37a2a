package grants

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
	// Paciente: asignación directa e invitaciones
	r.Post("/assign-caregiver", assignCaregiverHandler(svc))
	r.Route("/caregiver-invites", func(cr chi.Router) {
		cr.Post("/", createInviteHandler(svc))
		cr.Post("/{patientID}/accept", acceptInviteHandler(svc))
	})

	// Caregiver: sus invitaciones pendientes
	r.Get("/me/caregiver-invites", listMyInvitesHandler(svc))

	// Paciente: su ledger completo
	r.Get("/me/caregivers", listMyCaregiversHandler(svc))
}

type assignCaregiverRequest struct {
	CaregiverID         string `json:"caregiver_id"`
	CanEditAppointments bool   `json:"can_edit_appointments"`
	CanEditMedications  bool   `json:"can_edit_medications"`
	CanViewDailyTasks   bool   `json:"can_view_daily_tasks"`
}

type inviteRequest struct {
	CaregiverUsername string `json:"caregiver_username"`
}

type grantResponse struct {
	ID                  string     `json:"id"`
	PatientID           string     `json:"patient_id"`
	CaregiverID         string     `json:"caregiver_id"`
	CanEditAppointments bool       `json:"can_edit_appointments"`
	CanEditMedications  bool       `json:"can_edit_medications"`
	CanViewDailyTasks   bool       `json:"can_view_daily_tasks"`
	Status              Status     `json:"status"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	AcceptedAt          *time.Time `json:"accepted_at,omitempty"`
}

func assignCaregiverHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req assignCaregiverRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.CaregiverID) == "" {
			http.Error(w, "caregiver_id required", http.StatusBadRequest)
			return
		}

		g, err := svc.AssignDirect(r.Context(), claims.UserID, AssignInput{
			CaregiverID: req.CaregiverID,
			Capabilities: Capabilities{
				CanEditAppointments: req.CanEditAppointments,
				CanEditMedications:  req.CanEditMedications,
				CanViewDailyTasks:   req.CanViewDailyTasks,
			},
		})
		if err != nil {
			writeGrantError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toGrantResponse(g))
	}
}

func createInviteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req inviteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.CaregiverUsername) == "" {
			http.Error(w, "caregiver_username required", http.StatusBadRequest)
			return
		}

		g, err := svc.Invite(r.Context(), claims.UserID, req.CaregiverUsername)
		if err != nil {
			writeGrantError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toGrantResponse(g))
	}
}

func listMyInvitesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListPendingInvites(r.Context(), claims.UserID)
		if err != nil {
			writeGrantError(w, err)
			return
		}

		out := make([]grantResponse, 0, len(items))
		for _, g := range items {
			out = append(out, toGrantResponse(g))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listMyCaregiversHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByPatient(r.Context(), claims.UserID)
		if err != nil {
			writeGrantError(w, err)
			return
		}

		out := make([]grantResponse, 0, len(items))
		for _, g := range items {
			out = append(out, toGrantResponse(g))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func acceptInviteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		patientID := chi.URLParam(r, "patientID")
		g, err := svc.Accept(r.Context(), claims.UserID, patientID)
		if err != nil {
			writeGrantError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toGrantResponse(g))
	}
}

func writeGrantError(w http.ResponseWriter, err error) {
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

func toGrantResponse(g Grant) grantResponse {
	return grantResponse{
		ID:                  g.ID,
		PatientID:           g.PatientID,
		CaregiverID:         g.CaregiverID,
		CanEditAppointments: g.Capabilities.CanEditAppointments,
		CanEditMedications:  g.Capabilities.CanEditMedications,
		CanViewDailyTasks:   g.Capabilities.CanViewDailyTasks,
		Status:              g.Status,
		CreatedAt:           g.CreatedAt,
		UpdatedAt:           g.UpdatedAt,
		AcceptedAt:          g.AcceptedAt,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo;
// todavía no amerita un helper compartido.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
