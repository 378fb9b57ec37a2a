package grants

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"care-circle/internal/ports/access"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Grant
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Grant{}}
}

func (r *testRepo) Create(ctx context.Context, g Grant) error {
	if g.ID == "" {
		return errors.New("repo: id required")
	}
	for _, e := range r.byID {
		if e.PatientID == g.PatientID && e.CaregiverID == g.CaregiverID {
			return ErrDuplicatePair
		}
	}
	r.byID[g.ID] = g
	return nil
}

func (r *testRepo) Update(ctx context.Context, g Grant) error {
	if _, ok := r.byID[g.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[g.ID] = g
	return nil
}

func (r *testRepo) GetByPair(ctx context.Context, patientID, caregiverID string) (Grant, error) {
	for _, g := range r.byID {
		if g.PatientID == patientID && g.CaregiverID == caregiverID {
			return g, nil
		}
	}
	return Grant{}, errRepoNotFound
}

func (r *testRepo) GetAccepted(ctx context.Context, patientID, caregiverID string) (Grant, error) {
	g, err := r.GetByPair(ctx, patientID, caregiverID)
	if err != nil || g.Status != StatusAccepted {
		return Grant{}, errRepoNotFound
	}
	return g, nil
}

func (r *testRepo) ListPendingByCaregiver(ctx context.Context, caregiverID string) ([]Grant, error) {
	out := make([]Grant, 0)
	for _, g := range r.byID {
		if g.CaregiverID == caregiverID && g.Status == StatusPending {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *testRepo) ListByPatient(ctx context.Context, patientID string) ([]Grant, error) {
	out := make([]Grant, 0)
	for _, g := range r.byID {
		if g.PatientID == patientID {
			out = append(out, g)
		}
	}
	return out, nil
}

// testDirectory: usuarios fijos por test, sin pasar por el módulo users.
type testDirectory struct {
	roles      map[string]string // id -> role
	byUsername map[string]string // username -> id
}

func newTestDirectory() *testDirectory {
	return &testDirectory{roles: map[string]string{}, byUsername: map[string]string{}}
}

func (d *testDirectory) add(id, username, role string) {
	d.roles[id] = role
	d.byUsername[username] = id
}

func (d *testDirectory) RoleOf(ctx context.Context, userID string) (string, error) {
	role, ok := d.roles[userID]
	if !ok {
		return "", errors.New("directory: not found")
	}
	return role, nil
}

func (d *testDirectory) CaregiverIDByUsername(ctx context.Context, username string) (string, error) {
	id, ok := d.byUsername[username]
	if !ok || d.roles[id] != roleCaregiver {
		return "", errors.New("directory: not found")
	}
	return id, nil
}

func newTestService() (*Service, *testRepo, *testDirectory) {
	repo := newTestRepo()
	dir := newTestDirectory()
	dir.add("patient-1", "alice", rolePatient)
	dir.add("caregiver-1", "bob", roleCaregiver)
	svc := NewService(repo, dir)
	return svc, repo, dir
}

// -------------------------
// Tests
// -------------------------

func TestService_Invite_DefaultCapabilities(t *testing.T) {
	svc, _, _ := newTestService()

	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	g, err := svc.Invite(context.Background(), "patient-1", "bob")
	if err != nil {
		t.Fatalf("Invite returned error: %v", err)
	}
	if g.Status != StatusPending {
		t.Fatalf("expected status pending, got %s", g.Status)
	}
	if g.CreatedAt != now || g.UpdatedAt != now {
		t.Fatalf("expected CreatedAt/UpdatedAt to be now")
	}
	// defaults: ver tareas diarias sí, editar nada
	if !g.Capabilities.CanViewDailyTasks {
		t.Fatalf("expected can_view_daily_tasks=true by default")
	}
	if g.Capabilities.CanEditAppointments || g.Capabilities.CanEditMedications {
		t.Fatalf("expected edit flags false by default, got %+v", g.Capabilities)
	}
}

func TestService_Invite_UnknownCaregiver_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Invite(context.Background(), "patient-1", "ghost")
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// un paciente tampoco se puede invitar como caregiver
	svc2, _, dir := newTestService()
	dir.add("patient-2", "carol", rolePatient)
	_, err = svc2.Invite(context.Background(), "patient-1", "carol")
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for patient username, got %v", err)
	}
}

func TestService_Invite_ActorNotPatient_Forbidden(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Invite(context.Background(), "caregiver-1", "bob")
	if err != access.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestService_Invite_Reinvite_NoOp(t *testing.T) {
	svc, repo, _ := newTestService()

	g1, err := svc.Invite(context.Background(), "patient-1", "bob")
	if err != nil {
		t.Fatalf("Invite #1 error: %v", err)
	}
	g2, err := svc.Invite(context.Background(), "patient-1", "bob")
	if err != nil {
		t.Fatalf("Invite #2 error: %v", err)
	}

	if g2.ID != g1.ID {
		t.Fatalf("expected same grant on reinvite, got %s vs %s", g1.ID, g2.ID)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected 1 row after reinvite, got %d", len(repo.byID))
	}
}

func TestService_Accept_SetsAccepted_AndIdempotent(t *testing.T) {
	svc, repo, _ := newTestService()

	now1 := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	now2 := now1.Add(5 * time.Minute)

	svc.now = func() time.Time { return now1 }
	if _, err := svc.Invite(context.Background(), "patient-1", "bob"); err != nil {
		t.Fatalf("Invite error: %v", err)
	}

	svc.now = func() time.Time { return now2 }
	g, err := svc.Accept(context.Background(), "caregiver-1", "patient-1")
	if err != nil {
		t.Fatalf("Accept error: %v", err)
	}
	if g.Status != StatusAccepted {
		t.Fatalf("expected accepted, got %s", g.Status)
	}
	if g.AcceptedAt == nil || !g.AcceptedAt.Equal(now2) {
		t.Fatalf("expected AcceptedAt=now2, got %v", g.AcceptedAt)
	}

	// idempotente: aceptar de nuevo no crea una segunda fila
	g2, err := svc.Accept(context.Background(), "caregiver-1", "patient-1")
	if err != nil {
		t.Fatalf("Accept #2 error: %v", err)
	}
	if g2.ID != g.ID {
		t.Fatalf("expected same grant, got %s vs %s", g.ID, g2.ID)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected exactly 1 grant row, got %d", len(repo.byID))
	}
}

func TestService_Accept_NoInvite_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Accept(context.Background(), "caregiver-1", "patient-1")
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_AssignDirect_CreatesAccepted(t *testing.T) {
	svc, _, _ := newTestService()

	g, err := svc.AssignDirect(context.Background(), "patient-1", AssignInput{
		CaregiverID:  "caregiver-1",
		Capabilities: Capabilities{CanEditMedications: true},
	})
	if err != nil {
		t.Fatalf("AssignDirect error: %v", err)
	}
	if g.Status != StatusAccepted {
		t.Fatalf("expected accepted, got %s", g.Status)
	}
	if !g.Capabilities.CanEditMedications || g.Capabilities.CanEditAppointments {
		t.Fatalf("unexpected capabilities %+v", g.Capabilities)
	}
}

func TestService_AssignDirect_ExistingAccepted_NoOp(t *testing.T) {
	svc, repo, _ := newTestService()

	g1, err := svc.AssignDirect(context.Background(), "patient-1", AssignInput{
		CaregiverID:  "caregiver-1",
		Capabilities: Capabilities{CanEditMedications: true},
	})
	if err != nil {
		t.Fatalf("AssignDirect #1 error: %v", err)
	}

	// re-asignar no duplica ni pisa flags
	g2, err := svc.AssignDirect(context.Background(), "patient-1", AssignInput{
		CaregiverID:  "caregiver-1",
		Capabilities: Capabilities{CanEditAppointments: true},
	})
	if err != nil {
		t.Fatalf("AssignDirect #2 error: %v", err)
	}
	if g2.ID != g1.ID {
		t.Fatalf("expected same grant, got %s vs %s", g1.ID, g2.ID)
	}
	if g2.Capabilities != g1.Capabilities {
		t.Fatalf("expected capabilities unchanged, got %+v", g2.Capabilities)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected 1 row, got %d", len(repo.byID))
	}
}

func TestService_AssignDirect_PromotesPendingInvite(t *testing.T) {
	svc, repo, _ := newTestService()

	if _, err := svc.Invite(context.Background(), "patient-1", "bob"); err != nil {
		t.Fatalf("Invite error: %v", err)
	}

	g, err := svc.AssignDirect(context.Background(), "patient-1", AssignInput{
		CaregiverID:  "caregiver-1",
		Capabilities: Capabilities{CanEditAppointments: true, CanViewDailyTasks: true},
	})
	if err != nil {
		t.Fatalf("AssignDirect error: %v", err)
	}
	if g.Status != StatusAccepted {
		t.Fatalf("expected accepted, got %s", g.Status)
	}
	if !g.Capabilities.CanEditAppointments {
		t.Fatalf("expected explicit flags to win over invite defaults")
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected the pending row promoted in place, got %d rows", len(repo.byID))
	}
}

func TestService_AssignDirect_ActorNotPatient_Forbidden(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.AssignDirect(context.Background(), "caregiver-1", AssignInput{CaregiverID: "caregiver-1"})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestService_ListPendingInvites_OnlyPending_InCreationOrder(t *testing.T) {
	svc, _, dir := newTestService()
	dir.add("patient-2", "carol", rolePatient)

	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	svc.now = func() time.Time { return now }
	if _, err := svc.Invite(context.Background(), "patient-1", "bob"); err != nil {
		t.Fatalf("Invite #1 error: %v", err)
	}
	svc.now = func() time.Time { return now.Add(time.Minute) }
	if _, err := svc.Invite(context.Background(), "patient-2", "bob"); err != nil {
		t.Fatalf("Invite #2 error: %v", err)
	}

	// aceptar la primera la saca de pendientes
	if _, err := svc.Accept(context.Background(), "caregiver-1", "patient-1"); err != nil {
		t.Fatalf("Accept error: %v", err)
	}

	items, err := svc.ListPendingInvites(context.Background(), "caregiver-1")
	if err != nil {
		t.Fatalf("ListPendingInvites error: %v", err)
	}
	if len(items) != 1 || items[0].PatientID != "patient-2" {
		t.Fatalf("expected only patient-2 pending, got %#v", items)
	}
}

func TestService_Authorize_SelfAlwaysAllowed(t *testing.T) {
	svc, _, _ := newTestService()

	for _, cap := range []access.Capability{
		access.CapabilityAny,
		access.CapabilityEditAppointments,
		access.CapabilityEditMedications,
		access.CapabilityViewDailyTasks,
	} {
		if err := svc.Authorize(context.Background(), "patient-1", "patient-1", cap); err != nil {
			t.Fatalf("self access denied for %s: %v", cap, err)
		}
	}
}

func TestService_Authorize_StrangerForbidden(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.Authorize(context.Background(), "caregiver-1", "patient-1", access.CapabilityViewDailyTasks)
	if err != access.ErrForbidden {
		t.Fatalf("expected ErrForbidden without grant, got %v", err)
	}
}

func TestService_Authorize_PendingGrantNotEnough(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.Invite(context.Background(), "patient-1", "bob"); err != nil {
		t.Fatalf("Invite error: %v", err)
	}

	// la invitación sin aceptar no otorga nada, ni siquiera CapabilityAny
	err := svc.Authorize(context.Background(), "caregiver-1", "patient-1", access.CapabilityAny)
	if err != access.ErrForbidden {
		t.Fatalf("expected ErrForbidden for pending grant, got %v", err)
	}
}

func TestService_Authorize_ChecksCapabilityFlag(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.Invite(context.Background(), "patient-1", "bob"); err != nil {
		t.Fatalf("Invite error: %v", err)
	}
	if _, err := svc.Accept(context.Background(), "caregiver-1", "patient-1"); err != nil {
		t.Fatalf("Accept error: %v", err)
	}

	// defaults de invitación: solo ver tareas diarias
	if err := svc.Authorize(context.Background(), "caregiver-1", "patient-1", access.CapabilityViewDailyTasks); err != nil {
		t.Fatalf("expected view daily tasks allowed, got %v", err)
	}
	if err := svc.Authorize(context.Background(), "caregiver-1", "patient-1", access.CapabilityEditAppointments); err != access.ErrForbidden {
		t.Fatalf("expected edit appointments forbidden, got %v", err)
	}

	// presencia de grant alcanza para CapabilityAny
	if err := svc.Authorize(context.Background(), "caregiver-1", "patient-1", access.CapabilityAny); err != nil {
		t.Fatalf("expected any-capability allowed with accepted grant, got %v", err)
	}
}
