package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID       map[string]User
	byUsername map[string]string // username -> id
}

func newTestRepo() *testRepo {
	return &testRepo{
		byID:       map[string]User{},
		byUsername: map[string]string{},
	}
}

func (r *testRepo) Create(ctx context.Context, u User) error {
	if _, ok := r.byUsername[u.Username]; ok {
		return ErrDuplicateUsername
	}
	r.byID[u.ID] = u
	r.byUsername[u.Username] = u.ID
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	id, ok := r.byUsername[username]
	if !ok {
		return User{}, ErrNotFound
	}
	return r.byID[id], nil
}

type stubIssuer struct{}

func (stubIssuer) Issue(userID string) (string, error) {
	return "token-for-" + userID, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Register_DuplicateUsername(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, stubIssuer{}, 4) // cost bajo para tests

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Password: "pw1", Name: "Alice", Role: RolePatient,
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{
		Username: "alice", Password: "other", Name: "Alice 2", Role: RoleCaregiver,
	})
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	// el store queda intacto: sigue habiendo un solo usuario
	assert.Len(t, repo.byID, 1)
}

func TestService_Register_Validation(t *testing.T) {
	svc := NewService(newTestRepo(), stubIssuer{}, 4)

	cases := []RegisterInput{
		{Username: "", Password: "pw", Name: "x", Role: RolePatient},
		{Username: "bob", Password: "", Name: "x", Role: RolePatient},
		{Username: "bob", Password: "pw", Name: "x", Role: Role("admin")},
	}
	for _, in := range cases {
		_, err := svc.Register(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %+v", in)
	}
}

func TestService_Register_DoesNotStorePlainPassword(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, stubIssuer{}, 4)

	u, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Password: "pw1", Name: "Alice", Role: RolePatient,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "pw1", u.PasswordHash)
}

func TestService_Login(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, stubIssuer{}, 4)

	u, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Password: "pw1", Name: "Alice", Role: RolePatient,
	})
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "alice", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "ghost", "pw1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("success", func(t *testing.T) {
		out, err := svc.Login(context.Background(), "alice", "pw1")
		require.NoError(t, err)
		assert.Equal(t, u.ID, out.User.ID)
		assert.Equal(t, "token-for-"+u.ID, out.Token)
	})
}

func TestService_CaregiverIDByUsername_RoleFilter(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, stubIssuer{}, 4)

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Password: "pw1", Name: "Alice", Role: RolePatient,
	})
	require.NoError(t, err)

	bob, err := svc.Register(context.Background(), RegisterInput{
		Username: "bob", Password: "pw2", Name: "Bob", Role: RoleCaregiver,
	})
	require.NoError(t, err)

	id, err := svc.CaregiverIDByUsername(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, id)

	// un paciente no cuenta como caregiver
	_, err = svc.CaregiverIDByUsername(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CaregiverIDByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
