package users

import (
	"context"
	"strings"
)

// Lookups mínimos que consumen otros módulos (grants, records) a través de
// interfaces chicas declaradas allá. Devuelven strings planos para no
// acoplar tipos entre paquetes de dominio.

// RoleOf resuelve el rol desde el store. El token nunca lleva rol,
// así que todo chequeo de rol pasa por acá.
func (s *Service) RoleOf(ctx context.Context, userID string) (string, error) {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return string(u.Role), nil
}

// CaregiverIDByUsername busca un usuario por username y exige rol caregiver.
// Un username que existe pero no es caregiver se reporta igual que uno
// inexistente.
func (s *Service) CaregiverIDByUsername(ctx context.Context, username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", ErrInvalidInput
	}

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u.Role != RoleCaregiver {
		return "", ErrNotFound
	}
	return u.ID, nil
}

// ProfileOf expone los datos públicos del paciente para el snapshot agregado.
func (s *Service) ProfileOf(ctx context.Context, userID string) (id, name, username string, err error) {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return "", "", "", err
	}
	return u.ID, u.Name, u.Username, nil
}
