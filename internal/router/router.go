package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "care-circle/internal/adapters/storage/memory"
	pg "care-circle/internal/adapters/storage/postgres"
	"care-circle/internal/domain/grants"
	"care-circle/internal/domain/records"
	"care-circle/internal/domain/users"
	"care-circle/internal/middleware"
	"care-circle/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev: X-Debug-User-ID)
	TokenIssuer  auth.TokenIssuer  // lo usa /login; puede ser nil si no hay login

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// 0 => bcrypt.DefaultCost
	BcryptCost int
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		usersRepo  users.Repository
		grantsRepo grants.Repository
		apptRepo   records.AppointmentRepository
		medRepo    records.MedicationRepository
		taskRepo   records.DailyTaskRepository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		usersRepo = pg.NewUsersRepo(db)
		grantsRepo = pg.NewGrantsRepo(db)
		apptRepo = pg.NewAppointmentsRepo(db)
		medRepo = pg.NewMedicationsRepo(db)
		taskRepo = pg.NewDailyTasksRepo(db)
	} else {
		usersRepo = mem.NewUsersRepo()
		grantsRepo = mem.NewGrantsRepo()
		apptRepo = mem.NewAppointmentsRepo()
		medRepo = mem.NewMedicationsRepo()
		taskRepo = mem.NewDailyTasksRepo()
	}

	// Services por módulo. users hace de directorio para grants y records.
	usersSvc := users.NewService(usersRepo, opts.TokenIssuer, opts.BcryptCost)
	grantsSvc := grants.NewService(grantsRepo, usersSvc)
	recordsSvc := records.NewService(apptRepo, medRepo, taskRepo, grantsSvc, usersSvc)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc)
	grants.RegisterRoutes(r, grantsSvc)
	records.RegisterRoutes(r, recordsSvc)

	return r
}
