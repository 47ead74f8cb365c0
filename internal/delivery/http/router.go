package http

import (
	"log/slog"
	"net/http"

	"monipaep/internal/delivery/http/controllers"
	"monipaep/internal/delivery/http/middleware"
	"monipaep/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterDeps holds everything NewRouter mounts.
type RouterDeps struct {
	Logger             *slog.Logger
	Store              domain.CredentialStore
	Decoder            domain.ClaimsDecoder
	CORSAllowedOrigins []string

	// Metrics serves /metrics when set.
	Metrics http.Handler

	Auth            *controllers.AuthController
	Patients        *controllers.PatientController
	Diseases        *controllers.DiseaseController
	Symptoms        *controllers.SymptomController
	HealthProtocols *controllers.HealthProtocolController
	Occurrences     *controllers.OccurrenceController
	USMs            *controllers.USMController
	FAQs            *controllers.FAQController
	SystemUsers     *controllers.SystemUserController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	session := middleware.RequireSession(deps.Store, deps.Logger)
	access := func(roles ...string) func(http.HandlerFunc) http.HandlerFunc {
		check := middleware.RequireAccess(deps.Decoder, deps.Logger, nil, roles)
		return func(next http.HandlerFunc) http.HandlerFunc {
			return session(check(next))
		}
	}
	anyAdmin := access(domain.RoleLocalAdmin, domain.RoleGeneralAdmin)
	generalAdmin := access(domain.RoleGeneralAdmin)

	// Auth
	mux.HandleFunc("POST /auth/session", deps.Auth.SignIn)
	mux.HandleFunc("DELETE /auth/session", deps.Auth.SignOut)
	mux.HandleFunc("GET /auth/me", session(deps.Auth.Me))
	mux.HandleFunc("POST /auth/signup", deps.SystemUsers.SignUp)

	// Patients
	mux.HandleFunc("GET /api/patients", session(deps.Patients.List))
	mux.HandleFunc("GET /api/patients/{id}", session(deps.Patients.Get))
	mux.HandleFunc("DELETE /api/patients/{id}", session(deps.Patients.Delete))
	mux.HandleFunc("GET /api/patients/{id}/diseasehistory", session(deps.Occurrences.PatientHistory))
	mux.HandleFunc("GET /api/patients/{id}/symptomoccurrences", session(deps.Occurrences.PatientUnassignedSymptoms))

	// Diseases and symptoms
	mux.HandleFunc("GET /api/diseases", session(deps.Diseases.List))
	mux.HandleFunc("POST /api/diseases", anyAdmin(deps.Diseases.Create))
	mux.HandleFunc("PUT /api/diseases/{name}", anyAdmin(deps.Diseases.Update))
	mux.HandleFunc("DELETE /api/diseases/{name}", anyAdmin(deps.Diseases.Delete))
	mux.HandleFunc("GET /api/symptoms", session(deps.Symptoms.List))
	mux.HandleFunc("POST /api/symptoms", anyAdmin(deps.Symptoms.Create))
	mux.HandleFunc("PUT /api/symptoms/{symptom}", anyAdmin(deps.Symptoms.Update))
	mux.HandleFunc("DELETE /api/symptoms/{symptom}", anyAdmin(deps.Symptoms.Delete))

	// Health protocols
	mux.HandleFunc("GET /api/healthprotocols", session(deps.HealthProtocols.List))
	mux.HandleFunc("POST /api/healthprotocols", session(deps.HealthProtocols.Create))
	mux.HandleFunc("PUT /api/healthprotocols/{id}", session(deps.HealthProtocols.Update))
	mux.HandleFunc("GET /api/healthprotocols/assignments", session(deps.HealthProtocols.ListAssignments))
	mux.HandleFunc("POST /api/healthprotocols/assignments", session(deps.HealthProtocols.Assign))
	mux.HandleFunc("DELETE /api/healthprotocols/assignments/{disease}/{id}", session(deps.HealthProtocols.Unassign))

	// Occurrences
	mux.HandleFunc("GET /api/diseaseoccurrences", session(deps.Occurrences.List))
	mux.HandleFunc("POST /api/diseaseoccurrences", session(deps.Occurrences.Create))
	mux.HandleFunc("GET /api/diseaseoccurrences/{id}", session(deps.Occurrences.Get))
	mux.HandleFunc("PUT /api/diseaseoccurrences/{id}", session(deps.Occurrences.Update))
	mux.HandleFunc("DELETE /api/diseaseoccurrences/{id}", session(deps.Occurrences.Delete))
	mux.HandleFunc("GET /api/symptomoccurrences", session(deps.Occurrences.UnassignedSymptoms))

	// Health units
	mux.HandleFunc("GET /api/usms", session(deps.USMs.List))
	mux.HandleFunc("POST /api/usms", generalAdmin(deps.USMs.Create))
	mux.HandleFunc("PUT /api/usms/{name}", generalAdmin(deps.USMs.Update))
	mux.HandleFunc("DELETE /api/usms/{name}", generalAdmin(deps.USMs.Delete))

	// FAQs
	mux.HandleFunc("GET /api/faqs", session(deps.FAQs.List))
	mux.HandleFunc("POST /api/faqs", session(deps.FAQs.Create))
	mux.HandleFunc("PUT /api/faqs/{id}", session(deps.FAQs.Update))
	mux.HandleFunc("DELETE /api/faqs/{id}", session(deps.FAQs.Delete))

	// System users. Own details and password need only a session.
	mux.HandleFunc("GET /api/systemusers", anyAdmin(deps.SystemUsers.List))
	mux.HandleFunc("GET /api/systemusers/{id}", anyAdmin(deps.SystemUsers.Get))
	mux.HandleFunc("PUT /api/systemusers/{id}", anyAdmin(deps.SystemUsers.Update))
	mux.HandleFunc("DELETE /api/systemusers/{id}", anyAdmin(deps.SystemUsers.Delete))
	mux.HandleFunc("PUT /api/systemusers/{id}/details", session(deps.SystemUsers.UpdateDetails))
	mux.HandleFunc("PUT /api/systemusers/{id}/password", session(deps.SystemUsers.ChangePassword))

	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.LoggingMiddleware(deps.Logger, middleware.CORS(deps.CORSAllowedOrigins, mux))
}
