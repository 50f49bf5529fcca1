package api

import (
	"database/sql"
	"net/http"

	"github.com/aldeenj/veilflow/internal/model"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db}
	productsHandler := &ProductsHandler{DB: db}
	labelsHandler := &LabelsHandler{DB: db}
	settingsHandler := &SettingsHandler{DB: db}
	statsHandler := &StatsHandler{DB: db}
	exportHandler := &ExportHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)
	requireAdmin := RequireRole(model.RoleAdmin)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Users (admin only).
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("POST /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.Create))))
	mux.Handle("GET /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Get))))
	mux.Handle("PUT /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Update))))
	mux.Handle("PUT /api/users/{id}/password", authMW(requireAdmin(http.HandlerFunc(usersHandler.ResetPassword))))
	mux.Handle("DELETE /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	// Products (all roles).
	mux.Handle("GET /api/products", authMW(http.HandlerFunc(productsHandler.List)))
	mux.Handle("POST /api/products", authMW(http.HandlerFunc(productsHandler.Create)))
	mux.Handle("GET /api/products/{id}", authMW(http.HandlerFunc(productsHandler.Get)))
	mux.Handle("PUT /api/products/{id}", authMW(http.HandlerFunc(productsHandler.Update)))
	mux.Handle("DELETE /api/products/{id}", authMW(http.HandlerFunc(productsHandler.Delete)))

	// Labels and barcodes (all roles).
	mux.Handle("GET /api/products/{id}/label", authMW(http.HandlerFunc(labelsHandler.GetLabel)))
	mux.Handle("GET /api/products/{id}/barcode.png", authMW(http.HandlerFunc(labelsHandler.GetBarcode)))

	// Settings: read (all roles), write (admin).
	mux.Handle("GET /api/settings", authMW(http.HandlerFunc(settingsHandler.Get)))
	mux.Handle("PUT /api/settings", authMW(requireAdmin(http.HandlerFunc(settingsHandler.Update))))
	mux.Handle("POST /api/settings/reset", authMW(requireAdmin(http.HandlerFunc(settingsHandler.Reset))))
	mux.Handle("GET /api/settings/page-size", authMW(http.HandlerFunc(settingsHandler.PageSize)))
	mux.Handle("GET /api/settings/options", authMW(http.HandlerFunc(settingsHandler.Options)))
	mux.Handle("PUT /api/settings/logo", authMW(requireAdmin(http.HandlerFunc(settingsHandler.UploadLogo))))
	mux.Handle("GET /api/settings/logo", authMW(http.HandlerFunc(settingsHandler.GetLogo)))
	mux.Handle("DELETE /api/settings/logo", authMW(requireAdmin(http.HandlerFunc(settingsHandler.DeleteLogo))))

	// Stats and prints (all roles).
	mux.Handle("GET /api/stats", authMW(http.HandlerFunc(statsHandler.Get)))
	mux.Handle("POST /api/prints", authMW(http.HandlerFunc(statsHandler.RecordPrints)))

	// Backup/restore (admin only).
	mux.Handle("GET /api/export", authMW(requireAdmin(http.HandlerFunc(exportHandler.Export))))
	mux.Handle("POST /api/import", authMW(requireAdmin(http.HandlerFunc(exportHandler.Import))))
	mux.Handle("POST /api/reset", authMW(requireAdmin(http.HandlerFunc(exportHandler.Reset))))

	return mux
}
