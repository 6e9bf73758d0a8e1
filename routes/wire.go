package routes

import (
	"time"

	"barberledger-backend/controllers"
	"barberledger-backend/logger"
	"barberledger-backend/metrics"
	"barberledger-backend/services"
	"barberledger-backend/utils"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type Options struct {
	Location    *time.Location
	Tokens      *utils.TokenIssuer
	Log         *logger.Logger
	Registry    *prometheus.Registry
	Sender      services.MessageSender // nil disables dispatch
	CORSOrigins []string
	Now         func() time.Time

	// SecureCookie marks the login cookie Secure; off for plain-HTTP development.
	SecureCookie bool
}

// NewRouter builds the services over db and the controllers over them.
func NewRouter(db *gorm.DB, opts Options) *Router {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	m := metrics.New(opts.Registry)

	settings := services.NewSettingsService(db)
	clients := services.NewClientStore(db)
	ledger := services.NewLedgerStore(db, opts.Location)
	recorder := services.NewAppointmentRecorder(db, opts.Log, m)
	reports := services.NewReportService(ledger, settings)
	inactivity := services.NewInactivityService(clients, settings, opts.Now)
	reengagement := services.NewReengagementService(db, inactivity, settings, opts.Sender, opts.Log, m)

	return &Router{
		Auth: &controllers.AuthController{
			Operators:    services.NewOperatorService(db),
			Tokens:       opts.Tokens,
			Log:          opts.Log,
			SecureCookie: opts.SecureCookie,
		},
		Clients: &controllers.ClientController{
			Clients:    clients,
			Inactivity: inactivity,
			Log:        opts.Log,
		},
		Appointments: &controllers.AppointmentController{
			Recorder: recorder,
			Ledger:   ledger,
			Log:      opts.Log,
		},
		Reports: &controllers.ReportController{
			Reports:  reports,
			Location: opts.Location,
			Log:      opts.Log,
			Now:      opts.Now,
		},
		Settings: &controllers.SettingsController{
			Settings: settings,
			Log:      opts.Log,
		},
		Reengagement: &controllers.ReengagementController{
			Reengagement: reengagement,
			Log:          opts.Log,
		},
		Tokens:      opts.Tokens,
		Log:         opts.Log,
		Metrics:     m,
		Gatherer:    opts.Registry,
		CORSOrigins: opts.CORSOrigins,
	}
}
