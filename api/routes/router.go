// api/routes/router.go
package routes

import (
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"totem/internal/bridge"
	"totem/internal/email"
	"totem/internal/flow"
	"totem/internal/idletimer"
	"totem/internal/museum"
	"totem/internal/operator"
	"totem/internal/session"
	"totem/internal/shared/config"
	"totem/internal/tickets"
	"totem/pkg/cache"
	"totem/pkg/logger"
)

// Language codes are two lowercase letters, optionally with a region
// subtag ("en", "pt-BR").
var langCodePattern = regexp.MustCompile(`^[a-z]{2}(-[A-Z]{2})?$`)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	store    *session.Store
	notifier *bridge.Notifier
	log      *logger.Logger

	timer       *idletimer.Timer
	flowService *flow.Service
	dispatcher  *email.Dispatcher
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, store *session.Store, notifier *bridge.Notifier, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		store:    store,
		notifier: notifier,
		log:      log,
	}
}

// Timer exposes the idle timer so the server can tear it down on shutdown.
func (r *Router) Timer() *idletimer.Timer {
	return r.timer
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) error {
	registerValidations()

	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupSessionRoutes(api)

		museumService := r.setupMuseumRoutes(api)

		r.setupTicketAndFlowRoutes(api)

		r.setupEmailRoutes(api)

		if err := r.setupOperatorRoutes(api, museumService); err != nil {
			return err
		}
	}

	return nil
}

// registerValidations installs custom binding rules on gin's validator.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("langcode", func(fl validator.FieldLevel) bool {
			return langCodePattern.MatchString(fl.Field().String())
		})
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		settings := "unavailable"
		if cache.IsInitialized() {
			if err := cache.Ping(); err == nil {
				settings = "connected"
			} else {
				settings = "unreachable"
			}
		}

		// The kiosk stays operational without durable settings, so a Redis
		// outage degrades the report instead of failing it.
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"settings":  settings,
			"bridge":    string(r.notifier.Detect()),
			"timestamp": time.Now(),
			"service":   "totem-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupSessionRoutes configures the session snapshot route
func (r *Router) setupSessionRoutes(rg *gin.RouterGroup) {
	sessionController := session.NewController(r.store)
	session.SetupSessionRoutes(rg, sessionController)
}

// setupMuseumRoutes configures museum lookup routes
func (r *Router) setupMuseumRoutes(rg *gin.RouterGroup) museum.Service {
	museumClient := museum.NewClient(r.config.Upstream.BaseURL, r.config.Upstream.Timeout, r.log)
	museumService := museum.NewService(museumClient, r.store)
	museumController := museum.NewController(museumService)

	museum.SetupMuseumRoutes(rg, museumController)
	return museumService
}

// setupTicketAndFlowRoutes wires ticket generation, the idle timer and the
// purchase flow. These share a cycle: the flow invalidates tickets, the
// ticket carousel arms the flow's idle timer, and the timer's expiry drives
// a flow transition. The timer callback closes over the service variable,
// which is assigned before the timer can ever be armed.
func (r *Router) setupTicketAndFlowRoutes(rg *gin.RouterGroup) {
	issuer := tickets.NewHTTPIssuer(r.config.Upstream.BaseURL, r.config.Upstream.Timeout)
	generator := tickets.NewGenerator(issuer, r.config.Kiosk.CheckInBaseURL, r.log)
	ticketService := tickets.NewService(generator, r.store)

	var flowService *flow.Service
	timer := idletimer.New(
		r.config.Kiosk.IdleCountdownStart,
		r.config.Kiosk.IdleTickInterval,
		func() { flowService.IdleTimeout() },
		r.log,
	)

	dispatcher := r.emailDispatcher()
	flowService = flow.NewService(r.store, ticketService, timer, r.notifier, dispatcher, r.log)

	r.timer = timer
	r.flowService = flowService

	ticketController := tickets.NewController(ticketService, flowService)
	tickets.SetupTicketRoutes(rg, ticketController)

	flowController := flow.NewController(flowService)
	flow.SetupFlowRoutes(rg, flowController)
}

func (r *Router) emailDispatcher() *email.Dispatcher {
	if r.dispatcher == nil {
		r.dispatcher = email.NewDispatcher(r.config.Email.RelayURL, r.store, r.log)
	}
	return r.dispatcher
}

// setupEmailRoutes configures email dispatch and the relay endpoint
func (r *Router) setupEmailRoutes(rg *gin.RouterGroup) {
	var sender email.Sender
	smtpSender, err := email.NewSMTPSender(email.SMTPConfig{
		Host:      r.config.Email.SMTPHost,
		Port:      r.config.Email.SMTPPort,
		Username:  r.config.Email.SMTPUsername,
		Password:  r.config.Email.SMTPPassword,
		FromEmail: r.config.Email.FromEmail,
		FromName:  r.config.Email.FromName,
		UseTLS:    true,
	})
	if err != nil {
		r.log.WithError(err).Warn("mail sender not configured, relay endpoint will reject requests")
	} else {
		sender = smtpSender
	}

	relay := email.NewRelay(sender, r.config.Email.QRImageBase, r.log)
	emailController := email.NewController(r.emailDispatcher(), relay)
	email.SetupEmailRoutes(rg, emailController)
}

// setupOperatorRoutes configures operator provisioning routes
func (r *Router) setupOperatorRoutes(rg *gin.RouterGroup, museumService museum.Service) error {
	operatorService, err := operator.NewService(r.config, r.store, museumService, r.log)
	if err != nil {
		return err
	}

	operatorController := operator.NewController(operatorService)
	operator.SetupOperatorRoutes(rg, operatorController, r.config)
	return nil
}
