package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/stridewear/storefront-api/internal/core/ports"
	customMiddleware "github.com/stridewear/storefront-api/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TLSCertFile  string
	TLSKeyFile   string
}

type ServerDeps struct {
	AuthService     ports.AuthService
	CustomerService ports.CustomerService
	OTPService      ports.OTPService
	SyncService     ports.SyncService
	ProductService  ports.ProductService
	OrderService    ports.OrderService
	HealthCheckers  []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	authSvc        ports.AuthService
	customerSvc    ports.CustomerService
	otpSvc         ports.OTPService
	syncSvc        ports.SyncService
	productSvc     ports.ProductService
	orderSvc       ports.OrderService
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		authSvc:        deps.AuthService,
		customerSvc:    deps.CustomerService,
		otpSvc:         deps.OTPService,
		syncSvc:        deps.SyncService,
		productSvc:     deps.ProductService,
		orderSvc:       deps.OrderService,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.AuthService,
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
