// Package stubserver is an in-memory invoice backend for local
// development and end-to-end tests. It speaks the same envelope and
// path layout as the production service, owns ids, timestamps and
// totals, and keeps everything in process memory.
package stubserver

import (
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/invogen/invogen-client/internal/invoice"
	"github.com/invogen/invogen-client/internal/session"
)

// Server holds the in-memory invoice store behind a gin router.
type Server struct {
	logger *zap.Logger
	user   session.User
	now    func() time.Time

	mu       sync.Mutex
	invoices []invoice.Invoice
}

// New builds a stub backend that attributes every invoice to user.
func New(user session.User, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.L()
	}
	return &Server{
		logger: logger,
		user:   user,
		now:    time.Now,
	}
}

// envelope mirrors the production response wrapper.
type envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *pagination `json:"pagination,omitempty"`
}

type pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// Router wires the API surface. CORS is open for localhost frontends.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(configureCORS())

	v1 := router.Group("/api/v1")
	{
		invoices := v1.Group("/invoices")
		{
			invoices.GET("/", s.listInvoices)
			invoices.POST("/", s.createInvoice)
			invoices.GET("/:id", s.getInvoice)
			invoices.PUT("/:id", s.updateInvoice)
			invoices.DELETE("/:id", s.deleteInvoice)
		}

		ai := v1.Group("/ai")
		{
			ai.POST("/parse-text", s.parseText)
			ai.POST("/generate-reminder", s.generateReminder)
			ai.GET("/dashboard-summary", s.dashboardSummary)
		}
	}

	return router
}

func configureCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	return cors.New(corsConfig)
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, envelope{Success: true, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Success: false, Message: message})
}

// Seed replaces the stored collection, assigning ids and timestamps to
// records that lack them. Useful for tests and demo data.
func (s *Server) Seed(invoices []invoice.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices = make([]invoice.Invoice, len(invoices))
	copy(s.invoices, invoices)
	for i := range s.invoices {
		if s.invoices[i].ID == "" {
			s.invoices[i].ID = newID()
		}
		if s.invoices[i].CreatedAt.IsZero() {
			s.invoices[i].CreatedAt = s.now()
			s.invoices[i].UpdatedAt = s.invoices[i].CreatedAt
		}
	}
}

func (s *Server) indexLocked(id string) int {
	for i := range s.invoices {
		if s.invoices[i].ID == id {
			return i
		}
	}
	return -1
}
