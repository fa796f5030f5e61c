package ui

import (
	"embed"
	"html/template"
	"sync"

	"github.com/gin-gonic/gin"

	"churnmate/app"
	"churnmate/domain/dataset"
	"churnmate/internal"
	"churnmate/internal/config"
	"churnmate/internal/testkit"
	"churnmate/internal/usage"
	"churnmate/ports"
)

//go:embed templates/*
var embeddedFiles embed.FS

// Server is the ChurnMate dashboard web server
type Server struct {
	router    *gin.Engine
	templates *template.Template
	log       *internal.Logger

	insightService *app.InsightService
	chatService    *app.ChatService
	reader         ports.TabularReader
	usageService   *usage.Service
	dataConfig     config.DataConfig

	// The loaded dataset and its latest analysis. Re-upload replaces both
	// wholesale; analysis never mutates them in place.
	mu            sync.RWMutex
	currentData   *dataset.Dataset
	currentResult *app.InsightResult
}

// Deps holds everything the server needs
type Deps struct {
	InsightService *app.InsightService
	ChatService    *app.ChatService
	Reader         ports.TabularReader
	Usage          *usage.Service
	Data           config.DataConfig
	GinMode        string
}

// NewServer creates the dashboard server with routes and templates wired
func NewServer(deps Deps) (*Server, error) {
	if deps.GinMode != "" {
		gin.SetMode(deps.GinMode)
	}

	templates, err := template.New("").ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:         gin.Default(),
		templates:      templates,
		log:            internal.NewLogger("Server"),
		insightService: deps.InsightService,
		chatService:    deps.ChatService,
		reader:         deps.Reader,
		usageService:   deps.Usage,
		dataConfig:     deps.Data,
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.SetHTMLTemplate(s.templates)

	// Main page
	s.router.GET("/", s.handleIndex)

	// Dataset endpoints
	s.router.POST("/api/datasets/upload", s.handleDatasetUpload)
	s.router.GET("/api/datasets/summary", s.handleDatasetSummary)
	s.router.GET("/api/datasets/sample", s.handleSampleDownload)

	// Chat endpoints
	s.router.POST("/api/chat", s.handleChatMessage)
	s.router.GET("/api/chat/:id/history", s.handleChatHistory)

	// Usage endpoint
	s.router.GET("/api/usage", s.handleUsage)
}

// Start starts the HTTP server on the given port
func (s *Server) Start(port string) error {
	s.log.Info("starting ChurnMate dashboard on http://localhost:%s", port)
	return s.router.Run(":" + port)
}

// Router exposes the gin engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// setCurrent replaces the loaded dataset and its analysis wholesale
func (s *Server) setCurrent(ds *dataset.Dataset, result *app.InsightResult) {
	s.mu.Lock()
	s.currentData = ds
	s.currentResult = result
	s.mu.Unlock()
}

// getCurrent returns the loaded dataset and its analysis
func (s *Server) getCurrent() (*dataset.Dataset, *app.InsightResult) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentData, s.currentResult
}

// sampleCSV builds the downloadable demo dataset
func (s *Server) sampleCSV() ([]byte, error) {
	cfg := testkit.DefaultCustomerConfig()
	cfg.Seed = s.dataConfig.SampleRowSeed
	return testkit.NewCustomerDataGenerator(cfg).GenerateCSV()
}
