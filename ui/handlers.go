package ui

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"churnmate/adapters/llm"
	"churnmate/app"
	"churnmate/internal/errors"
)

// handleIndex renders the dashboard page
func (s *Server) handleIndex(c *gin.Context) {
	ds, result := s.getCurrent()

	data := gin.H{
		"Title":      "ChurnMate: AI-Powered Customer Retention Assistant",
		"HasDataset": ds != nil,
	}
	if ds != nil {
		data["Filename"] = ds.GetDisplayName()
		data["Result"] = result
		if result != nil && result.Advice != "" {
			data["AdviceHTML"] = RenderMarkdown(result.Advice)
		}
	}
	c.HTML(http.StatusOK, "index.html", data)
}

// handleDatasetUpload accepts a CSV/XLSX upload, replaces the loaded dataset
// wholesale, and runs the full analysis pass. Per-error-code handling keeps
// the summary usable even when metrics or advice degrade.
func (s *Server) handleDatasetUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	if fileHeader.Size > s.dataConfig.MaxUploadMB*1024*1024 {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("file exceeds %d MB limit", s.dataConfig.MaxUploadMB),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open upload"})
		return
	}
	defer file.Close()

	ds, err := s.reader.Read(file, fileHeader.Filename)
	if err != nil {
		s.log.Warn("upload parse failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("could not parse %s: %v", fileHeader.Filename, err)})
		return
	}
	ds.FileSize = fileHeader.Size

	result, err := s.insightService.Analyze(c.Request.Context(), app.InsightRequest{Dataset: ds})
	if err != nil {
		// The parsed dataset stays loaded with the failure recorded, so the
		// summary endpoint can still report what went wrong.
		ds.MarkFailed(err.Error())
		s.setCurrent(ds, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.setCurrent(ds, result)

	if isHTMX(c) {
		c.HTML(http.StatusOK, "insight", insightView(ds.GetDisplayName(), result))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"filename": ds.GetDisplayName(),
		"result":   result,
	})
}

// handleDatasetSummary returns the latest analysis for the loaded dataset
func (s *Server) handleDatasetSummary(c *gin.Context) {
	ds, result := s.getCurrent()
	if ds == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no dataset loaded"})
		return
	}
	if !ds.IsReady() {
		c.JSON(http.StatusConflict, gin.H{
			"filename": ds.GetDisplayName(),
			"status":   ds.Status,
			"error":    ds.ErrorMessage,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"filename": ds.GetDisplayName(),
		"result":   result,
	})
}

// handleSampleDownload serves the generated demo dataset as CSV
func (s *Server) handleSampleDownload(c *gin.Context) {
	raw, err := s.sampleCSV()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate sample"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="sample_customers.csv"`)
	c.Data(http.StatusOK, "text/csv", raw)
}

// chatRequest is the inbound chat turn payload
type chatRequest struct {
	SessionID string `json:"session_id" form:"session_id"`
	Message   string `json:"message" form:"message"`
}

// handleChatMessage runs one conversation turn. Empty submissions are
// rejected here, a UI policy rather than a session-layer rule. A gateway
// failure is reported as a warning payload; the user turn stays appended.
func (s *Server) handleChatMessage(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat payload"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is empty"})
		return
	}

	result, err := s.chatService.SendMessage(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		s.respondChatError(c, err)
		return
	}

	if isHTMX(c) {
		c.HTML(http.StatusOK, "chat_turn", gin.H{
			"SessionID": result.SessionID,
			"Message":   req.Message,
			"ReplyHTML": RenderMarkdown(result.Reply),
		})
		return
	}
	c.JSON(http.StatusOK, result)
}

// handleChatHistory returns the displayable transcript, system message
// excluded
func (s *Server) handleChatHistory(c *gin.Context) {
	history, err := s.chatService.History(c.Param("id"))
	if err != nil {
		status := http.StatusNotFound
		if errors.HasCode(err, errors.CodeInvalidInput) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": history})
}

// handleUsage returns accumulated LLM token usage
func (s *Server) handleUsage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"totals": s.usageService.GetTotals(),
		"recent": s.usageService.ListRecent(20),
	})
}

// respondChatError converts a failed gateway call into a diagnostic payload
// without terminating anything. The remote status and body pass through for
// display, as a warning rather than a hard error.
func (s *Server) respondChatError(c *gin.Context, err error) {
	var failure *llm.ChatFailure
	if stderrors.As(err, &failure) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":       "failed to fetch response, please try again later",
			"status_code": failure.StatusCode,
			"debug":       failure.Body,
		})
		return
	}
	if errors.HasCode(err, errors.CodeInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}

// isHTMX reports whether the request came from an HTMX fragment swap
func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// insightView shapes an analysis result for the insight template
func insightView(filename string, result *app.InsightResult) gin.H {
	view := gin.H{
		"Filename": filename,
		"Result":   result,
	}
	if result.Advice != "" {
		view["AdviceHTML"] = RenderMarkdown(result.Advice)
	}
	return view
}
