package handlers

import (
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/immunogate/backend/internal/analysis"
	"github.com/immunogate/backend/internal/engine"
	"github.com/immunogate/backend/internal/metrics"
	"github.com/immunogate/backend/pkg/config"
	"github.com/immunogate/backend/pkg/logger"
)

type WebSocketHandler struct {
	service *analysis.Service
	cfg     config.AnalysisConfig
}

func NewWebSocketHandler(service *analysis.Service, cfg config.AnalysisConfig) *WebSocketHandler {
	return &WebSocketHandler{
		service: service,
		cfg:     cfg,
	}
}

// HandleConnection streams one strategy message per (gate, mode) as the
// full comparison runs, then a final ranked summary.
func (h *WebSocketHandler) HandleConnection(c *websocket.Conn) {
	logger.Info("WebSocket connection established")
	metrics.StreamSessions.Inc()

	defer func() {
		c.Close()
		logger.Info("WebSocket connection closed")
	}()

	for {
		var msg struct {
			Type    string          `json:"type"`
			Request analysisRequest `json:"request"`
		}

		err := c.ReadJSON(&msg)
		if err != nil {
			logger.Error("Failed to read WebSocket message", zap.Error(err))
			break
		}

		if msg.Type != "analyze" {
			continue
		}

		if msg.Request.DatasetID == "" || msg.Request.AntigenA == "" || msg.Request.AntigenB == "" {
			h.sendError(c, "dataset_id, antigen_a and antigen_b are required")
			continue
		}

		err = h.streamAnalysis(c, msg.Request)
		if err != nil {
			logger.Error("Failed to stream analysis", zap.Error(err))
			h.sendError(c, err.Error())
		}
	}
}

func (h *WebSocketHandler) streamAnalysis(c *websocket.Conn, req analysisRequest) error {
	runner := AnalysisHandler{service: h.service, cfg: h.cfg}

	if err := h.send(c, "status", "Running full gate comparison..."); err != nil {
		return err
	}

	resp, err := h.service.Run(runner.toRunRequest(req), func(s engine.Strategy) error {
		return c.WriteJSON(map[string]interface{}{
			"type":     "strategy",
			"strategy": s,
		})
	})
	if err != nil {
		return err
	}

	return c.WriteJSON(map[string]interface{}{
		"type":        "complete",
		"analysis_id": resp.ID,
		"recommended": resp.Result.Recommended,
		"annotation":  resp.Result.Annotation,
		"strategies":  resp.Result.Strategies,
		"diagram":     resp.Diagram,
	})
}

func (h *WebSocketHandler) send(c *websocket.Conn, msgType, content string) error {
	return c.WriteJSON(map[string]interface{}{
		"type":    msgType,
		"content": content,
	})
}

func (h *WebSocketHandler) sendError(c *websocket.Conn, errorMsg string) {
	msg := map[string]interface{}{
		"type":  "error",
		"error": errorMsg,
	}

	c.WriteJSON(msg)
}
