package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/immunogate/backend/internal/analysis"
	"github.com/immunogate/backend/internal/engine"
	"github.com/immunogate/backend/pkg/config"
	"github.com/immunogate/backend/pkg/logger"
)

type AnalysisHandler struct {
	service *analysis.Service
	cfg     config.AnalysisConfig
}

func NewAnalysisHandler(service *analysis.Service, cfg config.AnalysisConfig) *AnalysisHandler {
	return &AnalysisHandler{
		service: service,
		cfg:     cfg,
	}
}

type analysisRequest struct {
	DatasetID     string   `json:"dataset_id"`
	AntigenA      string   `json:"antigen_a"`
	AntigenB      string   `json:"antigen_b"`
	Samples       int      `json:"samples"`
	Seed          *int64   `json:"seed"`
	ThresholdRule string   `json:"threshold_rule"`
	ThresholdA    *float64 `json:"threshold_a"`
	ThresholdB    *float64 `json:"threshold_b"`
	Costimulatory string   `json:"costimulatory"`
}

func (h *AnalysisHandler) toRunRequest(req analysisRequest) analysis.RunRequest {
	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	samples := req.Samples
	if samples == 0 {
		samples = h.cfg.DefaultSamples
	}

	return analysis.RunRequest{
		DatasetID:     req.DatasetID,
		AntigenA:      req.AntigenA,
		AntigenB:      req.AntigenB,
		Samples:       samples,
		Seed:          seed,
		Rule:          engine.ThresholdRule(req.ThresholdRule),
		ThresholdA:    req.ThresholdA,
		ThresholdB:    req.ThresholdB,
		Costimulatory: req.Costimulatory,
	}
}

func (h *AnalysisHandler) RunAnalysis(c *fiber.Ctx) error {
	var req analysisRequest

	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.DatasetID == "" || req.AntigenA == "" || req.AntigenB == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "dataset_id, antigen_a and antigen_b are required",
		})
	}

	resp, err := h.service.Run(h.toRunRequest(req), nil)
	if err != nil {
		if errors.Is(err, engine.ErrSampleCount) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		logger.Error("Failed to run analysis", zap.Error(err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(resp)
}

func (h *AnalysisHandler) GetAnalysis(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "analysis id is required",
		})
	}

	resp, err := h.service.GetRun(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Analysis not found",
		})
	}

	return c.JSON(resp)
}
