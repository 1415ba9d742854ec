package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/immunogate/backend/internal/analysis"
	"github.com/immunogate/backend/internal/dataset"
	"github.com/immunogate/backend/pkg/logger"
)

type DatasetHandler struct {
	service *analysis.Service
}

func NewDatasetHandler(service *analysis.Service) *DatasetHandler {
	return &DatasetHandler{
		service: service,
	}
}

func (h *DatasetHandler) UploadDataset(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
		CSV  string `json:"csv"`
	}

	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.CSV == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "CSV content is required",
		})
	}
	if req.Name == "" {
		req.Name = "uploaded dataset"
	}

	summary, err := h.service.UploadDataset(req.Name, []byte(req.CSV))
	if err != nil {
		var schemaErr *dataset.SchemaError
		if errors.As(err, &schemaErr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": schemaErr.Error(),
			})
		}
		logger.Error("Failed to store dataset", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store dataset",
		})
	}

	return c.JSON(summary)
}

func (h *DatasetHandler) GetBiomarkers(c *fiber.Ctx) error {
	datasetID := c.Params("id")
	if datasetID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "dataset id is required",
		})
	}

	groups, err := h.service.Catalog(datasetID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Dataset not found",
		})
	}

	return c.JSON(fiber.Map{
		"dataset_id": datasetID,
		"categories": groups,
	})
}
