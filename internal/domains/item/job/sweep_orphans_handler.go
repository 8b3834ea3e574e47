package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"inventory-backend/internal/domains/item/service"
)

// TypeSweepOrphans is the asynq task type for the photo orphan sweep.
const TypeSweepOrphans = "item:sweep_orphans"

// SweepOrphansPayload configures one sweep run.
type SweepOrphansPayload struct {
	GraceSeconds int `json:"grace_seconds"`
}

// SweepOrphansHandler reclaims photo objects no item references.
// Photo operations deliberately fail toward orphans instead of dangling
// references; this job is the other half of that contract.
type SweepOrphansHandler struct {
	itemService service.ServiceInterface
}

func NewSweepOrphansHandler(itemService service.ServiceInterface) *SweepOrphansHandler {
	return &SweepOrphansHandler{
		itemService: itemService,
	}
}

func (h *SweepOrphansHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload SweepOrphansPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal SweepOrphans payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	grace := time.Duration(payload.GraceSeconds) * time.Second

	log.Info().
		Dur("grace", grace).
		Msg("Sweeping orphaned photos")

	removed, err := h.itemService.SweepOrphans(ctx, grace)
	if err != nil {
		log.Error().Err(err).Msg("Orphan sweep failed")
		return fmt.Errorf("sweep orphans: %w", err)
	}

	log.Info().
		Int("removed", removed).
		Msg("Orphan sweep finished")

	return nil
}
