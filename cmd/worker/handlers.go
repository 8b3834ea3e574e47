package main

import (
	"github.com/hibiken/asynq"

	itemJob "inventory-backend/internal/domains/item/job"
	"inventory-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	sweepOrphans *itemJob.SweepOrphansHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		sweepOrphans: itemJob.NewSweepOrphansHandler(c.ItemService),
	}
}

// RegisterHandlers wires every handler into the asynq mux.
func (r *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.Handle(itemJob.TypeSweepOrphans, r.sweepOrphans)
}
