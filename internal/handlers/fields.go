package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/soltixdb/insight/internal/models"
	"github.com/soltixdb/insight/internal/registry"
	"github.com/soltixdb/insight/internal/services"
)

// Fields handles field discovery requests
// GET /v1/fields?collection=xxx
// Without a collection parameter every registered collection is listed.
func (h *Handler) Fields(c *fiber.Ctx) error {
	name := c.Query("collection")

	if name != "" {
		coll, err := h.registry.GetCollection(c.UserContext(), name)
		if err != nil {
			return services.NewServiceErrorWithDetails(services.CodeRegistryFailed,
				"Failed to look up collection fields",
				map[string]interface{}{"error": err.Error()})
		}
		if coll == nil {
			return services.NewServiceError(services.CodeCollectionNotFound,
				"Collection is not registered: "+name)
		}
		return c.JSON(models.FieldsResponse{
			Collections: []models.CollectionFieldsResponse{fieldsView(coll)},
		})
	}

	collections, err := h.registry.ListCollections(c.UserContext())
	if err != nil {
		return services.NewServiceErrorWithDetails(services.CodeRegistryFailed,
			"Failed to list collections",
			map[string]interface{}{"error": err.Error()})
	}

	resp := models.FieldsResponse{
		Collections: make([]models.CollectionFieldsResponse, 0, len(collections)),
	}
	for _, coll := range collections {
		resp.Collections = append(resp.Collections, fieldsView(coll))
	}
	return c.JSON(resp)
}

func fieldsView(coll *registry.Collection) models.CollectionFieldsResponse {
	fields := make([]models.FieldView, 0, len(coll.Fields))
	for _, f := range coll.Fields {
		fields = append(fields, models.FieldView{
			Name:       f.Name,
			MetricKind: string(f.Kind),
		})
	}

	view := models.CollectionFieldsResponse{
		Collection: coll.Name,
		Fields:     fields,
	}
	if !coll.UpdatedAt.IsZero() {
		view.UpdatedAt = coll.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return view
}
