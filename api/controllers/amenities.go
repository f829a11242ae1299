package controllers

import (
	"context"
	"net/http"

	"github.com/canchapp/canchapp-backend/api/responses"
	"github.com/canchapp/canchapp-backend/internal/complexes"
	"github.com/canchapp/canchapp-backend/pkg/db/models"
	pkgerrors "github.com/canchapp/canchapp-backend/pkg/errors"
	"github.com/canchapp/canchapp-backend/pkg/logger"
)

type amenityLister interface {
	List(ctx context.Context) ([]models.Amenity, error)
}

// AmenityList returns the catalog of amenities complexes can offer.
func AmenityList(repo amenityLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "amenity repository unavailable"))
			return
		}
		rows, err := repo.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list amenities"))
			return
		}
		out := make([]complexes.AmenityDTO, 0, len(rows))
		for _, row := range rows {
			out = append(out, complexes.AmenityDTO{ID: row.ID, Name: row.Name, Icon: row.Icon})
		}
		responses.WriteSuccess(w, out)
	}
}
