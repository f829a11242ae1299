package controllers

import (
	"net/http"
	"strconv"

	"github.com/canchapp/canchapp-backend/api/responses"
	"github.com/canchapp/canchapp-backend/api/validators"
	"github.com/canchapp/canchapp-backend/internal/search"
	"github.com/canchapp/canchapp-backend/pkg/config"
	"github.com/canchapp/canchapp-backend/pkg/enums"
	pkgerrors "github.com/canchapp/canchapp-backend/pkg/errors"
	"github.com/canchapp/canchapp-backend/pkg/logger"
	"github.com/canchapp/canchapp-backend/pkg/pagination"
)

// Search is the public complex search. Query parameters follow the web
// client's Spanish naming: q, fecha, hora, duracion, tipo, superficie,
// techada, precio_min, precio_max, servicios, page, page_size, ordenar, orden.
func Search(svc search.Service, cfg config.SearchConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "search service unavailable"))
			return
		}
		filter, err := parseSearchFilter(r, cfg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.Search(r.Context(), *filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ComplexTimeSlots lists bookable start times for one complex on a date.
func ComplexTimeSlots(svc search.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "search service unavailable"))
			return
		}
		complexID, err := pathUUID(r, "complexId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		date := validators.SanitizeString(r.URL.Query().Get("fecha"), 10)
		if date == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "fecha is required"))
			return
		}
		duration, err := validators.ParseQueryFloat(r, "duracion", 1)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		slots, err := svc.TimeSlots(r.Context(), complexID, date, duration)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, slots)
	}
}

func parseSearchFilter(r *http.Request, cfg config.SearchConfig) (*search.Filter, error) {
	filter := search.Filter{
		NameQuery: validators.SanitizeString(r.URL.Query().Get("q"), 120),
		Date:      validators.SanitizeString(r.URL.Query().Get("fecha"), 10),
		StartTime: validators.SanitizeString(r.URL.Query().Get("hora"), 5),
		Amenities: validators.QueryList(r, "servicios"),
	}

	duration, err := validators.ParseQueryFloat(r, "duracion", 0)
	if err != nil {
		return nil, err
	}
	filter.DurationHours = duration

	for _, raw := range validators.QueryList(r, "tipo") {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "tipo must be numeric").WithDetails(map[string]any{"value": raw})
		}
		format, err := enums.ParseFieldFormat(value)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tipo")
		}
		filter.Formats = append(filter.Formats, format)
	}

	for _, raw := range validators.QueryList(r, "superficie") {
		surface, err := enums.ParseSurfaceType(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid superficie")
		}
		filter.Surfaces = append(filter.Surfaces, surface)
	}

	if filter.Covered, err = validators.ParseQueryBoolPtr(r, "techada"); err != nil {
		return nil, err
	}
	if filter.PriceMin, err = validators.ParseQueryDecimalPtr(r, "precio_min"); err != nil {
		return nil, err
	}
	if filter.PriceMax, err = validators.ParseQueryDecimalPtr(r, "precio_max"); err != nil {
		return nil, err
	}

	defaultPageSize := cfg.DefaultPageSize
	if defaultPageSize <= 0 {
		defaultPageSize = pagination.DefaultPageSize
	}
	maxPageSize := cfg.MaxPageSize
	if maxPageSize <= 0 {
		maxPageSize = pagination.MaxPageSize
	}
	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<20)
	if err != nil {
		return nil, err
	}
	pageSize, err := validators.ParseQueryInt(r, "page_size", defaultPageSize, 1, maxPageSize)
	if err != nil {
		return nil, err
	}
	filter.Page = pagination.Params{Page: page, PageSize: pageSize}

	if raw := validators.SanitizeString(r.URL.Query().Get("ordenar"), 16); raw != "" {
		key, err := enums.ParseSearchSortKey(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid ordenar")
		}
		filter.SortBy = key
	}
	if raw := validators.SanitizeString(r.URL.Query().Get("orden"), 8); raw != "" {
		direction, err := enums.ParseSortDirection(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid orden")
		}
		filter.SortDirection = direction
	}

	return &filter, nil
}
