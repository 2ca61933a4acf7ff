package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/priceoptimizer/backend/internal/access"
	"github.com/priceoptimizer/backend/middleware"
	"github.com/priceoptimizer/backend/models"
	"github.com/priceoptimizer/backend/services/product"
	"github.com/priceoptimizer/backend/utils"
	"go.uber.org/zap"
)

// ProductService defines the interface for product operations
type ProductService interface {
	Create(ctx context.Context, actor product.Actor, in product.Input) (*models.Product, error)
	Update(ctx context.Context, actor product.Actor, id int64, in product.Input) (*models.Product, error)
	Delete(ctx context.Context, actor product.Actor, id int64) error
	Get(ctx context.Context, actor product.Actor, id int64) (*models.Product, access.Projection, error)
	ListByUser(ctx context.Context, actor product.Actor, targetUserID int64, filter product.ListFilter) ([]*models.Product, access.Projection, error)
}

// ProductHandler handles product HTTP requests
type ProductHandler struct {
	service ProductService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(service ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate handles POST /products
func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chimw.GetReqID(ctx)

	actor, ok := actorFromContext(ctx)
	if !ok {
		_ = utils.WriteUnauthorized(w, "")
		return
	}

	var req product.Input
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse product body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	created, err := h.service.Create(ctx, actor, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("product created",
		zap.String("request_id", requestID),
		zap.Int64("id", created.ID))

	_ = utils.WriteCreated(w, access.NewFullView(created))
}

// HandleUpdate handles PUT /products/{id}
func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chimw.GetReqID(ctx)

	actor, ok := actorFromContext(ctx)
	if !ok {
		_ = utils.WriteUnauthorized(w, "")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid product ID", nil)
		return
	}

	var req product.Input
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse product body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	updated, err := h.service.Update(ctx, actor, id, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, access.NewFullView(updated))
}

// HandleDelete handles DELETE /products/{id}
func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorFromContext(ctx)
	if !ok {
		_ = utils.WriteUnauthorized(w, "")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid product ID", nil)
		return
	}

	if err := h.service.Delete(ctx, actor, id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, map[string]string{"message": "Product deleted"})
}

// HandleGet handles GET /products/{id}
func (h *ProductHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorFromContext(ctx)
	if !ok {
		_ = utils.WriteUnauthorized(w, "")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid product ID", nil)
		return
	}

	p, projection, err := h.service.Get(ctx, actor, id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	switch projection {
	case access.ProjectionRestricted:
		_ = utils.WriteOK(w, access.NewRestrictedView(p))
	default:
		_ = utils.WriteOK(w, access.NewFullView(p))
	}
}

// HandleListByUser handles GET /products/user/{userID}
func (h *ProductHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chimw.GetReqID(ctx)

	actor, ok := actorFromContext(ctx)
	if !ok {
		_ = utils.WriteUnauthorized(w, "")
		return
	}

	targetUserID, err := pathID(r, "userID")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid user ID", nil)
		return
	}

	filter := product.ListFilter{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
	}

	products, projection, err := h.service.ListByUser(ctx, actor, targetUserID, filter)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Debug("listed products",
		zap.String("request_id", requestID),
		zap.Int64("target_user_id", targetUserID),
		zap.Int("count", len(products)))

	switch projection {
	case access.ProjectionRestricted:
		_ = utils.WriteOK(w, access.RestrictedViews(products))
	default:
		_ = utils.WriteOK(w, access.FullViews(products))
	}
}

// actorFromContext builds the acting identity from the verified claims.
func actorFromContext(ctx context.Context) (product.Actor, bool) {
	claims := middleware.GetClaimsFromContext(ctx)
	if claims == nil {
		return product.Actor{}, false
	}
	return product.Actor{
		UserID:      claims.UserID,
		Role:        claims.Role,
		Permissions: claims.Permissions,
	}, true
}

func pathID(r *http.Request, param string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, param), 10, 64)
}
