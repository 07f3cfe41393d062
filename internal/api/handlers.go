package api

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gatewaysv/server/internal/query"
	"gatewaysv/server/internal/store"
)

type Handler struct {
	store      *store.Store
	engine     *query.Engine
	aggregator *query.Aggregator
	logger     *logrus.Logger
}

func NewHandler(st *store.Store, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		store:      st,
		engine:     query.NewEngine(st, nil),
		aggregator: query.NewAggregator(st),
		logger:     logger,
	}
}

func (h *Handler) SearchProperties(c *gin.Context) {
	params, err := query.ParseParams(c.Request.URL.Query())
	if err != nil {
		h.logger.WithError(err).Warn("Rejected search request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.engine.Search(params)
	if err != nil {
		h.logger.WithError(err).Error("Failed to search properties")
		h.respondDataError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetProperty(c *gin.Context) {
	listing, err := h.store.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to get property")
		h.respondDataError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

func (h *Handler) GetDepartments(c *gin.Context) {
	summary, err := h.aggregator.Departments()
	if err != nil {
		h.logger.WithError(err).Error("Failed to aggregate departments")
		h.respondDataError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.aggregator.Stats()
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute listing stats")
		h.respondDataError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "listings",
	})
}

// respondDataError maps store failures to the HTTP contract: an
// unreadable backing source is a 503, anything else a 500.
func (h *Handler) respondDataError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrDataUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Listing data is unavailable"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
