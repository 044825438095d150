package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/agritech/internal/domain/models"
	"github.com/mamadbah2/agritech/internal/service/admin"
	"github.com/mamadbah2/agritech/internal/service/blog"
	"github.com/mamadbah2/agritech/internal/service/crops"
	"github.com/mamadbah2/agritech/internal/service/inventory"
	"github.com/mamadbah2/agritech/internal/service/livestock"
	"github.com/mamadbah2/agritech/internal/service/marketplace"
	"github.com/mamadbah2/agritech/internal/service/pages"
	"github.com/mamadbah2/agritech/internal/service/reporting"
	"github.com/mamadbah2/agritech/internal/service/session"
	"github.com/mamadbah2/agritech/internal/service/stock"
	"github.com/mamadbah2/agritech/internal/service/weather"
	"github.com/mamadbah2/agritech/internal/service/whatsapp"
	"github.com/mamadbah2/agritech/pkg/collection"
	"github.com/mamadbah2/agritech/pkg/listing"
)

// Services groups the view services served over HTTP.
type Services struct {
	Sessions    *session.Manager
	Pages       *pages.Service
	Inventory   *inventory.Service
	Livestock   *livestock.Service
	Crops       *crops.Service
	Marketplace *marketplace.Service
	Admin       *admin.Service
	Weather     *weather.Service
	Stock       *stock.Service
	Blog        *blog.Service
	Reports     *reporting.Service
}

// ViewHandler adapts the view services to HTTP.
type ViewHandler struct {
	svc    Services
	logger *zap.Logger
}

// NewViewHandler constructs the HTTP handler adapter.
func NewViewHandler(svc Services, logger *zap.Logger) *ViewHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ViewHandler{svc: svc, logger: logger}
}

var (
	inventoryParams   = eventParams{filters: []string{"category", "status"}, settings: []string{"tab"}}
	livestockParams   = eventParams{filters: []string{"type", "healthStatus"}}
	cropsParams       = eventParams{}
	marketplaceParams = eventParams{filters: []string{"category", "seller"}, settings: []string{"viewMode"}}
	adminParams       = eventParams{filters: []string{"category", "status"}, settings: []string{"tab", "timeRange"}}
	weatherParams     = eventParams{settings: []string{"location", "range"}}
	stockParams       = eventParams{settings: []string{"tab"}}
	blogParams        = eventParams{settings: []string{"crop"}}
)

// render parses the event of the request, lets view apply it and writes the
// resulting page.
func render[P any](h *ViewHandler, c *gin.Context, params eventParams, view func(string, session.Event) (P, error)) {
	ev, err := parseEvent(c, params)
	if err != nil {
		h.fail(c, err)
		return
	}
	page, err := view(sessionID(c), ev)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func sortBy[P any](h *ViewHandler, c *gin.Context, toggle func(string, string) (P, error)) {
	page, err := toggle(sessionID(c), c.Param("key"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Landing serves the home page content.
func (h *ViewHandler) Landing(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Pages.Landing())
}

// Auth serves the sign-in or sign-up form descriptor selected by ?form=.
func (h *ViewHandler) Auth(c *gin.Context) {
	form, err := h.svc.Pages.AuthForm(c.Query("form"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

func (h *ViewHandler) Inventory(c *gin.Context) {
	render(h, c, inventoryParams, h.svc.Inventory.View)
}

func (h *ViewHandler) SortInventory(c *gin.Context) {
	sortBy(h, c, h.svc.Inventory.ToggleSort)
}

// InventoryReport serves the inventory report as a PDF download.
func (h *ViewHandler) InventoryReport(c *gin.Context) {
	if h.svc.Reports == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "reports are not configured"})
		return
	}
	now := time.Now()
	doc, err := h.svc.Reports.InventoryPDF(c.Request.Context(), now)
	if err != nil {
		h.fail(c, err)
		return
	}
	filename := fmt.Sprintf("inventory-%s.pdf", now.Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}

func (h *ViewHandler) Livestock(c *gin.Context) {
	render(h, c, livestockParams, h.svc.Livestock.View)
}

func (h *ViewHandler) SortLivestock(c *gin.Context) {
	sortBy(h, c, h.svc.Livestock.ToggleSort)
}

// AddLivestock registers a new animal from the JSON body.
func (h *ViewHandler) AddLivestock(c *gin.Context) {
	var in models.LivestockItem
	if !h.bind(c, &in) {
		return
	}
	added, err := h.svc.Livestock.Add(sessionID(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, added)
}

// UpdateLivestock replaces the animal named by the path id.
func (h *ViewHandler) UpdateLivestock(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var in models.LivestockItem
	if !h.bind(c, &in) {
		return
	}
	in.ID = id
	updated, err := h.svc.Livestock.Update(sessionID(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ViewHandler) DeleteLivestock(c *gin.Context) {
	h.remove(c, h.svc.Livestock.Delete)
}

func (h *ViewHandler) Crops(c *gin.Context) {
	render(h, c, cropsParams, h.svc.Crops.View)
}

func (h *ViewHandler) SortCrops(c *gin.Context) {
	sortBy(h, c, h.svc.Crops.ToggleSort)
}

// AddCrop appends a crop lot from the JSON body.
func (h *ViewHandler) AddCrop(c *gin.Context) {
	var in models.Crop
	if !h.bind(c, &in) {
		return
	}
	added, err := h.svc.Crops.Add(sessionID(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, added)
}

func (h *ViewHandler) RemoveCrop(c *gin.Context) {
	h.remove(c, h.svc.Crops.Remove)
}

func (h *ViewHandler) Marketplace(c *gin.Context) {
	render(h, c, marketplaceParams, h.svc.Marketplace.View)
}

// AddToCart bumps the session cart counter.
func (h *ViewHandler) AddToCart(c *gin.Context) {
	count, err := h.svc.Marketplace.AddToCart(sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart_count": count})
}

func (h *ViewHandler) Admin(c *gin.Context) {
	render(h, c, adminParams, h.svc.Admin.View)
}

func (h *ViewHandler) SortAdmin(c *gin.Context) {
	sortBy(h, c, h.svc.Admin.ToggleSort)
}

// AddProduct creates a farmer product from the JSON body.
func (h *ViewHandler) AddProduct(c *gin.Context) {
	var in models.FarmerProduct
	if !h.bind(c, &in) {
		return
	}
	added, err := h.svc.Admin.Add(sessionID(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, added)
}

// UpdateProduct replaces the product named by the path id.
func (h *ViewHandler) UpdateProduct(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var in models.FarmerProduct
	if !h.bind(c, &in) {
		return
	}
	in.ID = id
	updated, err := h.svc.Admin.Update(sessionID(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ViewHandler) DeleteProduct(c *gin.Context) {
	h.remove(c, h.svc.Admin.Delete)
}

func (h *ViewHandler) Weather(c *gin.Context) {
	render(h, c, weatherParams, h.svc.Weather.View)
}

// DismissWeatherAlert hides the alert banner for the session.
func (h *ViewHandler) DismissWeatherAlert(c *gin.Context) {
	if err := h.svc.Weather.DismissAlert(sessionID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ViewHandler) Stock(c *gin.Context) {
	render(h, c, stockParams, h.svc.Stock.View)
}

func (h *ViewHandler) Blog(c *gin.Context) {
	render(h, c, blogParams, h.svc.Blog.View)
}

// ClearSession drops every view state of the caller.
func (h *ViewHandler) ClearSession(c *gin.Context) {
	h.svc.Sessions.Clear(sessionID(c))
	c.Status(http.StatusNoContent)
}

func (h *ViewHandler) remove(c *gin.Context, del func(string, int64) error) {
	id, err := idParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := del(sessionID(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *ViewHandler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.logger.Warn("invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

func (h *ViewHandler) fail(c *gin.Context, err error) {
	writeError(c, h.logger, err)
}

// writeError answers with the status statusOf maps err to. Server-side
// failures are logged and hidden from the client.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
		c.JSON(status, gin.H{"error": http.StatusText(status)})
		return
	}
	logger.Debug("request rejected", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, collection.ErrNotFound), errors.Is(err, pages.ErrUnknownForm):
		return http.StatusNotFound
	case errors.Is(err, listing.ErrUnknownField),
		errors.Is(err, session.ErrInvalidSetting),
		errors.Is(err, errInvalidParam):
		return http.StatusBadRequest
	case errors.Is(err, whatsapp.ErrVerification):
		return http.StatusForbidden
	case errors.Is(err, errUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
