package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/navein97/weather-app/internal/errs"
	"github.com/navein97/weather-app/internal/models"
	"github.com/navein97/weather-app/internal/routes"
)

const timeoutDuration = 10 * time.Second

type weatherService interface {
	GetCurrentByCoordinates(ctx context.Context, lat, lon float64) (models.WeatherSnapshot, error)
	GetDetailedWeather(ctx context.Context, city string) (models.DetailedWeather, error)
	SearchCities(ctx context.Context, query string) []models.SearchCandidate
}

type favoritesStore interface {
	List() []string
	IsSaved(city string) bool
	Add(ctx context.Context, city string) error
	Remove(ctx context.Context, city string) error
	Err() *errs.Signal
}

type preferencesStore interface {
	Get(ctx context.Context) (models.Preferences, error)
	Save(ctx context.Context, p models.Preferences) error
}

type Handler struct {
	weather     weatherService
	favorites   favoritesStore
	preferences preferencesStore
	logger      zerolog.Logger
}

func NewHandler(
	weather weatherService,
	favorites favoritesStore,
	preferences preferencesStore,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		weather:     weather,
		favorites:   favorites,
		preferences: preferences,
		logger:      logger.With().Str("component", "HTTPHandler").Logger(),
	}
}

// Register mounts the three views and the favorites endpoints on r.
func (h *Handler) Register(r gin.IRouter) {
	for _, route := range routes.All() {
		switch route.Name {
		case routes.Home:
			r.GET(route.Path, h.Home)
		case routes.Profile:
			r.GET(route.Path, h.GetProfile)
			r.PUT(route.Path, h.SaveProfile)
		case routes.WeatherDetail:
			r.GET(route.Path, h.WeatherDetail)
		}
	}

	r.GET("/weather", h.CurrentByCoordinates)
	r.GET("/favorites", h.ListFavorites)
	r.POST("/favorites", h.AddFavorite)
	r.DELETE("/favorites/:"+routes.CityParam, h.RemoveFavorite)
}

type favoriteLink struct {
	City string `json:"city"`
	Path string `json:"path"`
}

type searchResult struct {
	models.SearchCandidate
	Path string `json:"path"`
}

type homeView struct {
	Favorites []favoriteLink `json:"favorites"`
	Query     string         `json:"query,omitempty"`
	Results   []searchResult `json:"results"`
	Unit      string         `json:"unit"`
	Error     *errs.Signal   `json:"error,omitempty"`
}

// Home lists saved cities and, when q is given, matching search results.
// @Summary Home view
// @Description Saved cities and, when q has at least 3 characters, matching cities.
// @Tags weather
// @Produce json
// @Param q query string false "City search query"
// @Success 200 {object} homeView
// @Router / [get]
func (h *Handler) Home(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	unit := h.unit(ctx)
	view := homeView{
		Favorites: h.favoriteLinks(),
		Results:   []searchResult{},
		Unit:      unit.Symbol(),
		Error:     h.favorites.Err(),
	}

	if q := c.Query("q"); q != "" {
		view.Query = q
		for _, candidate := range h.weather.SearchCities(ctx, q) {
			view.Results = append(view.Results, searchResult{
				SearchCandidate: candidate.InUnit(unit),
				Path:            routes.WeatherDetailPath(candidate.Name),
			})
		}
	}

	c.JSON(http.StatusOK, view)
}

// GetProfile
// @Summary Get preferences
// @Tags profile
// @Produce json
// @Success 200 {object} models.Preferences
// @Failure 500 {object} errs.Signal
// @Router /profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.preferences.Get(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// SaveProfile
// @Summary Replace preferences
// @Tags profile
// @Accept json
// @Produce json
// @Param preferences body models.Preferences true "New preferences"
// @Success 200 {object} models.Preferences
// @Failure 400 {object} errs.Signal
// @Failure 500 {object} errs.Signal
// @Router /profile [put]
func (h *Handler) SaveProfile(c *gin.Context) {
	var p models.Preferences
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, errs.Signal{Message: err.Error(), Severity: errs.SeverityError})
		return
	}

	if err := h.preferences.Save(c.Request.Context(), p); err != nil {
		if errors.Is(err, errs.ErrInvalidPreferences) {
			c.JSON(http.StatusBadRequest, errs.Signal{
				Message:  errs.ErrInvalidPreferences.Error(),
				Severity: errs.SeverityError,
			})
			return
		}
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

type detailView struct {
	models.DetailedWeather
	Unit  string `json:"unit"`
	Saved bool   `json:"saved"`
}

// WeatherDetail
// @Summary Detailed weather for a city
// @Description Current conditions, the next 8 forecast points and a daily outlook.
// @Tags weather
// @Produce json
// @Param cityName path string true "City name"
// @Success 200 {object} detailView
// @Failure 404 {object} errs.Signal
// @Failure 502 {object} errs.Signal
// @Failure 503 {object} errs.Signal
// @Router /weather/{cityName} [get]
func (h *Handler) WeatherDetail(c *gin.Context) {
	city := c.Param(routes.CityParam)

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	detail, err := h.weather.GetDetailedWeather(ctx, city)
	if err != nil {
		h.renderError(c, err)
		return
	}

	unit := h.unit(ctx)
	c.JSON(http.StatusOK, detailView{
		DetailedWeather: detail.InUnit(unit),
		Unit:            unit.Symbol(),
		Saved:           h.favorites.IsSaved(city),
	})
}

type currentView struct {
	models.WeatherSnapshot
	Unit string `json:"unit"`
	Path string `json:"path"`
}

// CurrentByCoordinates
// @Summary Current weather at a location
// @Tags weather
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Success 200 {object} currentView
// @Failure 400 {object} errs.Signal
// @Failure 503 {object} errs.Signal
// @Router /weather [get]
func (h *Handler) CurrentByCoordinates(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		c.JSON(http.StatusBadRequest, errs.Signal{
			Message:  "lat and lon query parameters are required",
			Severity: errs.SeverityError,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	data, err := h.weather.GetCurrentByCoordinates(ctx, lat, lon)
	if err != nil {
		h.renderError(c, err)
		return
	}

	unit := h.unit(ctx)
	c.JSON(http.StatusOK, currentView{
		WeatherSnapshot: data.InUnit(unit),
		Unit:            unit.Symbol(),
		Path:            routes.WeatherDetailPath(data.City),
	})
}

// ListFavorites
// @Summary List saved cities
// @Tags favorites
// @Produce json
// @Success 200 {array} favoriteLink
// @Router /favorites [get]
func (h *Handler) ListFavorites(c *gin.Context) {
	c.JSON(http.StatusOK, h.favoriteLinks())
}

type addFavoriteRequest struct {
	City string `json:"city" binding:"required"`
}

// AddFavorite
// @Summary Save a city
// @Description The city is saved only if the provider knows it.
// @Tags favorites
// @Accept json
// @Produce json
// @Param request body addFavoriteRequest true "City to save"
// @Success 201 {array} favoriteLink
// @Failure 400 {object} errs.Signal
// @Failure 404 {object} errs.Signal
// @Failure 503 {object} errs.Signal
// @Router /favorites [post]
func (h *Handler) AddFavorite(c *gin.Context) {
	var req addFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errs.Signal{Message: err.Error(), Severity: errs.SeverityError})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	if err := h.favorites.Add(ctx, req.City); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.favoriteLinks())
}

// RemoveFavorite
// @Summary Forget a saved city
// @Tags favorites
// @Produce json
// @Param cityName path string true "City name"
// @Success 200 {array} favoriteLink
// @Failure 500 {object} errs.Signal
// @Router /favorites/{cityName} [delete]
func (h *Handler) RemoveFavorite(c *gin.Context) {
	if err := h.favorites.Remove(c.Request.Context(), c.Param(routes.CityParam)); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.favoriteLinks())
}

func (h *Handler) favoriteLinks() []favoriteLink {
	cities := h.favorites.List()
	links := make([]favoriteLink, 0, len(cities))
	for _, city := range cities {
		links = append(links, favoriteLink{City: city, Path: routes.WeatherDetailPath(city)})
	}
	return links
}

// unit falls back to Celsius when preferences cannot be read; the failure
// is already logged by the store.
func (h *Handler) unit(ctx context.Context) models.TemperatureUnit {
	p, err := h.preferences.Get(ctx)
	if err != nil {
		return models.Celsius
	}
	return p.TemperatureUnit
}

func (h *Handler) renderError(c *gin.Context, err error) {
	sig := errs.Classify(err)
	status := StatusFor(sig.Kind)
	h.logger.Warn().Ctx(c.Request.Context()).Err(err).
		Str("path", c.Request.URL.Path).
		Int("status", status).
		Msg(sig.Message)
	c.JSON(status, sig)
}

// StatusFor maps an error kind to the HTTP status it is served with.
func StatusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindAuthInvalid:
		return http.StatusBadGateway
	case errs.KindUnreachable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
