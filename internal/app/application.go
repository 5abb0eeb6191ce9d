// Package app wires stores, domain services and external collaborators
// into one application value the HTTP layer serves.
package app

import (
	"context"

	"github.com/Hozaifa-Bhutta/agri-vision/internal/news"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/services/reference"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/services/reports"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/services/users"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/services/yields"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/storage"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/storage/memory"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/weather"
	"github.com/Hozaifa-Bhutta/agri-vision/pkg/logger"
)

// WeatherProvider returns recent daily observations for a county location.
type WeatherProvider interface {
	Last7Days(ctx context.Context, countyState string) ([]weather.Observation, error)
}

// NewsProvider returns agriculture headlines for a county location. It
// never fails; implementations fall back to static articles.
type NewsProvider interface {
	FarmingNews(ctx context.Context, countyState string) []news.Article
}

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	Users     storage.UserStore
	Reference storage.ReferenceStore
	Yields    storage.YieldStore
	Reports   storage.ReportStore
}

// Options carries the external collaborators.
type Options struct {
	Weather WeatherProvider
	News    NewsProvider
}

// Application ties the domain services together.
type Application struct {
	log *logger.Logger

	Users     *users.Service
	Reference *reference.Service
	Yields    *yields.Service
	Reports   *reports.Service
	Weather   WeatherProvider
	News      NewsProvider
}

// New builds a fully initialised application with the provided stores and
// collaborators.
func New(stores Stores, opts Options, log *logger.Logger) *Application {
	if log == nil {
		log = logger.NewDefault("app")
	}

	mem := memory.New()
	if stores.Users == nil {
		stores.Users = mem
	}
	if stores.Reference == nil {
		stores.Reference = mem
	}
	if stores.Yields == nil {
		stores.Yields = mem
	}
	if stores.Reports == nil {
		stores.Reports = mem
	}

	return &Application{
		log:       log,
		Users:     users.New(stores.Users, log),
		Reference: reference.New(stores.Reference),
		Yields:    yields.New(stores.Yields, log),
		Reports:   reports.New(stores.Reports, log),
		Weather:   opts.Weather,
		News:      opts.News,
	}
}
