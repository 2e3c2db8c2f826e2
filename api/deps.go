package api

import (
	"github.com/anywear/anywear-agent/closet"
	"github.com/anywear/anywear-agent/coordinator"
	"github.com/anywear/anywear-agent/extractor"
	"github.com/anywear/anywear-agent/extractor/base"
	"github.com/anywear/anywear-agent/store"
)

// Handlers carries the wired components for every HTTP handler.
type Handlers struct {
	Coordinator *coordinator.Coordinator
	Closet      *closet.Service
	Store       store.Store
	Extractor   *extractor.Extractor
	Fetcher     *base.Fetcher
}

func NewHandlers(coord *coordinator.Coordinator, cl *closet.Service, st store.Store) *Handlers {
	return &Handlers{
		Coordinator: coord,
		Closet:      cl,
		Store:       st,
		Extractor:   extractor.New(),
		Fetcher:     base.NewFetcher(),
	}
}
