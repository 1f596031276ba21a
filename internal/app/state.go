// Package app provides application state and events for the interactive shell.
package app

import (
	"image"
	"sync"

	"elispot-analyzer/internal/imaging"
	"elispot-analyzer/internal/spot"
)

// State holds the application state: the loaded scan, the current analysis
// parameters, and the latest result. Results are transient; nothing here is
// persisted except what the user explicitly exports.
type State struct {
	mu sync.RWMutex

	// Source image
	ImagePath  string
	Normalized *image.Gray

	// Analysis
	Params spot.Params
	Result *spot.Result

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventParamsChanged
	EventAnalysisComplete
	EventAnalysisFailed
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state with default parameters.
func NewState() *State {
	return &State{
		Params:    spot.DefaultParams(),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// LoadImage loads and normalizes an assay scan. A previous result is
// discarded since it no longer matches the loaded image.
func (s *State) LoadImage(path string) error {
	gray, err := imaging.LoadNormalized(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.ImagePath = path
	s.Normalized = gray
	s.Result = nil
	s.mu.Unlock()

	s.Emit(EventImageLoaded, path)
	return nil
}

// SetParams replaces the analysis parameters after validating them.
func (s *State) SetParams(params spot.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.Params = params
	s.mu.Unlock()

	s.Emit(EventParamsChanged, params)
	return nil
}

// CurrentParams returns a copy of the analysis parameters.
func (s *State) CurrentParams() spot.Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Params
}

// CurrentImage returns the normalized scan, or nil when none is loaded.
func (s *State) CurrentImage() *image.Gray {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Normalized
}

// CurrentResult returns the latest analysis result, or nil.
func (s *State) CurrentResult() *spot.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Result
}

// HasImage reports whether a scan is loaded.
func (s *State) HasImage() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Normalized != nil
}

// Analyze runs the detection pipeline on the loaded image with the current
// parameters and stores the result.
func (s *State) Analyze() (*spot.Result, error) {
	s.mu.RLock()
	gray := s.Normalized
	params := s.Params
	s.mu.RUnlock()

	if gray == nil {
		return nil, spot.ErrNoImage
	}

	result, err := spot.Detect(gray, params)
	if err != nil {
		s.Emit(EventAnalysisFailed, err)
		return nil, err
	}

	s.mu.Lock()
	s.Result = result
	s.mu.Unlock()

	s.Emit(EventAnalysisComplete, result)
	return result, nil
}
