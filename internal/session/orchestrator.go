// Package session coordinates one meditative session end to end: the phase
// state machine, the three-branch generation pipeline and the archive.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/uschan/reflecting-light/internal/catalog"
	"github.com/uschan/reflecting-light/internal/domain"
)

// Orchestrator owns the archive and the phase machine. Views never touch the
// store directly; they emit intents and submissions here.
type Orchestrator struct {
	gen   domain.Generator
	store domain.Store
	log   *zap.Logger
	newID func() string

	mu      sync.Mutex
	phase   Phase
	busy    bool
	current *domain.ArchiveItem
	archive domain.Archive
}

// New loads the archive (the store's single startup read) and starts at the
// start phase.
func New(g domain.Generator, store domain.Store, log *zap.Logger) (*Orchestrator, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("session: load archive: %w", err)
	}
	log.Info("archive loaded", zap.Int("items", len(a)))
	return &Orchestrator{
		gen:     g,
		store:   store,
		log:     log,
		newID:   uuid.NewString,
		phase:   PhaseStart,
		archive: a,
	}, nil
}

func (o *Orchestrator) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

func (o *Orchestrator) Busy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.busy
}

// Current returns a copy of the result attached to the running session, or
// nil before the first completed pipeline.
func (o *Orchestrator) Current() *domain.ArchiveItem {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current == nil {
		return nil
	}
	cp := *o.current
	return &cp
}

// Archive returns a copy of the in-memory archive, most recent first.
func (o *Orchestrator) Archive() domain.Archive {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append(domain.Archive(nil), o.archive...)
}

// Item finds one archive item by id.
func (o *Orchestrator) Item(id string) (domain.ArchiveItem, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, it := range o.archive {
		if it.ID == id {
			return it, true
		}
	}
	return domain.ArchiveItem{}, false
}

// Apply runs one user-driven transition through the table.
func (o *Orchestrator) Apply(intent Intent) (Phase, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	to, err := next(o.phase, intent, len(o.archive), o.current != nil)
	if err != nil {
		return o.phase, err
	}
	o.phase = to
	return to, nil
}

// Submit runs the analysis pipeline for one completed intake submission.
//
// The text analysis is the only hard dependency: image generation starts
// immediately off the raw input, audio starts only once the verse exists,
// and the merge step is the single synchronization point. A text failure is
// fatal for the session (phase stays on diagnose, archive untouched); image
// and audio failures degrade into the optional fields.
func (o *Orchestrator) Submit(ctx context.Context, input domain.UserInput) (*domain.ArchiveItem, error) {
	if err := input.Validate(catalog.ValidCardID); err != nil {
		return nil, err
	}

	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return nil, domain.ErrSessionInFlight
	}
	if o.phase != PhaseDiagnose {
		o.mu.Unlock()
		return nil, fmt.Errorf("%w: submit from %s", domain.ErrIllegalTransition, o.phase)
	}
	o.busy = true
	o.mu.Unlock()

	started := time.Now()
	item, err := o.runPipeline(ctx, input)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.busy = false
	if err != nil {
		o.log.Warn("session aborted", zap.Error(err), zap.Duration("elapsed", time.Since(started)))
		return nil, err
	}

	o.archive = append(domain.Archive{*item}, o.archive...)
	if saveErr := o.store.Save(o.archive); saveErr != nil {
		// The session itself succeeded; losing durability is not worth
		// discarding the result over.
		o.log.Error("archive save failed", zap.Error(saveErr))
	}
	o.current = item
	o.phase = PhaseVisualize

	o.log.Info("session completed",
		zap.String("id", item.ID),
		zap.Bool("image", item.GeneratedImage != ""),
		zap.Bool("audio", item.VerseAudio != ""),
		zap.Duration("elapsed", time.Since(started)))
	return o.currentLocked(), nil
}

// currentLocked returns a copy of current; callers must hold o.mu.
func (o *Orchestrator) currentLocked() *domain.ArchiveItem {
	cp := *o.current
	return &cp
}

func (o *Orchestrator) runPipeline(ctx context.Context, input domain.UserInput) (*domain.ArchiveItem, error) {
	// Image has no dependency on the text analysis, start it right away.
	imageCh := make(chan domain.ImageOutcome, 1)
	go func() {
		imageCh <- o.safeImage(ctx, input)
	}()

	result, err := o.gen.Analyze(ctx, input)
	if err != nil {
		// The image branch keeps running into its buffered channel and is
		// discarded; no partial archive entry is ever created.
		return nil, err
	}

	type audioOutcome struct {
		b64 string
		ok  bool
	}
	audioCh := make(chan audioOutcome, 1)
	go func() {
		b64, ok := o.safeSpeak(ctx, result.Verse)
		audioCh <- audioOutcome{b64, ok}
	}()

	img := <-imageCh
	audio := <-audioCh

	// Merge is total: both branches arrive as tagged outcomes.
	if img.DataURI != "" {
		result.GeneratedImage = img.DataURI
	} else if img.Err != "" {
		result.ImageError = img.Err
		o.log.Warn("image generation degraded", zap.String("reason", img.Err))
	}
	if audio.ok {
		result.VerseAudio = audio.b64
	}

	raw, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("session: serialize input: %w", err)
	}
	return &domain.ArchiveItem{
		AnalysisResult: *result,
		ID:             o.newID(),
		OriginalInput:  string(raw),
	}, nil
}

// safeImage converts any panic-free failure of the image branch into a
// tagged outcome so the merge step never sees an exception.
func (o *Orchestrator) safeImage(ctx context.Context, input domain.UserInput) (out domain.ImageOutcome) {
	defer func() {
		if r := recover(); r != nil {
			out = domain.ImageOutcome{Err: fmt.Sprintf("image branch panic: %v", r)}
		}
	}()
	return o.gen.GenerateImage(ctx, input)
}

func (o *Orchestrator) safeSpeak(ctx context.Context, verse string) (b64 string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			b64, ok = "", false
		}
	}()
	return o.gen.SpeakVerse(ctx, verse)
}
