package domain

import "context"

// Analyst produces the mandatory structured analysis for one submission.
// Any error aborts the session.
type Analyst interface {
	Analyze(ctx context.Context, input UserInput) (*AnalysisResult, error)
}

// ImageGenerator produces the optional illustrative image. Generation
// failures are returned as a tagged outcome, never as an error, because the
// session must degrade to text-only rather than abort.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, input UserInput) ImageOutcome
}

// SpeechSynthesizer speaks the verse already produced by the Analyst. It
// must never be called before a verse exists. Returns base64 audio, or
// ok=false when the credential is missing or the provider failed.
type SpeechSynthesizer interface {
	SpeakVerse(ctx context.Context, verse string) (b64 string, ok bool)
}

// Generator bundles the three operations of the generative-AI boundary.
type Generator interface {
	Analyst
	ImageGenerator
	SpeechSynthesizer
}

// Store persists the archive as one opaque blob: read once at startup,
// overwritten in full once per completed session.
type Store interface {
	// Load returns the persisted archive. A corrupt payload yields an empty
	// archive, not an error.
	Load() (Archive, error)
	Save(archive Archive) error
}
