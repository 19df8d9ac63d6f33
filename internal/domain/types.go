package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// SufferingType names the category of suffering the user picked at intake.
type SufferingType string

const (
	SufferingLoss         SufferingType = "LOSS"
	SufferingUnknown      SufferingType = "UNKNOWN"
	SufferingDesire       SufferingType = "DESIRE"
	SufferingOrder        SufferingType = "ORDER"
	SufferingMeaning      SufferingType = "MEANING"
	SufferingRelationship SufferingType = "RELATIONSHIP"
	SufferingSelf         SufferingType = "SELF"
	SufferingPast         SufferingType = "PAST"
	SufferingFuture       SufferingType = "FUTURE"
)

// SufferingTypes lists every valid category, in display order.
var SufferingTypes = []SufferingType{
	SufferingLoss,
	SufferingUnknown,
	SufferingDesire,
	SufferingOrder,
	SufferingMeaning,
	SufferingRelationship,
	SufferingSelf,
	SufferingPast,
	SufferingFuture,
}

func (s SufferingType) Valid() bool {
	for _, t := range SufferingTypes {
		if s == t {
			return true
		}
	}
	return false
}

// MoodCard is one entry of the static intake card pool. AbstractKey is an
// English tag used when forming generation prompts; free-form native-script
// labels degrade downstream generation quality.
type MoodCard struct {
	ID          string `json:"id"`
	ImageURL    string `json:"imageUrl"`
	AbstractKey string `json:"abstractKey"`
	Label       string `json:"label"`
}

// UserInput is one intake submission. Immutable once validated.
type UserInput struct {
	SelectedCards []string      `json:"selectedCards"`
	ConfusionText string        `json:"confusionText"`
	SufferingType SufferingType `json:"sufferingType"`
}

const (
	MinSelectedCards  = 1
	MaxSelectedCards  = 3
	MinConfusionRunes = 3
)

// Validate enforces the intake contract: 1-3 known cards, confusion text of
// non-trivial length, exactly one valid suffering category. cardOK reports
// whether a card id exists in the catalog; nil skips the membership check.
func (in UserInput) Validate(cardOK func(id string) bool) error {
	if len(in.SelectedCards) < MinSelectedCards || len(in.SelectedCards) > MaxSelectedCards {
		return fmt.Errorf("%w: %d cards selected, want %d-%d",
			ErrInvalidInput, len(in.SelectedCards), MinSelectedCards, MaxSelectedCards)
	}
	seen := make(map[string]bool, len(in.SelectedCards))
	for _, id := range in.SelectedCards {
		if seen[id] {
			return fmt.Errorf("%w: duplicate card %q", ErrInvalidInput, id)
		}
		seen[id] = true
		if cardOK != nil && !cardOK(id) {
			return fmt.Errorf("%w: unknown card %q", ErrInvalidInput, id)
		}
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.ConfusionText)) < MinConfusionRunes {
		return fmt.Errorf("%w: confusion text too short", ErrInvalidInput)
	}
	if !in.SufferingType.Valid() {
		return fmt.Errorf("%w: unknown suffering type %q", ErrInvalidInput, in.SufferingType)
	}
	return nil
}

// ThreeMirrors holds the three narrative facets of one analysis. All three
// are required together; there is no partial state.
type ThreeMirrors struct {
	Essence      string `json:"essence"`
	Circumstance string `json:"circumstance"`
	Action       string `json:"action"`
}

// FutureScenario is a named hypothetical consequence path. Order is display
// order only.
type FutureScenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AnalysisResult is the unit produced by one session. GeneratedImage,
// ImageError and VerseAudio are best-effort enrichments attached after the
// mandatory text analysis returns.
type AnalysisResult struct {
	Verse                 string           `json:"verse"`
	ThreeMirrors          ThreeMirrors     `json:"threeMirrors"`
	StickingPointQuestion string           `json:"stickingPointQuestion"`
	PhilosopherNote       string           `json:"philosopherNote"`
	FutureScenarios       []FutureScenario `json:"futureScenarios"`
	GodsSigh              string           `json:"godsSigh"`
	AwakeningStone        string           `json:"awakeningStone"`
	Timestamp             int64            `json:"timestamp"`

	GeneratedImage string `json:"generatedImage,omitempty"`
	ImageError     string `json:"imageError,omitempty"`
	VerseAudio     string `json:"verseAudio,omitempty"`
}

// Complete reports whether every mandatory field is present and non-empty.
// A structured response failing this check is not a valid result and the
// producing call must be treated as failed.
func (r AnalysisResult) Complete() error {
	switch {
	case strings.TrimSpace(r.Verse) == "":
		return errors.New("missing verse")
	case strings.TrimSpace(r.ThreeMirrors.Essence) == "":
		return errors.New("missing threeMirrors.essence")
	case strings.TrimSpace(r.ThreeMirrors.Circumstance) == "":
		return errors.New("missing threeMirrors.circumstance")
	case strings.TrimSpace(r.ThreeMirrors.Action) == "":
		return errors.New("missing threeMirrors.action")
	case strings.TrimSpace(r.StickingPointQuestion) == "":
		return errors.New("missing stickingPointQuestion")
	case strings.TrimSpace(r.PhilosopherNote) == "":
		return errors.New("missing philosopherNote")
	case strings.TrimSpace(r.GodsSigh) == "":
		return errors.New("missing godsSigh")
	case strings.TrimSpace(r.AwakeningStone) == "":
		return errors.New("missing awakeningStone")
	}
	return nil
}

// ArchiveItem freezes an AnalysisResult together with a stable unique id and
// the serialized UserInput that produced it. Never mutated after creation.
type ArchiveItem struct {
	AnalysisResult
	ID            string `json:"id"`
	OriginalInput string `json:"originalInput"`
}

// Input deserializes the original submission back out of the item.
func (it ArchiveItem) Input() (UserInput, error) {
	var in UserInput
	if err := json.Unmarshal([]byte(it.OriginalInput), &in); err != nil {
		return UserInput{}, fmt.Errorf("decode original input: %w", err)
	}
	return in, nil
}

// Archive is the reverse-chronological list of past sessions. Index 0 is
// always the most recent item.
type Archive []ArchiveItem

// ImageOutcome is the tagged result of one image generation attempt. Exactly
// one of DataURI and Err is set; ordinary generation failures are data, not
// errors, so the session merge step stays total.
type ImageOutcome struct {
	DataURI string
	Err     string
}
