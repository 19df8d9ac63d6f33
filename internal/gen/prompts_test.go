package gen

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/uschan/reflecting-light/internal/domain"
)

func TestImagePromptUsesAbstractKeys(t *testing.T) {
	t.Parallel()

	p := ImagePrompt(domain.UserInput{
		SelectedCards: []string{"1", "12"},
		ConfusionText: "我很困惑",
		SufferingType: domain.SufferingLoss,
	})
	if !strings.Contains(p, "Tangled, Chaos") {
		t.Fatalf("prompt missing abstract keys:\n%s", p)
	}
	if strings.Contains(p, "挂") {
		t.Fatalf("prompt leaked a native-script label:\n%s", p)
	}
	if !strings.Contains(p, "LOSS") {
		t.Fatalf("prompt missing suffering type:\n%s", p)
	}
	if !strings.Contains(p, "9:16") {
		t.Fatalf("prompt missing aspect hint:\n%s", p)
	}
}

func TestSystemInstructionCarriesUserContext(t *testing.T) {
	t.Parallel()

	s := SystemInstruction(domain.UserInput{
		SelectedCards: []string{"1"},
		ConfusionText: "为何放不下",
		SufferingType: domain.SufferingPast,
	})
	if !strings.Contains(s, "PAST") || !strings.Contains(s, "为何放不下") {
		t.Fatalf("instruction missing context:\n%s", s)
	}
}

func TestHumanizeImageError(t *testing.T) {
	t.Parallel()

	if got := HumanizeImageError(errors.New("server returned 403")); !strings.Contains(got, "403 Forbidden") {
		t.Fatalf("403 not humanized: %q", got)
	}
	if got := HumanizeImageError(errors.New("dial tcp: timeout")); got != "dial tcp: timeout" {
		t.Fatalf("plain error rewritten: %q", got)
	}
	if got := HumanizeImageError(nil); got != "" {
		t.Fatalf("nil error produced %q", got)
	}
}

func TestDecodeModelJSON(t *testing.T) {
	t.Parallel()

	var v struct {
		A string `json:"a"`
	}
	if err := DecodeModelJSON(`  {"a":"x"}  `, &v); err != nil || v.A != "x" {
		t.Fatalf("plain JSON: %v %+v", err, v)
	}
	if err := DecodeModelJSON("noise before {\"a\":\"y\"} noise after", &v); err != nil || v.A != "y" {
		t.Fatalf("wrapped JSON: %v %+v", err, v)
	}
	if err := DecodeModelJSON("", &v); !errors.Is(err, domain.ErrEmptyResponse) {
		t.Fatalf("empty: %v", err)
	}
	if err := DecodeModelJSON("no json here", &v); !errors.Is(err, domain.ErrBadAnalysis) {
		t.Fatalf("garbage: %v", err)
	}
}

func TestAnalysisPayloadToResult(t *testing.T) {
	t.Parallel()

	var p AnalysisPayload
	p.Verse = "船过水无痕"
	p.ThreeMirrors.Essence = "e"
	p.ThreeMirrors.Circumstance = "c"
	p.ThreeMirrors.Action = "a"
	p.StickingPointQuestion = "q"
	p.PhilosopherNote = "n"
	p.GodsSigh = "s"
	p.AwakeningStone = "w"

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r, err := p.ToResult(now)
	if err != nil {
		t.Fatalf("ToResult: %v", err)
	}
	if r.Timestamp != now.UnixMilli() {
		t.Fatalf("Timestamp=%d", r.Timestamp)
	}

	p.GodsSigh = ""
	if _, err := p.ToResult(now); err == nil {
		t.Fatal("incomplete payload accepted")
	}
}
