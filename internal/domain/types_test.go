package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func validInput() UserInput {
	return UserInput{
		SelectedCards: []string{"1"},
		ConfusionText: "我很困惑",
		SufferingType: SufferingLoss,
	}
}

func TestUserInputValidate(t *testing.T) {
	t.Parallel()

	if err := validInput().Validate(nil); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*UserInput)
	}{
		{"no cards", func(in *UserInput) { in.SelectedCards = nil }},
		{"too many cards", func(in *UserInput) { in.SelectedCards = []string{"1", "2", "3", "4"} }},
		{"duplicate card", func(in *UserInput) { in.SelectedCards = []string{"1", "1"} }},
		{"short text", func(in *UserInput) { in.ConfusionText = "迷" }},
		{"whitespace text", func(in *UserInput) { in.ConfusionText = "   \n  " }},
		{"bad suffering type", func(in *UserInput) { in.SufferingType = "GRIEF" }},
		{"empty suffering type", func(in *UserInput) { in.SufferingType = "" }},
	}
	for _, tc := range cases {
		in := validInput()
		tc.mutate(&in)
		if err := in.Validate(nil); err == nil {
			t.Fatalf("%s: want error, got nil", tc.name)
		}
	}
}

func TestUserInputValidateCardMembership(t *testing.T) {
	t.Parallel()

	in := validInput()
	in.SelectedCards = []string{"999"}
	err := in.Validate(func(id string) bool { return id != "999" })
	if err == nil {
		t.Fatal("unknown card accepted")
	}
	if !strings.Contains(err.Error(), "999") {
		t.Fatalf("error does not name the card: %v", err)
	}
}

func TestAnalysisResultComplete(t *testing.T) {
	t.Parallel()

	r := AnalysisResult{
		Verse: "v",
		ThreeMirrors: ThreeMirrors{
			Essence: "e", Circumstance: "c", Action: "a",
		},
		StickingPointQuestion: "q",
		PhilosopherNote:       "n",
		GodsSigh:              "s",
		AwakeningStone:        "w",
	}
	if err := r.Complete(); err != nil {
		t.Fatalf("complete result rejected: %v", err)
	}

	r.ThreeMirrors.Action = "  "
	if err := r.Complete(); err == nil {
		t.Fatal("missing mirror accepted")
	}
}

func TestArchiveItemInputRoundTrip(t *testing.T) {
	t.Parallel()

	in := validInput()
	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	it := ArchiveItem{ID: "x", OriginalInput: string(raw)}
	got, err := it.Input()
	if err != nil {
		t.Fatalf("Input: %v", err)
	}
	if got.ConfusionText != in.ConfusionText || got.SufferingType != in.SufferingType {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, in)
	}
	if len(got.SelectedCards) != 1 || got.SelectedCards[0] != "1" {
		t.Fatalf("cards mismatch: %v", got.SelectedCards)
	}

	it.OriginalInput = "{broken"
	if _, err := it.Input(); err == nil {
		t.Fatal("corrupt originalInput accepted")
	}
}
