package deck

import "testing"

func TestParseCard(t *testing.T) {
	tests := []struct {
		input string
		rank  Rank
		suit  Suit
	}{
		{"As", Ace, Spades},
		{"Kh", King, Hearts},
		{"Td", Ten, Diamonds},
		{"2c", Two, Clubs},
		{"9S", Nine, Spades},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			card, err := ParseCard(tt.input)
			if err != nil {
				t.Fatalf("ParseCard(%q) returned error: %v", tt.input, err)
			}
			if card.Rank != tt.rank || card.Suit != tt.suit {
				t.Errorf("ParseCard(%q) = %v, want rank %v suit %v", tt.input, card, tt.rank, tt.suit)
			}
		})
	}
}

func TestParseCardInvalid(t *testing.T) {
	for _, input := range []string{"", "A", "Asd", "Xs", "Az", "1s"} {
		if _, err := ParseCard(input); err == nil {
			t.Errorf("ParseCard(%q) expected error, got nil", input)
		}
	}
}

func TestParseCardsRoundTrip(t *testing.T) {
	cards, err := ParseCards("AsKd Th7c")
	if err != nil {
		t.Fatalf("ParseCards returned error: %v", err)
	}
	if len(cards) != 4 {
		t.Fatalf("expected 4 cards, got %d", len(cards))
	}
	want := []string{"As", "Kd", "Th", "7c"}
	for i, card := range cards {
		if card.String() != want[i] {
			t.Errorf("card %d = %s, want %s", i, card, want[i])
		}
	}
}

func TestAll(t *testing.T) {
	cards := All()
	if len(cards) != 52 {
		t.Fatalf("expected 52 cards, got %d", len(cards))
	}

	seen := make(map[Card]bool)
	for _, card := range cards {
		if seen[card] {
			t.Errorf("duplicate card %v in deck", card)
		}
		seen[card] = true
	}
}

func TestCardSet(t *testing.T) {
	cards := MustParseCards("AsKd")
	cs := NewCardSet(cards)

	if !cs.Contains(NewCard(Spades, Ace)) {
		t.Error("expected set to contain As")
	}
	if !cs.Contains(NewCard(Diamonds, King)) {
		t.Error("expected set to contain Kd")
	}
	if cs.Contains(NewCard(Hearts, Ace)) {
		t.Error("did not expect set to contain Ah")
	}

	cs.Add(NewCard(Hearts, Ace))
	if !cs.Contains(NewCard(Hearts, Ace)) {
		t.Error("expected set to contain Ah after Add")
	}
}
