package reply

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "HeLLo", "hello"},
		{"strips punctuation", "Hi there!?.,'", "hi there"},
		{"trims whitespace", "  hey  ", "hey"},
		{"apostrophe split", "what's up", "whats up"},
		{"keeps interior spacing", "see  you", "see  you"},
		{"unicode untouched", "héllo", "héllo"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFor_Greetings(t *testing.T) {
	greeting := "Hello How are you doing?"

	tests := []string{
		"hi",
		"Hi there!",
		"hey",
		"HELLO",
		"sup",
		"what's up",
		"whats up",
		"oh hello",
		"well, hi",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if got := For(input); got != greeting {
				t.Errorf("For(%q) = %q, want greeting reply", input, got)
			}
		})
	}
}

func TestFor_Wellbeing(t *testing.T) {
	wellbeing := "I'm a demo bot — I'm doing well. How can I help you today?"

	tests := []string{
		"how are you",
		"how r u",
		"how are u?",
		"how r you doing",
		"so, how you",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if got := For(input); got != wellbeing {
				t.Errorf("For(%q) = %q, want wellbeing reply", input, got)
			}
		})
	}
}

func TestFor_Gratitude(t *testing.T) {
	gratitude := "You're welcome! Anything else I can do?"

	tests := []string{
		"thanks",
		"thanks a lot",
		"Thank you!",
		"thx",
		"ok ty",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if got := For(input); got != gratitude {
				t.Errorf("For(%q) = %q, want gratitude reply", input, got)
			}
		})
	}
}

func TestFor_Farewell(t *testing.T) {
	farewell := "Goodbye — take care!"

	tests := []string{
		"bye",
		"goodbye",
		"see ya",
		"see you later",
		"ok bye now",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if got := For(input); got != farewell {
				t.Errorf("For(%q) = %q, want farewell reply", input, got)
			}
		})
	}
}

func TestFor_EchoFallback(t *testing.T) {
	tests := []string{
		"banana",
		"tell me a joke",
		"Highway to hell", // "hi" is a prefix but not on a word boundary
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if got := For(input); got != input {
				t.Errorf("For(%q) = %q, want verbatim echo", input, got)
			}
		})
	}
}

// TestFor_EchoPreservesOriginal verifies the fallback echoes the original
// input, not the normalized form.
func TestFor_EchoPreservesOriginal(t *testing.T) {
	input := "  Banana Split!  "
	if got := For(input); got != input {
		t.Errorf("For(%q) = %q, want original input unchanged", input, got)
	}
}

// TestFor_PriorityOrder verifies first-match-wins ordering: a message
// containing patterns from two groups gets the earlier group's reply.
func TestFor_PriorityOrder(t *testing.T) {
	// "hello how are you" matches both greeting and wellbeing; greeting
	// is checked first.
	got := For("hello how are you")
	if got != "Hello How are you doing?" {
		t.Errorf("For(\"hello how are you\") = %q, want greeting reply (priority order)", got)
	}

	// "thanks bye" matches gratitude before farewell.
	got = For("thanks bye")
	if got != "You're welcome! Anything else I can do?" {
		t.Errorf("For(\"thanks bye\") = %q, want gratitude reply (priority order)", got)
	}
}

// TestFor_SuffixLooseness documents the space-containment rule: a pattern
// appearing after any space matches, even at the very end of a longer
// sentence. This matches the original behavior and is intentional.
func TestFor_SuffixLooseness(t *testing.T) {
	got := For("please say hi")
	if got != "Hello How are you doing?" {
		t.Errorf("For(\"please say hi\") = %q, want greeting reply via containment", got)
	}
}
