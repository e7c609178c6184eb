package locale

import "testing"

func TestNormalizeLanguage(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "sq", want: LanguageAlbanian},
		{input: "sq-AL", want: LanguageAlbanian},
		{input: "AL", want: LanguageAlbanian},
		{input: "en", want: LanguageEnglish},
		{input: "en-US", want: LanguageEnglish},
		{input: "fr", want: ""},
		{input: "", want: ""},
	}

	for _, tc := range cases {
		if got := NormalizeLanguage(tc.input); got != tc.want {
			t.Fatalf("NormalizeLanguage(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestLanguageFromCountryCode(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "AL", want: LanguageAlbanian},
		{input: "al", want: LanguageAlbanian},
		{input: "XK", want: LanguageAlbanian},
		{input: "US", want: LanguageEnglish},
		{input: "", want: ""},
	}

	for _, tc := range cases {
		if got := LanguageFromCountryCode(tc.input); got != tc.want {
			t.Fatalf("LanguageFromCountryCode(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestLanguageFromAcceptLanguage(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "sq-AL,sq;q=0.9,en;q=0.8", want: LanguageAlbanian},
		{input: "en-GB,en;q=0.9", want: LanguageEnglish},
		{input: "de-DE", want: ""},
		{input: "", want: ""},
	}

	for _, tc := range cases {
		if got := LanguageFromAcceptLanguage(tc.input); got != tc.want {
			t.Fatalf("LanguageFromAcceptLanguage(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestPreferenceForLanguage(t *testing.T) {
	if pref := PreferenceForLanguage("en"); pref.HTMLLang != "en-US" {
		t.Fatalf("expected en-US, got %q", pref.HTMLLang)
	}
	if pref := PreferenceForLanguage("unknown"); pref.Language != LanguageAlbanian {
		t.Fatalf("default language should be Albanian, got %q", pref.Language)
	}
}
