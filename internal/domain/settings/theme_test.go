package settings

import "testing"

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in   string
		want [3]int
		ok   bool
	}{
		{"#2563eb", [3]int{37, 99, 235}, true},
		{"#2980b9", [3]int{41, 128, 185}, true},
		{"#FFF", [3]int{255, 255, 255}, true},
		{"#000000", [3]int{0, 0, 0}, true},
		{"2563eb", [3]int{}, false},
		{"#25", [3]int{}, false},
		{"#zzzzzz", [3]int{}, false},
		{"", [3]int{}, false},
	}
	for _, tc := range cases {
		got, err := ParseHexColor(tc.in)
		if tc.ok != (err == nil) {
			t.Errorf("ParseHexColor(%q) err = %v, want ok=%v", tc.in, err, tc.ok)
			continue
		}
		if tc.ok && got != tc.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestApplyTheme(t *testing.T) {
	scope := ApplyTheme(Appearance{ThemeMode: ThemeDark, PrimaryColor: "#2980b9"})
	if scope.Mode != ThemeDark {
		t.Errorf("mode = %q, want dark", scope.Mode)
	}
	if scope.Accent != [3]int{41, 128, 185} {
		t.Errorf("accent = %v", scope.Accent)
	}
}

func TestApplyTheme_SystemResolvesToLight(t *testing.T) {
	scope := ApplyTheme(Appearance{ThemeMode: ThemeSystem, PrimaryColor: "#2563eb"})
	if scope.Mode != ThemeLight {
		t.Errorf("mode = %q, want light", scope.Mode)
	}
}

func TestApplyTheme_BadColorFallsBack(t *testing.T) {
	scope := ApplyTheme(Appearance{ThemeMode: ThemeLight, PrimaryColor: "blue"})
	if scope.Accent != [3]int{37, 99, 235} {
		t.Errorf("accent = %v, want default #2563eb", scope.Accent)
	}
}

func TestApplyTheme_Pure(t *testing.T) {
	a := Appearance{ThemeMode: ThemeDark, PrimaryColor: "#abcdef"}
	first := ApplyTheme(a)
	second := ApplyTheme(a)
	if first != second {
		t.Errorf("ApplyTheme is not deterministic: %v vs %v", first, second)
	}
}
