package categorize

import (
	"testing"

	"github.com/tagforge/tagforge/internal/domain"
	"github.com/tagforge/tagforge/internal/rules"
)

func TestCategorize(t *testing.T) {
	c := New(rules.Defaults())

	tests := []struct {
		input    string
		expected domain.Category
	}{
		// Genre: contains a known root anywhere
		{"metal", domain.CategoryGenre},
		{"black metal", domain.CategoryGenre},
		{"atmospheric black metal", domain.CategoryGenre},
		{"prog-metal", domain.CategoryGenre},
		{"hip hop", domain.CategoryGenre},
		{"blackgaze", domain.CategoryUnknown}, // welded word, not a root itself
		{"metalcore", domain.CategoryGenre},
		{"r&b", domain.CategoryGenre},

		// Style modifiers: standalone qualifiers only
		{"atmospheric", domain.CategoryStyleModifier},
		{"melodic", domain.CategoryStyleModifier},
		{"old school", domain.CategoryStyleModifier},
		{"dark atmospheric", domain.CategoryStyleModifier}, // every token a modifier

		// Regional beats everything - a place name must not be absorbed
		// as a modifier or genre
		{"norwegian black metal", domain.CategoryRegional},
		{"gothenburg", domain.CategoryRegional},
		{"bay area thrash", domain.CategoryRegional},
		{"portland, oregon", domain.CategoryRegional},
		{"usa", domain.CategoryRegional},
		{"uk garage", domain.CategoryRegional},

		// Modifier-also-root words resolve by precedence, not frequency
		{"ambient", domain.CategoryStyleModifier},

		// Unknown
		{"zeuhl", domain.CategoryUnknown},
		{"unknown", domain.CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := c.Categorize(tt.input)
			if result != tt.expected {
				t.Errorf("Categorize(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCategorizeAll(t *testing.T) {
	c := New(rules.Defaults())

	result := c.CategorizeAll([]string{"black metal", "atmospheric", "oslo"})
	if len(result) != 3 {
		t.Fatalf("CategorizeAll returned %d entries, want 3", len(result))
	}
	if result["black metal"] != domain.CategoryGenre {
		t.Errorf("black metal = %v, want genre", result["black metal"])
	}
	if result["atmospheric"] != domain.CategoryStyleModifier {
		t.Errorf("atmospheric = %v, want style-modifier", result["atmospheric"])
	}
	if result["oslo"] != domain.CategoryRegional {
		t.Errorf("oslo = %v, want regional", result["oslo"])
	}
}
