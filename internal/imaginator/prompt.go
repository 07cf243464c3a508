// Package imaginator turns a derived personal target into illustrative
// narrative text via an external text-generation service.
package imaginator

import "fmt"

// Genres is the fixed set of story genre labels.
var Genres = []string{
	"Hopeful Solarpunk",
	"Sci-Fi",
	"Social Drama",
	"Alternate History",
	"Children's Tale",
}

// DefaultGenre is the genre preselected in the UI.
const DefaultGenre = "Hopeful Solarpunk"

// ValidGenre reports whether genre is one of the fixed labels.
func ValidGenre(genre string) bool {
	for _, g := range Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// BuildPrompt produces the exact prompt sent to the generator. The prompt
// is also stored verbatim on the resulting story record.
func BuildPrompt(genre, countryName string, personalTarget float64) string {
	return fmt.Sprintf(`You are a %s author. Write a short story (around 300-400 words) set in %s. The story must reflect a world where the average person's lifestyle has a carbon footprint of %.1f tonnes. The story should be engaging and subtly incorporate details specific to %s's culture or geography. The story must reveal what this society is like through its characters, setting, and plot, exploring aspects like how they travel, what they eat, what they value, and their relationship with technology and community. Do not explicitly mention "carbon footprints", "tonnes of CO2", or climate change jargon. Show, don't tell the reader about this lifestyle.`,
		genre, countryName, personalTarget, countryName)
}
