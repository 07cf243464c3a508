package exploration

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// DefaultName is the display name given to the exploration synthesized when
// the collection would otherwise be empty.
const DefaultName = "My First Exploration"

// DefaultParticipationRate is the starting participation percentage.
const DefaultParticipationRate = 50

// StructuralChanges holds the three independent systemic-intervention flags.
// Each applies uniformly to a country baseline, independent of individual
// behavior.
type StructuralChanges struct {
	Grid      bool `json:"grid"`
	Transport bool `json:"transport"`
	Food      bool `json:"food"`
}

// GeneratedStory is an immutable record of one generated narrative. It is
// created only by a successful generation call and deleted only by explicit
// user action; it is never edited in place.
type GeneratedStory struct {
	// ID is a ULID that uniquely identifies this story
	ID string `json:"id"`

	// Prompt is the exact text that was sent to the generator
	Prompt string `json:"prompt"`

	// Text is the generator output, Markdown-formatted
	Text string `json:"text"`

	// Genre is one of the fixed genre labels (see imaginator.Genres)
	Genre string `json:"genre"`

	// CreatedAt is the Unix millisecond timestamp of generation
	CreatedAt int64 `json:"createdAt"`
}

// Exploration is a named what-if scenario: a country baseline, structural
// toggles, a participation rate, and any stories generated for it.
//
// JSON field names match the persisted blob and export-file format, so
// collections round-trip against files produced by earlier versions.
type Exploration struct {
	// ID is a ULID, immutable after creation
	ID string `json:"id"`

	// Name is the user-editable display name; never empty
	Name string `json:"name"`

	// CountryCode references the static country table; nil means no
	// baseline selected, which forces derived values to zero
	CountryCode *string `json:"countryCode"`

	// StructuralChanges are the grid/transport/food flags
	StructuralChanges StructuralChanges `json:"structuralChanges"`

	// ParticipationRate is a percentage in [1, 100]
	ParticipationRate int `json:"participationRate"`

	// CreatedAt is the Unix millisecond creation timestamp, used only for
	// sort ordering and default naming
	CreatedAt int64 `json:"createdAt"`

	// Stories holds generated narratives; insertion order is display order
	Stories []GeneratedStory `json:"stories"`
}

// NewID generates a new ULID.
func NewID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// NewDefault creates a fresh exploration with default fields.
func NewDefault() Exploration {
	return Exploration{
		ID:                NewID(),
		Name:              DefaultName,
		CountryCode:       nil,
		StructuralChanges: StructuralChanges{},
		ParticipationRate: DefaultParticipationRate,
		CreatedAt:         time.Now().UnixMilli(),
		Stories:           []GeneratedStory{},
	}
}

// Clone returns a deep copy, so callers can hand out read-only views without
// aliasing the owner's story slice.
func (e Exploration) Clone() Exploration {
	out := e
	if e.CountryCode != nil {
		code := *e.CountryCode
		out.CountryCode = &code
	}
	out.Stories = make([]GeneratedStory, len(e.Stories))
	copy(out.Stories, e.Stories)
	return out
}

// CloneAll deep-copies a collection.
func CloneAll(exps []Exploration) []Exploration {
	out := make([]Exploration, len(exps))
	for i, e := range exps {
		out[i] = e.Clone()
	}
	return out
}
