package imaginator

import (
	"context"
	"fmt"
	"time"

	"fairshare/internal/climate"
	"fairshare/internal/errors"
	"fairshare/internal/exploration"
	"fairshare/internal/session"
)

// Imaginator composes the session and a Generator: it derives the active
// exploration's personal target, generates a story for it, and records the
// result. A single in-flight generation slot is enforced; a second
// concurrent request is rejected with BUSY rather than overlapping.
type Imaginator struct {
	sess     *session.Session
	gen      Generator
	inflight chan struct{}
}

// New creates an Imaginator over a session and generator.
func New(sess *session.Session, gen Generator) *Imaginator {
	return &Imaginator{
		sess:     sess,
		gen:      gen,
		inflight: make(chan struct{}, 1),
	}
}

// Imagine generates a story in the given genre for the active exploration
// and appends it to that exploration's story list. A generation failure
// leaves persisted state untouched.
func (im *Imaginator) Imagine(ctx context.Context, genre string) (exploration.GeneratedStory, error) {
	var zero exploration.GeneratedStory

	if im.gen == nil {
		return zero, errors.NewInvalidRequest("story generation is not configured; set OPENAI_API_KEY")
	}
	if !ValidGenre(genre) {
		return zero, errors.NewInvalidRequest(fmt.Sprintf("unknown genre %q", genre))
	}

	active := im.sess.Active()
	if active.CountryCode == nil {
		return zero, errors.NewInvalidRequest("select a country before generating a story")
	}
	country, ok := climate.CountryByCode(*active.CountryCode)
	if !ok {
		return zero, errors.NewInvalidRequest("select a country before generating a story")
	}

	derived := climate.Derive(active)
	prompt := BuildPrompt(genre, country.Name, derived.PersonalTarget)

	select {
	case im.inflight <- struct{}{}:
	default:
		return zero, errors.NewBusy("story generation")
	}
	defer func() { <-im.inflight }()

	text, err := im.gen.Generate(ctx, prompt)
	if err != nil {
		return zero, err
	}

	story := exploration.GeneratedStory{
		ID:        exploration.NewID(),
		Prompt:    prompt,
		Text:      text,
		Genre:     genre,
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := im.sess.AddStory(ctx, active.ID, story); err != nil {
		return zero, err
	}
	return story, nil
}
