package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"fairshare/internal/climate"
	"fairshare/internal/config"
	"fairshare/internal/errors"
	"fairshare/internal/imaginator"
	"fairshare/internal/session"
	"fairshare/internal/store"
	"fairshare/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(sess *session.Session, im *imaginator.Imaginator, cfg *config.Config, baseDir string) *cli.App {
	app := &cli.App{
		Name:    "fairshare",
		Usage:   "Carbon-footprint scenario explorer",
		Version: Version,
		Commands: []*cli.Command{
			listCmd(sess),
			createCmd(sess),
			selectCmd(sess),
			renameCmd(sess),
			deleteCmd(sess),
			setCmd(sess),
			showCmd(sess),
			storiesCmd(sess),
			imagineCmd(sess, im),
			storyDeleteCmd(sess),
			exportCmd(sess, baseDir),
			importCmd(sess),
			serveCmd(sess, im, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in
	// tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// explorationSummary is the list-view shape of an exploration.
type explorationSummary struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	CountryCode       string `json:"country_code,omitempty"`
	ParticipationRate int    `json:"participation_rate"`
	StoryCount        int    `json:"story_count"`
	CreatedAt         int64  `json:"created_at"`
	Active            bool   `json:"active"`
}

// listCmd creates the list command.
func listCmd(sess *session.Session) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List explorations, newest first",
		Action: func(c *cli.Context) error {
			activeID := sess.ActiveID()
			items := make([]explorationSummary, 0)
			for _, e := range sess.List() {
				item := explorationSummary{
					ID:                e.ID,
					Name:              e.Name,
					ParticipationRate: e.ParticipationRate,
					StoryCount:        len(e.Stories),
					CreatedAt:         e.CreatedAt,
					Active:            e.ID == activeID,
				}
				if e.CountryCode != nil {
					item.CountryCode = *e.CountryCode
				}
				items = append(items, item)
			}
			return outputJSON(map[string]any{"explorations": items})
		},
	}
}

// createCmd creates the create command.
func createCmd(sess *session.Session) *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create a new exploration and make it active",
		Action: func(c *cli.Context) error {
			return outputJSON(sess.Create(c.Context))
		},
	}
}

// selectCmd creates the select command.
func selectCmd(sess *session.Session) *cli.Command {
	return &cli.Command{
		Name:      "select",
		Usage:     "Switch the active exploration",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return outputError(errors.NewInvalidRequest("id is required"))
			}
			if _, err := sess.Get(id); err != nil {
				return outputError(err)
			}
			sess.SetActive(id)
			return outputJSON(map[string]any{"active_id": id})
		},
	}
}

// renameCmd creates the rename command.
func renameCmd(sess *session.Session) *cli.Command {
	return &cli.Command{
		Name:      "rename",
		Usage:     "Rename an exploration",
		ArgsUsage: "<id> <name>",
		Action: func(c *cli.Context) error {
			id := c.Args().Get(0)
			name := c.Args().Get(1)
			if id == "" {
				return outputError(errors.NewInvalidRequest("id is required"))
			}
			if err := sess.Rename(c.Context, id, name); err != nil {
				return outputError(err)
			}
			e, err := sess.Get(id)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(e)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(sess *session.Session) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete an exploration (the last one is replaced with a fresh default)",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return outputError(errors.NewInvalidRequest("id is required"))
			}
			if err := sess.Delete(c.Context, id); err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{
				"deleted":   id,
				"active_id": sess.ActiveID(),
			})
		},
	}
}

// setCmd creates the set command, which merges scenario fields into the
// active exploration.
func setCmd(sess *session.Session) *cli.Command {
	return &cli.Command{
		Name:  "set",
		Usage: "Update the active exploration's scenario",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "country", Aliases: []string{"c"}, Usage: "Country code (empty clears the selection)"},
			&cli.BoolFlag{Name: "grid", Usage: "Clean electricity grid"},
			&cli.BoolFlag{Name: "transport", Usage: "Electrified transport"},
			&cli.BoolFlag{Name: "food", Usage: "Transformed food system"},
			&cli.IntFlag{Name: "participation", Aliases: []string{"p"}, Usage: "Participation rate, 1-100"},
		},
		Action: func(c *cli.Context) error {
			var patch session.Patch
			if c.IsSet("country") {
				country := c.String("country")
				patch.CountryCode = &country
			}
			if c.IsSet("grid") {
				grid := c.Bool("grid")
				patch.Grid = &grid
			}
			if c.IsSet("transport") {
				transport := c.Bool("transport")
				patch.Transport = &transport
			}
			if c.IsSet("food") {
				food := c.Bool("food")
				patch.Food = &food
			}
			if c.IsSet("participation") {
				rate := c.Int("participation")
				patch.ParticipationRate = &rate
			}

			if err := sess.UpdateActive(c.Context, patch); err != nil {
				return outputError(err)
			}
			return outputJSON(sess.Active())
		},
	}
}

// showCmd creates the show command.
func showCmd(sess *session.Session) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Show the active exploration with its derived targets and lifestyle tier",
		Action: func(c *cli.Context) error {
			active := sess.Active()
			derived := climate.Derive(active)

			out := map[string]any{
				"exploration": active,
				"targets":     derived,
			}
			if active.CountryCode != nil {
				if country, ok := climate.CountryByCode(*active.CountryCode); ok {
					out["country"] = country.Name
				}
				if !derived.Impossible {
					out["lifestyle_tier"] = climate.TierFor(derived.PersonalTarget).Title
				}
			}
			return outputJSON(out)
		},
	}
}

// storiesCmd creates the stories command.
func storiesCmd(sess *session.Session) *cli.Command {
	return &cli.Command{
		Name:  "stories",
		Usage: "List the active exploration's generated stories",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "full", Usage: "Include story text and prompts"},
		},
		Action: func(c *cli.Context) error {
			active := sess.Active()
			if c.Bool("full") {
				return outputJSON(map[string]any{"stories": active.Stories})
			}

			type storySummary struct {
				ID        string `json:"id"`
				Genre     string `json:"genre"`
				CreatedAt int64  `json:"created_at"`
			}
			items := make([]storySummary, 0, len(active.Stories))
			for _, st := range active.Stories {
				items = append(items, storySummary{ID: st.ID, Genre: st.Genre, CreatedAt: st.CreatedAt})
			}
			return outputJSON(map[string]any{"stories": items})
		},
	}
}

// imagineCmd creates the imagine command.
func imagineCmd(sess *session.Session, im *imaginator.Imaginator) *cli.Command {
	return &cli.Command{
		Name:  "imagine",
		Usage: "Generate a story for the active exploration's personal target",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "genre", Aliases: []string{"g"}, Value: imaginator.DefaultGenre, Usage: "Story genre"},
		},
		Action: func(c *cli.Context) error {
			if im == nil {
				return outputError(errors.NewInvalidRequest("story generation is not configured; set OPENAI_API_KEY"))
			}
			story, err := im.Imagine(c.Context, c.String("genre"))
			if err != nil {
				return outputError(err)
			}
			return outputJSON(story)
		},
	}
}

// storyDeleteCmd creates the story-delete command.
func storyDeleteCmd(sess *session.Session) *cli.Command {
	return &cli.Command{
		Name:      "story-delete",
		Usage:     "Delete a generated story",
		ArgsUsage: "<story-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "exploration", Aliases: []string{"e"}, Usage: "Exploration id (defaults to the active one)"},
		},
		Action: func(c *cli.Context) error {
			storyID := c.Args().First()
			if storyID == "" {
				return outputError(errors.NewInvalidRequest("story-id is required"))
			}
			expID := c.String("exploration")
			if expID == "" {
				expID = sess.Active().ID
			}
			if err := sess.DeleteStory(c.Context, expID, storyID); err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{"deleted": storyID})
		},
	}
}

// exportCmd creates the export command.
func exportCmd(sess *session.Session, baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the collection to a versioned JSON file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Usage: "Destination path (defaults to a dated file under exports/)"},
		},
		Action: func(c *cli.Context) error {
			path := c.String("path")
			if path == "" {
				path = store.DefaultExportPath(baseDir, time.Now())
			}
			written, err := sess.Export(path)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{"path": written})
		},
	}
}

// importCmd creates the import command.
func importCmd(sess *session.Session) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Replace the collection with the contents of a JSON export file",
		ArgsUsage: "<path>",
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return outputError(errors.NewInvalidRequest("path is required"))
			}
			count, err := sess.Import(c.Context, path)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{
				"imported":  count,
				"active_id": sess.ActiveID(),
			})
		},
	}
}

// serveCmd creates the serve command, which runs the web UI.
func serveCmd(sess *session.Session, im *imaginator.Imaginator, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the scenario web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Usage: "Bind address (overrides config)"},
			&cli.IntFlag{Name: "port", Usage: "Port (overrides config)"},
		},
		Action: func(c *cli.Context) error {
			serveCfg := *cfg
			if c.IsSet("bind") {
				serveCfg.WebBind = c.String("bind")
			}
			if c.IsSet("port") {
				serveCfg.WebPort = c.Int("port")
			}
			srv := web.NewServer(sess, im, &serveCfg, Version)
			return web.Run(srv)
		},
	}
}

// outputJSON writes indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if fErr, ok := err.(*errors.Error); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", fErr.Code, fErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
