package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/catalog"
	"github.com/pageza/recipeshare/backend/internal/identity"
	"github.com/pageza/recipeshare/backend/internal/model"
)

func runList(w io.Writer, category, difficulty string) error {
	cat, err := catalog.Default()
	if err != nil {
		return err
	}

	d := model.DifficultyUnknown
	if difficulty != "" {
		var ok bool
		if d, ok = model.ParseDifficulty(difficulty); !ok {
			return fmt.Errorf("unknown difficulty %q", difficulty)
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tDIFFICULTY\tTIME\tRATING")
	for _, r := range cat.Filter(category, d) {
		rating := "-"
		if r.Rating > 0 {
			rating = fmt.Sprintf("%.1f", r.Rating)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Title, r.Category, r.Difficulty, r.CookTime, rating)
	}
	return tw.Flush()
}

func runShow(w io.Writer, id string) error {
	cat, err := catalog.Default()
	if err != nil {
		return err
	}
	recipe, ok := cat.Get(id)
	if !ok {
		return fmt.Errorf("recipe %q not found", id)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(recipe); err != nil {
		return err
	}
	return enc.Close()
}

func runDifficulties(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DIFFICULTY\tCOLOR")
	for _, d := range model.Difficulties {
		fmt.Fprintf(tw, "%s\t%s\n", d, model.DifficultyColor(d))
	}
	return tw.Flush()
}

func runToken(w io.Writer, secret, userID, sessionID string, ttl time.Duration) error {
	if sessionID == "" {
		sessionID = "sess_" + uuid.New().String()
	}
	token, err := identity.NewJWTProvider(secret).IssueToken(userID, sessionID, ttl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, token)
	return err
}

// identitySecret loads the signing secret the API server would use
func identitySecret() (string, error) {
	cfg, err := config.LoadConfig()
	var cfgErr *config.ConfigurationError
	if err != nil && !errors.As(err, &cfgErr) {
		return "", err
	}
	if cfg.IdentitySecret == "" {
		return "", fmt.Errorf("%s_IDENTITY_SECRET is not set", config.EnvPrefix)
	}
	return cfg.IdentitySecret, nil
}
