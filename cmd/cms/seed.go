package main

import (
	"context"
	"fmt"
	"strings"

	"payloadkit/internal/api"
	"payloadkit/internal/collections"
	"payloadkit/internal/globals"
	"payloadkit/pkg/payloadcms"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type seedInput struct {
	Title    string
	Content  string
	SiteName string
}

// clientFactory подменяется в тестах
type clientFactory func(a *app) (*payloadcms.Client, error)

func defaultClient(a *app) (*payloadcms.Client, error) {
	return payloadcms.New(
		payloadcms.WithBaseURL(a.cfg.ServerURL),
		payloadcms.WithAPIKey(a.cfg.APIKey),
		payloadcms.WithLogger(a.log),
	)
}

func newSeedCmd(a *app, newClient clientFactory) *cobra.Command {
	if newClient == nil {
		newClient = defaultClient
	}
	in := seedInput{}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a sample post and set the site name on a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(a)
			if err != nil {
				return err
			}
			id, err := seed(cmd.Context(), client, in, a.log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created post %s, site name %q\n", id, in.SiteName)
			return nil
		},
	}
	cmd.Flags().StringVar(&a.serverURL, "server-url", "", "Payload server URL (env CMS_SERVER_URL)")
	cmd.Flags().StringVar(&a.apiKey, "api-key", "", "API key of a users document (env CMS_API_KEY)")
	cmd.Flags().StringVar(&in.Title, "title", "Hello, world", "Post title")
	cmd.Flags().StringVar(&in.Content, "content", "First post.", "Post content")
	cmd.Flags().StringVar(&in.SiteName, "site-name", "My Site", "Settings site name")
	return cmd
}

// seed проверяет документы локально по схеме и только потом пишет на сервер.
func seed(ctx context.Context, client *payloadcms.Client, in seedInput, log *zap.Logger) (string, error) {
	post := map[string]any{"title": in.Title, "content": in.Content}
	if errs := api.ValidateCollectionDocument(collections.Posts, post, false); len(errs) > 0 {
		return "", fmt.Errorf("post is invalid: %s", joinErrors(errs))
	}
	settings := map[string]any{"siteName": in.SiteName}
	if errs := api.ValidateDocument(globals.Settings.Fields, settings, true, nil); len(errs) > 0 {
		return "", fmt.Errorf("settings are invalid: %s", joinErrors(errs))
	}

	resp, err := client.Collections.Create(ctx, payloadcms.CollectionPosts, post)
	if err != nil {
		return "", fmt.Errorf("create post: %w", err)
	}
	var created payloadcms.DocResponse[struct {
		ID any `json:"id"`
	}]
	if len(resp.Content) > 0 {
		if err := json.Unmarshal(resp.Content, &created); err != nil {
			return "", fmt.Errorf("decode created post: %w", err)
		}
	}
	id := fmt.Sprint(created.Doc.ID)
	if created.Doc.ID == nil {
		id = "?"
	}

	if _, err := client.Globals.Update(ctx, payloadcms.GlobalSettings, settings); err != nil {
		return id, fmt.Errorf("update settings: %w", err)
	}
	if log != nil {
		log.Info("seeded", zap.String("post", id), zap.String("siteName", in.SiteName))
	}
	return id, nil
}

func joinErrors(errs []api.FieldError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+": "+e.Code)
	}
	return strings.Join(parts, ", ")
}
