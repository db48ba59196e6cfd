package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/scanhook/pkg/cli/config"
	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
	"github.com/secmon-lab/scanhook/pkg/infra"
	"github.com/secmon-lab/scanhook/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// subscriptionFlags are shared by the subscription subcommands.
type subscriptionFlags struct {
	sid         string
	environment string
	ref         string
	repository  string

	provider  config.TestProvider
	githubApp config.GitHubApp
	firestore config.Firestore
	postgres  config.Postgres
}

func (x *subscriptionFlags) Flags(withTarget bool) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "sid",
			Usage:       "Session ID of the test provider",
			Sources:     cli.EnvVars("SCANHOOK_SID"),
			Destination: &x.sid,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "environment",
			Aliases:     []string{"e"},
			Usage:       "Subscription environment",
			Sources:     cli.EnvVars("SCANHOOK_ENVIRONMENT"),
			Destination: &x.environment,
			Required:    withTarget,
		},
	}
	if withTarget {
		flags = append(flags,
			&cli.StringFlag{
				Name:        "ref",
				Usage:       "Branch to subscribe, e.g. main or refs/heads/main",
				Destination: &x.ref,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "repository",
				Usage:       "Repository full name, e.g. owner/repo",
				Destination: &x.repository,
				Required:    true,
			},
		)
	}

	return slice.Flatten(flags,
		x.provider.Flags(),
		x.githubApp.Flags(),
		x.firestore.Flags(),
		x.postgres.Flags(),
	)
}

func (x *subscriptionFlags) input() *model.SubscribeInput {
	return &model.SubscribeInput{
		SessionID:   types.SessionID(x.sid),
		Channel:     types.ChannelGitHub,
		Environment: types.Environment(x.environment),
		Ref:         x.ref,
		Repository:  x.repository,
	}
}

// useCase builds a use case on the configured repository. The returned
// function releases the repository.
func (x *subscriptionFlags) useCase(ctx context.Context) (*usecase.UseCase, func(), error) {
	providerClient, err := x.provider.New()
	if err != nil {
		return nil, nil, err
	}
	ghClient, err := x.githubApp.New()
	if err != nil {
		return nil, nil, err
	}

	repoOptions, closeRepo, err := repositoryOptions(ctx, &x.firestore, &x.postgres)
	if err != nil {
		return nil, nil, err
	}

	clients := infra.New(append([]infra.Option{
		infra.WithTestProvider(providerClient),
		infra.WithGitHub(ghClient),
	}, repoOptions...)...)

	return usecase.New(clients), closeRepo, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to write output")
	}
	return nil
}

func subscriptionCommand() *cli.Command {
	var (
		add    subscriptionFlags
		remove subscriptionFlags
		list   subscriptionFlags
	)

	return &cli.Command{
		Name:  "subscription",
		Usage: "Manage push subscriptions",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Subscribe to pushes of a branch",
				Flags: add.Flags(true),
				Action: func(ctx context.Context, c *cli.Command) error {
					uc, closeRepo, err := add.useCase(ctx)
					if err != nil {
						return err
					}
					defer closeRepo()

					output, err := uc.Subscribe(ctx, add.input())
					if err != nil {
						return err
					}
					return printJSON(output)
				},
			},
			{
				Name:  "remove",
				Usage: "Unsubscribe from pushes of a branch",
				Flags: remove.Flags(true),
				Action: func(ctx context.Context, c *cli.Command) error {
					uc, closeRepo, err := remove.useCase(ctx)
					if err != nil {
						return err
					}
					defer closeRepo()

					n, err := uc.Unsubscribe(ctx, remove.input())
					if err != nil {
						return err
					}
					return printJSON(map[string]int{"removed": n})
				},
			},
			{
				Name:  "list",
				Usage: "List subscriptions of the session owner",
				Flags: list.Flags(false),
				Action: func(ctx context.Context, c *cli.Command) error {
					uc, closeRepo, err := list.useCase(ctx)
					if err != nil {
						return err
					}
					defer closeRepo()

					subs, err := uc.ListSubscriptions(ctx, types.SessionID(list.sid), types.ChannelGitHub, types.Environment(list.environment))
					if err != nil {
						return err
					}
					return printJSON(subs)
				},
			},
		},
	}
}
