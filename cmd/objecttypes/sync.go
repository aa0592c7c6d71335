/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fstranieri/cloudchat/config"
	"github.com/fstranieri/cloudchat/datastore/ddb"
	"github.com/fstranieri/cloudchat/errors"
	"github.com/fstranieri/cloudchat/models"
	"github.com/fstranieri/cloudchat/objecttype"
	"github.com/fstranieri/cloudchat/zone"
)

type backend struct {
	cfg     *config.Config
	logger  *slog.Logger
	schemas *ddb.SchemaStore
}

func connect(ctx context.Context, cmd *cobra.Command, configPath string) (*backend, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger := cfg.NewLogger(cmd.ErrOrStderr())

	client, err := ddb.NewDynamoDBClient(ctx, cfg.ClientConfig())
	if err != nil {
		return nil, err
	}
	return &backend{
		cfg:     cfg,
		logger:  logger,
		schemas: ddb.NewSchemaStore(client, cfg.AWS.Table, logger),
	}, nil
}

func newSyncCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Open the zone and publish the object type descriptor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			b, err := connect(ctx, cmd, configPath)
			if err != nil {
				return err
			}

			z, err := zone.New(b.cfg.ZoneConfig(), b.schemas, b.logger)
			if err != nil {
				return err
			}
			if err := z.CreateObjectType(models.GetObjectTypeInfo()); err != nil {
				return err
			}
			if err := z.Open(ctx); err != nil {
				return err
			}
			defer z.Close()

			info, _ := z.ObjectTypeInfo()
			fmt.Fprintf(cmd.OutOrStdout(), "zone %s: published %s\n", z.Name(), info)
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	return cmd
}

func newStatusCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Compare the compiled descriptor with the one stored in the zone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			b, err := connect(ctx, cmd, configPath)
			if err != nil {
				return err
			}

			name := b.cfg.Zone.Name
			local := models.GetObjectTypeInfo()
			remote, err := b.schemas.RemoteObjectTypeInfo(ctx, name)
			if errors.IsNotFound(err) {
				fmt.Fprintf(cmd.OutOrStdout(), "zone %s: no descriptor published; local %s\n", name, local)
				return nil
			}
			if err != nil {
				return err
			}
			return reportStatus(cmd, name, local, remote)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	return cmd
}

func reportStatus(cmd *cobra.Command, zoneName string, local, remote objecttype.Info) error {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "zone %s\n  local:  %s\n  remote: %s\n", zoneName, local, remote)
	if err := local.Compatible(remote); err != nil {
		return err
	}
	switch {
	case local.ObjectTypeVersion > remote.ObjectTypeVersion:
		fmt.Fprintln(w, "  local descriptor is newer; run sync to publish it")
	case !local.SameTypes(remote):
		fmt.Fprintln(w, "  same version but different object types")
	default:
		fmt.Fprintln(w, "  up to date")
	}
	return nil
}
