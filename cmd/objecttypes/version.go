/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fstranieri/cloudchat"
	"github.com/fstranieri/cloudchat/models"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := cloudchat.GetVersionInfo()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "cloudchat objecttypes version %s\n", info.Version)
			fmt.Fprintf(w, "Git commit: %s\n", info.GitCommit)
			fmt.Fprintf(w, "Build date: %s\n", info.BuildDate)
			fmt.Fprintf(w, "Go version: %s\n", info.GoVersion)
			fmt.Fprintf(w, "Object types: format %d, version %d\n", models.FormatVersion, models.ObjectTypeVersion)
		},
	}
}
