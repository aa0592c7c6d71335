/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "objecttypes",
		Short: "Manage the cloudchat object type declaration",
		Long: `objecttypes prints the object type descriptor compiled into cloudchat,
generates the registrar from a YAML schema and publishes the descriptor
to a cloud zone.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newInfoCmd(),
		newGenerateCmd(),
		newSyncCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)
	return root
}
