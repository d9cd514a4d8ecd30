// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"cogentcore.org/vrmview/vrm"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <avatar.vrm>",
		Short: "Print the metadata and humanoid rig of an avatar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asset, err := vrm.OpenAsset(args[0])
			if err != nil {
				return err
			}
			ld := &vrm.Loader{}
			av, err := ld.Load(cmd.Context(), asset)
			if err != nil {
				return err
			}
			defer av.Release()
			return printAvatar(cmd.OutOrStdout(), av)
		},
	}
}

func printAvatar(w io.Writer, av *vrm.Avatar) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	md := av.Meta
	fmt.Fprintf(tw, "File:\t%s\n", av.Name)
	fmt.Fprintf(tw, "Title:\t%s\n", md.Title)
	fmt.Fprintf(tw, "Authors:\t%s\n", strings.Join(md.Authors, ", "))
	fmt.Fprintf(tw, "Extension:\t%s\n", md.Extension)
	fmt.Fprintf(tw, "Version:\t%s\n", md.SpecVersion)
	fmt.Fprintf(tw, "Legacy forward:\t%v\n", md.LegacyForward)
	fmt.Fprintf(tw, "Meshes:\t%d\n", av.NumMeshes())
	fmt.Fprintf(tw, "Bones:\t%d\n", av.Humanoid.Len())
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "BONE\tNODE\tPOSITION")
	for _, b := range av.Humanoid.Bones() {
		n := av.Humanoid.Node(string(b))
		p := n.WorldPosition()
		fmt.Fprintf(tw, "%s\t%s\t(%.3f, %.3f, %.3f)\n", b, n.Name, p.X, p.Y, p.Z)
	}
	if missing := av.Humanoid.Missing(vrm.AllBones); len(missing) > 0 {
		fmt.Fprintf(tw, "\nUnmapped:\t%d optional bones\n", len(missing))
	}
	return tw.Flush()
}
