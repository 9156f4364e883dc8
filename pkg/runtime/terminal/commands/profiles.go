package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type ProfilesCmd struct {
	profilesPath string
	open         Opener
}

func NewProfilesCmd(open Opener, defaultProfiles string) *cobra.Command {
	pc := &ProfilesCmd{open: open}
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List report profiles",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.profilesPath, "profiles", defaultProfiles, "Path to the report profiles file")

	return cmd
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if pc.profilesPath == "" {
		return fmt.Errorf("no profiles file given, use --profiles")
	}

	svc, closeFn, err := pc.open(ctx, Source{Profiles: pc.profilesPath})
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}
	defer closeFn()

	profiles, err := svc.Profiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	if len(profiles) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No profiles found in %s\n", pc.profilesPath)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Profiles in %s:\n%s\n", pc.profilesPath, strings.Join(profiles, "\n"))
	return nil
}
