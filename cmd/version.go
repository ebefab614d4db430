package cmd

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const repositorySlug = "s0up4200/onering"

var (
	version   = "dev"
	buildTime = "unknown"
)

// SetVersion records build information injected by the linker
func SetVersion(v, t string) {
	version = v
	buildTime = t
	rootCmd.Version = v
}

// skipInit replaces initializeApp for commands that need no config
func skipInit(*cobra.Command, []string) error { return nil }

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print version information",
	Args:              cobra.NoArgs,
	PersistentPreRunE: skipInit,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "onering %s\n", version)
		fmt.Fprintf(out, "Build time: %s\n", buildTime)
		fmt.Fprintf(out, "Go version: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		return nil
	},
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:               "update",
	Short:             "Update onering to the latest release",
	Args:              cobra.NoArgs,
	PersistentPreRunE: skipInit,
	RunE:              runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	current, err := parseVersion(version)
	if err != nil {
		return err
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
	if err != nil {
		return fmt.Errorf("error occurred while detecting version: %w", err)
	}
	if !found {
		return fmt.Errorf("latest version for %s/%s could not be found from github repository", runtime.GOOS, runtime.GOARCH)
	}

	if latest.LessOrEqual(current.String()) {
		fmt.Fprintf(out, "Current version (%s) is the latest\n", current)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return errors.New("could not locate executable path")
	}
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("error occurred while updating binary: %w", err)
	}

	fmt.Fprintf(out, "Successfully updated to version %s\n", latest.Version())
	return nil
}

// parseVersion rejects development builds, which have no release to compare with
func parseVersion(v string) (semver.Version, error) {
	parsed, err := semver.ParseTolerant(v)
	if err != nil {
		return semver.Version{}, fmt.Errorf("cannot update a development build (version %q)", v)
	}
	return parsed, nil
}
