package main

import (
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/frederic-klein/onus/internal/coord"
	"github.com/frederic-klein/onus/internal/manifest"
	"github.com/frederic-klein/onus/internal/maven"
	"github.com/frederic-klein/onus/internal/report"
)

var (
	manifestPath string
	strict       bool
	output       string
	workers      int
	verbose      bool

	format report.Format
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		entry := logger.NewEntry(logger.StandardLogger())
		if kind := coord.KindOf(err); kind != 0 {
			entry = entry.WithField("kind", kind.String())
		}
		entry.Error(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "onus",
		Short:         "Onus - inspect dependency manifests and Maven repository documents",
		Long:          "Onus reads the Onus.toml manifest and decodes maven-metadata.xml and POM documents fetched from a Maven repository.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logger.SetLevel(logger.DebugLevel)
			}
			f, err := report.ParseFormat(output)
			if err != nil {
				return err
			}
			format = f
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", string(report.FormatText), "Output format (text, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	depsCmd := &cobra.Command{
		Use:   "deps",
		Short: "List the dependencies declared in the manifest",
		Args:  cobra.NoArgs,
		RunE:  runDeps,
	}
	depsCmd.Flags().StringVarP(&manifestPath, "manifest", "f", "./"+manifest.FileName, "Input manifest path")
	depsCmd.Flags().BoolVar(&strict, "strict", false, "Reject keys the manifest schema does not define")

	metadataCmd := &cobra.Command{
		Use:   "metadata FILE...",
		Short: "Decode maven-metadata.xml documents",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runMetadata,
	}

	pomCmd := &cobra.Command{
		Use:   "pom FILE...",
		Short: "Decode POM documents",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runPOM,
	}

	for _, c := range []*cobra.Command{metadataCmd, pomCmd} {
		c.Flags().IntVarP(&workers, "workers", "w", 5, "Parallel decode workers")
	}

	rootCmd.AddCommand(depsCmd, metadataCmd, pomCmd)
	return rootCmd
}

func runDeps(cmd *cobra.Command, args []string) error {
	var opts []manifest.Option
	if strict {
		opts = append(opts, manifest.Strict())
	}

	logger.Debugf("Loading manifest: %s", manifestPath)
	m, err := manifest.Load(manifestPath, opts...)
	if err != nil {
		return fmt.Errorf("loading manifest: %w", err)
	}
	logger.Debugf("Found %d dependencies", m.Len())

	return report.NewEmitter(cmd.OutOrStdout(), format).EmitManifest(m)
}

func runMetadata(cmd *cobra.Command, args []string) error {
	docs, err := decodeAll(args, maven.DecodeMetadata)
	if err != nil {
		return err
	}

	emitter := report.NewEmitter(cmd.OutOrStdout(), format)
	for _, m := range docs {
		if err := emitter.EmitMetadata(m); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return nil
}

func runPOM(cmd *cobra.Command, args []string) error {
	docs, err := decodeAll(args, maven.DecodePOM)
	if err != nil {
		return err
	}

	emitter := report.NewEmitter(cmd.OutOrStdout(), format)
	for _, p := range docs {
		if err := emitter.EmitPOM(p); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return nil
}

// decodeAll reads and decodes paths in parallel, returning results in
// argument order. The first failure wins.
func decodeAll[T any](paths []string, decode func([]byte, ...maven.Option) (T, error)) ([]T, error) {
	results := make([]T, len(paths))

	var g errgroup.Group
	g.SetLimit(max(workers, 1))
	for i, path := range paths {
		g.Go(func() error {
			logger.Debugf("Decoding %s", path)
			data, err := os.ReadFile(path)
			if err != nil {
				return coord.NewIOError(path, err)
			}
			v, err := decode(data, maven.WithSource(path))
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
