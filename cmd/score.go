package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/portscout/portscout/internal/model"
)

var scoreFormat string

var scoreCmd = &cobra.Command{
	Use:   "score <location>",
	Short: "Score a single candidate location",
	Long: `Scores one location for scooter port visibility and demand.

The location may be a coordinate pair, a Google Maps link (including
shortened goo.gl links), or a free-text address:

  portscout score "35.611781, 140.113250"
  portscout score "https://maps.app.goo.gl/xxxx"
  portscout score "千葉市美浜区ひび野２丁目"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv("score")
		if err != nil {
			return err
		}

		coord, err := env.Resolver.Resolve(ctx, args[0])
		if err != nil {
			return eris.Wrapf(err, "score: resolve %q", args[0])
		}
		zap.L().Info("location resolved", zap.String("coordinate", coord.Key()))

		breakdown := env.Engine.Score(ctx, coord)
		return writeBreakdown(os.Stdout, breakdown, scoreFormat)
	},
}

func init() {
	scoreCmd.Flags().StringVar(&scoreFormat, "format", "text", "output format: text, json, or yaml")
	rootCmd.AddCommand(scoreCmd)
}

func writeBreakdown(w io.Writer, b model.Breakdown, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(b)
	case "text":
		fmt.Fprintf(w, "Location: %s\n", b.Coordinate)
		fmt.Fprintf(w, "Score:    %.1f / %.1f\n", b.Total, model.MaxScore)
		fmt.Fprintf(w, "Rank:     %s (%s)\n", b.Rank, b.Comment)
		fmt.Fprintln(w)
		for _, finding := range b.Findings {
			fmt.Fprintf(w, "  - %s\n", finding)
		}
		return nil
	default:
		return eris.Errorf("score: unknown format %q (want text, json, or yaml)", strings.TrimSpace(format))
	}
}
