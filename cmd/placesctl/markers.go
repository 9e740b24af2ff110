package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"places-proxy/internal/models"

	"github.com/spf13/cobra"
)

func markersCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "markers",
		Short: "List or add saved markers",
	}
	cmd.AddCommand(markersListCmd(opts))
	cmd.AddCommand(markersAddCmd(opts))
	return cmd
}

func markersListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved markers in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			markers, err := opts.client().ListMarkers(cmd.Context())
			if err != nil {
				return err
			}
			printMarkers(cmd.OutOrStdout(), markers)
			return nil
		},
	}
}

func markersAddCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add LAT LNG [NAME]",
		Short: "Save a marker at the given coordinates",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid latitude %q", args[0])
			}
			lng, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid longitude %q", args[1])
			}
			name := ""
			if len(args) == 3 {
				name = args[2]
			}

			marker, err := opts.client().AddMarker(cmd.Context(), lat, lng, name)
			if err != nil {
				return err
			}
			printMarkers(cmd.OutOrStdout(), []models.Marker{*marker})
			return nil
		},
	}
}

func printMarkers(w io.Writer, markers []models.Marker) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLAT\tLNG\tNAME\tCREATED")
	for _, m := range markers {
		fmt.Fprintf(tw, "%s\t%.6f\t%.6f\t%s\t%s\n", m.ID, m.Latitude, m.Longitude, m.Name, m.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	tw.Flush()
}

func printLocation(w io.Writer, loc *models.ResolvedLocation) {
	fmt.Fprintf(w, "%s (%.6f, %.6f)\n", loc.Label, loc.Latitude, loc.Longitude)
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
