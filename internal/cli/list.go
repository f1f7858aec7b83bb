package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/bn-notify/bn/internal/domain"
	"github.com/bn-notify/bn/internal/monitor"
)

const (
	noSerial = "no id"
	noVendor = "no vendor"
)

func newListCmd(b backends, opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the batteries bn can see",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			if !slices.Contains([]string{FormatTable, FormatTOML}, opts.Format) {
				return fmt.Errorf("unknown format %q (want %s or %s)", opts.Format, FormatTable, FormatTOML)
			}
			return runListing(cmd, b, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Format, "format", FormatTable, "Output format: table or toml")
	return cmd
}

// runListing prints every readable battery. Nothing is compared or persisted.
func runListing(cmd *cobra.Command, b backends, opts *Options) error {
	ctx := cmd.Context()

	provider, err := b.provider(ctx, opts.Provider)
	if err != nil {
		return err
	}
	entries, err := monitor.New(provider, nil, nil).List(ctx)
	if err != nil {
		return err
	}

	if opts.Format == FormatTOML {
		return writeTOML(cmd.OutOrStdout(), entries)
	}
	writeTable(cmd.OutOrStdout(), entries)
	return nil
}

func writeTable(w io.Writer, entries []domain.BatteryEntry) {
	for _, e := range entries {
		if e.Err != nil {
			continue
		}
		fmt.Fprintf(w, " - %q (vendor: %q)\n",
			orDefault(e.Battery.Serial, noSerial),
			orDefault(e.Battery.Vendor, noVendor),
		)
	}
}

type tomlListing struct {
	Battery []tomlBattery `toml:"battery"`
}

type tomlBattery struct {
	Serial     string `toml:"serial"`
	Vendor     string `toml:"vendor"`
	Percentage uint32 `toml:"percentage"`
	Charging   bool   `toml:"charging"`
}

func writeTOML(w io.Writer, entries []domain.BatteryEntry) error {
	var out tomlListing
	for _, e := range entries {
		if e.Err != nil {
			continue
		}
		r := domain.ReadingFrom(e.Battery)
		out.Battery = append(out.Battery, tomlBattery{
			Serial:     orDefault(e.Battery.Serial, noSerial),
			Vendor:     orDefault(e.Battery.Vendor, noVendor),
			Percentage: r.Percentage,
			Charging:   r.Charging,
		})
	}
	return toml.NewEncoder(w).Encode(out)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
