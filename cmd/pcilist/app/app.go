// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/ironcore-dev/pcilist/internal/lister"
	"github.com/ironcore-dev/pcilist/internal/metrics"
	"github.com/ironcore-dev/pcilist/internal/pci"
	"github.com/ironcore-dev/pcilist/internal/probe"
	"github.com/ironcore-dev/pcilist/internal/report"
	"github.com/ironcore-dev/pcilist/internal/sysfs"
)

const Name string = "pcilist"

type options struct {
	root         string
	vendorsFile  string
	output       string
	metricsFile  string
	withProducts bool
	zapOpts      zap.Options
}

func NewCommand() *cobra.Command {
	opts := &options{
		zapOpts: zap.Options{
			Development: true,
		},
	}

	cmd := &cobra.Command{
		Use:          Name,
		Short:        "List PCI devices with decoded BARs and interrupts",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts.zapOpts), zap.WriteTo(cmd.ErrOrStderr())))
			return run(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.root, "root", "/", "Root directory containing sys/bus/pci/devices.")
	cmd.Flags().StringVar(&opts.vendorsFile, "vendors-file", "", "YAML file with additional vendor names.")
	cmd.Flags().StringVarP(&opts.output, "output", "o", report.FormatText, "Output format, one of text or yaml.")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics of the listing to this file.")
	cmd.Flags().BoolVar(&opts.withProducts, "with-products", true, "Resolve product, class and driver names via the pci.ids database.")

	goFlags := flag.NewFlagSet(Name, flag.ContinueOnError)
	opts.zapOpts.BindFlags(goFlags)
	cmd.Flags().AddGoFlagSet(goFlags)

	return cmd
}

func run(ctx context.Context, out io.Writer, opts *options) error {
	log := ctrl.Log.WithName(Name)
	ctx = ctrl.LoggerInto(ctx, log)

	printer, err := report.NewPrinter(opts.output)
	if err != nil {
		return err
	}

	vendors := pci.DefaultVendorTable()
	if opts.vendorsFile != "" {
		if vendors, err = pci.LoadVendorTable(opts.vendorsFile, vendors); err != nil {
			return err
		}
		log.V(1).Info("Loaded vendor table", "file", opts.vendorsFile, "entries", len(vendors))
	}

	var products lister.ProductSource
	if opts.withProducts {
		data, err := probe.NewPCIProductData(opts.root)
		if err != nil {
			log.Error(err, "Continuing without product names")
		} else {
			products = data
		}
	}

	collector := metrics.NewCollector()
	devices, err := lister.New(sysfs.NewReader(opts.root), vendors, products, collector).List(ctx)
	if err != nil {
		return err
	}

	if err := printer.Print(out, devices); err != nil {
		return fmt.Errorf("failed to print devices: %w", err)
	}

	if opts.metricsFile != "" {
		if err := collector.WriteToTextfile(opts.metricsFile); err != nil {
			return fmt.Errorf("failed to write metrics file: %w", err)
		}
	}
	return nil
}
