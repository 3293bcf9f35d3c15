package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-hybridrow/pkg/layout"
	"github.com/huynhanx03/go-hybridrow/pkg/logger"
	"github.com/huynhanx03/go-hybridrow/pkg/row"
	"github.com/huynhanx03/go-hybridrow/pkg/schema"
	"github.com/huynhanx03/go-hybridrow/pkg/settings"
)

type app struct {
	configPath string
	cfg        *settings.Config
	log        *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "hrlayout",
		Short:         "Inspect the row layouts of a schema namespace",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := settings.Load(a.configPath)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Logger)
			if err != nil {
				return err
			}
			a.cfg, a.log = cfg, log
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (yaml, json or toml)")

	root.AddCommand(a.compileCmd(), a.emptyRowCmd())
	return root
}

func (a *app) compileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile <namespace.json>",
		Short: "Compile every schema of a namespace and print its columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.resolver(args[0])
			if err != nil {
				return err
			}
			if err := r.ResolveAll(cmd.Context()); err != nil {
				return err
			}

			for _, s := range r.Namespace().Schemas {
				l, err := r.Resolve(s.SchemaID)
				if err != nil {
					return err
				}
				printLayout(cmd.OutOrStdout(), l)
			}
			return nil
		},
	}
}

func (a *app) emptyRowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "empty-row <namespace.json> <schema-id>",
		Short: "Print the bytes of an empty row of a schema",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[1], 10, 32)
			if err != nil {
				return errors.Wrapf(err, "schema id %q", args[1])
			}
			r, err := a.resolver(args[0])
			if err != nil {
				return err
			}
			l, err := r.Resolve(schema.SchemaID(id))
			if err != nil {
				return err
			}

			b := row.New(a.cfg.Row.InitialCapacity, r)
			b.InitLayout(row.VersionV1, l)
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(b.Bytes()))
			return nil
		},
	}
}

func (a *app) resolver(path string) (*layout.NamespaceResolver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read namespace")
	}
	ns, err := schema.ParseNamespace(data)
	if err != nil {
		return nil, err
	}
	a.log.Debug("namespace loaded", zap.String("name", ns.Name), zap.Int("schemas", len(ns.Schemas)))

	return layout.NewNamespaceResolver(ns,
		layout.WithLogger(a.log),
		layout.WithShards(a.cfg.Resolver.Shards),
		layout.WithMaxConcurrency(a.cfg.Resolver.MaxConcurrency),
	), nil
}

func printLayout(w io.Writer, l *layout.Layout) {
	fmt.Fprintf(w, "%s (id %d, size %d, bitmask %d)\n", l.Name(), l.SchemaID(), l.Size(), l.NumBitmaskBytes())

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Path", "Type", "Storage", "Index", "Offset", "Size", "Null Bit", "Bool Bit"})
	table.SetAutoFormatHeaders(false)
	for _, c := range l.AllColumns() {
		table.Append([]string{
			c.FullPath(),
			c.TypeArg().String(),
			c.Storage().String(),
			strconv.Itoa(c.Index()),
			strconv.Itoa(c.Offset()),
			strconv.Itoa(c.Size()),
			bitString(c.NullBit()),
			bitString(c.BooleanBit()),
		})
	}
	table.Render()
}

func bitString(b layout.Bit) string {
	if b.IsInvalid() {
		return "-"
	}
	return strconv.Itoa(int(b))
}
