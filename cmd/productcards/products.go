package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/talkincode/productcards/internal/catalog"
	"github.com/talkincode/productcards/internal/domain"
	"github.com/talkincode/productcards/internal/exporter"
	"github.com/talkincode/productcards/internal/webui"
)

func newListCmd(open appOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List products in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(nil)
			if err != nil {
				return err
			}
			defer a.Release()

			products := a.Store().List()
			if len(products) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No Products yet")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPRICE\tIMAGE\tINFO")
			for _, p := range products {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Name, webui.FormatPrice(p.Price), p.Image, p.Info)
			}
			return tw.Flush()
		},
	}
}

// formFlags binds the product form fields to command flags
func formFlags(cmd *cobra.Command, f *domain.Form) {
	cmd.Flags().StringVar(&f.Name, "name", "", "product name (required)")
	cmd.Flags().StringVar(&f.Price, "price", "", "product price (required)")
	cmd.Flags().StringVar(&f.Image, "image", "", "image URL")
	cmd.Flags().StringVar(&f.Info, "info", "", "description")
}

func newAddCmd(open appOpener) *cobra.Command {
	var form domain.Form
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(newTermPrompter(cmd.InOrStdin(), cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer a.Release()

			p, err := a.Store().Create(cmd.Context(), form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created product %d\n", p.ID)
			return nil
		},
	}
	formFlags(cmd, &form)
	return cmd
}

func newEditCmd(open appOpener) *cobra.Command {
	var form domain.Form
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace the fields of a product",
		Long: `Replace name, image, price and info of an existing product. Flags that
are not given keep their current value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cast.ToInt64E(args[0])
			if err != nil {
				return errors.Errorf("invalid product id %q", args[0])
			}
			a, err := open(newTermPrompter(cmd.InOrStdin(), cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer a.Release()

			current, found := a.Store().Get(id)
			if !found {
				return errors.Wrapf(catalog.ErrNotFound, "product %d", id)
			}
			merged := catalog.FormFromProduct(current)
			for name, value := range map[string]string{
				"name":  form.Name,
				"image": form.Image,
				"price": form.Price,
				"info":  form.Info,
			} {
				if cmd.Flags().Changed(name) {
					_ = catalog.SetFormField(&merged, name, value)
				}
			}

			p, err := a.Store().Update(cmd.Context(), id, merged)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated product %d\n", p.ID)
			return nil
		},
	}
	formFlags(cmd, &form)
	return cmd
}

func newDeleteCmd(open appOpener) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cast.ToInt64E(args[0])
			if err != nil {
				return errors.Errorf("invalid product id %q", args[0])
			}
			var prompt catalog.Prompter = newTermPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
			if yes {
				prompt = catalog.NewAutoPrompter(true)
			}
			a, err := open(prompt)
			if err != nil {
				return err
			}
			defer a.Release()

			err = a.Store().Delete(cmd.Context(), id)
			if errors.Is(err, catalog.ErrNotConfirmed) {
				fmt.Fprintln(cmd.OutOrStdout(), "aborted")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted product %d\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newExportCmd(open appOpener) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog as csv, xlsx or json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := exporter.ParseFormat(format)
			if err != nil {
				return err
			}
			a, err := open(nil)
			if err != nil {
				return err
			}
			defer a.Release()

			if output == "" || output == "-" {
				return exporter.Write(f, cmd.OutOrStdout(), a.Store().List())
			}
			file, err := os.Create(output)
			if err != nil {
				return errors.Wrap(err, "create export file")
			}
			if err := exporter.Write(f, file, a.Store().List()); err != nil {
				_ = file.Close()
				return err
			}
			return errors.Wrap(file.Close(), "close export file")
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "csv, xlsx or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, stdout when empty")
	return cmd
}
