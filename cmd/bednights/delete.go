package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/bednights/internal/api"
	"github.com/Veraticus/bednights/internal/cli"
	"github.com/Veraticus/bednights/internal/model"
)

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <entity> <id>",
		Short: "Delete a record",
		Long: `Delete a record. Records still referenced by accommodation logs cannot be
deleted; the affected logs are listed instead. Requires the admin role.`,
		Args: cobra.ExactArgs(2),
		RunE: runDelete,
	}

	cmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	id := args[1]

	entity, err := model.ParseEntity(args[0])
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.cfg.Session().RequireAdmin(); err != nil {
		return err
	}

	if !force {
		question := fmt.Sprintf("Delete %s %s?", strings.ToLower(entity.Title()), id)
		ok, err := cli.Confirm(ctx, cli.NewNonBlockingReader(os.Stdin), out, question)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Operation canceled.")
			return nil
		}
	}

	if _, err := a.mutator.Delete(ctx, entity, id); err != nil {
		var conflict *api.ConflictError
		if errors.As(err, &conflict) {
			fmt.Fprintln(out, cli.RenderBox(fmt.Sprintf("Cannot delete %s %s", strings.ToLower(entity.Title()), id), conflict.Detail()))
			return fmt.Errorf("%s %s is still in use", strings.ToLower(entity.Title()), id)
		}
		return err
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted %s %s", strings.ToLower(entity.Title()), id)))
	return nil
}
