package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuemby/stow/pkg/kv"
	"github.com/cuemby/stow/pkg/orm"
)

var ormCmd = &cobra.Command{
	Use:   "orm",
	Short: "Exercise the ORM layer",
}

// user is the sample model for the demo command: a primary key, a plain
// scalar field, and a slice field with set semantics.
type user struct {
	ID   uint64 `stow:"pk"`
	Name string
	Tags []string
}

var ormDemoCmd = &cobra.Command{
	Use:   "demo <uri>",
	Short: "Create a model, save a record with duplicate slice elements, and load it back",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := kv.Open(args[0], kv.FlagCreateIfNotExists)
		if err != nil {
			return err
		}
		defer db.Close()

		m, err := orm.Describe(user{})
		if err != nil {
			return err
		}

		if err := db.Update(func(tx *kv.Tx) error {
			if err := orm.CreateModel(tx, m); err != nil {
				return err
			}
			return orm.Save(tx, m, &user{ID: 42, Name: "ada", Tags: []string{"x", "y", "x"}})
		}); err != nil {
			return err
		}

		var out user
		if err := db.View(func(tx *kv.Tx) error {
			return orm.Load(tx, m, uint64(42), &out)
		}); err != nil {
			return err
		}

		fmt.Printf("loaded User{ID: %d, Name: %q, Tags: %v}\n", out.ID, out.Name, out.Tags)
		return nil
	},
}

func init() {
	ormCmd.AddCommand(ormDemoCmd)
}
