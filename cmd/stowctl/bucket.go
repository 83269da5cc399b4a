package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuemby/stow/pkg/kv"
	_ "github.com/cuemby/stow/pkg/kv/boltdriver"
)

var bucketCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Create, remove, and list buckets",
}

var bucketCreateCmd = &cobra.Command{
	Use:   "create <uri> <name>",
	Short: "Create a bucket, failing if it already exists",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUpdate(args[0], func(tx *kv.Tx) error {
			_, err := tx.CreateBucket([]byte(args[1]))
			return err
		})
	},
}

var bucketRmCmd = &cobra.Command{
	Use:   "rm <uri> <name>",
	Short: "Remove a bucket and all of its entries",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUpdate(args[0], func(tx *kv.Tx) error {
			b, err := tx.Bucket([]byte(args[1]))
			if err != nil {
				return err
			}
			return tx.RemoveBucket(b)
		})
	},
}

var bucketLsCmd = &cobra.Command{
	Use:   "ls <uri>",
	Short: "List every live bucket, in name order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withView(args[0], func(tx *kv.Tx) error {
			entries, err := tx.Buckets()
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Printf("%s\t(id=%d)\n", e.Name, e.Bucket.ID())
			}
			return nil
		})
	},
}

func init() {
	bucketCmd.AddCommand(bucketCreateCmd, bucketRmCmd, bucketLsCmd)
}

// withUpdate opens uri with CreateIfNotExists, runs fn in a read-write
// transaction, and closes the database.
func withUpdate(uri string, fn func(*kv.Tx) error) error {
	db, err := kv.Open(uri, kv.FlagCreateIfNotExists)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Update(fn)
}

// withView opens uri with CreateIfNotExists, runs fn in a read-only
// transaction, and closes the database.
func withView(uri string, fn func(*kv.Tx) error) error {
	db, err := kv.Open(uri, kv.FlagCreateIfNotExists)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.View(fn)
}
