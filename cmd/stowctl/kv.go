package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuemby/stow/pkg/kv"
)

var kvCmd = &cobra.Command{
	Use:   "kv",
	Short: "Read and write raw key/value entries within a bucket",
}

var kvGetCmd = &cobra.Command{
	Use:   "get <uri> <bucket> <key>",
	Short: "Print the value stored at key, or report it absent",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withView(args[0], func(tx *kv.Tx) error {
			b, err := tx.Bucket([]byte(args[1]))
			if err != nil {
				return err
			}
			if b == nil {
				return kv.ErrBucketNotFound
			}
			v, ok, err := tx.Get(b, []byte(args[2]))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("(absent)")
				return nil
			}
			fmt.Println(string(v))
			return nil
		})
	},
}

var kvSetCmd = &cobra.Command{
	Use:   "set <uri> <bucket> <key> <value>",
	Short: "Upsert key -> value in bucket, creating the bucket if absent",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUpdate(args[0], func(tx *kv.Tx) error {
			b, err := tx.CreateBucketIfNotExists([]byte(args[1]))
			if err != nil {
				return err
			}
			return tx.Set(b, []byte(args[2]), []byte(args[3]))
		})
	},
}

var kvRmCmd = &cobra.Command{
	Use:   "rm <uri> <bucket> <key>",
	Short: "Remove key from bucket, if present",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUpdate(args[0], func(tx *kv.Tx) error {
			b, err := tx.Bucket([]byte(args[1]))
			if err != nil {
				return err
			}
			if b == nil {
				return kv.ErrBucketNotFound
			}
			return tx.Remove(b, []byte(args[2]))
		})
	},
}

func init() {
	kvCmd.AddCommand(kvGetCmd, kvSetCmd, kvRmCmd)
}
