package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/cosmos/cosmos-sdk/types/bech32"
	"github.com/spf13/cobra"
)

// Bech32 prefixes for hash encoding (duplicated from app to avoid circular imports)
const (
	Bech32PrefixTxHash    = "stabtx"
	Bech32PrefixBlockHash = "stabblock"
)

// hashCommand creates the hash utility command
func hashCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Hash encoding/decoding utilities",
		Long:  `Utilities for converting between hex and bech32 hash formats.`,
	}

	cmd.AddCommand(
		encodeTxHashCmd(),
		encodeBlockHashCmd(),
		decodeTxHashCmd(),
		decodeBlockHashCmd(),
	)

	return cmd
}

func encodeTxHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode-tx [hex-hash]",
		Short: "Encode a hex transaction hash to bech32 format",
		Long:  `Converts a hex transaction hash to bech32 format with 'stabtx' prefix.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hexHash := strings.TrimPrefix(strings.ToLower(args[0]), "0x")
			hashBytes, err := hex.DecodeString(hexHash)
			if err != nil {
				return fmt.Errorf("invalid hex hash: %w", err)
			}

			bech32Hash, err := bech32.ConvertAndEncode(Bech32PrefixTxHash, hashBytes)
			if err != nil {
				return fmt.Errorf("bech32 encoding failed: %w", err)
			}

			fmt.Println(bech32Hash)
			return nil
		},
	}
}

func encodeBlockHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode-block [hex-hash]",
		Short: "Encode a hex block hash to bech32 format",
		Long:  `Converts a hex block hash to bech32 format with 'stabblock' prefix.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hexHash := strings.TrimPrefix(strings.ToLower(args[0]), "0x")
			hashBytes, err := hex.DecodeString(hexHash)
			if err != nil {
				return fmt.Errorf("invalid hex hash: %w", err)
			}

			bech32Hash, err := bech32.ConvertAndEncode(Bech32PrefixBlockHash, hashBytes)
			if err != nil {
				return fmt.Errorf("bech32 encoding failed: %w", err)
			}

			fmt.Println(bech32Hash)
			return nil
		},
	}
}

func decodeTxHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode-tx [bech32-hash]",
		Short: "Decode a bech32 transaction hash to hex format",
		Long:  `Converts a bech32 transaction hash (stabtx...) back to hex format.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix, hashBytes, err := bech32.DecodeAndConvert(args[0])
			if err != nil {
				return fmt.Errorf("bech32 decoding failed: %w", err)
			}

			if prefix != Bech32PrefixTxHash {
				return fmt.Errorf("invalid prefix: expected %s, got %s", Bech32PrefixTxHash, prefix)
			}

			fmt.Println(strings.ToUpper(hex.EncodeToString(hashBytes)))
			return nil
		},
	}
}

func decodeBlockHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode-block [bech32-hash]",
		Short: "Decode a bech32 block hash to hex format",
		Long:  `Converts a bech32 block hash (stabblock...) back to hex format.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix, hashBytes, err := bech32.DecodeAndConvert(args[0])
			if err != nil {
				return fmt.Errorf("bech32 decoding failed: %w", err)
			}

			if prefix != Bech32PrefixBlockHash {
				return fmt.Errorf("invalid prefix: expected %s, got %s", Bech32PrefixBlockHash, prefix)
			}

			fmt.Println(strings.ToUpper(hex.EncodeToString(hashBytes)))
			return nil
		},
	}
}
