// wak converts between a wak archive and a directory tree.
//
// Decompressing reads the archive named by --wak and writes its files
// under --dir; --compress flips the direction, building the archive
// from the directory's files in canonical order so repeated builds of
// an unchanged tree are byte-identical. --verbose prints a per-entry
// table of path, address, and size in either direction.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/NathanSnail/data-utils/wak"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		wakPath  string
		dirPath  string
		compress bool
		verbose  bool
	)

	flags := pflag.NewFlagSet("wak", pflag.ContinueOnError)
	flags.StringVarP(&wakPath, "wak", "w", "", "the wak file to read / write to")
	flags.StringVarP(&dirPath, "dir", "d", "", "the directory to read / write to")
	flags.BoolVarP(&compress, "compress", "c", false, "compress to wak instead of decompressing from")
	flags.BoolVarP(&verbose, "verbose", "v", false, "print info about what is being done to each file")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if wakPath == "" || dirPath == "" {
		return errors.New("both --wak and --dir must be specified")
	}

	logger := slog.New(slog.DiscardHandler)
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	if compress {
		return compressDir(wakPath, dirPath, verbose, logger)
	}
	return decompressArchive(wakPath, dirPath, verbose, logger)
}

func compressDir(wakPath, dirPath string, verbose bool, logger *slog.Logger) error {
	entries, err := wak.ScanDir(dirPath, wak.ScanWithLogger(logger))
	if err != nil {
		return err
	}
	if verbose {
		printListing(entries, wak.ContentStart(entries))
	}
	return os.WriteFile(wakPath, wak.Encode(entries), 0o644)
}

func decompressArchive(wakPath, dirPath string, verbose bool, logger *slog.Logger) error {
	data, err := os.ReadFile(wakPath)
	if err != nil {
		return err
	}
	entries, err := wak.Decode(data)
	if err != nil {
		return err
	}
	if verbose {
		printDecoded(entries)
	}
	return wak.Extract(entries, dirPath, wak.ExtractWithLogger(logger))
}

// printListing shows entries about to be encoded, with addresses
// derived from the table layout: each content block is followed by one
// padding byte.
func printListing(entries []wak.Entry, start uint32) {
	printRow("Path", "Address", "Size")
	addr := start
	for _, e := range entries {
		printRow(e.Path, fmt.Sprintf("%#x", addr), humanize.IBytes(uint64(len(e.Content))))
		addr += uint32(len(e.Content)) + 1
	}
}

// printDecoded shows decoded entries with the addresses their table
// records carried.
func printDecoded(entries []wak.Entry) {
	printRow("Path", "Address", "Size")
	for _, e := range entries {
		printRow(e.Path, fmt.Sprintf("%#x", e.Offset), humanize.IBytes(uint64(len(e.Content))))
	}
}

func printRow(path, addr, size string) {
	fmt.Printf("%-70s %-15s %s\n", path, addr, size)
}
