// Command cachetool exercises the blockcache and ninep packages against a
// real file, for manual smoke testing of both outside of the test suite.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/dargueta/kcore/blockcache"
	"github.com/dargueta/kcore/ninep"
)

func main() {
	app := cli.App{
		Usage: "Exercise the block cache and 9P2000 codec against a file",
		Commands: []*cli.Command{
			{
				Name:      "warm",
				Usage:     "Read every block of a file through a bounded cache and report stats",
				ArgsUsage: "IMAGE_FILE BLOCK_SIZE CACHE_CAPACITY",
				Action:    warmCache,
			},
			{
				Name:      "decode",
				Usage:     "Parse a single 9P2000 frame from a file and print its type and tag",
				ArgsUsage: "FRAME_FILE",
				Action:    decodeFrame,
			},
			{
				Name:      "encode-version",
				Usage:     "Write a Tversion frame negotiating the given msize to a file",
				ArgsUsage: "OUTPUT_FILE MSIZE",
				Action:    encodeVersion,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("cachetool: %s", err)
	}
}

func warmCache(ctx *cli.Context) error {
	if ctx.Args().Len() != 3 {
		return cli.Exit("usage: warm IMAGE_FILE BLOCK_SIZE CACHE_CAPACITY", 1)
	}

	path := ctx.Args().Get(0)
	blockSize, err := strconv.ParseUint(ctx.Args().Get(1), 10, 32)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid block size: %s", err), 1)
	}
	capacity, err := strconv.Atoi(ctx.Args().Get(2))
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid cache capacity: %s", err), 1)
	}

	file, err := os.Open(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to open %s: %s", path, err), 1)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to stat %s: %s", path, err), 1)
	}
	totalBlocks := uint32(info.Size() / int64(blockSize))
	if totalBlocks == 0 {
		return cli.Exit("file is smaller than one block", 1)
	}

	device := blockcache.NewFileDevice(file, uint32(blockSize), totalBlocks, 0)
	cache := blockcache.New(device, capacity)

	for i := uint32(0); i < totalBlocks; i++ {
		handle, err := cache.Get(i)
		if err != nil {
			return cli.Exit(fmt.Sprintf("failed to read block %d: %s", i, err), 1)
		}
		handle.Release()
	}

	stats := cache.Stats()
	fmt.Printf(
		"blocks=%d capacity=%d hits=%d misses=%d evictions=%d writebacks=%d\n",
		totalBlocks, capacity, stats.Hits, stats.Misses, stats.Evictions, stats.Writebacks,
	)
	return nil
}

func decodeFrame(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return cli.Exit("usage: decode FRAME_FILE", 1)
	}

	data, err := os.ReadFile(ctx.Args().Get(0))
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to read frame: %s", err), 1)
	}

	msg, tag, err := ninep.Parse(data)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to parse frame: %s", err), 1)
	}

	fmt.Printf("type=%s tag=%d\n", msg.Type, tag)
	return nil
}

func encodeVersion(ctx *cli.Context) error {
	if ctx.Args().Len() != 2 {
		return cli.Exit("usage: encode-version OUTPUT_FILE MSIZE", 1)
	}

	msize, err := strconv.ParseUint(ctx.Args().Get(1), 10, 32)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid msize: %s", err), 1)
	}

	msg := ninep.Tversion{
		Header:  ninep.MessageHeader{Tag: ninep.NoTag},
		Msize:   uint32(msize),
		Version: ninep.Version,
	}
	wire, err := msg.Serialize()
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to encode Tversion: %s", err), 1)
	}

	if err := os.WriteFile(ctx.Args().Get(0), wire, 0644); err != nil {
		return cli.Exit(fmt.Sprintf("failed to write frame: %s", err), 1)
	}
	return nil
}
