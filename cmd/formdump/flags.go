package main

import "github.com/urfave/cli/v2"

var (
	BoundaryFlag = &cli.StringFlag{
		Name:    "boundary",
		Aliases: []string{"b"},
		Usage:   "Multipart boundary, as in the Content-Type parameter",
	}

	// ContentTypeFlag is an alternative to BoundaryFlag, the boundary is extracted from it.
	ContentTypeFlag = &cli.StringFlag{
		Name:    "content-type",
		Aliases: []string{"t"},
		Usage:   "Full Content-Type value of the request",
	}

	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "YAML file overriding the default limits",
	}

	ChunkedFlag = &cli.BoolFlag{
		Name:  "chunked",
		Usage: "The body is encoded with the chunked transfer coding",
	}

	// ReadBufferFlag controls the size of pieces the parser is fed with. Small values
	// are useful to reproduce bugs depending on how the body is split.
	ReadBufferFlag = &cli.IntFlag{
		Name:  "read-buffer",
		Usage: "Size of the read buffer in bytes (overrides net.read_buffer_size)",
	}

	VerboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Log every upload piece",
	}
)

func dumpFlags() []cli.Flag {
	return []cli.Flag{
		BoundaryFlag,
		ContentTypeFlag,
		ConfigFlag,
		ChunkedFlag,
		ReadBufferFlag,
		VerboseFlag,
	}
}
