package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/urfave/cli/v2"

	"github.com/diskimage-tools/fattime"
)

func main() {
	app := cli.App{
		Name:  "fattime",
		Usage: "Decode FAT directory entry date and time stamps",
		Commands: []*cli.Command{
			{
				Name:      "time",
				Usage:     "Decode 16-bit FAT time words",
				Action:    decodeTimeWords,
				ArgsUsage: "WORD [WORD ...]",
			},
			{
				Name:      "date",
				Usage:     "Decode 16-bit FAT date words",
				Action:    decodeDateWords,
				ArgsUsage: "WORD [WORD ...]",
			},
			{
				Name:      "dirent",
				Usage:     "Show the timestamps of one directory entry in a disk image",
				Action:    showDirentTimes,
				ArgsUsage: "IMAGE_FILE BYTE_OFFSET",
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

// parseWord accepts decimal, hex (0x), octal (0o) and binary (0b) forms.
func parseWord(arg string) (uint16, error) {
	value, err := strconv.ParseUint(arg, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("`%s` is not a 16-bit word: %w", arg, err)
	}
	return uint16(value), nil
}

func decodeTimeWords(context *cli.Context) error {
	if context.NArg() == 0 {
		return fmt.Errorf("expected at least one time word")
	}

	var failures *multierror.Error
	for _, arg := range context.Args().Slice() {
		word, err := parseWord(arg)
		if err != nil {
			failures = multierror.Append(failures, err)
			continue
		}

		decoded, ok := fattime.DecodeTime(word)
		if !ok {
			failures = multierror.Append(
				failures, fmt.Errorf("%#04x is not a valid FAT time", word))
			continue
		}
		fmt.Printf("%#04x  %02d:%02d:%02d\n", word, decoded.Hour, decoded.Minute, decoded.Second)
	}
	return failures.ErrorOrNil()
}

func decodeDateWords(context *cli.Context) error {
	if context.NArg() == 0 {
		return fmt.Errorf("expected at least one date word")
	}

	var failures *multierror.Error
	for _, arg := range context.Args().Slice() {
		word, err := parseWord(arg)
		if err != nil {
			failures = multierror.Append(failures, err)
			continue
		}

		decoded, ok := fattime.DecodeDate(word)
		if !ok {
			failures = multierror.Append(
				failures, fmt.Errorf("%#04x is not a valid FAT date", word))
			continue
		}
		fmt.Printf(
			"%#04x  %04d-%02d-%02d\n",
			word, decoded.Year, int(decoded.Month), decoded.Day)
	}
	return failures.ErrorOrNil()
}

func showDirentTimes(context *cli.Context) error {
	if context.NArg() != 2 {
		return fmt.Errorf("expected IMAGE_FILE and BYTE_OFFSET")
	}

	offset, err := strconv.ParseInt(context.Args().Get(1), 0, 64)
	if err != nil {
		return fmt.Errorf("`%s` is not a byte offset: %w", context.Args().Get(1), err)
	}

	imagePath := context.Args().Get(0)
	imageFile, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("failed to open image `%s`: %w", imagePath, err)
	}
	defer imageFile.Close()

	if _, err := imageFile.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to %d in `%s`: %w", offset, imagePath, err)
	}

	stamps, err := fattime.ReadDirentTimes(imageFile)
	if err != nil {
		return err
	}

	created, ok := stamps.Created(time.Local)
	printStamp("created", created, ok)
	accessed, ok := stamps.LastAccessed(time.Local)
	printStamp("accessed", accessed, ok)
	modified, ok := stamps.LastModified(time.Local)
	printStamp("modified", modified, ok)
	return nil
}

func printStamp(label string, stamp time.Time, ok bool) {
	if !ok {
		fmt.Printf("%-9s (not set or invalid)\n", label)
		return
	}
	fmt.Printf("%-9s %s\n", label, stamp.Format("2006-01-02 15:04:05"))
}
