package command

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/dmitrymomot/handlekit/pkg/handle"
)

func platformsCommand() *cli.Command {
	return &cli.Command{
		Name:  "platforms",
		Usage: "List the supported platforms",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "output format: text, json or yaml",
				Value:   formatText,
			},
		},
		Action: func(c *cli.Context) error {
			format := strings.ToLower(c.String("format"))
			if err := checkFormat(format); err != nil {
				return err
			}

			platforms := handle.Platforms()
			if format != formatText {
				return encode(c.App.Writer, format, platforms)
			}

			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tNAME\tPROFILE\tSUFFIXES")
			for _, p := range platforms {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Key, p.Name, p.ProfileURL("{handle}"), strings.Join(p.Suffixes, ", "))
			}
			return tw.Flush()
		},
	}
}
