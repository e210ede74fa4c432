package command

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dmitrymomot/handlekit/pkg/clipboard"
	"github.com/dmitrymomot/handlekit/pkg/handle"
)

const copyTimeout = 2 * time.Second

var errMissingName = errors.New("a name is required")

// result is the structured output of suggest.
type result struct {
	Name        string              `json:"name" yaml:"name"`
	Normalized  string              `json:"normalized" yaml:"normalized"`
	Salt        int64               `json:"salt" yaml:"salt"`
	Suggestions []handle.Suggestion `json:"suggestions" yaml:"suggestions"`
}

func suggestCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:      "suggest",
		Usage:     "Print handle suggestions for a name",
		ArgsUsage: "NAME...",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  "salt",
				Usage: "seed for reproducible output (default: current time in ms)",
			},
			&cli.StringSliceFlag{
				Name:    "platform",
				Aliases: []string{"p"},
				Usage:   "restrict output to platform `KEY` (repeatable or comma separated)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "output format: text, json or yaml",
				Value:   formatText,
			},
			&cli.StringFlag{
				Name:  "copy",
				Usage: "copy the first handle for platform `KEY` to the clipboard",
			},
		},
		Action: func(c *cli.Context) error {
			return runSuggest(c, rt)
		},
	}
}

func runSuggest(c *cli.Context, rt *runtime) error {
	// Only a missing argument is an error; a blank name yields no suggestions.
	if c.NArg() == 0 {
		return errMissingName
	}
	name := strings.Join(c.Args().Slice(), " ")

	format := strings.ToLower(c.String("format"))
	if err := checkFormat(format); err != nil {
		return err
	}

	keys, err := platformKeys(c.StringSlice("platform"))
	if err != nil {
		return err
	}

	copyKey := strings.ToLower(strings.TrimSpace(c.String("copy")))
	if copyKey != "" {
		if _, ok := handle.LookupPlatform(copyKey); !ok {
			return unknownPlatform(copyKey)
		}
	}

	salt := handle.SaltAt(rt.now())
	if c.IsSet("salt") {
		salt = c.Int64("salt")
	}

	res := result{
		Name:        name,
		Normalized:  handle.Normalize(name),
		Salt:        salt,
		Suggestions: handle.GenerateFor(name, salt, keys...),
	}
	if res.Suggestions == nil {
		res.Suggestions = []handle.Suggestion{}
	}

	if format == formatText {
		err = writeSuggestions(c.App.Writer, res)
	} else {
		err = encode(c.App.Writer, format, res)
	}
	if err != nil {
		return err
	}

	if copyKey == "" {
		return nil
	}

	// Status goes to stderr so structured stdout stays parseable.
	status := c.App.ErrWriter
	if format == formatText {
		status = c.App.Writer
	}

	for _, s := range res.Suggestions {
		if s.Key != copyKey || len(s.Handles) == 0 {
			continue
		}
		copier := clipboard.NewCopier(rt.clipboard, clipboard.WithTimeout(copyTimeout))
		if copier.CopyHandle(c.Context, s.Handles[0]) {
			_, err = fmt.Fprintf(status, "copied %s to clipboard\n", copier.Value())
		} else {
			_, err = fmt.Fprintln(status, "not copied: clipboard unavailable")
		}
		return err
	}

	_, err = fmt.Fprintf(status, "not copied: no suggestion for %s\n", copyKey)
	return err
}

// platformKeys validates and flattens --platform values.
func platformKeys(raw []string) ([]string, error) {
	var keys []string
	for _, v := range raw {
		for k := range strings.SplitSeq(v, ",") {
			k = strings.TrimSpace(k)
			if k == "" {
				continue
			}
			if _, ok := handle.LookupPlatform(k); !ok {
				return nil, unknownPlatform(k)
			}
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func unknownPlatform(key string) error {
	return fmt.Errorf("unknown platform %q (known: %s)", key, strings.Join(handle.PlatformKeys(), ", "))
}

func writeSuggestions(w io.Writer, res result) error {
	if len(res.Suggestions) == 0 {
		_, err := fmt.Fprintln(w, "No suggestions: the name needs at least one letter or digit.")
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (salt %d)\n", res.Normalized, res.Salt)
	for _, s := range res.Suggestions {
		fmt.Fprintf(&b, "\n%s\n", s.Platform)
		for _, h := range s.Handles {
			fmt.Fprintf(&b, "  %s\n", h)
		}
		fmt.Fprintf(&b, "  tip: %s\n", s.Tip)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
