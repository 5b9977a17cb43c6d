// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the Ash & Aether console.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/nathoo/ashaether/types"
)

var errNoRepository = errors.New("saving is not configured")

// Banner is printed before the first look.
const Banner = "Ash & Aether"

// CLI handles line-oriented interaction with the player.
type CLI struct {
	Game      *Game
	In        io.Reader
	Out       io.Writer
	Width     int  // wrap output at this column; 0 disables wrapping
	EchoInput bool // echo each input line after the prompt (for script playback)
	lastCmd   string
}

// New creates a CLI on stdin and stdout.
func New(g *Game) *CLI {
	return &CLI{Game: g, In: os.Stdin, Out: os.Stdout}
}

// Run shows the banner and the player's status, then loops:
// prompt, input, dispatch, output. It returns on /quit, end of input, or a
// cancelled context.
func (c *CLI) Run(ctx context.Context) {
	c.printLine(Banner)
	c.printLine("")
	c.printResult(c.Game.Step("look"))

	scanner := bufio.NewScanner(c.In)
	for ctx.Err() == nil {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			lines, quit := c.Game.Meta(ctx, input)
			for _, line := range lines {
				c.printSystem(line)
			}
			if quit {
				return
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Game.Step(input)
		c.printResult(result)
		if c.Game.Trace {
			for _, line := range FormatTrace(result) {
				c.printLine(line)
			}
		}
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	if c.Width > 0 {
		text = wordwrap.String(text, c.Width)
	}
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	if text == "" {
		fmt.Fprintln(c.Out)
		return
	}
	c.printLine("[" + text + "]")
}
