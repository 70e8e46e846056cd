package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vovakirdan/nebula-forge/internal/session"
)

// HelpText lists the console commands.
const HelpText = `Commands:
  up, down, left, right    move one square (also n/s/e/w, north...)
  move <direction>         same as above
  craft <shield|pulse>     Shield: 2 Quark + 1 Plasma, Pulse: 2 Plasma + 1 Neutrino
  use pulse                clear hazards around you
  reset                    start a new nebula
  look                     show the board
  help                     this text
  quit                     leave
`

const prompt = "> "

// Run reads commands from in until EOF, quit or ctx is cancelled, applying
// them to sess and writing the board to out.
func Run(ctx context.Context, in io.Reader, out io.Writer, sess *session.Session) error {
	fmt.Fprint(out, FormatBoard(sess.Snapshot()))
	fmt.Fprint(out, prompt)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		quit := Exec(ctx, out, sess, scanner.Text())
		if quit {
			fmt.Fprintln(out, "Bye.")
			return nil
		}
		fmt.Fprint(out, prompt)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("console: read input: %w", err)
	}
	return nil
}

// Exec runs one line against sess and writes the response. It reports
// whether the line asked to quit.
func Exec(ctx context.Context, out io.Writer, sess *session.Session, line string) bool {
	cmd, err := Parse(line)
	switch {
	case errors.Is(err, ErrEmpty):
		return false
	case err != nil:
		fmt.Fprintln(out, err)
		return false
	}

	switch cmd.Verb {
	case VerbQuit:
		return true
	case VerbHelp:
		fmt.Fprint(out, HelpText)
	case VerbLook:
		fmt.Fprint(out, FormatBoard(sess.Snapshot()))
	default:
		res := sess.Do(ctx, cmd.Apply)
		fmt.Fprint(out, FormatBoard(res.Snapshot))
	}
	return false
}
