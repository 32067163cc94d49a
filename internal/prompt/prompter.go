package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/errors"
)

// Prompter asks the operator how to resolve the detected conflicts. It
// reads line-oriented answers, so it only works on interactive stdin.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func New() *Prompter {
	return NewWithStreams(os.Stdin, os.Stdout)
}

func NewWithStreams(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

var actionsByAnswer = map[string]domain.ResolutionAction{
	"1":             domain.ActionImportAll,
	"import_all":    domain.ActionImportAll,
	"2":             domain.ActionDeleteAll,
	"delete_all":    domain.ActionDeleteAll,
	"3":             domain.ActionChangePrefix,
	"change_prefix": domain.ActionChangePrefix,
	"4":             domain.ActionListDetails,
	"list_details":  domain.ActionListDetails,
	"5":             domain.ActionCancel,
	"cancel":        domain.ActionCancel,
	"q":             domain.ActionCancel,
}

func (p *Prompter) Choose(ctx context.Context, conflicts []domain.Conflict) (domain.ResolutionChoice, error) {
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(p.out, "\n%s\n", bold(fmt.Sprintf("%d conflict(s) need a decision:", len(conflicts))))
	fmt.Fprintln(p.out, "  1) import_all    - import unmanaged resources into state")
	fmt.Fprintln(p.out, "  2) delete_all    - remove all conflicting resources and entries")
	fmt.Fprintln(p.out, "  3) change_prefix - keep everything, rename the project prefix instead")
	fmt.Fprintln(p.out, "  4) list_details  - show conflict details without changing anything")
	fmt.Fprintln(p.out, "  5) cancel        - do nothing")

	for {
		if ctx.Err() != nil {
			return domain.ResolutionChoice{}, ctx.Err()
		}

		fmt.Fprint(p.out, "choice> ")
		answer, err := p.readLine()
		if err != nil {
			return domain.ResolutionChoice{}, err
		}

		action, ok := actionsByAnswer[strings.ToLower(answer)]
		if !ok {
			fmt.Fprintf(p.out, "unrecognized answer %q, pick 1-5\n", answer)
			continue
		}

		choice := domain.ResolutionChoice{Action: action}
		if action == domain.ActionChangePrefix {
			fmt.Fprint(p.out, "new prefix> ")
			prefix, err := p.readLine()
			if err != nil {
				return domain.ResolutionChoice{}, err
			}
			choice.NewPrefix = prefix
		}
		return choice, nil
	}
}

func (p *Prompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", errors.Wrap(err, errors.CodeInvalidChoice, "reading answer")
		}
		return "", errors.New(errors.CodeInvalidChoice, "input closed before an answer was given")
	}
	return strings.TrimSpace(p.in.Text()), nil
}
