package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	apperrors "github.com/jdsia/CSADPRG-MCO2/internal/errors"
	"github.com/jdsia/CSADPRG-MCO2/internal/infrastructure"
)

// Menu choices.
const (
	ChoiceLoad     = "1"
	ChoiceGenerate = "2"
	ChoiceExit     = "3"
)

// Prompt is shown before every read.
const Prompt = "Please choose from Options [1] -> [3]: "

// Actions are the operations the menu dispatches to.
type Actions interface {
	LoadFile(ctx context.Context) error
	GenerateReports(ctx context.Context) error
}

// Menu is the interactive load/generate/exit loop.
type Menu struct {
	actions Actions
	in      *bufio.Scanner
	out     io.Writer
	logger  *slog.Logger
}

// NewMenu creates a menu reading choices from in and writing to out.
func NewMenu(actions Actions, in io.Reader, out io.Writer, logger *slog.Logger) *Menu {
	if logger == nil {
		logger = slog.Default()
	}
	return &Menu{
		actions: actions,
		in:      bufio.NewScanner(in),
		out:     out,
		logger:  infrastructure.WithComponent(logger, "menu"),
	}
}

// Run shows the menu until the user exits, the input ends or ctx is
// cancelled. Action failures are reported and the loop continues.
func (m *Menu) Run(ctx context.Context) error {
	m.printMenu()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(m.out, PromptStyle.Render(Prompt))
		if !m.in.Scan() {
			fmt.Fprintln(m.out)
			return m.in.Err()
		}
		choice := strings.TrimSpace(m.in.Text())

		switch choice {
		case ChoiceLoad:
			m.report(ctx, "load", m.actions.LoadFile(ctx), "File loaded!")
		case ChoiceGenerate:
			m.report(ctx, "generate", m.actions.GenerateReports(ctx), "Reports generated!")
		case ChoiceExit:
			fmt.Fprintln(m.out, "Process Terminated")
			return nil
		default:
			fmt.Fprintln(m.out, FormatError("Invalid choice. Please choose a number from 1 to 3"))
			continue
		}

		m.printMenu()
	}
}

func (m *Menu) printMenu() {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, TitleStyle.Render("Flood Control App"))
	fmt.Fprintln(m.out, "[1] Load the file")
	fmt.Fprintln(m.out, "[2] Generate Reports")
	fmt.Fprintln(m.out, "[3] Exit")
}

func (m *Menu) report(ctx context.Context, action string, err error, success string) {
	switch {
	case err == nil:
		fmt.Fprintln(m.out, FormatSuccess(success))
	case apperrors.IsEmptyInput(err):
		m.logger.WarnContext(ctx, "nothing to process", slog.String("action", action))
		fmt.Fprintln(m.out, FormatError("No data loaded. Nothing to write; load the file first."))
	default:
		m.logger.ErrorContext(ctx, "menu action failed",
			slog.String("action", action),
			slog.String("error", err.Error()))
		fmt.Fprintln(m.out, FormatError(err.Error()))
	}
}
