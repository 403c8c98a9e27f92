package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/itaybre/milim/internal/catalog"
	"github.com/itaybre/milim/internal/exercise"
	"github.com/itaybre/milim/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay drives one line-oriented practice session: print the card,
// read a numbered answer, grade it, record the attempt, repeat.
func runPlay(cmd *cobra.Command) error {
	eng, closeStore, err := openEngine(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	sess, err := eng.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())

	_, total := sess.Progress()
	fmt.Fprintln(out, titleStyle.Render("milim"), mutedStyle.Render(fmt.Sprintf("— %d cards, answer by number, q to stop", total)))
	fmt.Fprintln(out)

	for ex := sess.Current(); ex != nil; ex = sess.Current() {
		printCard(out, sess, ex)

		start := time.Now()
		choice, quit := readChoice(in, out, len(ex.Options))
		if quit {
			fmt.Fprintln(out, mutedStyle.Render("Stopping early."))
			break
		}

		picked := ex.Options[choice-1]
		att, correct, err := sess.Submit(picked.ID, time.Since(start), false)
		if err != nil {
			return fmt.Errorf("grade answer: %w", err)
		}
		if _, err := eng.RecordAttempt(att); err != nil {
			return fmt.Errorf("record attempt: %w", err)
		}

		if correct {
			fmt.Fprintln(out, correctStyle.Render("  ✓ Correct!"))
		} else {
			answer := "?"
			if opt, ok := ex.CorrectOption(); ok {
				answer = optionText(ex.Format, opt)
			}
			fmt.Fprintln(out, wrongStyle.Render("  ✗ Not quite."), mutedStyle.Render("The answer was "+answer+". It will come around again."))
		}
		fmt.Fprintln(out)
	}

	printSummary(out, sess.Summary(time.Now()))
	return nil
}

// printCard renders the prompt and the numbered option list.
func printCard(out io.Writer, sess *session.Session, ex *exercise.Exercise) {
	done, total := sess.Progress()
	header := fmt.Sprintf("Card %d/%d", min(done+1, total), total)
	if ex.Retry > 0 {
		header += "  (retry)"
	}
	fmt.Fprintln(out, headerStyle.Render(header))

	fmt.Fprintln(out, promptStyle.Render(promptLine(ex)))
	for i, o := range ex.Options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, optionText(ex.Format, o))
	}
}

// promptLine builds the question for the card's prompt/answer shape.
func promptLine(ex *exercise.Exercise) string {
	subject := ex.PromptText()
	switch ex.Format.Prompt {
	case catalog.ModalityImage:
		subject = "picture [" + subject + "]"
	case catalog.ModalityAudio:
		subject = "audio [" + subject + "]"
	case catalog.ModalityLetter:
		subject = "letter " + strings.ToUpper(subject)
	}

	switch ex.Format.Answer {
	case catalog.ModalityImage:
		return fmt.Sprintf("Which picture matches %s?", subject)
	case catalog.ModalityText:
		return fmt.Sprintf("Which word matches %s?", subject)
	case catalog.ModalityTranslation:
		return fmt.Sprintf("Which translation matches %s?", subject)
	case catalog.ModalityLetter:
		return fmt.Sprintf("Which letter does %s start with?", subject)
	default:
		return fmt.Sprintf("Which matches %s?", subject)
	}
}

// optionText renders one option in the card's answer modality. Images
// and audio show as asset references.
func optionText(f catalog.Format, o exercise.Option) string {
	switch f.Answer {
	case catalog.ModalityLetter:
		return o.Letter
	case catalog.ModalityImage:
		return "[" + o.Image + "]"
	case catalog.ModalityAudio:
		return "[" + o.Audio + "]"
	default:
		return o.Label
	}
}

// readChoice reads lines until it gets a number in [1, n] or a quit.
// EOF counts as quitting.
func readChoice(in *bufio.Scanner, out io.Writer, n int) (choice int, quit bool) {
	for {
		fmt.Fprint(out, "> ")
		if !in.Scan() {
			return 0, true
		}
		line := strings.TrimSpace(in.Text())
		if line == "q" || line == "quit" {
			return 0, true
		}
		v, err := strconv.Atoi(line)
		if err != nil || v < 1 || v > n {
			fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("Enter a number between 1 and %d, or q to stop.", n)))
			continue
		}
		return v, false
	}
}

// printSummary renders the end-of-session report.
func printSummary(out io.Writer, sum session.Summary) {
	fmt.Fprintln(out, titleStyle.Render("Session summary"))
	fmt.Fprintf(out, "  Cards completed: %d/%d\n", sum.Completed, sum.Planned)
	fmt.Fprintf(out, "  Answers: %d correct of %d (%.0f%%), %d retries\n",
		sum.Correct, sum.Attempts, sum.Accuracy*100, sum.Retries)
	fmt.Fprintf(out, "  Time: %s\n", sum.Duration.Round(time.Second))
	if len(sum.Words) > 0 {
		fmt.Fprintln(out, headerStyle.Render("  Words practiced:"))
		for _, w := range sum.Words {
			mark := correctStyle.Render("✓")
			if w.Correct < w.Attempts {
				mark = wrongStyle.Render("✗")
			}
			fmt.Fprintf(out, "    %s %s (%d/%d)\n", mark, w.Text, w.Correct, w.Attempts)
		}
	}
}
