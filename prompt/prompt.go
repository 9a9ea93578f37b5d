// Package prompt implements interactive query intake for the arrival board:
// date, time, route and search-again questions, each with bounded retries.
//
// Retries are an explicit loop with an attempt counter, never recursion, and
// the limit is a visible parameter. Exhausting it yields
// ErrAttemptsExhausted rather than a value.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/uq-transit/uqlakes-board/board"
)

// ErrAttemptsExhausted reports that the user failed to supply a valid value
// within the attempt limit.
var ErrAttemptsExhausted = errors.New("attempts exhausted")

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
	yesPattern  = regexp.MustCompile(`^(y|yes)$`)
	noPattern   = regexp.MustCompile(`^(n|no)$`)
)

// Prompter asks questions on out and reads answers line by line from in.
type Prompter struct {
	in          *bufio.Scanner
	out         io.Writer
	maxAttempts int
}

// New creates a Prompter with the given attempt limit per question.
func New(in io.Reader, out io.Writer, maxAttempts int) *Prompter {
	return &Prompter{
		in:          bufio.NewScanner(in),
		out:         out,
		maxAttempts: maxAttempts,
	}
}

func (p *Prompter) readLine(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// AskDate prompts for the departure date in YYYY-MM-DD form.
func (p *Prompter) AskDate() (time.Time, error) {
	previous := ""
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			fmt.Fprintf(p.out, "    %q is not a valid date.\n", previous)
			if attempt == p.maxAttempts {
				fmt.Fprintln(p.out, "    You failed to enter a valid date.")
				return time.Time{}, ErrAttemptsExhausted
			}
			fmt.Fprintln(p.out, "    Please enter a date in YYYY-MM-DD format.")
		}

		line, err := p.readLine("What date will you depart UQ Lakes station by bus? ")
		if err != nil {
			return time.Time{}, err
		}
		if datePattern.MatchString(line) {
			if date, err := time.ParseInLocation("2006-01-02", line, time.Local); err == nil {
				return date, nil
			}
		}
		previous = line
	}
}

// AskTime prompts for the departure time in HH:mm form.
func (p *Prompter) AskTime() (board.TimeOfDay, error) {
	previous := ""
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			fmt.Fprintf(p.out, "    %q is not a valid time.\n", previous)
			if attempt == p.maxAttempts {
				fmt.Fprintln(p.out, "    You failed to enter a valid time.")
				return board.TimeOfDay{}, ErrAttemptsExhausted
			}
			fmt.Fprintln(p.out, "    Please enter a time in HH:mm format.")
		}

		line, err := p.readLine("What time will you depart UQ Lakes station by bus? ")
		if err != nil {
			return board.TimeOfDay{}, err
		}
		if t, ok := parseTimeOfDay(line); ok {
			return t, nil
		}
		previous = line
	}
}

// AskRoute prompts for a bus route. Valid answers are the literal
// "show all routes" (any casing, returned as typed) or one of shortForms.
func (p *Prompter) AskRoute(shortForms []string) (string, error) {
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			if attempt == p.maxAttempts {
				fmt.Fprintln(p.out, "    You failed to enter a valid bus route.")
				return "", ErrAttemptsExhausted
			}
			fmt.Fprintln(p.out, "    Please enter a bus route.")
		}

		line, err := p.readLine("What Bus Route would you like to take? ")
		if err != nil {
			return "", err
		}
		if strings.EqualFold(line, board.ShowAllRoutes) {
			return line, nil
		}
		for _, form := range shortForms {
			if line == form {
				return line, nil
			}
		}
	}
}

// AskAgain asks whether to run another search. Accepts y/yes/n/no in any
// casing.
func (p *Prompter) AskAgain() (bool, error) {
	previous := ""
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			fmt.Fprintf(p.out, "    %q is not a valid response.\n", previous)
			if attempt == p.maxAttempts {
				fmt.Fprintln(p.out, "    You failed to enter a valid response.")
				return false, ErrAttemptsExhausted
			}
			fmt.Fprintln(p.out, "    Please enter 'y', 'yes', 'n' or 'no'.")
		}

		line, err := p.readLine("Would you like to search again? ")
		if err != nil {
			return false, err
		}
		answer := strings.ToLower(line)
		if yesPattern.MatchString(answer) {
			return true, nil
		}
		if noPattern.MatchString(answer) {
			return false, nil
		}
		previous = line
	}
}

func parseTimeOfDay(s string) (board.TimeOfDay, bool) {
	if !timePattern.MatchString(s) {
		return board.TimeOfDay{}, false
	}
	hour, err := strconv.Atoi(s[0:2])
	if err != nil {
		return board.TimeOfDay{}, false
	}
	minute, err := strconv.Atoi(s[3:5])
	if err != nil {
		return board.TimeOfDay{}, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return board.TimeOfDay{}, false
	}
	return board.TimeOfDay{Hour: hour, Minute: minute}, true
}
