package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sartorproj/cropforecast/forecast"
	"github.com/sartorproj/cropforecast/timeseries"
)

// Query loop messages.
const (
	// DatePrompt asks for a date to look up.
	DatePrompt = "\nEnter a future date (YYYY-MM-DD) to check expected price (or 'exit'): "
	// DateNotFound is printed when no forecast week is near the date.
	DateNotFound = "Date not found in forecast range. Please choose a date within next 6 months (weekly interval)."
	// InvalidDate is printed when the input is not a date.
	InvalidDate = "Invalid date format. Please use YYYY-MM-DD."
	// Farewell is printed when the loop terminates.
	Farewell = "\nThank you for using the crop price forecaster!"
	// ExitKeyword ends the loop, compared case-insensitively.
	ExitKeyword = "exit"
	// CurrencySign prefixes formatted prices.
	CurrencySign = "₹"

	expectedPrice = "\nExpected modal price for %s on %s is %s"
)

// State is the state of a QueryLoop.
type State int

const (
	// AwaitingInput means the loop will prompt for another date.
	AwaitingInput State = iota
	// Terminated means the user exited or input ended.
	Terminated
)

func (s State) String() string {
	switch s {
	case AwaitingInput:
		return "AwaitingInput"
	case Terminated:
		return "Terminated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// FormatPrice renders a price in rupees with two decimals.
func FormatPrice(v float64) string {
	return CurrencySign + decimal.NewFromFloat(v).StringFixed(2)
}

// Answer resolves one line of query input. exit reports that the user asked
// to leave; otherwise reply is the message to show.
func Answer(input string, fc *forecast.Series, crop string) (reply string, exit bool) {
	input = strings.TrimSpace(input)
	if strings.EqualFold(input, ExitKeyword) {
		return "", true
	}

	date, err := timeseries.ParseTime(input)
	if err != nil {
		return InvalidDate, false
	}

	point, ok := fc.Lookup(date)
	if !ok {
		return DateNotFound, false
	}
	return fmt.Sprintf(expectedPrice, crop, point.Week.Format(timeseries.DateLayout), FormatPrice(point.Mean)), false
}

// QueryLoop answers date queries against a forecast until the user exits.
type QueryLoop struct {
	prompter *Prompter
	forecast *forecast.Series
	crop     string
	state    State
}

// NewQueryLoop creates a loop in the AwaitingInput state. crop is the
// display name used in replies.
func NewQueryLoop(p *Prompter, fc *forecast.Series, crop string) *QueryLoop {
	return &QueryLoop{prompter: p, forecast: fc, crop: crop, state: AwaitingInput}
}

// State returns the current state.
func (q *QueryLoop) State() State {
	return q.state
}

// Step reads and answers one query. End of input terminates the loop.
func (q *QueryLoop) Step() error {
	if q.state == Terminated {
		return nil
	}

	input, err := q.prompter.Ask(DatePrompt)
	if errors.Is(err, io.EOF) {
		q.terminate()
		return nil
	}
	if err != nil {
		return fmt.Errorf("read date: %w", err)
	}

	reply, exit := Answer(input, q.forecast, q.crop)
	if exit {
		q.terminate()
		return nil
	}
	q.prompter.Println(reply)
	return nil
}

// Run steps until the loop terminates.
func (q *QueryLoop) Run() error {
	for q.state != Terminated {
		if err := q.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (q *QueryLoop) terminate() {
	q.state = Terminated
	q.prompter.Println(Farewell)
}
