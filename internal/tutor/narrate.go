package tutor

import "fmt"

// Narration copy lives here so the transcript wording is in one place.
// Backend-produced text (hints, feedback, solutions) passes through
// verbatim; everything else is generic and never leaks raw error
// internals.

func narrateWelcome() string {
	return "I've read your problem and broken it into steps. " +
		"Ask me anything, or use ctrl+t for a hint, ctrl+r to submit an answer, ctrl+o to reveal the solution."
}

func narrateHint(res HintResult) string {
	return "Hint: " + res.Text
}

func narrateHintBudget() string {
	return "That was the last hint available for this step."
}

func narrateVerdict(res ValidationResult) string {
	if res.Correct {
		return "Correct! " + res.Feedback
	}
	return "Not quite. " + res.Feedback
}

func narrateMovedToNext() string {
	return "Moving on to the next part of the problem."
}

func narrateSolution(res SolutionResult) string {
	return "Here is the full solution:\n\n" + res.Text
}

func narrateFactsRefreshed() string {
	return "I've updated the known facts panel with what we've established so far."
}

func narrateFailure(kind Kind) string {
	var what string
	switch kind {
	case KindChat:
		what = "answer that"
	case KindHint:
		what = "fetch a hint"
	case KindValidation:
		what = "check your answer"
	case KindSolution:
		what = "fetch the solution"
	case KindFacts:
		what = "refresh the facts"
	case KindVisualization:
		what = "draw the figure"
	default:
		what = "do that"
	}
	return fmt.Sprintf("Sorry, I couldn't %s just now. Please try again.", what)
}
